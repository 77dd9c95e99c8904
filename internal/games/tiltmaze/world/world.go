// Package world simulates the tilt maze play field: static walls,
// stationary sensors and one gravity-driven player ball.
package world

import (
	"cmp"
	"maps"
	"math"
	"slices"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tiltmaze/internal/core"
	"github.com/vovakirdan/tiltmaze/internal/games/tiltmaze/level"
)

// broadphasePad grows every object's cell footprint so shapes that just
// touch across a cell boundary still meet in the broadphase.
const broadphasePad = 1

// EntityID identifies an entity inside one World. Zero is never issued.
type EntityID uint32

// Config holds the geometry and physics tunables of a World.
type Config struct {
	TileSize       float64
	TileOffset     float64
	PointsPerMeter float64 // Converts gravity in m/s² into points/s²
	MaxStep        float64 // Longest distance moved per substep
	PlayerRadius   float64
	LinearDamping  float64
	WallSize       float64
	SensorRadius   float64
}

// DefaultConfig returns the stock geometry.
func DefaultConfig() Config {
	return Config{
		TileSize:       32,
		TileOffset:     18,
		PointsPerMeter: 150,
		MaxStep:        4,
		PlayerRadius:   12,
		LinearDamping:  0.5,
		WallSize:       32,
		SensorRadius:   16,
	}
}

// Entity is a read-only view of a simulated entity.
type Entity struct {
	ID       EntityID
	Kind     level.Kind
	Position core.Vec2
	Shape    Shape
	Body     Body
	Scale    float64
}

type entity struct {
	Entity
	obj *resolv.Object
}

// Contact reports that the player began touching another entity.
type Contact struct {
	Player   EntityID
	Other    EntityID
	Kind     level.Kind
	Position core.Vec2 // Position of the other entity
}

// World owns every entity of the current level.
type World struct {
	cfg      Config
	space    *resolv.Space
	spaceW   float64
	spaceH   float64
	entities map[EntityID]*entity
	nextID   EntityID
	player   EntityID
	gravity  core.Vec2
	touching map[EntityID]bool
}

// New creates an empty world.
func New(cfg Config) *World {
	if cfg.MaxStep <= 0 {
		cfg.MaxStep = DefaultConfig().MaxStep
	}
	if cfg.TileSize <= 0 {
		cfg.TileSize = DefaultConfig().TileSize
	}
	w := &World{cfg: cfg}
	w.Reset()
	return w
}

// Config returns the world configuration.
func (w *World) Config() Config {
	return w.cfg
}

// Reset removes every entity and zeroes gravity.
func (w *World) Reset() {
	w.entities = make(map[EntityID]*entity)
	w.touching = make(map[EntityID]bool)
	w.player = 0
	w.gravity = core.Vec2{}
	w.spaceW, w.spaceH = 0, 0
	w.ensureSpace(w.cfg.TileSize*8, w.cfg.TileSize*8)
}

// CellCenter maps a grid cell to its world position.
func (w *World) CellCenter(row, col int) core.Vec2 {
	return core.V(
		w.cfg.TileSize*float64(col)+w.cfg.TileOffset,
		w.cfg.TileSize*float64(row)+w.cfg.TileOffset,
	)
}

// SpawnLayout creates one entity per placement. Player placements are
// ignored; the player is spawned separately at its fixed start.
func (w *World) SpawnLayout(l level.Layout) []EntityID {
	w.ensureSpace(
		w.cfg.TileSize*float64(l.Cols+2)+w.cfg.TileOffset,
		w.cfg.TileSize*float64(l.Rows+2)+w.cfg.TileOffset,
	)
	ids := make([]EntityID, 0, len(l.Placements))
	for _, p := range l.Placements {
		if p.Kind == level.KindPlayer {
			continue
		}
		ids = append(ids, w.Spawn(p.Kind, w.CellCenter(p.Row, p.Col)))
	}
	return ids
}

// Spawn adds a non-player entity of the given kind at pos.
func (w *World) Spawn(kind level.Kind, pos core.Vec2) EntityID {
	shape := Circle(w.cfg.SensorRadius)
	if kind == level.KindWall {
		shape = Square(w.cfg.WallSize)
	}
	return w.add(kind, pos, shape, BodyFor(kind))
}

// SpawnPlayer places a fresh dynamic player at pos. A player body that is
// still present is removed first; replaced reports whether that happened.
func (w *World) SpawnPlayer(pos core.Vec2) (id EntityID, replaced bool) {
	if w.player != 0 {
		w.Remove(w.player)
		replaced = true
	}
	body := BodyFor(level.KindPlayer)
	body.LinearDamping = w.cfg.LinearDamping
	id = w.add(level.KindPlayer, pos, Circle(w.cfg.PlayerRadius), body)
	w.player = id
	clear(w.touching)
	return id, replaced
}

func (w *World) add(kind level.Kind, pos core.Vec2, shape Shape, body Body) EntityID {
	w.nextID++
	e := &entity{Entity: Entity{
		ID:       w.nextID,
		Kind:     kind,
		Position: pos,
		Shape:    shape,
		Body:     body,
		Scale:    1,
	}}
	hw, hh := shape.HalfExtents()
	w.ensureSpace(pos.X+hw+w.cfg.TileSize, pos.Y+hh+w.cfg.TileSize)
	e.obj = resolv.NewObject(pos.X-hw-broadphasePad, pos.Y-hh-broadphasePad, (hw+broadphasePad)*2, (hh+broadphasePad)*2, kind.String())
	e.obj.Data = e.ID
	e.obj.SetShape(shape.collider(pos))
	w.space.Add(e.obj)
	w.place(e, pos)
	w.entities[e.ID] = e
	return e.ID
}

// ensureSpace grows the broadphase grid so it covers width x height.
func (w *World) ensureSpace(width, height float64) {
	if w.space != nil && width <= w.spaceW && height <= w.spaceH {
		return
	}
	w.spaceW = math.Max(w.spaceW, width)
	w.spaceH = math.Max(w.spaceH, height)
	cell := int(w.cfg.TileSize)
	w.space = resolv.NewSpace(int(math.Ceil(w.spaceW)), int(math.Ceil(w.spaceH)), cell, cell)
	for _, id := range w.ids() {
		e := w.entities[id]
		w.space.Add(e.obj)
		w.place(e, e.Position)
	}
}

// Remove deletes an entity. Removing an unknown id is a no-op.
func (w *World) Remove(id EntityID) bool {
	e, ok := w.entities[id]
	if !ok {
		return false
	}
	w.space.Remove(e.obj)
	delete(w.entities, id)
	delete(w.touching, id)
	if id == w.player {
		w.player = 0
		clear(w.touching)
	}
	return true
}

// Entity returns a view of the entity with the given id.
func (w *World) Entity(id EntityID) (Entity, bool) {
	e, ok := w.entities[id]
	if !ok {
		return Entity{}, false
	}
	return e.Entity, true
}

// Entities returns all entities ordered by id.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, len(w.entities))
	for _, id := range w.ids() {
		out = append(out, w.entities[id].Entity)
	}
	return out
}

// Count returns the number of live entities of a kind.
func (w *World) Count(kind level.Kind) int {
	n := 0
	for _, e := range w.entities {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Player returns the current player, if any.
func (w *World) Player() (Entity, bool) {
	if w.player == 0 {
		return Entity{}, false
	}
	return w.Entity(w.player)
}

// PlayerID returns the current player id or zero.
func (w *World) PlayerID() EntityID {
	return w.player
}

// Other returns the non-player party of a contact between a and b.
func (w *World) Other(a, b EntityID) (Entity, bool) {
	switch w.player {
	case 0:
		return Entity{}, false
	case a:
		return w.Entity(b)
	case b:
		return w.Entity(a)
	}
	return Entity{}, false
}

// SetGravity sets the gravity vector in m/s².
func (w *World) SetGravity(g core.Vec2) {
	w.gravity = g
}

// Gravity returns the current gravity vector.
func (w *World) Gravity() core.Vec2 {
	return w.gravity
}

// SetDynamic toggles whether an entity is moved by the simulation.
// Freezing clears velocity.
func (w *World) SetDynamic(id EntityID, dynamic bool) {
	e, ok := w.entities[id]
	if !ok {
		return
	}
	e.Body.Dynamic = dynamic
	if !dynamic {
		e.Body.Velocity = core.Vec2{}
	}
}

// SetVelocity overrides an entity's velocity in points/s.
func (w *World) SetVelocity(id EntityID, v core.Vec2) {
	if e, ok := w.entities[id]; ok {
		e.Body.Velocity = v
	}
}

// SetTransform moves and scales an entity directly.
func (w *World) SetTransform(id EntityID, pos core.Vec2, scale float64) {
	e, ok := w.entities[id]
	if !ok {
		return
	}
	e.Scale = scale
	w.place(e, pos)
}

func (w *World) place(e *entity, pos core.Vec2) {
	e.Position = pos
	hw, hh := e.Shape.HalfExtents()
	e.obj.X = pos.X - hw - broadphasePad
	e.obj.Y = pos.Y - hh - broadphasePad
	// Update moves the shape to the object's corner.
	e.obj.Update()
	e.obj.Shape.SetPosition(e.Shape.anchor(pos))
}

// Tick advances the simulation by dt seconds and returns contacts that
// began during this tick. A frozen or absent player yields none.
func (w *World) Tick(dt float64) []Contact {
	if dt <= 0 || w.player == 0 {
		return nil
	}
	p := w.entities[w.player]
	if !p.Body.Dynamic {
		return nil
	}

	accel := w.gravity.Scale(w.cfg.PointsPerMeter)
	p.Body.Velocity = p.Body.Velocity.Add(accel.Scale(dt))
	p.Body.Velocity = p.Body.Velocity.Scale(1 / (1 + dt*p.Body.LinearDamping))

	disp := p.Body.Velocity.Scale(dt)
	steps := int(math.Ceil(disp.Len() / w.cfg.MaxStep))
	if steps < 1 {
		steps = 1
	}
	step := disp.Scale(1 / float64(steps))
	seen := make(map[EntityID]bool)
	var last map[EntityID]bool
	for range steps {
		if step.X != 0 && !w.moveAxis(p, core.V(step.X, 0)) {
			p.Body.Velocity.X = 0
			step.X = 0
		}
		if step.Y != 0 && !w.moveAxis(p, core.V(0, step.Y)) {
			p.Body.Velocity.Y = 0
			step.Y = 0
		}
		last = w.sensing(p)
		maps.Copy(seen, last)
	}
	return w.contacts(p, seen, last)
}

// moveAxis moves e by delta, then pushes it out of every wall it now
// overlaps along the contact's MTV. It reports false when a push-out
// opposed the motion.
func (w *World) moveAxis(e *entity, delta core.Vec2) bool {
	w.place(e, e.Position.Add(delta))
	free := true
	for _, other := range w.nearby(e) {
		if !Blocks(e.Body, other.Body) {
			continue
		}
		cs := e.obj.Shape.Intersection(0, 0, other.obj.Shape)
		mtv, ok := pushOut(cs)
		if !ok {
			continue
		}
		w.place(e, e.Position.Add(mtv))
		if mtv.X*delta.X+mtv.Y*delta.Y < 0 {
			free = false
		}
	}
	return free
}

// sensing returns the ids of sensors overlapping p.
func (w *World) sensing(p *entity) map[EntityID]bool {
	out := make(map[EntityID]bool)
	for _, other := range w.nearby(p) {
		if !Reports(p.Body, other.Body) {
			continue
		}
		if intersect(p.obj.Shape, p.Position, other.obj.Shape, other.Position) {
			out[other.ID] = true
		}
	}
	return out
}

// contacts reports sensors seen during the tick that the player was not
// already touching. Only sensors still overlapping at the end of the tick
// stay in the touching set.
func (w *World) contacts(p *entity, seen, last map[EntityID]bool) []Contact {
	var out []Contact
	for _, id := range slices.Sorted(maps.Keys(seen)) {
		if w.touching[id] {
			continue
		}
		other := w.entities[id]
		out = append(out, Contact{
			Player:   p.ID,
			Other:    id,
			Kind:     other.Kind,
			Position: other.Position,
		})
	}
	clear(w.touching)
	maps.Copy(w.touching, last)
	return out
}

// nearby returns the entities sharing broadphase cells with e, by id.
func (w *World) nearby(e *entity) []*entity {
	coll := e.obj.Check(0, 0)
	if coll == nil {
		return nil
	}
	out := make([]*entity, 0, len(coll.Objects))
	for _, o := range coll.Objects {
		if other := w.lookup(o); other != nil && other != e {
			out = append(out, other)
		}
	}
	slices.SortFunc(out, func(a, b *entity) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (w *World) lookup(o *resolv.Object) *entity {
	id, ok := o.Data.(EntityID)
	if !ok {
		return nil
	}
	return w.entities[id]
}

func (w *World) ids() []EntityID {
	return slices.Sorted(maps.Keys(w.entities))
}
