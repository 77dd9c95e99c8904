package world

import (
	"github.com/quartercastle/vector"
	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tiltmaze/internal/core"
	"github.com/vovakirdan/tiltmaze/internal/games/tiltmaze/level"
)

// Category is a bit flag tagging bodies for collision filtering.
type Category uint32

const (
	CategoryPlayer    Category = 1 << iota // 1
	CategoryWall                           // 2
	CategorySucculent                      // 4
	CategoryBlackHole                      // 8
	CategoryPortal                         // 16
)

// CategoryFor returns the category bit of an entity kind.
func CategoryFor(kind level.Kind) Category {
	switch kind {
	case level.KindPlayer:
		return CategoryPlayer
	case level.KindWall:
		return CategoryWall
	case level.KindSucculent:
		return CategorySucculent
	case level.KindBlackHole:
		return CategoryBlackHole
	case level.KindPortal:
		return CategoryPortal
	}
	return 0
}

// Body holds the simulation flags of an entity.
type Body struct {
	Category      Category
	CollisionMask Category // Categories that block this body's movement
	ContactMask   Category // Categories this body reports contacts with
	Dynamic       bool
	Velocity      core.Vec2
	LinearDamping float64
}

// BodyFor returns the body flags for a kind. Walls only block the player;
// hazards, pickups and the portal never block anything and only report
// contacts with the player.
func BodyFor(kind level.Kind) Body {
	b := Body{Category: CategoryFor(kind)}
	switch kind {
	case level.KindPlayer:
		b.Dynamic = true
		b.CollisionMask = CategoryWall
		b.ContactMask = CategorySucculent | CategoryBlackHole | CategoryPortal
	case level.KindBlackHole, level.KindSucculent, level.KindPortal:
		b.ContactMask = CategoryPlayer
	}
	return b
}

// Blocks reports whether a's movement is blocked by b.
func Blocks(a, b Body) bool {
	return a.CollisionMask&b.Category != 0
}

// Reports reports whether a and b generate contact notifications.
func Reports(a, b Body) bool {
	return a.ContactMask&b.Category != 0 || b.ContactMask&a.Category != 0
}

// touchSlop is the push-out length below which two shapes only touch.
const touchSlop = 1e-9

// ShapeKind distinguishes collision shapes.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
)

// Shape is a collision shape centered on the entity position.
type Shape struct {
	Kind   ShapeKind
	Radius float64 // Circle only
	W, H   float64 // Rect only
}

// Circle returns a circle shape.
func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Square returns a square rect shape.
func Square(size float64) Shape {
	return Shape{Kind: ShapeRect, W: size, H: size}
}

// HalfExtents returns half the bounding box size.
func (s Shape) HalfExtents() (float64, float64) {
	if s.Kind == ShapeCircle {
		return s.Radius, s.Radius
	}
	return s.W / 2, s.H / 2
}

// collider builds the resolv shape for s centered on pos.
func (s Shape) collider(pos core.Vec2) resolv.IShape {
	if s.Kind == ShapeCircle {
		return resolv.NewCircle(pos.X, pos.Y, s.Radius)
	}
	return resolv.NewRectangle(pos.X-s.W/2, pos.Y-s.H/2, s.W, s.H)
}

// anchor returns where resolv positions s for an entity at pos: circles
// sit on their center, rectangles on their top-left corner.
func (s Shape) anchor(pos core.Vec2) (float64, float64) {
	if s.Kind == ShapeCircle {
		return pos.X, pos.Y
	}
	return pos.X - s.W/2, pos.Y - s.H/2
}

// pointTester is implemented by both resolv circles and polygons.
type pointTester interface {
	PointInside(point vector.Vector) bool
}

// intersect reports whether two resolv shapes centered on ca and cb
// overlap. Touching edges count. resolv only reports crossing edges, so a
// shape swallowed whole by the other is caught by testing its center.
func intersect(a resolv.IShape, ca core.Vec2, b resolv.IShape, cb core.Vec2) bool {
	if a.Intersection(0, 0, b) != nil {
		return true
	}
	return inside(b, ca) || inside(a, cb)
}

func inside(s resolv.IShape, p core.Vec2) bool {
	pt, ok := s.(pointTester)
	return ok && pt.PointInside(vector.Vector{p.X, p.Y})
}

// pushOut returns the translation that moves a shape out of a contact.
// Edges that merely touch yield ok == false.
func pushOut(cs *resolv.ContactSet) (core.Vec2, bool) {
	if cs == nil || len(cs.MTV) < 2 {
		return core.Vec2{}, false
	}
	mtv := core.V(cs.MTV.X(), cs.MTV.Y())
	if mtv.Len() <= touchSlop {
		return core.Vec2{}, false
	}
	return mtv, true
}
