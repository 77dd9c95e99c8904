package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tiltmaze/internal/games/tiltmaze/level"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels of the pack",
	Long: `Parse every level<N>.txt of the pack and show what it contains.

Levels must be numbered from 1 without gaps; a run ends at the first
missing number.

Examples:
  tiltmaze levels
  tiltmaze levels --levels ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	src := level.Builtin()
	if flagLevels != "" {
		src = level.Dir(flagLevels)
	}

	numbers, err := src.Numbers()
	if err != nil {
		return err
	}
	if len(numbers) == 0 {
		return errors.New("no level files found in " + src.Name())
	}

	fmt.Printf("Levels in %s:\n", src.Name())
	fmt.Println()
	fmt.Printf("  %-5s  %-7s  %-5s  %-5s  %-10s  %s\n", "Level", "Size", "Walls", "Holes", "Succulents", "Portal")
	fmt.Printf("  %-5s  %-7s  %-5s  %-5s  %-10s  %s\n", "-----", "----", "-----", "-----", "----------", "------")

	expected := 1
	for _, n := range numbers {
		layout, err := level.Load(src, n)
		if err != nil {
			return err
		}
		portal := "yes"
		if layout.Count(level.KindPortal) == 0 {
			portal = "none"
		}
		fmt.Printf("  %-5d  %-7s  %-5d  %-5d  %-10d  %s\n",
			n,
			fmt.Sprintf("%dx%d", layout.Cols, layout.Rows),
			layout.Count(level.KindWall),
			layout.Count(level.KindBlackHole),
			layout.Pickups,
			portal,
		)
		if n != expected {
			fmt.Printf("  warning: level %d is missing; runs stop before level %d\n", expected, n)
		}
		expected = n + 1
	}

	fmt.Println()
	fmt.Println("Run 'tiltmaze play' to start at level 1.")
	return nil
}
