package main

import (
	"fmt"
	"os"

	"github.com/boardwalklabs/tycoon/internal/game/board"
	"github.com/boardwalklabs/tycoon/internal/game/models"
)

func main() {
	var (
		catalog *board.Catalog
		err     error
	)
	if len(os.Args) < 2 {
		fmt.Println("Checking embedded default board")
		catalog, err = board.Default()
	} else {
		fmt.Printf("Checking board file: %s\n", os.Args[1])
		catalog, err = board.LoadFile(os.Args[1])
	}
	if err != nil {
		fmt.Printf("Board is invalid: %v\n", err)
		os.Exit(1)
	}

	var streets, railroads, utilities int
	for _, pos := range catalog.Positions() {
		prop, _ := catalog.At(pos)
		switch prop.Type {
		case models.PropertyTypeStreet:
			streets++
		case models.PropertyTypeRailroad:
			railroads++
		case models.PropertyTypeUtility:
			utilities++
		}
	}

	fmt.Printf("Loaded %d ownable properties: %d streets, %d railroads, %d utilities\n",
		catalog.Len(), streets, railroads, utilities)

	fmt.Println("\nColor groups:")
	for _, group := range catalog.StreetGroups() {
		positions := catalog.StreetsInGroup(group)
		fmt.Printf("  %-12s %d streets at %v\n", group, len(positions), positions)
	}

	fmt.Println("\nBoard is valid!")
}
