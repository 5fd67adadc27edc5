// Command mapgen generates a map without the terminal UI and prints it with
// a few statistics. Useful for checking what a seed looks like.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/obsidianarcane/internal/game"
	"github.com/samdwyer/obsidianarcane/internal/gamedata"
	"github.com/samdwyer/obsidianarcane/internal/world"
)

func main() {
	// Same OBSIDIAN_* settings as the game; flags override them
	_ = godotenv.Load()

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	seed := flag.Int64("seed", cfg.Seed, "map seed")
	strategy := flag.String("map", string(cfg.Strategy), "map strategy: rooms, cave or village")
	keepLargest := flag.Bool("keep-largest", false, "cave: fill every floor region but the largest")
	statsOnly := flag.Bool("stats", false, "print statistics only")
	flag.Parse()

	s, err := world.ParseStrategy(*strategy)
	if err != nil {
		log.Fatal(err)
	}
	cfg.Cave.KeepLargestRegion = *keepLargest

	m, err := game.NewMap(context.Background(), s, *seed, cfg, gamedata.MustLoadBuildingRegistry())
	if err != nil {
		log.Fatalf("Failed to generate map: %v", err)
	}

	if !*statsOnly {
		fmt.Fprint(os.Stdout, render(m))
	}
	printStats(m, s)
}

// render draws the map as text, highest row first.
func render(m world.Map) string {
	w, h := m.Bounds()
	grid := world.NewGrid(w, h, world.TileWall)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			grid.Set(x, y, m.TileAt(x, y))
		}
	}
	return grid.String()
}

func printStats(m world.Map, s world.Strategy) {
	w, h := m.Bounds()
	spawn := m.FindValidSpawnPosition()
	fmt.Printf("map=%s seed=%d size=%dx%d spawn=(%.1f, %.1f)\n", s, m.Seed(), w, h, spawn.X, spawn.Y)

	switch m := m.(type) {
	case *world.RoomGraph:
		fmt.Printf("rooms=%d edges=%d connected=%v\n", len(m.Rooms()), m.EdgeCount(), m.IsConnected())
	case *world.CaveMap:
		regions := world.FloorRegions(m.Grid())
		largest := 0
		if len(regions) > 0 {
			largest = len(regions[0])
		}
		fmt.Printf("walls=%.1f%% regions=%d largest=%d\n", world.WallPercentage(m.Grid())*100, len(regions), largest)
	}
}
