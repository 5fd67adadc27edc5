package entity

import (
	"context"
	"testing"

	"github.com/samdwyer/obsidianarcane/internal/world"
)

func TestNewPlayer(t *testing.T) {
	p := NewPlayer(world.Point{X: 48, Y: 80})

	if p.X != 48 || p.Y != 80 {
		t.Errorf("NewPlayer() position = (%v, %v), want (48, 80)", p.X, p.Y)
	}
	if p.Symbol != '@' {
		t.Errorf("NewPlayer().Symbol = %q, want '@'", p.Symbol)
	}
	if p.Speed != world.TileSize {
		t.Errorf("NewPlayer().Speed = %v, want %v", p.Speed, world.TileSize)
	}
	if tx, ty := p.Tile(); tx != 1 || ty != 2 {
		t.Errorf("Tile() = (%d, %d), want (1, 2)", tx, ty)
	}
}

func TestPlayerTarget(t *testing.T) {
	p := NewPlayer(world.Point{X: 48, Y: 48})

	tests := []struct {
		dir  world.Direction
		want world.Point
	}{
		{world.North, world.Point{X: 48, Y: 80}},
		{world.South, world.Point{X: 48, Y: 16}},
		{world.East, world.Point{X: 80, Y: 48}},
		{world.West, world.Point{X: 16, Y: 48}},
	}

	for _, tt := range tests {
		if got := p.Target(tt.dir); got != tt.want {
			t.Errorf("Target(%v) = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestPlayerMoveRespectsCollision(t *testing.T) {
	ctx := context.Background()
	graph, err := world.NewRoomGraph(ctx, 42, world.DefaultRoomGraphConfig())
	if err != nil {
		t.Fatalf("NewRoomGraph() error = %v", err)
	}

	// Room (0,0) starts at the origin, so tile (1,1) is floor and
	// everything west of it is wall.
	p := NewPlayer(world.Point{X: world.TileCenter(1), Y: world.TileCenter(1)})

	if p.Move(graph, world.West) {
		t.Error("Move(West) into the perimeter wall should fail")
	}
	if p.Facing != world.West {
		t.Errorf("Facing = %v, want West after blocked move", p.Facing)
	}
	if tx, ty := p.Tile(); tx != 1 || ty != 1 {
		t.Errorf("blocked move changed tile to (%d, %d)", tx, ty)
	}

	if !p.Move(graph, world.East) {
		t.Error("Move(East) onto floor should succeed")
	}
	if tx, _ := p.Tile(); tx != 2 {
		t.Errorf("after Move(East) tile x = %d, want 2", tx)
	}
}
