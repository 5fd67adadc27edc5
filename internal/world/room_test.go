package world

import "testing"

// gridLocator reports rooms present on a fixed-size room grid.
type gridLocator struct {
	width, height int
}

func (l gridLocator) HasRoomAt(gx, gy int) bool {
	return gx >= 0 && gx < l.width && gy >= 0 && gy < l.height
}

func TestNewRoomPerimeter(t *testing.T) {
	room := NewRoom(0, 0, 20, 15, gridLocator{1, 1})

	for y := 0; y < room.Height; y++ {
		for x := 0; x < room.Width; x++ {
			border := x == 0 || y == 0 || x == room.Width-1 || y == room.Height-1
			want := TileFloor
			if border {
				want = TileWall
			}
			if got := room.TileAt(x, y); got != want {
				t.Fatalf("TileAt(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRoomIsSolid(t *testing.T) {
	room := NewRoom(0, 0, 10, 8, gridLocator{1, 1})

	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{5, 4, false},
		{9, 4, true},
		{-1, 4, true},
		{10, 4, true},
		{5, 8, true},
	}

	for _, tt := range tests {
		if got := room.IsSolid(tt.x, tt.y); got != tt.want {
			t.Errorf("IsSolid(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRoomIsInRoom(t *testing.T) {
	room := NewRoom(1, 0, 20, 15, gridLocator{2, 1})
	room.SetWorldPosition(20, 0)

	tests := []struct {
		x, y int
		want bool
	}{
		{20, 0, true},
		{39, 14, true},
		{19, 0, false},
		{40, 0, false},
		{25, 15, false},
		{25, -1, false},
	}

	for _, tt := range tests {
		if got := room.IsInRoom(tt.x, tt.y); got != tt.want {
			t.Errorf("IsInRoom(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	lx, ly := room.WorldToLocal(25, 3)
	if lx != 5 || ly != 3 {
		t.Errorf("WorldToLocal(25,3) = (%d,%d), want (5,3)", lx, ly)
	}
	wx, wy := room.LocalToWorld(lx, ly)
	if wx != 25 || wy != 3 {
		t.Errorf("LocalToWorld(5,3) = (%d,%d), want (25,3)", wx, wy)
	}
}

func TestConnectToNilIsNoop(t *testing.T) {
	room := NewRoom(0, 0, 20, 15, gridLocator{2, 2})
	before := room.Tiles().Clone()

	room.ConnectTo(nil, East)

	if room.IsConnected(East) {
		t.Error("nil connection should not be recorded")
	}
	if !before.Equal(room.Tiles()) {
		t.Error("nil connection should not carve tiles")
	}
}

func TestConnectToIsSymmetricAndAligned(t *testing.T) {
	locator := gridLocator{2, 1}
	a := NewRoom(0, 0, 20, 15, locator)
	b := NewRoom(1, 0, 20, 15, locator)
	a.SetWorldPosition(0, 0)
	b.SetWorldPosition(20, 0)

	a.ConnectTo(b, East)

	if a.Connection(East) != b || b.Connection(West) != a {
		t.Fatal("connection should be recorded on both rooms")
	}

	startA, okA := a.Door(East)
	startB, okB := b.Door(West)
	if !okA || !okB {
		t.Fatalf("both rooms should have doors, got %v %v", okA, okB)
	}

	_, worldA := a.LocalToWorld(0, startA)
	_, worldB := b.LocalToWorld(0, startB)
	if worldA != worldB {
		t.Errorf("doors misaligned: world rows %d and %d", worldA, worldB)
	}

	for i := 0; i < DoorWidth; i++ {
		if got := a.TileAt(a.Width-1, startA+i); got != TileTunnelEntrance {
			t.Errorf("room A door tile %d = %v, want tunnel entrance", i, got)
		}
		if got := b.TileAt(0, startB+i); got != TileTunnelEntrance {
			t.Errorf("room B door tile %d = %v, want tunnel entrance", i, got)
		}
	}
	if a.IsSolid(a.Width-1, startA) {
		t.Error("door opening should not be solid")
	}
}

func TestConnectToNorthSouth(t *testing.T) {
	locator := gridLocator{1, 2}
	a := NewRoom(0, 0, 20, 15, locator)
	b := NewRoom(0, 1, 40, 30, locator)
	a.SetWorldPosition(0, 0)
	b.SetWorldPosition(0, 15)

	a.ConnectTo(b, North)

	startA, okA := a.Door(North)
	startB, okB := b.Door(South)
	if !okA || !okB {
		t.Fatal("expected doors on both rooms")
	}
	if startA != startB {
		t.Errorf("door starts %d and %d should match on the shared span", startA, startB)
	}
	if a.TileAt(startA+1, a.Height-1) != TileTunnelEntrance {
		t.Error("room A north wall should be open")
	}
	if b.TileAt(startB+1, 0) != TileTunnelEntrance {
		t.Error("room B south wall should be open")
	}
}

func TestConnectToRefusesMissingNeighbor(t *testing.T) {
	// Grid has a single room, so nothing exists east of (0,0).
	locator := gridLocator{1, 1}
	a := NewRoom(0, 0, 20, 15, locator)
	b := NewRoom(1, 0, 20, 15, locator)
	b.SetWorldPosition(20, 0)

	a.ConnectTo(b, East)

	if _, ok := a.Door(East); ok {
		t.Error("no door should be carved toward a missing grid cell")
	}
	for y := 0; y < a.Height; y++ {
		if a.TileAt(a.Width-1, y) != TileWall {
			t.Fatalf("east wall opened at row %d", y)
		}
	}
}

func TestDoorStaysInsideRange(t *testing.T) {
	locator := gridLocator{2, 2}

	tests := []struct {
		name        string
		bw, bh      int
		bx, by      int
		sideA, side int
	}{
		{"overlapping", 80, 60, 20, 0, 15, 60},
		{"disjoint", 20, 15, 20, 40, 15, 15},
		{"offset", 40, 30, 20, 10, 15, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewRoom(0, 0, 20, 15, locator)
			b := NewRoom(1, 0, tt.bw, tt.bh, locator)
			b.SetWorldPosition(tt.bx, tt.by)
			a.ConnectTo(b, East)

			for _, c := range []struct {
				room *Room
				dir  Direction
				side int
			}{{a, East, tt.sideA}, {b, West, tt.side}} {
				start, ok := c.room.Door(c.dir)
				if !ok {
					t.Fatalf("missing %s door", c.dir)
				}
				if start < 1 || start+DoorWidth > c.side-1 {
					t.Errorf("%s door start %d outside [1,%d]", c.dir, start, c.side-1-DoorWidth)
				}
			}
		})
	}
}
