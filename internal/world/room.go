package world

import "log"

// DoorWidth is the width in tiles of the opening cut for a connection.
const DoorWidth = 3

// RoomLocator answers whether a room exists at a room-grid position.
// Rooms use it to avoid cutting doors toward empty grid cells.
type RoomLocator interface {
	HasRoomAt(gridX, gridY int) bool
}

// Room is one cell of the room grid. It owns a local tile layout, a world
// offset in tiles and up to four connections to neighboring rooms.
type Room struct {
	GridX, GridY   int // Position in the room grid
	Width, Height  int // Size in tiles
	WorldX, WorldY int // Lower-left corner in world tiles

	tiles       *Grid
	locator     RoomLocator
	connections [4]*Room
	doors       [4]int
	hasDoor     [4]bool
}

// NewRoom creates a floor-filled room with a wall perimeter.
func NewRoom(gridX, gridY, width, height int, locator RoomLocator) *Room {
	tiles := NewGrid(width, height, TileFloor)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if tiles.IsBorder(x, y) {
				tiles.Tiles[y][x] = TileWall
			}
		}
	}

	return &Room{
		GridX:   gridX,
		GridY:   gridY,
		Width:   width,
		Height:  height,
		tiles:   tiles,
		locator: locator,
	}
}

// SetWorldPosition places the room's lower-left corner in world tiles.
func (r *Room) SetWorldPosition(worldX, worldY int) {
	r.WorldX = worldX
	r.WorldY = worldY
}

// ConnectTo links this room to other in direction dir and cuts matching
// door openings in both rooms. A nil room is logged and ignored.
func (r *Room) ConnectTo(other *Room, dir Direction) {
	if other == nil {
		log.Printf("Warning: room (%d,%d) cannot connect %s to a missing room", r.GridX, r.GridY, dir)
		return
	}

	r.connections[dir] = other
	other.connections[dir.Opposite()] = r

	r.carveDoor(dir, other)
	other.carveDoor(dir.Opposite(), r)
}

// carveDoor opens DoorWidth tiles of the perimeter facing dir, aligned with
// the span this room shares with other.
func (r *Room) carveDoor(dir Direction, other *Room) {
	dx, dy := dir.Delta()
	if r.locator == nil || !r.locator.HasRoomAt(r.GridX+dx, r.GridY+dy) {
		return
	}

	var side, ownStart, otherStart, otherLen int
	if dir == North || dir == South {
		side, ownStart, otherStart, otherLen = r.Width, r.WorldX, other.WorldX, other.Width
	} else {
		side, ownStart, otherStart, otherLen = r.Height, r.WorldY, other.WorldY, other.Height
	}
	if side < DoorWidth {
		return
	}

	start := (side - DoorWidth) / 2
	lo := max(ownStart, otherStart)
	hi := min(ownStart+side, otherStart+otherLen)
	if hi-lo >= DoorWidth {
		start = (lo+hi)/2 - DoorWidth/2 - ownStart
	}

	if side >= DoorWidth+2 {
		start = clampInt(start, 1, side-1-DoorWidth)
	} else {
		start = clampInt(start, 0, side-DoorWidth)
	}

	for i := 0; i < DoorWidth; i++ {
		switch dir {
		case North:
			r.tiles.Set(start+i, r.Height-1, TileTunnelEntrance)
		case South:
			r.tiles.Set(start+i, 0, TileTunnelEntrance)
		case East:
			r.tiles.Set(r.Width-1, start+i, TileTunnelEntrance)
		case West:
			r.tiles.Set(0, start+i, TileTunnelEntrance)
		}
	}
	r.doors[dir] = start
	r.hasDoor[dir] = true
}

// doorExit returns the world tile just outside the middle of the door
// facing dir.
func (r *Room) doorExit(dir Direction) (TilePos, bool) {
	if !r.hasDoor[dir] {
		return TilePos{}, false
	}
	mid := r.doors[dir] + DoorWidth/2
	switch dir {
	case North:
		return TilePos{X: r.WorldX + mid, Y: r.WorldY + r.Height}, true
	case South:
		return TilePos{X: r.WorldX + mid, Y: r.WorldY - 1}, true
	case East:
		return TilePos{X: r.WorldX + r.Width, Y: r.WorldY + mid}, true
	default:
		return TilePos{X: r.WorldX - 1, Y: r.WorldY + mid}, true
	}
}

// Connection returns the room linked in dir, or nil.
func (r *Room) Connection(dir Direction) *Room {
	return r.connections[dir]
}

// IsConnected reports whether a connection exists in dir.
func (r *Room) IsConnected(dir Direction) bool {
	return r.connections[dir] != nil
}

// Connections returns the linked rooms keyed by direction.
func (r *Room) Connections() map[Direction]*Room {
	out := make(map[Direction]*Room, 4)
	for _, dir := range Directions {
		if r.connections[dir] != nil {
			out[dir] = r.connections[dir]
		}
	}
	return out
}

// Door returns the local start offset of the opening on side dir.
func (r *Room) Door(dir Direction) (start int, ok bool) {
	return r.doors[dir], r.hasDoor[dir]
}

// TileAt returns the local tile, or a wall outside the room.
func (r *Room) TileAt(localX, localY int) Tile {
	return r.tiles.At(localX, localY)
}

// Tiles returns the room's local grid.
func (r *Room) Tiles() *Grid {
	return r.tiles
}

// IsSolid reports whether a local position blocks movement.
// Positions outside the room are solid.
func (r *Room) IsSolid(localX, localY int) bool {
	return r.tiles.At(localX, localY).IsSolid()
}

// IsInRoom reports whether a world tile lies inside the room rectangle.
func (r *Room) IsInRoom(worldX, worldY int) bool {
	return worldX >= r.WorldX && worldX < r.WorldX+r.Width &&
		worldY >= r.WorldY && worldY < r.WorldY+r.Height
}

// WorldToLocal converts world tiles to room-local tiles.
func (r *Room) WorldToLocal(worldX, worldY int) (int, int) {
	return worldX - r.WorldX, worldY - r.WorldY
}

// LocalToWorld converts room-local tiles to world tiles.
func (r *Room) LocalToWorld(localX, localY int) (int, int) {
	return localX + r.WorldX, localY + r.WorldY
}

// Center returns the centre of the room in world tiles.
func (r *Room) Center() (int, int) {
	return r.WorldX + r.Width/2, r.WorldY + r.Height/2
}

// Overlaps returns true if the two rooms' world rectangles intersect.
func (r *Room) Overlaps(other *Room) bool {
	return r.WorldX < other.WorldX+other.Width &&
		r.WorldX+r.Width > other.WorldX &&
		r.WorldY < other.WorldY+other.Height &&
		r.WorldY+r.Height > other.WorldY
}
