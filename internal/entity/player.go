// Package entity provides the player character.
package entity

import "github.com/samdwyer/obsidianarcane/internal/world"

// DefaultSpeed is the distance in world units covered by one step.
const DefaultSpeed = world.TileSize

// Player is the controllable character. Position is in world units so it
// can be tested directly against Map.IsCollision.
type Player struct {
	X, Y   float64
	Speed  float64
	Symbol rune // Display symbol ('@')
	Facing world.Direction
}

// NewPlayer creates a player at the given world position.
func NewPlayer(pos world.Point) *Player {
	return &Player{
		X:      pos.X,
		Y:      pos.Y,
		Speed:  DefaultSpeed,
		Symbol: '@',
		Facing: world.South,
	}
}

// Position returns the current world position.
func (p *Player) Position() world.Point {
	return world.Point{X: p.X, Y: p.Y}
}

// SetPosition moves the player to pos without a collision check.
func (p *Player) SetPosition(pos world.Point) {
	p.X = pos.X
	p.Y = pos.Y
}

// Tile returns the tile the player stands on.
func (p *Player) Tile() (tileX, tileY int) {
	return world.WorldToTile(p.X), world.WorldToTile(p.Y)
}

// Target returns where a step in dir would land.
func (p *Player) Target(dir world.Direction) world.Point {
	dx, dy := dir.Delta()
	return world.Point{
		X: p.X + float64(dx)*p.Speed,
		Y: p.Y + float64(dy)*p.Speed,
	}
}

// Move steps the player one unit in dir unless the target collides on m.
// It reports whether the player moved. Facing changes either way.
func (p *Player) Move(m world.Map, dir world.Direction) bool {
	p.Facing = dir
	target := p.Target(dir)
	if m.IsCollision(target.X, target.Y) {
		return false
	}
	p.SetPosition(target)
	return true
}
