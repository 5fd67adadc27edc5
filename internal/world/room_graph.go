package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/obsidianarcane/internal/telemetry"
)

// ErrInvalidConfig is returned for room graph configurations that cannot
// produce a map.
var ErrInvalidConfig = errors.New("invalid room graph config")

// SizeWeight pairs a room size multiplier with its selection probability.
type SizeWeight struct {
	Multiplier  int
	Probability float64
}

// Backbone selects the deterministic edge set laid down before random edges.
type Backbone int

const (
	// BackboneGrid links every room to its east and north neighbors.
	BackboneGrid Backbone = iota
	// BackboneComb links row 0 eastward and every column northward,
	// a spanning tree of the room grid. Extra edges then add loops.
	BackboneComb
)

// CorridorGap is the number of empty tiles left between neighboring rooms
// for the corridors that join their doors.
const CorridorGap = 2

// String returns a human-readable backbone name.
func (b Backbone) String() string {
	switch b {
	case BackboneGrid:
		return "grid"
	case BackboneComb:
		return "comb"
	default:
		return "unknown"
	}
}

// RoomGraphConfig describes the room grid to generate.
type RoomGraphConfig struct {
	GridWidth             int // Rooms per row
	GridHeight            int // Rooms per column
	BaseWidth             int // Room width in tiles before the multiplier
	BaseHeight            int // Room height in tiles before the multiplier
	SizeWeights           []SizeWeight
	ExtraConnectionChance float64
	Backbone              Backbone
}

// DefaultRoomGraphConfig returns the 5x4 grid of 20x15 rooms.
func DefaultRoomGraphConfig() RoomGraphConfig {
	return RoomGraphConfig{
		GridWidth:  5,
		GridHeight: 4,
		BaseWidth:  20,
		BaseHeight: 15,
		SizeWeights: []SizeWeight{
			{Multiplier: 1, Probability: 0.6},
			{Multiplier: 2, Probability: 0.3},
			{Multiplier: 4, Probability: 0.1},
		},
		ExtraConnectionChance: 0.4,
		Backbone:              BackboneGrid,
	}
}

// Validate checks that the configuration can produce a map.
func (c RoomGraphConfig) Validate() error {
	if c.GridWidth < 1 || c.GridHeight < 1 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, c.GridWidth, c.GridHeight)
	}
	if c.BaseWidth < 3 || c.BaseHeight < 3 {
		return fmt.Errorf("%w: base room %dx%d is smaller than 3x3", ErrInvalidConfig, c.BaseWidth, c.BaseHeight)
	}
	if len(c.SizeWeights) == 0 {
		return fmt.Errorf("%w: no size weights", ErrInvalidConfig)
	}
	for _, w := range c.SizeWeights {
		if w.Multiplier < 1 || w.Probability < 0 {
			return fmt.Errorf("%w: size weight %+v", ErrInvalidConfig, w)
		}
	}
	if c.ExtraConnectionChance < 0 || c.ExtraConnectionChance > 1 {
		return fmt.Errorf("%w: extra connection chance %v", ErrInvalidConfig, c.ExtraConnectionChance)
	}
	return nil
}

func (c RoomGraphConfig) maxMultiplier() int {
	m := 1
	for _, w := range c.SizeWeights {
		m = max(m, w.Multiplier)
	}
	return m
}

// Edge is an undirected connection between two rooms in grid coordinates.
type Edge struct {
	From, To TilePos
}

// RoomGraph is a grid of rooms joined into a connected graph. Layout is
// fixed after generation until Regenerate is called.
type RoomGraph struct {
	cfg         RoomGraphConfig
	seed        int64
	rng         *rand.Rand
	rooms       [][]*Room // [gx][gy]
	corridors   mapset.Set[TilePos]
	worldWidth  int
	worldHeight int
}

// NewRoomGraph validates cfg and generates a room graph from seed.
func NewRoomGraph(ctx context.Context, seed int64, cfg RoomGraphConfig) (*RoomGraph, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := cfg.maxMultiplier()
	g := &RoomGraph{
		cfg:         cfg,
		seed:        seed,
		worldWidth:  cfg.GridWidth*cfg.BaseWidth*m + (cfg.GridWidth-1)*CorridorGap,
		worldHeight: cfg.GridHeight*cfg.BaseHeight*m + (cfg.GridHeight-1)*CorridorGap,
	}
	g.generate(ctx)
	return g, nil
}

// Seed returns the seed of the current layout.
func (g *RoomGraph) Seed() int64 { return g.seed }

// Config returns the configuration the graph was built with.
func (g *RoomGraph) Config() RoomGraphConfig { return g.cfg }

// Regenerate rebuilds the layout from the stored seed.
func (g *RoomGraph) Regenerate(ctx context.Context) {
	g.generate(ctx)
}

// RegenerateWithSeed stores seed and rebuilds the layout from it.
func (g *RoomGraph) RegenerateWithSeed(ctx context.Context, seed int64) {
	g.seed = seed
	g.generate(ctx)
}

func (g *RoomGraph) generate(ctx context.Context) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "room_graph.generate")
	defer span.End()

	startTime := time.Now()

	g.rng = rand.New(rand.NewSource(g.seed))
	g.placeRooms()
	g.ensureConnectivity()
	g.connectExtraRooms()
	g.carveCorridors()

	span.SetAttributes(
		attribute.Int64("room_graph.seed", g.seed),
		attribute.Int("room_graph.room_count", len(g.Rooms())),
		attribute.Int("room_graph.edge_count", g.EdgeCount()),
		attribute.String("room_graph.backbone", g.cfg.Backbone.String()),
		attribute.Int64("room_graph.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

// placeRooms sizes every room and packs them column by column.
func (g *RoomGraph) placeRooms() {
	g.rooms = make([][]*Room, g.cfg.GridWidth)

	offsetX := 0
	for gx := 0; gx < g.cfg.GridWidth; gx++ {
		g.rooms[gx] = make([]*Room, g.cfg.GridHeight)

		offsetY := 0
		columnWidth := 0
		for gy := 0; gy < g.cfg.GridHeight; gy++ {
			mult := g.pickMultiplier()
			room := NewRoom(gx, gy, g.cfg.BaseWidth*mult, g.cfg.BaseHeight*mult, g)
			room.SetWorldPosition(offsetX, offsetY)
			g.rooms[gx][gy] = room

			offsetY += room.Height + CorridorGap
			columnWidth = max(columnWidth, room.Width)
		}
		offsetX += columnWidth + CorridorGap
	}
}

// pickMultiplier samples the size distribution with one uniform draw.
func (g *RoomGraph) pickMultiplier() int {
	roll := g.rng.Float64()
	cumulative := 0.0
	for _, w := range g.cfg.SizeWeights {
		cumulative += w.Probability
		if roll < cumulative {
			return w.Multiplier
		}
	}
	// Weights summing below 1 leave the remainder to the last entry.
	return g.cfg.SizeWeights[len(g.cfg.SizeWeights)-1].Multiplier
}

// ensureConnectivity lays down the deterministic backbone so every room is
// reachable before any random edge is added.
func (g *RoomGraph) ensureConnectivity() {
	for gx := 0; gx < g.cfg.GridWidth; gx++ {
		for gy := 0; gy < g.cfg.GridHeight; gy++ {
			room := g.rooms[gx][gy]
			if gx+1 < g.cfg.GridWidth && (gy == 0 || g.cfg.Backbone == BackboneGrid) {
				room.ConnectTo(g.rooms[gx+1][gy], East)
			}
			if gy+1 < g.cfg.GridHeight {
				room.ConnectTo(g.rooms[gx][gy+1], North)
			}
		}
	}
}

// connectExtraRooms adds random east and north edges to form loops.
// Both draws are made for every room so the random stream does not depend
// on which edges already exist.
func (g *RoomGraph) connectExtraRooms() {
	for gx := 0; gx < g.cfg.GridWidth; gx++ {
		for gy := 0; gy < g.cfg.GridHeight; gy++ {
			room := g.rooms[gx][gy]
			addEast := g.rng.Float64() < g.cfg.ExtraConnectionChance
			addNorth := g.rng.Float64() < g.cfg.ExtraConnectionChance

			if addEast && !room.IsConnected(East) {
				if east := g.RoomAt(gx+1, gy); east != nil {
					room.ConnectTo(east, East)
				}
			}
			if addNorth && !room.IsConnected(North) {
				if north := g.RoomAt(gx, gy+1); north != nil {
					room.ConnectTo(north, North)
				}
			}
		}
	}
}

// carveCorridors joins the facing doors of every connected pair with tunnel
// floor laid through the gap between them. Each corridor leaves the first
// room straight out of its door and turns once, in the gutter next to the
// second room, where no other room can be.
func (g *RoomGraph) carveCorridors() {
	g.corridors = mapset.New[TilePos]()
	for _, room := range g.Rooms() {
		if east := room.Connection(East); east != nil {
			from, okFrom := room.doorExit(East)
			to, okTo := east.doorExit(West)
			if okFrom && okTo {
				g.carveLine(from, TilePos{X: to.X, Y: from.Y})
				g.carveLine(TilePos{X: to.X, Y: from.Y}, to)
			}
		}
		if north := room.Connection(North); north != nil {
			from, okFrom := room.doorExit(North)
			to, okTo := north.doorExit(South)
			if okFrom && okTo {
				g.carveLine(from, TilePos{X: from.X, Y: to.Y})
				g.carveLine(TilePos{X: from.X, Y: to.Y}, to)
			}
		}
	}
}

// carveLine marks every tile on the axis-aligned segment a-b as corridor.
func (g *RoomGraph) carveLine(a, b TilePos) {
	for x := min(a.X, b.X); x <= max(a.X, b.X); x++ {
		for y := min(a.Y, b.Y); y <= max(a.Y, b.Y); y++ {
			g.corridors.Put(TilePos{X: x, Y: y})
		}
	}
}

// IsCorridor reports whether a world tile outside every room is tunnel floor.
func (g *RoomGraph) IsCorridor(tileX, tileY int) bool {
	return g.corridors.Has(TilePos{X: tileX, Y: tileY}) && g.RoomContaining(tileX, tileY) == nil
}

// HasRoomAt reports whether the room grid holds a room at (gx, gy).
func (g *RoomGraph) HasRoomAt(gx, gy int) bool {
	return g.RoomAt(gx, gy) != nil
}

// RoomAt returns the room at grid position (gx, gy), or nil.
func (g *RoomGraph) RoomAt(gx, gy int) *Room {
	if gx < 0 || gx >= len(g.rooms) || gy < 0 || gy >= len(g.rooms[gx]) {
		return nil
	}
	return g.rooms[gx][gy]
}

// Rooms returns every room. Callers must not rely on the order.
func (g *RoomGraph) Rooms() []*Room {
	out := make([]*Room, 0, g.cfg.GridWidth*g.cfg.GridHeight)
	for _, column := range g.rooms {
		for _, room := range column {
			if room != nil {
				out = append(out, room)
			}
		}
	}
	return out
}

// RoomContaining returns the room covering a world tile, or nil.
func (g *RoomGraph) RoomContaining(tileX, tileY int) *Room {
	for _, column := range g.rooms {
		for _, room := range column {
			if room != nil && room.IsInRoom(tileX, tileY) {
				return room
			}
		}
	}
	return nil
}

// IsCollision reports whether a world position is solid. Positions outside
// every room are solid unless a corridor runs through them.
func (g *RoomGraph) IsCollision(worldX, worldY float64) bool {
	tx, ty := WorldToTile(worldX), WorldToTile(worldY)
	room := g.RoomContaining(tx, ty)
	if room == nil {
		return !g.corridors.Has(TilePos{X: tx, Y: ty})
	}
	return room.IsSolid(room.WorldToLocal(tx, ty))
}

// FindValidSpawnPosition picks a walkable tile centre in the room at (0,0).
func (g *RoomGraph) FindValidSpawnPosition() Point {
	if room := g.RoomAt(0, 0); room != nil {
		for i := 0; i < 100; i++ {
			lx := g.rng.Intn(room.Width)
			ly := g.rng.Intn(room.Height)
			if !room.IsSolid(lx, ly) {
				wx, wy := room.LocalToWorld(lx, ly)
				return Point{X: TileCenter(wx), Y: TileCenter(wy)}
			}
		}
	}

	// Fallback to the first interior tile of the origin room
	return Point{X: TileCenter(1), Y: TileCenter(1)}
}

// TileAt returns the world tile. Outside every room it is tunnel floor on
// a corridor and wall elsewhere.
func (g *RoomGraph) TileAt(tileX, tileY int) Tile {
	room := g.RoomContaining(tileX, tileY)
	if room == nil {
		if g.corridors.Has(TilePos{X: tileX, Y: tileY}) {
			return TileTunnelFloor
		}
		return TileWall
	}
	return room.TileAt(room.WorldToLocal(tileX, tileY))
}

// Bounds returns the maximum world extent in tiles. Actual rooms may not
// fill it.
func (g *RoomGraph) Bounds() (width, height int) {
	return g.worldWidth, g.worldHeight
}

// Edges returns every connection once, from the west or south room.
func (g *RoomGraph) Edges() []Edge {
	var edges []Edge
	for _, room := range g.Rooms() {
		from := TilePos{X: room.GridX, Y: room.GridY}
		for _, dir := range [2]Direction{East, North} {
			if other := room.Connection(dir); other != nil {
				edges = append(edges, Edge{From: from, To: TilePos{X: other.GridX, Y: other.GridY}})
			}
		}
	}
	return edges
}

// EdgeCount returns the number of connections in the graph.
func (g *RoomGraph) EdgeCount() int {
	return len(g.Edges())
}

// IsConnected reports whether every room is reachable from every other
// through connections.
func (g *RoomGraph) IsConnected() bool {
	rooms := g.Rooms()
	if len(rooms) == 0 {
		return true
	}
	return reachableRooms(rooms[0]).Size() == len(rooms)
}

// reachableRooms walks connections breadth first from start.
func reachableRooms(start *Room) mapset.Set[*Room] {
	visited := mapset.New[*Room]()
	queue := []*Room{start}
	visited.Put(start)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dir := range Directions {
			next := current.Connection(dir)
			if next != nil && !visited.Has(next) {
				visited.Put(next)
				queue = append(queue, next)
			}
		}
	}
	return visited
}
