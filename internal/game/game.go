package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/obsidianarcane/internal/entity"
	"github.com/samdwyer/obsidianarcane/internal/gamedata"
	"github.com/samdwyer/obsidianarcane/internal/saves"
	"github.com/samdwyer/obsidianarcane/internal/telemetry"
	"github.com/samdwyer/obsidianarcane/internal/ui"
	"github.com/samdwyer/obsidianarcane/internal/village"
	"github.com/samdwyer/obsidianarcane/internal/world"
)

// tickInterval is how often the loop wakes to advance construction and play time.
const tickInterval = 250 * time.Millisecond

const helpText = "arrows move  r regen  n new seed  m map  b build  s save  l load  q quit"

// strategyCycle is the order the m key steps through.
var strategyCycle = []world.Strategy{world.StrategyRooms, world.StrategyCave, world.StrategyVillage}

// Game holds the entire game state.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer

	cfg       Config
	buildings *gamedata.BuildingRegistry
	store     saves.Store
	saves     *saves.Manager
	rng       *rand.Rand

	strategy world.Strategy
	world    world.Map
	player   *entity.Player
	state    State
	running  bool
	message  string
	playTime float64
	lastTick time.Time
}

// New opens the save store, builds the first map and initializes the screen.
func New(ctx context.Context, cfg Config) (*Game, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	g, err := newSession(ctx, cfg, store)
	if err != nil {
		store.Close()
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		store.Close()
		return nil, err
	}
	g.screen = screen
	g.renderer = ui.NewRenderer(screen)
	return g, nil
}

// OpenStore returns the Postgres store when a database URL is configured,
// otherwise the JSON file store.
func OpenStore(ctx context.Context, cfg Config) (saves.Store, error) {
	if cfg.DatabaseURL != "" {
		store, err := saves.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	store, err := saves.NewJSONStore(cfg.SavePath)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// newSession builds everything except the screen.
func newSession(ctx context.Context, cfg Config, store saves.Store) (*Game, error) {
	buildings, err := gamedata.LoadBuildingRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load buildings: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		cfg:       cfg,
		buildings: buildings,
		store:     store,
		saves:     saves.NewManager(ctx, store),
		rng:       rand.New(rand.NewSource(seed)),
		state:     StateExplore,
		running:   true,
		message:   helpText,
		lastTick:  time.Now(),
	}
	if err := g.switchMap(ctx, cfg.Strategy, seed); err != nil {
		return nil, err
	}
	return g, nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	_, initSpan := tracer.Start(ctx, "game.init")
	width, height := g.world.Bounds()
	initSpan.SetAttributes(
		attribute.String("map.strategy", string(g.strategy)),
		attribute.Int64("map.seed", g.world.Seed()),
		attribute.Int("map.width", width),
		attribute.Int("map.height", height),
		attribute.Float64("player.start_x", g.player.X),
		attribute.Float64("player.start_y", g.player.Y),
	)
	initSpan.End()

	tickCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		g.tickLoop(tickCtx)
	}()

	// Main game loop
	for g.running {
		g.renderer.Render(g.world, g.player, g.hud())

		// Handle input (blocking)
		g.handleInput(ctx)
	}

	cancel()
	<-done
	g.Close()
	return nil
}

// tickLoop wakes the blocking event poll at a fixed rate.
func (g *Game) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.screen.Interrupt()
		}
	}
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventInterrupt:
		g.tick(time.Now())
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// tick advances play time and building construction to now.
func (g *Game) tick(now time.Time) {
	dt := now.Sub(g.lastTick).Seconds()
	g.lastTick = now
	if dt <= 0 {
		return
	}
	g.playTime += dt
	if v, ok := g.world.(*village.Map); ok {
		v.Update(dt)
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	if g.state == StateSave || g.state == StateLoad {
		g.handleSlotKey(ctx, ev)
		return
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.tryMove(world.North)
	case tcell.KeyDown:
		g.tryMove(world.South)
	case tcell.KeyLeft:
		g.tryMove(world.West)
	case tcell.KeyRight:
		g.tryMove(world.East)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'r':
			g.regenerate(ctx)
		case 'n':
			g.newSeed(ctx)
		case 'm':
			g.cycleMap(ctx)
		case 'b':
			g.buildHouse()
		case 's':
			g.state = StateSave
			g.message = "Save to slot (1-4), Esc to cancel"
		case 'l':
			g.state = StateLoad
			g.message = "Load from slot (1-4), Esc to cancel"
		}
	}
}

// handleSlotKey picks a slot while saving or loading.
func (g *Game) handleSlotKey(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape {
		g.state = StateExplore
		g.message = helpText
		return
	}
	if ev.Key() != tcell.KeyRune || ev.Rune() < '1' || ev.Rune() > '9' {
		return
	}

	slot := int(ev.Rune() - '0')
	var err error
	if g.state == StateSave {
		err = g.saveSlot(ctx, slot)
	} else {
		err = g.loadSlot(ctx, slot)
	}
	g.state = StateExplore
	if err != nil {
		g.message = err.Error()
	}
}

// tryMove attempts to move the player one step in dir.
func (g *Game) tryMove(dir world.Direction) {
	g.player.Move(g.world, dir)
}

// switchMap replaces the current map and respawns the player.
func (g *Game) switchMap(ctx context.Context, strategy world.Strategy, seed int64) error {
	m, err := NewMap(ctx, strategy, seed, g.cfg, g.buildings)
	if err != nil {
		return err
	}
	g.strategy = strategy
	g.world = m
	g.player = entity.NewPlayer(m.FindValidSpawnPosition())
	return nil
}

// regenerate rebuilds the current map from its own seed.
func (g *Game) regenerate(ctx context.Context) {
	g.world.Regenerate(ctx)
	g.player.SetPosition(g.world.FindValidSpawnPosition())
	g.message = fmt.Sprintf("Regenerated seed %d", g.world.Seed())
}

// newSeed rebuilds the current map from a fresh seed.
func (g *Game) newSeed(ctx context.Context) {
	g.world.RegenerateWithSeed(ctx, g.rng.Int63())
	g.player.SetPosition(g.world.FindValidSpawnPosition())
	g.message = fmt.Sprintf("New seed %d", g.world.Seed())
}

// cycleMap switches to the next map strategy, keeping the seed.
func (g *Game) cycleMap(ctx context.Context) {
	next := strategyCycle[0]
	for i, s := range strategyCycle {
		if s == g.strategy {
			next = strategyCycle[(i+1)%len(strategyCycle)]
			break
		}
	}
	if err := g.switchMap(ctx, next, g.world.Seed()); err != nil {
		g.message = err.Error()
		return
	}
	g.message = fmt.Sprintf("Switched to %s map", next)
}

// buildHouse places a house just east of the player on the village map.
func (g *Game) buildHouse() {
	v, ok := g.world.(*village.Map)
	if !ok {
		g.message = "Buildings can only be placed in the village"
		return
	}
	tx, ty := g.player.Tile()
	b, err := v.PlaceBuilding(gamedata.BuildingHouse, tx+1, ty)
	if err != nil {
		g.message = "Cannot build here: " + err.Error()
		return
	}
	g.message = fmt.Sprintf("Started %s (%d gold)", b.Def.Name, b.Def.Cost)
}

// saveSlot stores the current map and player in slot.
func (g *Game) saveSlot(ctx context.Context, slot int) error {
	state := saves.NewSaveState(g.strategy, g.world.Seed(), g.player.Position())
	state.VillageName = g.cfg.VillageName
	state.PlayTime = g.playTime
	if err := g.saves.Save(ctx, slot, state); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	g.message = fmt.Sprintf("Saved to slot %d", slot)
	return nil
}

// loadSlot rebuilds the map saved in slot and restores the player.
func (g *Game) loadSlot(ctx context.Context, slot int) error {
	state, err := g.saves.Load(ctx, slot)
	if err != nil {
		if errors.Is(err, saves.ErrSlotEmpty) {
			return fmt.Errorf("slot %d is empty", slot)
		}
		return fmt.Errorf("load failed: %w", err)
	}
	if err := g.switchMap(ctx, state.Strategy, state.Seed); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	pos := state.PlayerPosition()
	if !g.world.IsCollision(pos.X, pos.Y) {
		g.player.SetPosition(pos)
	}
	g.playTime = state.PlayTime
	if state.VillageName != "" {
		g.cfg.VillageName = state.VillageName
	}
	g.message = fmt.Sprintf("Loaded slot %d (%s)", slot, state.Name)
	return nil
}

// hud builds the status and message lines.
func (g *Game) hud() ui.HUD {
	tx, ty := g.player.Tile()
	secs := int(g.playTime)
	return ui.HUD{
		Status: fmt.Sprintf("%s | %s seed %d | tile (%d,%d) | %02d:%02d | %s",
			g.cfg.VillageName, g.strategy, g.world.Seed(), tx, ty, secs/60, secs%60, g.state),
		Message: g.message,
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
	if g.store != nil {
		g.store.Close()
		g.store = nil
	}
}
