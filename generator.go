package dungeongraph

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
)

// Generator builds a dungeon one step at a time.
//
// Each call to Step does one discrete unit of work (usually a single tile
// placement attempt) so a host can pace generation however it likes; Run
// does this with Config.Delay between steps, Generate does it all at once.
// A Generator is not safe for concurrent use.
type Generator struct {
	cat    *Catalog
	cfg    *Config
	oracle Oracle
	obs    Observer
	log    *slog.Logger

	rng  *rand.Rand
	seed int64

	state State
	tiles []*Tile
	props []*Prop
	stats *Stats

	// main path
	frontier *Tile
	attempts int

	// branches
	available      []*Connector
	branch         int
	branchFrontier *Tile
	branchLeft     int

	abandoned bool
}

// New validates the configuration & catalog and places the start tile.
// If `o` is nil a SpatialIndex is used.
// Nothing else happens until Step (or Run) is called.
func New(cat *Catalog, cfg *Config, o Oracle) (*Generator, error) {
	if cat == nil {
		return nil, errors.Wrap(ErrInvalidCatalog, "nil catalog")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	err = cat.Validate(cfg.DoorwayPercent)
	if err != nil {
		return nil, err
	}

	if o == nil {
		o = NewSpatialIndex(cfg.CellSize)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Generator{
		cat:    cat,
		cfg:    cfg,
		oracle: o,
		obs:    NopObserver{},
		log:    slog.Default().With(slog.String("component", "dungeongraph")),
		rng:    rand.New(rand.NewSource(seed)),
		seed:   seed,
		state:  Inactive,
		tiles:  []*Tile{},
		props:  []*Prop{},
		stats:  &Stats{},
	}

	g.placeStart()

	return g, nil
}

// Generate builds a complete dungeon synchronously, ignoring Config.Delay.
func Generate(cat *Catalog, cfg *Config) (*Dungeon, error) {
	g, err := New(cat, cfg, nil)
	if err != nil {
		return nil, err
	}
	for g.Step() {
	}
	return g.Dungeon(), nil
}

// SetObserver sets hooks called during generation. nil resets to a no-op.
func (g *Generator) SetObserver(o Observer) {
	if o == nil {
		o = NopObserver{}
	}
	g.obs = o
}

// SetLogger replaces the default slog logger.
func (g *Generator) SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	g.log = l
}

// State returns the current phase of generation
func (g *Generator) State() State {
	return g.state
}

// Seed returns the seed the rng was created with
func (g *Generator) Seed() int64 {
	return g.seed
}

// Tiles returns all tiles committed so far, indexed by Tile.ID
func (g *Generator) Tiles() []*Tile {
	return g.tiles
}

// Dungeon returns the result so far. Only once State() is Completed are
// all connectors resolved & props spawned.
func (g *Generator) Dungeon() *Dungeon {
	stats := *g.stats
	return &Dungeon{
		Tiles: append([]*Tile{}, g.tiles...),
		Props: append([]*Prop{}, g.props...),
		Seed:  g.seed,
		Stats: &stats,
	}
}

// Run drives Step until generation completes, waiting Config.Delay between
// steps. If ctx is cancelled we stop at the next step boundary & everything
// built so far is thrown away.
func (g *Generator) Run(ctx context.Context) (*Dungeon, error) {
	for {
		if err := ctx.Err(); err != nil {
			g.Abandon()
			return nil, errors.Wrap(err, "generation abandoned")
		}

		if !g.Step() {
			if g.abandoned {
				return nil, errors.New("generation abandoned")
			}
			return g.Dungeon(), nil
		}

		if g.cfg.Delay <= 0 {
			continue
		}

		timer := time.NewTimer(g.cfg.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			g.Abandon()
			return nil, errors.Wrap(ctx.Err(), "generation abandoned")
		case <-timer.C:
		}
	}
}

// Abandon discards every tile & prop built so far. The generator can't be
// resumed; Step returns false from here on.
func (g *Generator) Abandon() {
	if g.abandoned {
		return
	}
	g.abandoned = true

	for _, t := range g.tiles {
		g.dropCollider(t)
	}
	for _, p := range g.props {
		if p.Kind == PropDoorway {
			g.oracle.Remove(p.ID, CategoryDoor)
		}
	}

	g.tiles = []*Tile{}
	g.props = []*Prop{}
	g.available = nil
	g.frontier = nil
	g.branchFrontier = nil

	g.log.Info("generation abandoned", slog.String("state", g.state.String()))
}

// Step performs one unit of work & returns true if there is more to do.
func (g *Generator) Step() bool {
	if g.abandoned {
		return false
	}

	switch g.state {
	case Inactive:
		g.setState(GeneratingMain)
		g.obs.TileCommitted(g.tiles[0])
		return true
	case GeneratingMain:
		g.stepMain()
		return true
	case GeneratingBranches:
		g.stepBranch()
		return true
	case Cleanup:
		g.finalize()
		g.setState(Completed)
	}

	return false
}

// setState advances the generator to `to`. States never go backwards.
func (g *Generator) setState(to State) {
	from := g.state
	if to <= from {
		return
	}
	g.state = to
	g.log.Debug("state changed", slog.String("from", from.String()), slog.String("to", to.String()))
	g.obs.StateChanged(from, to)
}

// placeStart creates the root of the main path at the world origin with a
// random yaw (in 90 degree steps).
func (g *Generator) placeStart() {
	tmpl := g.cat.Start[g.rng.Intn(len(g.cat.Start))]
	yaw := float64(g.rng.Intn(4)) * 90
	pos := model3d.Coord3D{}

	t := g.commit(tmpl, RoleStart, 0, pos, yaw, worldBounds(tmpl.Bounds, pos, yaw), NoTile)
	g.ensureCollider(t)

	g.frontier = t
	g.stats.MainLength = 1
}

// stepMain extends the main path by (at most) one tile. On failure the
// frontier tile is thrown away & we retry from its origin.
func (g *Generator) stepMain() {
	wantExit := g.stats.MainLength == g.cfg.MainLength-1

	t := g.attemptToPlaceTile(g.frontier, wantExit, 0)
	if t != nil {
		g.frontier = t
		g.attempts = 0
		g.stats.MainLength++
		if g.stats.MainLength >= g.cfg.MainLength {
			g.beginBranches()
		}
		return
	}

	g.attempts++
	g.stats.Backtracks++

	// a success resets attempts, so total failures are capped as well
	if g.attempts >= g.cfg.MaxBacktrack || g.stats.Backtracks >= g.cfg.MaxBacktrack*g.cfg.MainLength {
		g.log.Warn(
			"main path abandoned",
			slog.Int("attempts", g.attempts),
			slog.Int("backtracks", g.stats.Backtracks),
			slog.Int("length", g.stats.MainLength),
			slog.Int("wanted", g.cfg.MainLength),
		)
		g.stats.MainAborted = true
		g.beginBranches()
		return
	}

	// nb. the root has nowhere to retreat to, so we keep retrying from it
	// until the budget runs out
	if g.frontier.Origin == NoTile {
		return
	}
	dead := g.frontier
	g.frontier = g.tiles[dead.Origin]
	g.rollback(dead)
	g.stats.MainLength--
}

// beginBranches gathers free connectors from the main path into the pool
// branches are rooted from.
func (g *Generator) beginBranches() {
	g.available = []*Connector{}
	for _, t := range g.tiles {
		g.available = append(g.available, t.FreeConnectors()...)
	}

	g.setState(GeneratingBranches)

	if g.cfg.Branches == 0 || g.cfg.BranchLength == 0 {
		g.setState(Cleanup)
	}
}

// stepBranch places at most one branch tile, starting a new branch first
// if there isn't one in progress.
func (g *Generator) stepBranch() {
	if g.branchFrontier == nil {
		if g.branch >= g.cfg.Branches {
			g.setState(Cleanup)
			return
		}

		root := g.takeConnector()
		if root == nil {
			g.log.Debug("out of connectors for branches", slog.Int("branches", g.branch))
			g.setState(Cleanup)
			return
		}

		g.branch++
		g.branchFrontier = g.tiles[root.Tile]
		g.branchLeft = g.cfg.BranchLength
	}

	t := g.attemptToPlaceTile(g.branchFrontier, false, g.branch)
	if t == nil {
		// no backtracking on branches, whatever is left is forfeit
		g.branchFrontier = nil
		return
	}

	if g.branchLeft == g.cfg.BranchLength {
		g.stats.Branches++
	}
	g.stats.BranchTiles++
	g.available = append(g.available, t.FreeConnectors()...)

	g.branchFrontier = t
	g.branchLeft--
	if g.branchLeft <= 0 {
		g.branchFrontier = nil
	}
}

// takeConnector removes a random still-free connector from the pool.
// Connectors that got used since they were pooled are dropped.
func (g *Generator) takeConnector() *Connector {
	for len(g.available) > 0 {
		i := g.rng.Intn(len(g.available))
		c := g.available[i]
		essentials.UnorderedDelete(&g.available, i)
		if !c.Connected {
			return c
		}
	}
	return nil
}
