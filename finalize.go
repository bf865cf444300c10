package dungeongraph

import (
	"log/slog"
)

// finalize runs the cleanup pass. Order is important: blockers need the
// final connectivity & doorways must see doorways placed before them.
func (g *Generator) finalize() {
	if g.cfg.Audit {
		g.audit()
	}
	if !g.cfg.KeepColliders {
		g.stripColliders()
	}
	g.blockPassages()
	g.spawnDoors()

	g.log.Debug(
		"dungeon finalized",
		slog.Int("tiles", len(g.tiles)),
		slog.Int("blockers", g.stats.Blockers),
		slog.Int("doorways", g.stats.Doorways),
	)
}

// audit checks every tile against every other for overlaps. A tile may
// graze its origin / children (they share a doorway) but nothing else.
// Purely informational, nothing is changed.
func (g *Generator) audit() {
	children := Children(g.tiles)

	for _, t := range g.tiles {
		for _, id := range g.oracle.Overlapping(t.Bounds, CategoryTile) {
			if id <= t.ID {
				continue // self, or a pair we've already looked at
			}
			if children[t.ID].Has(id) || children[id].Has(t.ID) {
				continue
			}

			g.stats.AuditWarnings++
			g.log.Warn(
				"tiles overlap",
				slog.Int("tile", t.ID),
				slog.String("name", t.Name),
				slog.Int("other", id),
				slog.String("other_name", g.tiles[id].Name),
			)
		}
	}
}

// stripColliders removes every tile volume from the oracle
func (g *Generator) stripColliders() {
	for _, t := range g.tiles {
		g.dropCollider(t)
	}
}

// blockPassages plugs every connector nothing attached to with a wall
func (g *Generator) blockPassages() {
	for _, t := range g.tiles {
		for _, c := range t.Connectors {
			if c.Connected {
				continue
			}
			tmpl := g.cat.Blocked[g.rng.Intn(len(g.cat.Blocked))]
			g.addProp(PropBlocker, tmpl, c)
			g.stats.Blockers++
		}
	}
}

// spawnDoors rolls for a doorway on every connected connector. Both sides of
// a join share a position so the second side sees the first side's door.
func (g *Generator) spawnDoors() {
	if g.cfg.DoorwayPercent <= 0 {
		return
	}

	for _, t := range g.tiles {
		for _, c := range t.Connectors {
			if !c.Connected {
				continue
			}

			roll := g.rng.Intn(100) + 1
			if roll > g.cfg.DoorwayPercent {
				continue
			}

			vol := doorVolume(c)
			if len(g.oracle.Overlapping(vol, CategoryDoor)) > 0 {
				continue
			}

			tmpl := g.cat.Doorways[g.rng.Intn(len(g.cat.Doorways))]
			p := g.addProp(PropDoorway, tmpl, c)
			g.oracle.Add(p.ID, CategoryDoor, vol)
			g.stats.Doorways++
		}
	}
}

// addProp spawns a prop on connector c
func (g *Generator) addProp(kind PropKind, tmpl *PropTemplate, c *Connector) *Prop {
	p := &Prop{
		ID:        len(g.props),
		Kind:      kind,
		Name:      tmpl.Name,
		Tile:      c.Tile,
		Connector: c.Index,
		Position:  c.Position,
		Yaw:       c.Yaw,
	}
	c.Prop = p.ID

	g.props = append(g.props, p)
	g.obs.PropPlaced(p)
	return p
}
