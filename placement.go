package dungeongraph

import (
	"fmt"
	"log/slog"

	"github.com/unixpickle/model3d/model3d"
)

// attempt is a speculative placement; it only lives for one call to
// attemptToPlaceTile & is thrown away unless it fits.
type attempt struct {
	template *TileTemplate
	src      *Connector // free connector on the tile we're growing from
	dst      int        // index of the connector on template we attach by

	position model3d.Coord3D
	yaw      float64
	bounds   *model3d.Rect
}

// attemptToPlaceTile tries to attach a new tile to any free connector of
// `from`. Connectors are tried in random order, each with a freshly chosen
// template & destination connector. The first attempt that doesn't overlap
// an existing tile is committed & returned.
//
// Returns nil if nothing fits, in which case nothing has changed.
func (g *Generator) attemptToPlaceTile(from *Tile, wantExit bool, path int) *Tile {
	free := from.FreeConnectors()
	if len(free) == 0 {
		return nil
	}

	g.rng.Shuffle(len(free), func(i, j int) {
		free[i], free[j] = free[j], free[i]
	})

	role := Role(RoleNormal)
	if wantExit {
		role = RoleExit
	}
	set := g.cat.templates(role)

	for _, src := range free {
		a := &attempt{template: set[g.rng.Intn(len(set))], src: src}

		if len(a.template.Connectors) == 0 {
			// can't ever be entered
			g.stats.Rejections++
			continue
		}

		a.dst = g.rng.Intn(len(a.template.Connectors))
		a.position, a.yaw = alignTo(src, a.template.Connectors[a.dst])
		a.bounds = worldBounds(a.template.Bounds, a.position, a.yaw)

		if g.collides(a, from) {
			g.stats.Rejections++
			continue
		}

		return g.commitAttempt(a, role, path, from)
	}

	return nil
}

// collides returns if the attempt overlaps any tile other than `from`.
// The speculative tile isn't registered so it can't be among the hits.
func (g *Generator) collides(a *attempt, from *Tile) bool {
	for _, id := range g.oracle.Overlapping(a.bounds, CategoryTile) {
		if id != from.ID {
			return true
		}
	}
	return false
}

// commitAttempt turns a fitting attempt into a real tile joined to `from`
func (g *Generator) commitAttempt(a *attempt, role Role, path int, from *Tile) *Tile {
	t := g.commit(a.template, role, path, a.position, a.yaw, a.bounds, from.ID)

	join(a.src, t.Connectors[a.dst])

	g.ensureCollider(from)
	g.ensureCollider(t)

	g.obs.TileCommitted(t)
	return t
}

// commit adds a tile built from tmpl to the arena, giving it the next ID.
func (g *Generator) commit(tmpl *TileTemplate, role Role, path int, pos model3d.Coord3D, yaw float64, bounds *model3d.Rect, origin int) *Tile {
	t := &Tile{
		ID:         len(g.tiles),
		Name:       tmpl.Name,
		Role:       role,
		Path:       path,
		Position:   pos,
		Yaw:        yaw,
		Bounds:     bounds,
		Connectors: make([]*Connector, len(tmpl.Connectors)),
		Origin:     origin,
	}

	for i, ct := range tmpl.Connectors {
		t.Connectors[i] = &Connector{
			Index:    i,
			Tile:     t.ID,
			Position: snapCoord(rotateYaw(ct.Position, yaw).Add(pos)),
			Yaw:      normYaw(yaw + ct.Yaw),
			Size:     ct.Size,
			Peer:     ConnectorRef{Tile: NoTile, Index: -1},
			Prop:     NoProp,
		}
	}

	g.tiles = append(g.tiles, t)
	return t
}

// rollback removes t, which must be the newest tile, freeing the
// connector it was attached by.
func (g *Generator) rollback(t *Tile) {
	if t.ID != len(g.tiles)-1 {
		panic(fmt.Sprintf("rollback of tile %d but newest is %d", t.ID, len(g.tiles)-1))
	}

	for _, c := range t.Connectors {
		if c.Connected {
			unjoin(c, g.tiles[c.Peer.Tile].Connectors[c.Peer.Index])
		}
	}
	g.dropCollider(t)

	g.tiles = g.tiles[:t.ID]
	g.log.Debug("tile rolled back", slog.Int("tile", t.ID), slog.Int("origin", t.Origin))
	g.obs.TileRemoved(t)
}

// ensureCollider registers the tile's bounds with the oracle if they
// aren't already.
func (g *Generator) ensureCollider(t *Tile) {
	if t.collider != nil {
		return
	}
	t.collider = &Collider{Trigger: true}
	g.oracle.Add(t.ID, CategoryTile, t.Bounds)
}

// dropCollider removes the tile's bounds from the oracle
func (g *Generator) dropCollider(t *Tile) {
	if t.collider == nil {
		return
	}
	g.oracle.Remove(t.ID, CategoryTile)
	t.collider = nil
}
