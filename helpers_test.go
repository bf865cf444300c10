package dungeongraph

import (
	"testing"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// testBox returns a template of footprint w x l centred on the origin with
// doorways on the given sides (yaws 0, 90, 180, 270).
func testBox(name string, w, l float64, sides ...float64) *TileTemplate {
	t := &TileTemplate{
		Name:   name,
		Bounds: &model3d.Rect{MinVal: model3d.XYZ(-w/2, 0, -l/2), MaxVal: model3d.XYZ(w/2, 3, l/2)},
	}
	for _, yaw := range sides {
		var pos model3d.Coord3D
		switch yaw {
		case 0:
			pos = model3d.XYZ(0, 0, l/2)
		case 90:
			pos = model3d.XYZ(w/2, 0, 0)
		case 180:
			pos = model3d.XYZ(0, 0, -l/2)
		default:
			pos = model3d.XYZ(-w/2, 0, 0)
		}
		t.Connectors = append(t.Connectors, &ConnectorTemplate{Position: pos, Yaw: yaw, Size: model2d.Coord{X: 2, Y: 3}})
	}
	return t
}

// straightCatalog has one start, normal & exit template, each a corridor
// with a doorway at either end.
func straightCatalog() *Catalog {
	return &Catalog{
		Start:    []*TileTemplate{testBox("start", 4, 10, 0, 180)},
		Normal:   []*TileTemplate{testBox("corridor", 4, 10, 0, 180)},
		Exit:     []*TileTemplate{testBox("exit", 4, 10, 0, 180)},
		Blocked:  []*PropTemplate{{Name: "wall"}},
		Doorways: []*PropTemplate{{Name: "door"}},
	}
}

// mixedCatalog has rooms, corridors & corners so layouts fold back on
// themselves & collisions actually happen.
func mixedCatalog() *Catalog {
	return &Catalog{
		Start: []*TileTemplate{testBox("start", 10, 10, 0, 90, 180, 270)},
		Normal: []*TileTemplate{
			testBox("corridor", 3, 12, 0, 180),
			testBox("corner", 4, 4, 180, 90),
			testBox("junction", 4, 4, 180, 90, 270),
			testBox("room", 8, 8, 0, 90, 180, 270),
			testBox("hall", 16, 16, 0, 180, 90),
		},
		Exit:     []*TileTemplate{testBox("exit", 8, 8, 180)},
		Blocked:  []*PropTemplate{{Name: "rubble"}, {Name: "wall"}},
		Doorways: []*PropTemplate{{Name: "door"}, {Name: "gate"}},
	}
}

// blockingOracle reports a phantom tile in the way of every query
type blockingOracle struct {
	*SpatialIndex
}

func (b *blockingOracle) Overlapping(bounds *model3d.Rect, cat Category) []int {
	hits := b.SpatialIndex.Overlapping(bounds, cat)
	if cat == CategoryTile {
		hits = append(hits, 1<<20)
	}
	return hits
}

// recorder is an Observer that remembers what it saw
type recorder struct {
	states []State
	tiles  []*Tile
	props  []*Prop
}

func (r *recorder) StateChanged(from, to State) {
	r.states = append(r.states, to)
}

func (r *recorder) TileCommitted(t *Tile) {
	r.tiles = append(r.tiles, t)
}

func (r *recorder) TileRemoved(t *Tile) {
	for i, seen := range r.tiles {
		if seen == t {
			r.tiles = append(r.tiles[:i], r.tiles[i+1:]...)
			return
		}
	}
}

func (r *recorder) PropPlaced(p *Prop) {
	r.props = append(r.props, p)
}

// mustGenerate runs a generator to completion
func mustGenerate(t *testing.T, cat *Catalog, cfg *Config) *Dungeon {
	t.Helper()
	d, err := Generate(cat, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return d
}

// checkSymmetry asserts every connector is connected iff its peer points back
func checkSymmetry(t *testing.T, d *Dungeon) {
	t.Helper()
	for _, tile := range d.Tiles {
		for _, c := range tile.Connectors {
			if !c.Connected {
				if c.Peer.Tile != NoTile {
					t.Errorf("tile %d connector %d unconnected but has peer %v", tile.ID, c.Index, c.Peer)
				}
				continue
			}
			peer := d.Connector(c.Peer)
			if peer == nil {
				t.Errorf("tile %d connector %d has missing peer %v", tile.ID, c.Index, c.Peer)
				continue
			}
			if peer.Tile == c.Tile {
				t.Errorf("tile %d connector %d joined to its own tile", tile.ID, c.Index)
			}
			if !peer.Connected || peer.Peer != c.Ref() {
				t.Errorf("tile %d connector %d: peer %v does not point back", tile.ID, c.Index, c.Peer)
			}
		}
	}
}

// checkNoOverlap brute forces every pair of tiles, ignoring origin / child pairs
func checkNoOverlap(t *testing.T, d *Dungeon) {
	t.Helper()
	for i, a := range d.Tiles {
		for _, b := range d.Tiles[i+1:] {
			if a.Origin == b.ID || b.Origin == a.ID {
				continue
			}
			if intersects(a.Bounds, b.Bounds) {
				t.Errorf("tiles %d (%s) and %d (%s) overlap", a.ID, a.Name, b.ID, b.Name)
			}
		}
	}
}

// checkResolved asserts every connector is connected or blocked
func checkResolved(t *testing.T, d *Dungeon) {
	t.Helper()
	for _, tile := range d.Tiles {
		for _, c := range tile.Connectors {
			if c.Connected {
				continue
			}
			if c.Prop == NoProp || d.Props[c.Prop].Kind != PropBlocker {
				t.Errorf("tile %d connector %d is neither connected nor blocked", tile.ID, c.Index)
			}
		}
	}
}
