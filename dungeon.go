package dungeongraph

import (
	"encoding/json"
	"image/color"
	"io/ioutil"

	"github.com/unixpickle/model3d/model2d"
	"github.com/zyedidia/generic/mapset"
	"golang.org/x/image/colornames"
)

// Dungeon is the result of a generation run.
type Dungeon struct {
	// Tiles indexed by Tile.ID. Tile 0 is the start tile.
	Tiles []*Tile

	// Props indexed by Prop.ID
	Props []*Prop `json:",omitempty"`

	Seed  int64
	Stats *Stats `json:",omitempty"`
}

// JSON returns the dungeon as json.
func (d *Dungeon) JSON() ([]byte, error) {
	return json.Marshal(d)
}

// SaveJSON writes a json file to the given path.
func (d *Dungeon) SaveJSON(fpath string) error {
	data, err := d.JSON()
	if err != nil {
		return err
	}
	return ioutil.WriteFile(fpath, data, 0644)
}

// Tile returns the tile with the given ID or nil
func (d *Dungeon) Tile(id int) *Tile {
	if id < 0 || id >= len(d.Tiles) {
		return nil
	}
	return d.Tiles[id]
}

// Connector returns the connector addressed by ref or nil
func (d *Dungeon) Connector(ref ConnectorRef) *Connector {
	t := d.Tile(ref.Tile)
	if t == nil || ref.Index < 0 || ref.Index >= len(t.Connectors) {
		return nil
	}
	return t.Connectors[ref.Index]
}

// Children returns the reverse of the origin links (tile ID -> IDs of
// tiles attached from it).
func (d *Dungeon) Children() map[int]mapset.Set[int] {
	return Children(d.Tiles)
}

// Children derives tile ID -> child tile IDs from origin links. Every
// tile gets an entry, even if it has no children.
func Children(tiles []*Tile) map[int]mapset.Set[int] {
	kids := map[int]mapset.Set[int]{}
	for _, t := range tiles {
		if _, ok := kids[t.ID]; !ok {
			kids[t.ID] = mapset.New[int]()
		}
		if t.Origin == NoTile {
			continue
		}
		set, ok := kids[t.Origin]
		if !ok {
			set = mapset.New[int]()
			kids[t.Origin] = set
		}
		set.Put(t.ID)
	}
	return kids
}

// MainPath returns the tiles from the start to the exit following origin
// links, or nil if the main path never reached an exit.
func (d *Dungeon) MainPath() []*Tile {
	var exit *Tile
	for _, t := range d.Tiles {
		if t.Role == RoleExit && t.Path == 0 {
			exit = t
			break
		}
	}
	if exit == nil {
		return nil
	}

	path := []*Tile{}
	for t := exit; t != nil; t = d.Tile(t.Origin) {
		path = append([]*Tile{t}, path...)
	}
	return path
}

// Footprints returns the X/Z footprint of every tile, indexed by Tile.ID
func (d *Dungeon) Footprints() []*model2d.Rect {
	rects := make([]*model2d.Rect, len(d.Tiles))
	for i, t := range d.Tiles {
		rects[i] = model2d.NewRect(
			model2d.Coord{X: t.Bounds.MinVal.X, Y: t.Bounds.MinVal.Z},
			model2d.Coord{X: t.Bounds.MaxVal.X, Y: t.Bounds.MaxVal.Z},
		)
	}
	return rects
}

// RenderFootprints rasterizes tile footprints to a png at `scale` pixels
// per world unit; main path tiles & branch tiles in different colours.
// Handy for eyeballing overlaps without a full DungeonMap.
func (d *Dungeon) RenderFootprints(fpath string, scale float64) error {
	main := model2d.JoinedSolid{}
	branch := model2d.JoinedSolid{}
	for i, r := range d.Footprints() {
		if d.Tiles[i].Path == 0 {
			main = append(main, r)
		} else {
			branch = append(branch, r)
		}
	}

	objs := []interface{}{main}
	cols := []color.Color{colornames.Gold}
	if len(branch) > 0 {
		objs = append(objs, branch)
		cols = append(cols, colornames.Limegreen)
	}

	return model2d.RasterizeColor(fpath, objs, cols, scale)
}
