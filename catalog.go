package dungeongraph

import (
	"encoding/json"
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

var (
	// ErrInvalidCatalog implies a Catalog is missing templates we need
	// in order to build anything at all.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// Catalog holds every template a dungeon can be built from, by role.
type Catalog struct {
	Start    []*TileTemplate // one is chosen for the root of the main path
	Normal   []*TileTemplate // rooms & corridors
	Exit     []*TileTemplate // the last tile on the main path
	Blocked  []*PropTemplate // walls used to plug unused connectors
	Doorways []*PropTemplate // placed (sometimes) between connected tiles
}

// TileTemplate describes a room / corridor before it is placed.
// All positions are local to the tile, Y is up.
type TileTemplate struct {
	Name string

	// Bounds is the local space box used for overlap checks
	Bounds *model3d.Rect

	// Connectors are places other tiles can attach to this one
	Connectors []*ConnectorTemplate
}

// ConnectorTemplate is an attachment point on a TileTemplate.
type ConnectorTemplate struct {
	// Position of the centre of the doorway (on the floor)
	Position model3d.Coord3D

	// Yaw in degrees about +Y of the direction the doorway faces (out of
	// the tile). 0 faces +Z.
	Yaw float64

	// Size of the doorway; X is the width, Y the height
	Size model2d.Coord
}

// PropTemplate is something we spawn on a connector during cleanup.
type PropTemplate struct {
	Name string
}

// LoadCatalog reads a json encoded Catalog from disk.
func LoadCatalog(fpath string) (*Catalog, error) {
	data, err := ioutil.ReadFile(fpath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading catalog %s", fpath)
	}

	cat := &Catalog{}
	err = json.Unmarshal(data, cat)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding catalog %s", fpath)
	}

	return cat, nil
}

// JSON returns the catalog as json.
func (c *Catalog) JSON() ([]byte, error) {
	return json.Marshal(c)
}

// Validate checks we have enough templates to build with. The doorway
// percent is needed since doorways are only required if we'll spawn any.
func (c *Catalog) Validate(doorwayPercent int) error {
	for _, role := range AllRoles() {
		set := c.templates(role)
		if len(set) == 0 {
			return errors.Wrapf(ErrInvalidCatalog, "no %s templates", role)
		}
		for i, t := range set {
			if t == nil || t.Bounds == nil {
				return errors.Wrapf(ErrInvalidCatalog, "%s template %d has no bounds", role, i)
			}
			for _, conn := range t.Connectors {
				if conn == nil {
					return errors.Wrapf(ErrInvalidCatalog, "%s template %s has a nil connector", role, t.Name)
				}
				if conn.Size.X <= 0 {
					// doorways are found by their volume, which needs a width
					return errors.Wrapf(ErrInvalidCatalog, "%s template %s has a connector with width %v", role, t.Name, conn.Size.X)
				}
			}
		}
	}

	if len(c.Blocked) == 0 {
		return errors.Wrap(ErrInvalidCatalog, "no blocked passage templates")
	}
	if doorwayPercent > 0 && len(c.Doorways) == 0 {
		return errors.Wrap(ErrInvalidCatalog, "doorways requested but no doorway templates")
	}

	return nil
}

// templates returns the tile templates for the given role
func (c *Catalog) templates(r Role) []*TileTemplate {
	switch r {
	case RoleStart:
		return c.Start
	case RoleExit:
		return c.Exit
	}
	return c.Normal
}
