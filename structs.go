package dungeongraph

import (
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

const (
	// NoTile is used for Tile.Origin of the start tile & for unpaired connectors
	NoTile = -1

	// NoProp is used for connectors without a blocker / doorway
	NoProp = -1
)

// Stats holds generic stats about a generation run
type Stats struct {
	// tiles on the main path (including start & exit)
	MainLength int

	// branches that got at least one tile
	Branches int

	// tiles committed to branches
	BranchTiles int

	// total failed main path placements (each one away from the start
	// tile threw that frontier tile away)
	Backtracks int

	// speculative tiles thrown away due to overlaps or unusable templates
	Rejections int

	// true if the main path gave up before reaching the exit
	MainAborted bool `json:",omitempty"`

	// overlaps found by the audit (if enabled)
	AuditWarnings int `json:",omitempty"`

	Blockers int
	Doorways int
}

// Tile is a placed room / corridor.
type Tile struct {
	// ID is the tile's index in Dungeon.Tiles
	ID int

	// Name of the template this was built from
	Name string

	Role Role

	// Path is 0 for the main path, n for the nth branch
	Path int

	// Position & Yaw (degrees about +Y) of the tile origin in world space
	Position model3d.Coord3D
	Yaw      float64

	// Bounds is the world space axis aligned box used for overlap checks
	Bounds *model3d.Rect

	Connectors []*Connector

	// Origin is the ID of the tile we were attached from, NoTile for the
	// start tile. Following origins always leads back to a path root.
	Origin int

	// collider is set while our bounds are registered with the Oracle
	collider *Collider
}

// Connector is an attachment point on a placed Tile.
type Connector struct {
	// Index in the owning tile's Connectors
	Index int

	// Tile ID of the owner
	Tile int

	// World space position & facing (degrees about +Y)
	Position model3d.Coord3D
	Yaw      float64

	// Size of the doorway; X is width, Y height
	Size model2d.Coord

	// Connected is true iff Peer refers to a connector on another tile
	// whose Peer refers back to us.
	Connected bool

	// Peer is the connector we're joined to (Tile NoTile if unconnected)
	Peer ConnectorRef

	// Prop is the ID of the blocker / doorway spawned here (or NoProp)
	Prop int
}

// ConnectorRef addresses a connector by tile ID & index
type ConnectorRef struct {
	Tile  int
	Index int
}

// Collider marks a tile's volume as registered with the Oracle.
// Our colliders are never physical, they only exist to answer overlap queries.
type Collider struct {
	Trigger bool
}

// PropKind says what a Prop is for
type PropKind string

const (
	PropBlocker = "blocker" // plugs a connector nothing attached to
	PropDoorway = "doorway" // sits between two connected tiles
)

// Prop is something spawned on a connector during cleanup.
type Prop struct {
	ID   int
	Kind PropKind

	// Name of the template used
	Name string

	// Tile & Connector index the prop sits on
	Tile      int
	Connector int

	Position model3d.Coord3D
	Yaw      float64
}

// HasCollider returns if the tile's volume is currently registered with the Oracle
func (t *Tile) HasCollider() bool {
	return t.collider != nil
}

// FreeConnectors returns connectors not yet joined to anything
func (t *Tile) FreeConnectors() []*Connector {
	free := []*Connector{}
	for _, c := range t.Connectors {
		if !c.Connected {
			free = append(free, c)
		}
	}
	return free
}

// Ref returns a ConnectorRef for this connector
func (c *Connector) Ref() ConnectorRef {
	return ConnectorRef{Tile: c.Tile, Index: c.Index}
}

// join pairs two connectors. This & unjoin are the only places Connected is
// set so both sides always change together.
func join(a, b *Connector) {
	a.Connected = true
	a.Peer = b.Ref()
	b.Connected = true
	b.Peer = a.Ref()
}

// unjoin undoes join, leaving both connectors free
func unjoin(a, b *Connector) {
	a.Connected = false
	a.Peer = ConnectorRef{Tile: NoTile, Index: -1}
	b.Connected = false
	b.Peer = ConnectorRef{Tile: NoTile, Index: -1}
}
