package dungeongraph

import (
	"github.com/unixpickle/model3d/model3d"
)

// Oracle answers spatial overlap questions for the generator.
// Everything we care about is an axis aligned box in world space tagged with
// a Category; we only ever ask "what of category X intersects this box?"
//
// Commits must be visible immediately, ie. a volume Added is returned by the
// very next Overlapping call that touches it.
type Oracle interface {
	// Add registers a volume under the given id & category.
	// Adding an id that already exists replaces its bounds.
	Add(id int, cat Category, bounds *model3d.Rect)

	// Remove forgets a volume, a no-op if it was never added
	Remove(id int, cat Category)

	// Overlapping returns ids (ascending) of all volumes of category `cat`
	// that intersect `bounds`. Boxes that merely share a face do not count.
	Overlapping(bounds *model3d.Rect, cat Category) []int
}

// Observer is told about interesting moments during generation.
// It's intended for debug visualisation, decoration spawners etc - nothing
// here can influence the layout. Calls happen on the goroutine calling Step.
type Observer interface {
	// StateChanged is called whenever the generator moves to a new phase
	StateChanged(from, to State)

	// TileCommitted is called once a tile has been placed & connected
	// (including the start tile, on the first Step)
	TileCommitted(t *Tile)

	// TileRemoved is called when backtracking throws away a committed tile
	TileRemoved(t *Tile)

	// PropPlaced is called for every blocker & doorway during cleanup
	PropPlaced(p *Prop)
}

// NopObserver meets the Observer interface & does nothing.
type NopObserver struct{}

func (NopObserver) StateChanged(from, to State) {}
func (NopObserver) TileCommitted(t *Tile)       {}
func (NopObserver) TileRemoved(t *Tile)         {}
func (NopObserver) PropPlaced(p *Prop)          {}
