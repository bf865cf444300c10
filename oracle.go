package dungeongraph

import (
	"math"
	"sort"

	"github.com/unixpickle/model3d/model3d"
	"github.com/zyedidia/generic/mapset"
)

const defaultCellSize = 8.0

// cellKey addresses a column of the XZ bucket grid
type cellKey struct {
	X, Z int
}

// layer holds all volumes of a single category
type layer struct {
	volumes map[int]*model3d.Rect
	cells   map[cellKey]mapset.Set[int]
}

// SpatialIndex is an in memory Oracle. Volumes are bucketed into a uniform
// grid over X/Z (dungeons tend to be flat) & candidates from the buckets a
// query touches get an exact box test.
type SpatialIndex struct {
	cellSize float64
	layers   map[Category]*layer
}

// NewSpatialIndex returns an empty index using the given bucket size.
// A size <= 0 uses the default.
func NewSpatialIndex(cellSize float64) *SpatialIndex {
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}
	return &SpatialIndex{cellSize: cellSize, layers: map[Category]*layer{}}
}

// Add registers bounds under id for category cat
func (s *SpatialIndex) Add(id int, cat Category, bounds *model3d.Rect) {
	l, ok := s.layers[cat]
	if !ok {
		l = &layer{volumes: map[int]*model3d.Rect{}, cells: map[cellKey]mapset.Set[int]{}}
		s.layers[cat] = l
	}

	if _, exists := l.volumes[id]; exists {
		s.Remove(id, cat)
	}

	l.volumes[id] = bounds
	s.eachCell(bounds, func(k cellKey) {
		bucket, ok := l.cells[k]
		if !ok {
			bucket = mapset.New[int]()
			l.cells[k] = bucket
		}
		bucket.Put(id)
	})
}

// Remove forgets about id in category cat
func (s *SpatialIndex) Remove(id int, cat Category) {
	l, ok := s.layers[cat]
	if !ok {
		return
	}
	bounds, ok := l.volumes[id]
	if !ok {
		return
	}

	delete(l.volumes, id)
	s.eachCell(bounds, func(k cellKey) {
		bucket, ok := l.cells[k]
		if !ok {
			return
		}
		bucket.Remove(id)
		if bucket.Size() == 0 {
			delete(l.cells, k)
		}
	})
}

// Overlapping returns the ids of category cat that intersect bounds
func (s *SpatialIndex) Overlapping(bounds *model3d.Rect, cat Category) []int {
	l, ok := s.layers[cat]
	if !ok {
		return []int{}
	}

	seen := mapset.New[int]()
	hits := []int{}
	s.eachCell(bounds, func(k cellKey) {
		bucket, ok := l.cells[k]
		if !ok {
			return
		}
		bucket.Each(func(id int) {
			if seen.Has(id) {
				return
			}
			seen.Put(id)
			if intersects(bounds, l.volumes[id]) {
				hits = append(hits, id)
			}
		})
	})

	sort.Ints(hits)
	return hits
}

// Len returns the number of volumes registered under cat
func (s *SpatialIndex) Len(cat Category) int {
	l, ok := s.layers[cat]
	if !ok {
		return 0
	}
	return len(l.volumes)
}

// eachCell calls fn for every grid column bounds touches
func (s *SpatialIndex) eachCell(bounds *model3d.Rect, fn func(k cellKey)) {
	x0 := int(math.Floor(bounds.MinVal.X / s.cellSize))
	x1 := int(math.Floor(bounds.MaxVal.X / s.cellSize))
	z0 := int(math.Floor(bounds.MinVal.Z / s.cellSize))
	z1 := int(math.Floor(bounds.MaxVal.Z / s.cellSize))

	for x := x0; x <= x1; x++ {
		for z := z0; z <= z1; z++ {
			fn(cellKey{X: x, Z: z})
		}
	}
}
