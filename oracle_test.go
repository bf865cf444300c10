package dungeongraph

import (
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func rect(x0, z0, x1, z1 float64) *model3d.Rect {
	return &model3d.Rect{MinVal: model3d.XYZ(x0, 0, z0), MaxVal: model3d.XYZ(x1, 3, z1)}
}

func TestSpatialIndex_Overlapping(t *testing.T) {
	idx := NewSpatialIndex(4)
	idx.Add(1, CategoryTile, rect(0, 0, 10, 10))
	idx.Add(2, CategoryTile, rect(10, 0, 20, 10))
	idx.Add(3, CategoryTile, rect(-30, -30, -20, -20))
	idx.Add(4, CategoryDoor, rect(5, 5, 6, 6))

	hits := idx.Overlapping(rect(8, 2, 12, 4), CategoryTile)
	if len(hits) != 2 || hits[0] != 1 || hits[1] != 2 {
		t.Errorf("expected [1 2], got %v", hits)
	}

	// sharing a face isn't an overlap
	hits = idx.Overlapping(rect(20, 0, 30, 10), CategoryTile)
	if len(hits) != 0 {
		t.Errorf("expected no hits for touching box, got %v", hits)
	}

	// categories are kept apart
	hits = idx.Overlapping(rect(0, 0, 10, 10), CategoryDoor)
	if len(hits) != 1 || hits[0] != 4 {
		t.Errorf("expected [4], got %v", hits)
	}

	hits = idx.Overlapping(rect(-100, -100, 100, 100), CategoryTile)
	if len(hits) != 3 {
		t.Errorf("expected all 3 tiles, got %v", hits)
	}
}

func TestSpatialIndex_RemoveAndReplace(t *testing.T) {
	idx := NewSpatialIndex(0)
	idx.Add(1, CategoryTile, rect(0, 0, 10, 10))

	idx.Add(1, CategoryTile, rect(50, 50, 60, 60))
	if hits := idx.Overlapping(rect(0, 0, 10, 10), CategoryTile); len(hits) != 0 {
		t.Errorf("expected old bounds gone after replace, got %v", hits)
	}
	if idx.Len(CategoryTile) != 1 {
		t.Errorf("expected 1 volume, got %d", idx.Len(CategoryTile))
	}

	idx.Remove(1, CategoryTile)
	idx.Remove(1, CategoryTile)
	idx.Remove(7, CategoryDoor)
	if hits := idx.Overlapping(rect(50, 50, 60, 60), CategoryTile); len(hits) != 0 {
		t.Errorf("expected nothing after remove, got %v", hits)
	}
	if idx.Len(CategoryTile) != 0 {
		t.Errorf("expected empty index, got %d", idx.Len(CategoryTile))
	}
}
