package dungeongraph

import (
	"math"
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func near(a, b model3d.Coord3D) bool {
	return a.Dist(b) < 1e-6
}

func TestNormYaw(t *testing.T) {
	cases := map[float64]float64{
		0:    0,
		90:   90,
		360:  0,
		450:  90,
		-90:  270,
		-540: 180,
	}
	for in, want := range cases {
		if got := normYaw(in); got != want {
			t.Errorf("normYaw(%v): expected %v, got %v", in, want, got)
		}
	}
}

func TestFacing(t *testing.T) {
	if !near(facing(0), model3d.XYZ(0, 0, 1)) {
		t.Errorf("expected yaw 0 to face +Z, got %v", facing(0))
	}
	if !near(facing(180), model3d.XYZ(0, 0, -1)) {
		t.Errorf("expected yaw 180 to face -Z, got %v", facing(180))
	}

	side := facing(90)
	if math.Abs(math.Abs(side.X)-1) > 1e-9 || side.Z != 0 || side.Y != 0 {
		t.Errorf("expected yaw 90 to face along X, got %v", side)
	}
	if !near(facing(270), side.Scale(-1)) {
		t.Errorf("expected yaw 270 to oppose yaw 90, got %v", facing(270))
	}
}

func TestWorldBounds(t *testing.T) {
	local := &model3d.Rect{MinVal: model3d.XYZ(-1, 0, -2), MaxVal: model3d.XYZ(1, 3, 2)}

	b := worldBounds(local, model3d.XYZ(10, 0, 5), 0)
	if !near(b.MinVal, model3d.XYZ(9, 0, 3)) || !near(b.MaxVal, model3d.XYZ(11, 3, 7)) {
		t.Errorf("unexpected bounds %v %v", b.MinVal, b.MaxVal)
	}

	b = worldBounds(local, model3d.Coord3D{}, 90)
	if !near(b.MinVal, model3d.XYZ(-2, 0, -1)) || !near(b.MaxVal, model3d.XYZ(2, 3, 1)) {
		t.Errorf("expected rotated bounds to swap X & Z, got %v %v", b.MinVal, b.MaxVal)
	}
}

func TestAlignTo(t *testing.T) {
	tmpl := testBox("room", 6, 4, 0, 90, 180, 270)

	for _, srcYaw := range []float64{0, 90, 180, 270} {
		src := &Connector{Position: model3d.XYZ(3, 0, -7), Yaw: srcYaw}

		for i, dst := range tmpl.Connectors {
			pos, yaw := alignTo(src, dst)

			world := rotateYaw(dst.Position, yaw).Add(pos)
			if !near(world, src.Position) {
				t.Errorf("src %v dst %d: connector lands at %v, expected %v", srcYaw, i, world, src.Position)
			}

			if !near(facing(yaw+dst.Yaw), facing(srcYaw).Scale(-1)) {
				t.Errorf("src %v dst %d: connectors don't face each other", srcYaw, i)
			}

			// the new tile must sit entirely on the far side of the doorway
			b := worldBounds(tmpl.Bounds, pos, yaw)
			dir := facing(srcYaw)
			lo := b.MinVal.Sub(src.Position).Dot(dir)
			hi := b.MaxVal.Sub(src.Position).Dot(dir)
			if math.Min(lo, hi) < -1e-6 {
				t.Errorf("src %v dst %d: tile pokes back through the doorway", srcYaw, i)
			}
		}
	}
}

func TestIntersects(t *testing.T) {
	a := &model3d.Rect{MinVal: model3d.XYZ(0, 0, 0), MaxVal: model3d.XYZ(2, 2, 2)}

	cases := []struct {
		name string
		b    *model3d.Rect
		want bool
	}{
		{"overlap", &model3d.Rect{MinVal: model3d.XYZ(1, 1, 1), MaxVal: model3d.XYZ(3, 3, 3)}, true},
		{"contained", &model3d.Rect{MinVal: model3d.XYZ(0.5, 0.5, 0.5), MaxVal: model3d.XYZ(1, 1, 1)}, true},
		{"touching face", &model3d.Rect{MinVal: model3d.XYZ(2, 0, 0), MaxVal: model3d.XYZ(4, 2, 2)}, false},
		{"apart", &model3d.Rect{MinVal: model3d.XYZ(5, 5, 5), MaxVal: model3d.XYZ(6, 6, 6)}, false},
		{"above", &model3d.Rect{MinVal: model3d.XYZ(0, 2, 0), MaxVal: model3d.XYZ(2, 4, 2)}, false},
	}
	for _, c := range cases {
		if got := intersects(a, c.b); got != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, got)
		}
		if got := intersects(c.b, a); got != c.want {
			t.Errorf("%s (swapped): expected %v, got %v", c.name, c.want, got)
		}
	}
}
