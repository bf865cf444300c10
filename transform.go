package dungeongraph

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

const (
	// overlapEpsilon is how far two boxes must interpenetrate (on every
	// axis) before we call it an overlap. Tiles that share a wall touch
	// exactly, float noise shouldn't make them collide.
	overlapEpsilon = 1e-4

	// snapPrecision rounds away rotation noise (cos(90) != 0 in floats)
	snapPrecision = 1e9
)

var up = model3d.XYZ(0, 1, 0)

// normYaw returns yaw in [0, 360)
func normYaw(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return snap(deg)
}

// snap rounds v to snapPrecision
func snap(v float64) float64 {
	return math.Round(v*snapPrecision) / snapPrecision
}

func snapCoord(c model3d.Coord3D) model3d.Coord3D {
	return model3d.XYZ(snap(c.X), snap(c.Y), snap(c.Z))
}

// rotateYaw rotates v by deg degrees about +Y.
// A yaw of 90 turns +Z into +X.
func rotateYaw(v model3d.Coord3D, deg float64) model3d.Coord3D {
	if deg == 0 {
		return v
	}
	rot := model3d.NewMatrix3Rotation(up, deg*math.Pi/180)
	return snapCoord(rot.MulColumn(v))
}

// facing returns the unit direction a yaw points in
func facing(deg float64) model3d.Coord3D {
	return rotateYaw(model3d.XYZ(0, 0, 1), deg)
}

// worldBounds returns the world space axis aligned box of a local box
// after rotating it by yaw & moving it to pos.
func worldBounds(local *model3d.Rect, pos model3d.Coord3D, yaw float64) *model3d.Rect {
	lo, hi := local.MinVal, local.MaxVal

	var min, max model3d.Coord3D
	for i := 0; i < 8; i++ {
		corner := lo
		if i&1 != 0 {
			corner.X = hi.X
		}
		if i&2 != 0 {
			corner.Y = hi.Y
		}
		if i&4 != 0 {
			corner.Z = hi.Z
		}
		corner = rotateYaw(corner, yaw).Add(pos)
		if i == 0 {
			min, max = corner, corner
			continue
		}
		min = min.Min(corner)
		max = max.Max(corner)
	}

	return &model3d.Rect{MinVal: snapCoord(min), MaxVal: snapCoord(max)}
}

// alignTo works out where a tile must sit (position & yaw) so that its
// connector `dst` sits on `src`, facing the opposite way.
func alignTo(src *Connector, dst *ConnectorTemplate) (model3d.Coord3D, float64) {
	yaw := normYaw(src.Yaw + 180 - dst.Yaw)
	pos := src.Position.Sub(rotateYaw(dst.Position, yaw))
	return snapCoord(pos), yaw
}

// intersects returns if a & b overlap by more than overlapEpsilon on every axis
func intersects(a, b *model3d.Rect) bool {
	return a.MinVal.X < b.MaxVal.X-overlapEpsilon && a.MaxVal.X > b.MinVal.X+overlapEpsilon &&
		a.MinVal.Y < b.MaxVal.Y-overlapEpsilon && a.MaxVal.Y > b.MinVal.Y+overlapEpsilon &&
		a.MinVal.Z < b.MaxVal.Z-overlapEpsilon && a.MaxVal.Z > b.MinVal.Z+overlapEpsilon
}

// doorVolume is the box we check for existing doorways at a connector;
// as wide as the doorway in X & Z, 2 units tall, raised half a unit.
func doorVolume(c *Connector) *model3d.Rect {
	centre := c.Position.Add(model3d.XYZ(0, 0.5, 0))
	half := model3d.XYZ(c.Size.X, 1, c.Size.X)
	return &model3d.Rect{MinVal: centre.Sub(half), MaxVal: centre.Add(half)}
}
