package policy

import (
	"math"

	"github.com/agrif/littlebots/model"
)

// CenterPoint is the middle cell of the grid, rounded down.
func CenterPoint(info model.WorldInfo) model.Location {
	return model.Location{info.Width / 2, info.Height / 2}
}

// Dist is the euclidean distance between two cells.
func Dist(a, b model.Location) float64 {
	return math.Sqrt(float64(distSq(a, b)))
}

func distSq(a, b model.Location) int64 {
	dx := int64(a[0]) - int64(b[0])
	dy := int64(a[1]) - int64(b[1])
	return dx*dx + dy*dy
}

// Adjacent reports whether b is one orthogonal step away from a.
func Adjacent(a, b model.Location) bool {
	return distSq(a, b) == 1
}

// Toward returns the cell one step from `from` in the direction of `to`,
// along the axis with the larger gap (x on a tie). It returns `from` when
// both are equal.
func Toward(from, to model.Location) model.Location {
	dx := int64(to[0]) - int64(from[0])
	dy := int64(to[1]) - int64(from[1])
	switch {
	case dx == 0 && dy == 0:
		return from
	case abs(dx) < abs(dy):
		return model.Location{from[0], step(from[1], dy)}
	default:
		return model.Location{step(from[0], dx), from[1]}
	}
}

func step(v uint32, diff int64) uint32 {
	if diff < 0 {
		return v - 1
	}
	return v + 1
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
