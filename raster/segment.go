package raster

import "gonum.org/v1/gonum/spatial/r3"

const segmentParallelEpsilon = 1e-12

// SegmentIntersectsBox is a Liang-Barsky slab clip test: does the segment
// p0->p1 overlap the axis-aligned box [min,max] for any t in [0,1]?
func SegmentIntersectsBox(p0, p1, min, max r3.Vec) bool {
	tEnter, tExit := 0.0, 1.0
	d := r3.Sub(p1, p0)
	axes := [3]struct{ p0, d, lo, hi float64 }{
		{p0.X, d.X, min.X, max.X},
		{p0.Y, d.Y, min.Y, max.Y},
		{p0.Z, d.Z, min.Z, max.Z},
	}
	for _, a := range axes {
		if a.d > -segmentParallelEpsilon && a.d < segmentParallelEpsilon {
			if a.p0 < a.lo || a.p0 > a.hi {
				return false
			}
			continue
		}
		t0 := (a.lo - a.p0) / a.d
		t1 := (a.hi - a.p0) / a.d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tEnter {
			tEnter = t0
		}
		if t1 < tExit {
			tExit = t1
		}
		if tEnter > tExit {
			return false
		}
	}
	return true
}
