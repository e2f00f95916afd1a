// Package raster converts triangle meshes and polylines into voxel
// boundary sets: per-triangle traversal driven by the Akenine-Möller
// separating-axis test and Liang-Barsky slab clipping, with dense
// (in-grid) and sparse (deduplicated origin list) output modes, plus an
// Amanatides-Woo marcher for segments.
package raster

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/voxelfield/internal/gvec"
)

const (
	satEdgeEpsilon    = 1e-5
	coveredPadEpsilon = 1e-4
	coveredBaryEps    = -1e-5
	degenerateNormal2 = 1e-12
)

// TriangleIntersectsBox runs the Akenine-Möller triangle-AABB SAT test in
// the box's local frame: centre c, half-extents h.
func TriangleIntersectsBox(v0, v1, v2, c, h r3.Vec) bool {
	t0 := r3.Sub(v0, c)
	t1 := r3.Sub(v1, c)
	t2 := r3.Sub(v2, c)

	// 1. triangle AABB vs box.
	if boxAxisReject(t0, t1, t2, h) {
		return false
	}

	// 2. plane vs box.
	e0 := r3.Sub(t1, t0)
	e1 := r3.Sub(t2, t1)
	e2 := r3.Sub(t0, t2)
	n := r3.Cross(e0, e1)
	if planeRejectsBox(n, t0, h) {
		return false
	}

	// 3. 9 edge-cross-axis tests.
	edges := [3]r3.Vec{e0, e1, e2}
	axes := [3]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}
	for _, e := range edges {
		for _, a := range axes {
			l := r3.Cross(e, a)
			if l == (r3.Vec{}) {
				continue
			}
			if edgeAxisRejects(l, t0, t1, t2, h) {
				return false
			}
		}
	}
	return true
}

func boxAxisReject(t0, t1, t2, h r3.Vec) bool {
	minX, maxX := minmax3(t0.X, t1.X, t2.X)
	if minX > h.X || maxX < -h.X {
		return true
	}
	minY, maxY := minmax3(t0.Y, t1.Y, t2.Y)
	if minY > h.Y || maxY < -h.Y {
		return true
	}
	minZ, maxZ := minmax3(t0.Z, t1.Z, t2.Z)
	if minZ > h.Z || maxZ < -h.Z {
		return true
	}
	return false
}

func planeRejectsBox(n, v0, h r3.Vec) bool {
	r := r3.Dot(gvec.AbsElem(n), h)
	d := r3.Dot(n, v0)
	return d > r+satEdgeEpsilon || d < -r-satEdgeEpsilon
}

func edgeAxisRejects(l, t0, t1, t2, h r3.Vec) bool {
	p0 := r3.Dot(l, t0)
	p1 := r3.Dot(l, t1)
	p2 := r3.Dot(l, t2)
	minP, maxP := minmax3(p0, p1, p2)
	r := r3.Dot(gvec.AbsElem(l), h)
	return minP > r+satEdgeEpsilon || maxP < -r-satEdgeEpsilon
}

func minmax3(a, b, c float64) (min, max float64) {
	min, max = a, a
	for _, v := range [2]float64{b, c} {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// IsCoveredByTriangle handles voxels entirely inside a large triangle's
// footprint, untouched by any edge: a padded planar-slab test followed by
// an un-normalized barycentric test with a small negative epsilon to close
// the gap at cell boundaries. Degenerate triangles (|n|² below
// degenerateNormal2) report false rather than failing; the SAT edge-touch
// result still stands on its own.
func IsCoveredByTriangle(v0, v1, v2, center, h r3.Vec) bool {
	e0 := r3.Sub(v1, v0)
	e1 := r3.Sub(v2, v0)
	n := r3.Cross(e0, e1)
	n2 := r3.Norm2(n)
	if n2 < degenerateNormal2 {
		return false
	}

	cv0 := r3.Sub(center, v0)
	r := r3.Dot(gvec.AbsElem(n), h)
	dist := r3.Dot(n, cv0)
	if math.Abs(dist) > r+coveredPadEpsilon {
		return false
	}

	u, v, w, ok := barycentric(v0, v1, v2, n, center)
	if !ok {
		return false
	}
	return u >= coveredBaryEps && v >= coveredBaryEps && w >= coveredBaryEps
}

// barycentric computes the barycentric coordinates of p's projection onto
// the plane of triangle (v0,v1,v2) with precomputed normal n, choosing the
// dominant axis of n to drop for a 2-D area ratio (avoids normalizing n).
func barycentric(v0, v1, v2, n, p r3.Vec) (u, v, w float64, ok bool) {
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	var x0, y0, x1, y1, x2, y2, xp, yp float64
	switch {
	case az >= ax && az >= ay:
		x0, y0 = v0.X, v0.Y
		x1, y1 = v1.X, v1.Y
		x2, y2 = v2.X, v2.Y
		xp, yp = p.X, p.Y
	case ay >= ax && ay >= az:
		x0, y0 = v0.X, v0.Z
		x1, y1 = v1.X, v1.Z
		x2, y2 = v2.X, v2.Z
		xp, yp = p.X, p.Z
	default:
		x0, y0 = v0.Y, v0.Z
		x1, y1 = v1.Y, v1.Z
		x2, y2 = v2.Y, v2.Z
		xp, yp = p.Y, p.Z
	}
	areaFull := edgeFn(x0, y0, x1, y1, x2, y2)
	if areaFull == 0 {
		return 0, 0, 0, false
	}
	w0 := edgeFn(x1, y1, x2, y2, xp, yp) / areaFull
	w1 := edgeFn(x2, y2, x0, y0, xp, yp) / areaFull
	w2 := 1 - w0 - w1
	return w0, w1, w2, true
}

func edgeFn(x0, y0, x1, y1, x2, y2 float64) float64 {
	return (x1-x0)*(y2-y0) - (y1-y0)*(x2-x0)
}
