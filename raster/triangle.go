package raster

import (
	"gonum.org/v1/gonum/spatial/r3"

	voxelfield "github.com/soypat/voxelfield"
	"github.com/soypat/voxelfield/internal/gvec"
)

// forEachTriangleVoxel visits every lattice cell of size `size` whose box
// overlaps the triangle (a,b,c) under the combined SAT/coverage predicate,
// restricted to the index range [lo,hi] (inclusive).
func forEachTriangleVoxel(a, b, c, size voxelfield.Vec3, lo, hi voxelfield.GridIndex, visit func(idx voxelfield.GridIndex)) {
	bbMin := gvec.MinElem(toR3(a), gvec.MinElem(toR3(b), toR3(c)))
	bbMax := gvec.MaxElem(toR3(a), gvec.MaxElem(toR3(b), toR3(c)))
	tlo := voxelfield.WorldToGridMin(fromR3(bbMin), size)
	thi := voxelfield.WorldToGridMaxInclusive(fromR3(bbMax), size)
	for ax := 0; ax < 3; ax++ {
		if thi[ax] < tlo[ax] {
			thi[ax] = tlo[ax]
		}
		if tlo[ax] < lo[ax] {
			tlo[ax] = lo[ax]
		}
		if thi[ax] > hi[ax] {
			thi[ax] = hi[ax]
		}
	}

	v0, v1, v2 := toR3(a), toR3(b), toR3(c)
	sf := toR3(size)
	h := r3.Scale(0.5, sf)
	for z := tlo[2]; z <= thi[2]; z++ {
		for y := tlo[1]; y <= thi[1]; y++ {
			for x := tlo[0]; x <= thi[0]; x++ {
				center := r3.Vec{
					X: (float64(x) + 0.5) * sf.X,
					Y: (float64(y) + 0.5) * sf.Y,
					Z: (float64(z) + 0.5) * sf.Z,
				}
				if TriangleIntersectsBox(v0, v1, v2, center, h) ||
					IsCoveredByTriangle(v0, v1, v2, center, h) {
					visit(voxelfield.GridIndex{x, y, z})
				}
			}
		}
	}
}
