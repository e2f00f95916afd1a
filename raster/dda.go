package raster

import (
	"math"

	voxelfield "github.com/soypat/voxelfield"
)

// TraverseSegment marches the segment p0->p1 through the lattice of cell
// size `size` in Amanatides-Woo order, calling visit for every cell crossed,
// including the cell holding the endpoint. Zero-length segments visit a
// single cell.
func TraverseSegment(p0, p1, size voxelfield.Vec3, visit func(idx voxelfield.GridIndex)) {
	lo := voxelfield.WorldToGridMin(voxelfield.MinElem(p0, p1), size)
	hi := voxelfield.WorldToGridMaxInclusive(voxelfield.MaxElem(p0, p1), size)
	for a := 0; a < 3; a++ {
		if hi[a] < lo[a] {
			hi[a] = lo[a]
		}
	}
	cur := clampIndex(voxelfield.WorldToGridMin(p0, size), lo, hi)

	d := toR3(p1.Sub(p0))
	if d.X == 0 && d.Y == 0 && d.Z == 0 {
		visit(cur)
		return
	}

	var (
		step   [3]int32
		tMax   [3]float64
		tDelta [3]float64
	)
	p0f := toR3(p0)
	sf := toR3(size)
	axis := func(a int) (p, dir, s float64, idx int32) {
		switch a {
		case 0:
			return p0f.X, d.X, sf.X, cur[0]
		case 1:
			return p0f.Y, d.Y, sf.Y, cur[1]
		default:
			return p0f.Z, d.Z, sf.Z, cur[2]
		}
	}
	for a := 0; a < 3; a++ {
		p, dir, s, idx := axis(a)
		switch {
		case dir > 0:
			step[a] = 1
			tMax[a] = (float64(idx+1)*s - p) / dir
			tDelta[a] = s / dir
		case dir < 0:
			step[a] = -1
			tMax[a] = (float64(idx)*s - p) / dir
			tDelta[a] = -s / dir
		default:
			step[a] = 0
			tMax[a] = math.Inf(1)
			tDelta[a] = math.Inf(1)
		}
	}

	for {
		visit(cur)
		a := 0
		if tMax[1] < tMax[a] {
			a = 1
		}
		if tMax[2] < tMax[a] {
			a = 2
		}
		if tMax[a] > 1 {
			return
		}
		cur[a] += step[a]
		if cur[a] < lo[a] || cur[a] > hi[a] {
			return
		}
		tMax[a] += tDelta[a]
	}
}

func clampIndex(idx, lo, hi voxelfield.GridIndex) voxelfield.GridIndex {
	for a := 0; a < 3; a++ {
		if idx[a] < lo[a] {
			idx[a] = lo[a]
		}
		if idx[a] > hi[a] {
			idx[a] = hi[a]
		}
	}
	return idx
}
