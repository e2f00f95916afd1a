package voxelfield

import (
	"fmt"
	"runtime"
	"sync"
)

// OccupancyGrid owns a GridMeta and a flat, row-major (x fastest) array of
// Occupancy labels, created all-Outside.
type OccupancyGrid struct {
	meta GridMeta
	data []Occupancy
}

// NewOccupancyGridFromBounds builds an OccupancyGrid sized to cover bb at
// the given voxel size.
func NewOccupancyGridFromBounds(bb BBox, voxelSize Vec3) (*OccupancyGrid, error) {
	meta, err := NewGridMeta(bb, voxelSize)
	if err != nil {
		return nil, err
	}
	return NewOccupancyGrid(meta), nil
}

// NewOccupancyGrid builds an OccupancyGrid from an already-derived GridMeta.
func NewOccupancyGrid(meta GridMeta) *OccupancyGrid {
	return &OccupancyGrid{
		meta: meta,
		data: make([]Occupancy, meta.Count()),
	}
}

// Meta returns the grid's metadata.
func (g *OccupancyGrid) Meta() GridMeta { return g.meta }

// Data returns the grid's backing array. The caller must not resize it.
func (g *OccupancyGrid) Data() []Occupancy { return g.data }

// Get returns the occupancy value at idx. Returns ErrOutOfRange if idx is
// outside the grid.
func (g *OccupancyGrid) Get(idx GridIndex) (Occupancy, error) {
	if !g.meta.Contains(idx) {
		return Outside, fmt.Errorf("%w: index %v outside grid", ErrOutOfRange, idx)
	}
	return g.data[g.meta.Lin(idx)], nil
}

// Set writes v at idx. Returns ErrOutOfRange if idx is outside the grid.
func (g *OccupancyGrid) Set(idx GridIndex, v Occupancy) error {
	if !g.meta.Contains(idx) {
		return fmt.Errorf("%w: index %v outside grid", ErrOutOfRange, idx)
	}
	g.data[g.meta.Lin(idx)] = v
	return nil
}

// SetLin writes v at the given linear index without bounds checking; used
// by the hot dense-rasterize path, which already knows the index is valid.
func (g *OccupancyGrid) SetLin(lin int, v Occupancy) {
	g.data[lin] = v
}

// Fill sets every cell to v.
func (g *OccupancyGrid) Fill(v Occupancy) {
	for i := range g.data {
		g.data[i] = v
	}
}

// TransformWorld shifts the grid's contents by the nearest-integer voxel
// offset implied by translation. Cells that shift out of range are
// silently dropped; cells newly exposed at the opposite edge become
// Outside.
func (g *OccupancyGrid) TransformWorld(translation Vec3) {
	offsetF := translation.DivElem(g.meta.VoxelSize)
	offset := GridIndex{
		int32(roundFloat32(offsetF.X)),
		int32(roundFloat32(offsetF.Y)),
		int32(roundFloat32(offsetF.Z)),
	}
	if offset == (GridIndex{}) {
		return
	}
	out := make([]Occupancy, len(g.data))
	for lin, v := range g.data {
		if v == Outside {
			continue
		}
		idx := g.meta.Unlin(lin).Add(offset)
		if !g.meta.Contains(idx) {
			continue
		}
		out[g.meta.Lin(idx)] = v
	}
	g.data = out
}

// TransformWorldFromTo is TransformWorld with the translation expressed as
// a from/to point pair.
func (g *OccupancyGrid) TransformWorldFromTo(from, to Vec3) {
	g.TransformWorld(to.Sub(from))
}

func roundFloat32(x float32) float32 {
	if x >= 0 {
		return float32(int64(x + 0.5))
	}
	return float32(int64(x - 0.5))
}

// CountState returns the number of cells equal to state.
func (g *OccupancyGrid) CountState(state Occupancy) int {
	n := 0
	for _, v := range g.data {
		if v == state {
			n++
		}
	}
	return n
}

// GetMaskBinary returns a mask where Inside (and, if includeBoundary, also
// Boundary) cells are 1 and all others are 0.
func (g *OccupancyGrid) GetMaskBinary(includeBoundary bool) []uint8 {
	mask := make([]uint8, len(g.data))
	for i, v := range g.data {
		if v == Inside || (includeBoundary && v == Boundary) {
			mask[i] = 1
		}
	}
	return mask
}

// GetMaskTernary returns a mask with the raw {0,1,2} Occupancy values.
func (g *OccupancyGrid) GetMaskTernary() []uint8 {
	mask := make([]uint8, len(g.data))
	for i, v := range g.data {
		mask[i] = uint8(v)
	}
	return mask
}

// ForEachVoxel calls cb(idx, value) for every cell in the grid, in linear
// (z,y,x) order.
func (g *OccupancyGrid) ForEachVoxel(cb func(idx GridIndex, v Occupancy)) {
	for lin, v := range g.data {
		cb(g.meta.Unlin(lin), v)
	}
}

// ForEachVoxelParallel calls cb concurrently over disjoint linear-index
// ranges. maxDegree caps the number of goroutines; 0 means use
// runtime.GOMAXPROCS(0). cb must be safe to call from multiple
// goroutines.
func (g *OccupancyGrid) ForEachVoxelParallel(cb func(idx GridIndex, v Occupancy), maxDegree int) {
	n := len(g.data)
	if n == 0 {
		return
	}
	degree := maxDegree
	if degree <= 0 {
		degree = runtime.GOMAXPROCS(0)
	}
	if degree > n {
		degree = n
	}
	if degree <= 1 {
		g.ForEachVoxel(cb)
		return
	}
	chunk := (n + degree - 1) / degree
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for lin := start; lin < end; lin++ {
				cb(g.meta.Unlin(lin), g.data[lin])
			}
		}(start, end)
	}
	wg.Wait()
}
