package voxelfield

import (
	"fmt"

	"github.com/soypat/voxelfield/edt"
)

// DistanceGrid owns a GridMeta and a flat, row-major (x fastest) array of
// float32 signed distances in world units: positive outside the surface,
// negative inside, zero on the boundary.
type DistanceGrid struct {
	meta GridMeta
	data []float32
}

// NewDistanceGrid builds a zero-valued DistanceGrid from an
// already-derived GridMeta.
func NewDistanceGrid(meta GridMeta) *DistanceGrid {
	return &DistanceGrid{
		meta: meta,
		data: make([]float32, meta.Count()),
	}
}

// NewDistanceGridFromBounds builds a zero-valued DistanceGrid sized to
// cover bb at the given voxel size.
func NewDistanceGridFromBounds(bb BBox, voxelSize Vec3) (*DistanceGrid, error) {
	meta, err := NewGridMeta(bb, voxelSize)
	if err != nil {
		return nil, err
	}
	return NewDistanceGrid(meta), nil
}

// NewDistanceGridFromOccupancy builds a DistanceGrid on the same lattice as
// og and fills it from og's ternary mask, so boundary cells land exactly on
// the zero level set.
func NewDistanceGridFromOccupancy(og *OccupancyGrid, parallel bool) (*DistanceGrid, error) {
	dg := NewDistanceGrid(og.Meta())
	if err := dg.BuildFromTernaryMask(og.GetMaskTernary(), parallel); err != nil {
		return nil, err
	}
	return dg, nil
}

// Meta returns the grid's metadata.
func (g *DistanceGrid) Meta() GridMeta { return g.meta }

// Data returns the grid's backing array. The caller must not resize it.
func (g *DistanceGrid) Data() []float32 { return g.data }

// Get returns the distance value at idx. Returns ErrOutOfRange if idx is
// outside the grid.
func (g *DistanceGrid) Get(idx GridIndex) (float32, error) {
	if !g.meta.Contains(idx) {
		return 0, fmt.Errorf("%w: index %v outside grid", ErrOutOfRange, idx)
	}
	return g.data[g.meta.Lin(idx)], nil
}

// Set writes v at idx. Returns ErrOutOfRange if idx is outside the grid.
func (g *DistanceGrid) Set(idx GridIndex, v float32) error {
	if !g.meta.Contains(idx) {
		return fmt.Errorf("%w: index %v outside grid", ErrOutOfRange, idx)
	}
	g.data[g.meta.Lin(idx)] = v
	return nil
}

// GetValue returns the value of the lattice point nearest to the world
// position p, clamped into the grid.
func (g *DistanceGrid) GetValue(p Vec3) float32 {
	s := g.meta.VoxelSize
	idx := GridIndex{
		int32(roundFloat32(p.X / s.X)),
		int32(roundFloat32(p.Y / s.Y)),
		int32(roundFloat32(p.Z / s.Z)),
	}
	idx = g.clampIndex(idx, 1)
	return g.data[g.meta.Lin(idx)]
}

// clampIndex clamps idx into [min, min+n-margin] per axis.
func (g *DistanceGrid) clampIndex(idx GridIndex, margin int32) GridIndex {
	lo := g.meta.Origin()
	hi := g.meta.Extent()
	for a := 0; a < 3; a++ {
		max := lo[a] + hi[a] - margin
		if max < lo[a] {
			max = lo[a]
		}
		if idx[a] < lo[a] {
			idx[a] = lo[a]
		}
		if idx[a] > max {
			idx[a] = max
		}
	}
	return idx
}

// SampleTrilinear reconstructs a continuous value at world position p by
// trilinear interpolation over the eight lattice points of the enclosing
// cell. Axes of extent 1 contribute a zero fractional offset. When clamp is
// false, positions outside the grid return ErrOutOfRange; when true they
// are clamped onto the grid.
func (g *DistanceGrid) SampleTrilinear(p Vec3, clamp bool) (float32, error) {
	if !clamp && !g.meta.WorldBounds().ContainsPoint(p) {
		return 0, fmt.Errorf("%w: position %v outside grid", ErrOutOfRange, p)
	}
	i0 := g.clampIndex(g.meta.WorldToGridMin(p), 2)
	s := g.meta.VoxelSize
	corner := g.meta.IndexToMinCorner(i0)
	f := p.Sub(corner).DivElem(s)
	f = MinElem(MaxElem(f, Vec3{}), Elem(1))

	ext := g.meta.Extent()
	var step GridIndex
	if ext[0] == 1 {
		f.X = 0
	} else {
		step[0] = 1
	}
	if ext[1] == 1 {
		f.Y = 0
	} else {
		step[1] = 1
	}
	if ext[2] == 1 {
		f.Z = 0
	} else {
		step[2] = 1
	}

	at := func(dx, dy, dz int32) float32 {
		return g.data[g.meta.Lin(GridIndex{i0[0] + dx*step[0], i0[1] + dy*step[1], i0[2] + dz*step[2]})]
	}
	lerp := func(a, b, t float32) float32 { return a + (b-a)*t }

	c00 := lerp(at(0, 0, 0), at(1, 0, 0), f.X)
	c10 := lerp(at(0, 1, 0), at(1, 1, 0), f.X)
	c01 := lerp(at(0, 0, 1), at(1, 0, 1), f.X)
	c11 := lerp(at(0, 1, 1), at(1, 1, 1), f.X)
	c0 := lerp(c00, c10, f.Y)
	c1 := lerp(c01, c11, f.Y)
	return lerp(c0, c1, f.Z), nil
}

// SampleGradient estimates the field gradient at p by central differences
// one voxel apart on each axis, in world units. Axes of extent 1
// contribute 0.
func (g *DistanceGrid) SampleGradient(p Vec3, clamp bool) (Vec3, error) {
	s := g.meta.VoxelSize
	ext := g.meta.Extent()
	var grad Vec3
	for a := 0; a < 3; a++ {
		if ext[a] == 1 {
			continue
		}
		var d Vec3
		var h float32
		switch a {
		case 0:
			d = Vec3{X: s.X}
			h = s.X
		case 1:
			d = Vec3{Y: s.Y}
			h = s.Y
		case 2:
			d = Vec3{Z: s.Z}
			h = s.Z
		}
		hiV, err := g.SampleTrilinear(p.Add(d), clamp)
		if err != nil {
			return Vec3{}, err
		}
		loV, err := g.SampleTrilinear(p.Sub(d), clamp)
		if err != nil {
			return Vec3{}, err
		}
		dv := (hiV - loV) / (2 * h)
		switch a {
		case 0:
			grad.X = dv
		case 1:
			grad.Y = dv
		case 2:
			grad.Z = dv
		}
	}
	return grad, nil
}

// SampleNormal returns the unit gradient at p, or the zero vector when the
// gradient magnitude is below 1e-8.
func (g *DistanceGrid) SampleNormal(p Vec3, clamp bool) (Vec3, error) {
	grad, err := g.SampleGradient(p, clamp)
	if err != nil {
		return Vec3{}, err
	}
	if grad.Length() < 1e-8 {
		return Vec3{}, nil
	}
	return grad.Normalize(), nil
}

// BuildFromBinaryMask overwrites the grid with a signed distance field
// derived from a two-valued mask (0 outside, 1 inside) on the same lattice.
// Unit-spacing grids take the integer-exact path; everything else runs the
// weighted transform with per-axis squared spacing.
func (g *DistanceGrid) BuildFromBinaryMask(mask []uint8, parallel bool) error {
	d, sp, iso := g.edtParams()
	if len(mask) != len(g.data) {
		return fmt.Errorf("%w: mask length %d does not match grid count %d", ErrArgument, len(mask), len(g.data))
	}
	if iso {
		return g.wrapEDT(edt.SDFFromBinaryMaskIsotropic(d, mask, g.data, parallel))
	}
	return g.wrapEDT(edt.SDFFromBinaryMask(d, sp, mask, g.data, parallel))
}

// BuildFromTernaryMask overwrites the grid with a signed distance field
// derived from a three-valued mask (0 outside, 1 inside, 2 boundary).
// Boundary cells end up exactly 0.
func (g *DistanceGrid) BuildFromTernaryMask(mask []uint8, parallel bool) error {
	d, sp, iso := g.edtParams()
	if len(mask) != len(g.data) {
		return fmt.Errorf("%w: mask length %d does not match grid count %d", ErrArgument, len(mask), len(g.data))
	}
	if iso {
		return g.wrapEDT(edt.SDFFromTernaryMaskIsotropic(d, mask, g.data, parallel))
	}
	return g.wrapEDT(edt.SDFFromTernaryMask(d, sp, mask, g.data, parallel))
}

func (g *DistanceGrid) edtParams() (edt.Dims, edt.Spacing, bool) {
	s := g.meta.VoxelSize
	d := edt.Dims{Nx: int(g.meta.Nx), Ny: int(g.meta.Ny), Nz: int(g.meta.Nz)}
	sp := edt.Spacing{
		Wx: float64(s.X) * float64(s.X),
		Wy: float64(s.Y) * float64(s.Y),
		Wz: float64(s.Z) * float64(s.Z),
	}
	iso := s == Elem(1) &&
		d.Nx <= edt.MaxIsotropicAxis && d.Ny <= edt.MaxIsotropicAxis && d.Nz <= edt.MaxIsotropicAxis
	return d, sp, iso
}

func (g *DistanceGrid) wrapEDT(err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s", ErrArgument, err)
	}
	return nil
}

// AddOffset adds a constant to every cell, morphing the implied iso-surface
// outward (positive delta shrinks the interior) without rebuilding.
func (g *DistanceGrid) AddOffset(delta float32) {
	for i := range g.data {
		g.data[i] += delta
	}
}

// Isosurface returns a binary mask with 1 at every cell whose value is at
// or below level, i.e. the occupancy of the iso-surface obtained by
// offsetting the zero level set by level.
func (g *DistanceGrid) Isosurface(level float32) []uint8 {
	mask := make([]uint8, len(g.data))
	for i, v := range g.data {
		if v <= level {
			mask[i] = 1
		}
	}
	return mask
}

// MinMax returns the smallest and largest value in the grid.
func (g *DistanceGrid) MinMax() (min, max float32) {
	min, max = g.data[0], g.data[0]
	for _, v := range g.data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
