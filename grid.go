package voxelfield

import (
	"fmt"

	"github.com/chewxy/math32"
)

// QuantizeEpsilon is the single tolerance used throughout world-to-grid
// math and sparse-voxel hashing. A point that sits exactly on a lattice
// plane maps to the cell above the plane for "min" queries and to the cell
// below it for "max inclusive" queries, so such points are never
// double-counted.
const QuantizeEpsilon float32 = 1e-6

// GridMeta is an immutable snapshot of a rectilinear lattice: origin index,
// extents, and voxel size.
type GridMeta struct {
	MinX, MinY, MinZ int32
	Nx, Ny, Nz       int32
	VoxelSize        Vec3
}

// NewGridMeta derives a GridMeta from a bounding box and voxel size: the
// integer extents are computed via WorldToGridMin/WorldToGridMaxInclusive
// quantization so that the resulting lattice fully covers bb.
func NewGridMeta(bb BBox, voxelSize Vec3) (GridMeta, error) {
	if voxelSize.X <= 0 || voxelSize.Y <= 0 || voxelSize.Z <= 0 {
		return GridMeta{}, fmt.Errorf("%w: voxel size must be positive, got %v", ErrArgument, voxelSize)
	}
	if !bb.Valid() {
		return GridMeta{}, fmt.Errorf("%w: bounding box is invalid", ErrArgument)
	}
	lo := worldToGridIndex(bb.Min, voxelSize, Vec3{}, QuantizeEpsilon)
	hi := worldToGridIndex(bb.Max, voxelSize, Vec3{}, -QuantizeEpsilon)
	nx := hi[0] - lo[0] + 1
	ny := hi[1] - lo[1] + 1
	nz := hi[2] - lo[2] + 1
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return GridMeta{}, fmt.Errorf("%w: degenerate grid extents (%d,%d,%d)", ErrArgument, nx, ny, nz)
	}
	return GridMeta{
		MinX: lo[0], MinY: lo[1], MinZ: lo[2],
		Nx: nx, Ny: ny, Nz: nz,
		VoxelSize: voxelSize,
	}, nil
}

// Count returns nx*ny*nz.
func (g GridMeta) Count() int {
	return int(g.Nx) * int(g.Ny) * int(g.Nz)
}

// SizeWorld returns (nx*sx, ny*sy, nz*sz).
func (g GridMeta) SizeWorld() Vec3 {
	return Vec3{
		X: float32(g.Nx) * g.VoxelSize.X,
		Y: float32(g.Ny) * g.VoxelSize.Y,
		Z: float32(g.Nz) * g.VoxelSize.Z,
	}
}

// Origin returns the minimum-corner grid index as a GridIndex.
func (g GridMeta) Origin() GridIndex {
	return GridIndex{g.MinX, g.MinY, g.MinZ}
}

// Extent returns the (nx,ny,nz) extent as a GridIndex.
func (g GridMeta) Extent() GridIndex {
	return GridIndex{g.Nx, g.Ny, g.Nz}
}

// Contains reports whether idx lies within [min, min+extent) on each axis.
func (g GridMeta) Contains(idx GridIndex) bool {
	return idx.InRange(g.Origin(), g.Origin().Add(g.Extent()))
}

// Lin returns the row-major (x fastest) linear index of idx. The caller
// must ensure idx is in range; Lin does not bounds-check.
func (g GridMeta) Lin(idx GridIndex) int {
	x := int(idx[0] - g.MinX)
	y := int(idx[1] - g.MinY)
	z := int(idx[2] - g.MinZ)
	return z*int(g.Nx)*int(g.Ny) + y*int(g.Nx) + x
}

// Unlin is the inverse of Lin.
func (g GridMeta) Unlin(lin int) GridIndex {
	nxny := int(g.Nx) * int(g.Ny)
	z := lin / nxny
	rem := lin % nxny
	y := rem / int(g.Nx)
	x := rem % int(g.Nx)
	return GridIndex{g.MinX + int32(x), g.MinY + int32(y), g.MinZ + int32(z)}
}

// IndexToMinCorner returns idx*voxelSize, the lower corner of cell idx (the
// lattice is anchored at the world origin).
func (g GridMeta) IndexToMinCorner(idx GridIndex) Vec3 {
	return idx.ToVec3().MulElem(g.VoxelSize)
}

// IndexToMaxCorner returns (idx+1)*voxelSize, the upper corner of cell idx.
func (g GridMeta) IndexToMaxCorner(idx GridIndex) Vec3 {
	return idx.AddScalar(1).ToVec3().MulElem(g.VoxelSize)
}

// WorldToGridMin converts a world position to the grid index of the cell it
// falls into, mapping lattice-plane points to the cell above the plane:
// floor((p+ε)/size).
func (g GridMeta) WorldToGridMin(p Vec3) GridIndex {
	return worldToGridIndex(p, g.VoxelSize, Vec3{}, QuantizeEpsilon)
}

// WorldToGridMaxInclusive converts a world position to the grid index of the
// cell it falls into for inclusive-upper-bound queries, mapping
// lattice-plane points to the cell below the plane: floor((p-ε)/size).
func (g GridMeta) WorldToGridMaxInclusive(p Vec3) GridIndex {
	return worldToGridIndex(p, g.VoxelSize, Vec3{}, -QuantizeEpsilon)
}

// WorldBounds returns the world-space box covered by the lattice, from the
// min corner of the first cell to the max corner of the last.
func (g GridMeta) WorldBounds() BBox {
	last := g.Origin().Add(g.Extent()).SubScalar(1)
	return BBox{
		Min: g.IndexToMinCorner(g.Origin()),
		Max: g.IndexToMaxCorner(last),
	}
}

// WorldToGridMin converts a world position to a lattice index, mapping
// lattice-plane points to the cell above the plane, without reference to
// any particular grid: floor((p+ε)/size).
func WorldToGridMin(p, size Vec3) GridIndex {
	return worldToGridIndex(p, size, Vec3{}, QuantizeEpsilon)
}

// WorldToGridMaxInclusive converts a world position to a lattice index for
// inclusive upper bounds, mapping lattice-plane points to the cell below
// the plane: floor((p-ε)/size).
func WorldToGridMaxInclusive(p, size Vec3) GridIndex {
	return worldToGridIndex(p, size, Vec3{}, -QuantizeEpsilon)
}

// worldToGridIndex computes floor((p-origin+sign*eps)/size) componentwise.
func worldToGridIndex(p, size, origin Vec3, signedEps float32) GridIndex {
	d := p.Sub(origin)
	return GridIndex{
		int32(math32.Floor((d.X + signedEps) / size.X)),
		int32(math32.Floor((d.Y + signedEps) / size.Y)),
		int32(math32.Floor((d.Z + signedEps) / size.Z)),
	}
}
