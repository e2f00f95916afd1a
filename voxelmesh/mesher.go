// Package voxelmesh reconstructs polygonal surfaces from sets of occupied
// voxels on a uniform lattice. Internal faces between neighbouring voxels
// are culled via a Morton-coded occupancy index; a naive per-voxel box
// variant is kept for debugging.
package voxelmesh

import (
	"fmt"
	"math"

	voxelfield "github.com/soypat/voxelfield"
)

// DiscreteMesher converts voxel origin sets into triangle meshes.
type DiscreteMesher struct{}

// quantEpsilon absorbs floating noise when snapping origins onto the
// integer lattice before Morton encoding.
const quantEpsilon = 1e-6

// GenerateMesh emits the surface of the voxel set given by origins (cell
// min corners) and their common size. For uniform sizes (sx=sy=sz) faces
// shared by two voxels are culled; for non-uniform sizes all six faces of
// every voxel are emitted. Triangle winding follows cord. An empty origin
// set is an invariant violation.
func (DiscreteMesher) GenerateMesh(origins []voxelfield.Vec3, size voxelfield.Vec3, cord voxelfield.CordSystem) (voxelfield.Mesh, error) {
	if len(origins) == 0 {
		return voxelfield.Mesh{}, fmt.Errorf("%w: mesher invoked on an empty occupancy set", voxelfield.ErrInvariant)
	}
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return voxelfield.Mesh{}, fmt.Errorf("%w: voxel size must be positive, got %v", voxelfield.ErrArgument, size)
	}

	uniform := size.X == size.Y && size.Y == size.Z
	cells := quantizeOrigins(origins, size)

	var occupied map[uint64]struct{}
	if uniform {
		occupied = make(map[uint64]struct{}, len(cells))
		for _, c := range cells {
			occupied[MortonEncode(c.ix, c.iy, c.iz)] = struct{}{}
		}
	}

	verts := make([]voxelfield.Vec3, 0, 4*6*len(cells))
	faces := make([]voxelfield.Tri, 0, 2*6*len(cells))
	for _, c := range cells {
		lo := c.origin
		hi := lo.Add(size)
		for f := 0; f < 6; f++ {
			if uniform && neighbourOccupied(occupied, c, f) {
				continue
			}
			emitFace(&verts, &faces, lo, hi, f, cord)
		}
	}
	closed := true
	return voxelfield.NewMesh(verts, faces, &closed)
}

// GenerateMeshes meshes several voxel sets, one per entry of originSets,
// pairing each with the voxel size at the same index.
func (dm DiscreteMesher) GenerateMeshes(originSets [][]voxelfield.Vec3, sizes []voxelfield.Vec3, cord voxelfield.CordSystem) ([]voxelfield.Mesh, error) {
	if len(originSets) != len(sizes) {
		return nil, fmt.Errorf("%w: %d origin sets but %d voxel sizes", voxelfield.ErrArgument, len(originSets), len(sizes))
	}
	out := make([]voxelfield.Mesh, len(originSets))
	for i := range originSets {
		m, err := dm.GenerateMesh(originSets[i], sizes[i], cord)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

// GenerateMeshNaive emits a standalone 24-vertex, 12-triangle box per voxel
// with no culling.
func (DiscreteMesher) GenerateMeshNaive(origins []voxelfield.Vec3, size voxelfield.Vec3, cord voxelfield.CordSystem) (voxelfield.Mesh, error) {
	if len(origins) == 0 {
		return voxelfield.Mesh{}, fmt.Errorf("%w: mesher invoked on an empty occupancy set", voxelfield.ErrInvariant)
	}
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return voxelfield.Mesh{}, fmt.Errorf("%w: voxel size must be positive, got %v", voxelfield.ErrArgument, size)
	}
	verts := make([]voxelfield.Vec3, 0, 24*len(origins))
	faces := make([]voxelfield.Tri, 0, 12*len(origins))
	for _, o := range origins {
		box := voxelfield.BBox{Min: o, Max: o.Add(size)}
		bm := box.ToMesh(cord)
		base := int32(len(verts))
		verts = append(verts, bm.Vertices()...)
		for _, f := range bm.Faces() {
			faces = append(faces, voxelfield.Tri{A: f.A + base, B: f.B + base, C: f.C + base})
		}
	}
	closed := true
	return voxelfield.NewMesh(verts, faces, &closed)
}

// GetVoxelBounds returns the world-space box covering every voxel in the
// set.
func (DiscreteMesher) GetVoxelBounds(origins []voxelfield.Vec3, size voxelfield.Vec3) (voxelfield.BBox, error) {
	if len(origins) == 0 {
		return voxelfield.BBox{}, fmt.Errorf("%w: mesher invoked on an empty occupancy set", voxelfield.ErrInvariant)
	}
	bb := voxelfield.EmptyBBox()
	for _, o := range origins {
		bb = bb.ExpandPoint(o).ExpandPoint(o.Add(size))
	}
	return bb, nil
}

type cell struct {
	origin     voxelfield.Vec3
	ix, iy, iz uint32
}

// quantizeOrigins snaps every origin onto a non-negative integer lattice
// anchored at the componentwise minimum of the set.
func quantizeOrigins(origins []voxelfield.Vec3, size voxelfield.Vec3) []cell {
	min := origins[0]
	for _, o := range origins[1:] {
		min = voxelfield.MinElem(min, o)
	}
	inv := voxelfield.Vec3{X: 1 / size.X, Y: 1 / size.Y, Z: 1 / size.Z}
	cells := make([]cell, len(origins))
	for i, o := range origins {
		d := o.Sub(min).MulElem(inv)
		cells[i] = cell{
			origin: o,
			ix:     uint32(math.Round(float64(d.X) + quantEpsilon)),
			iy:     uint32(math.Round(float64(d.Y) + quantEpsilon)),
			iz:     uint32(math.Round(float64(d.Z) + quantEpsilon)),
		}
	}
	return cells
}

// face order: -x, +x, -y, +y, -z, +z.
var faceOffsets = [6][3]int64{
	{-1, 0, 0}, {1, 0, 0},
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

// neighbourOccupied reports whether the cell across face f is in the set.
// Neighbours with any negative coordinate are off-lattice and therefore
// absent.
func neighbourOccupied(occupied map[uint64]struct{}, c cell, f int) bool {
	off := faceOffsets[f]
	nx := int64(c.ix) + off[0]
	ny := int64(c.iy) + off[1]
	nz := int64(c.iz) + off[2]
	if nx < 0 || ny < 0 || nz < 0 {
		return false
	}
	_, ok := occupied[MortonEncode(uint32(nx), uint32(ny), uint32(nz))]
	return ok
}

// emitFace appends the quad of face f of the box [lo,hi], with corners
// ordered so the right-handed winding's normal points out of the box.
func emitFace(verts *[]voxelfield.Vec3, faces *[]voxelfield.Tri, lo, hi voxelfield.Vec3, f int, cord voxelfield.CordSystem) {
	var c0, c1, c2, c3 voxelfield.Vec3
	switch f {
	case 0: // -x
		c0 = voxelfield.Vec3{lo.X, lo.Y, lo.Z}
		c1 = voxelfield.Vec3{lo.X, lo.Y, hi.Z}
		c2 = voxelfield.Vec3{lo.X, hi.Y, hi.Z}
		c3 = voxelfield.Vec3{lo.X, hi.Y, lo.Z}
	case 1: // +x
		c0 = voxelfield.Vec3{hi.X, lo.Y, lo.Z}
		c1 = voxelfield.Vec3{hi.X, hi.Y, lo.Z}
		c2 = voxelfield.Vec3{hi.X, hi.Y, hi.Z}
		c3 = voxelfield.Vec3{hi.X, lo.Y, hi.Z}
	case 2: // -y
		c0 = voxelfield.Vec3{lo.X, lo.Y, lo.Z}
		c1 = voxelfield.Vec3{hi.X, lo.Y, lo.Z}
		c2 = voxelfield.Vec3{hi.X, lo.Y, hi.Z}
		c3 = voxelfield.Vec3{lo.X, lo.Y, hi.Z}
	case 3: // +y
		c0 = voxelfield.Vec3{lo.X, hi.Y, lo.Z}
		c1 = voxelfield.Vec3{lo.X, hi.Y, hi.Z}
		c2 = voxelfield.Vec3{hi.X, hi.Y, hi.Z}
		c3 = voxelfield.Vec3{hi.X, hi.Y, lo.Z}
	case 4: // -z
		c0 = voxelfield.Vec3{lo.X, lo.Y, lo.Z}
		c1 = voxelfield.Vec3{lo.X, hi.Y, lo.Z}
		c2 = voxelfield.Vec3{hi.X, hi.Y, lo.Z}
		c3 = voxelfield.Vec3{hi.X, lo.Y, lo.Z}
	default: // +z
		c0 = voxelfield.Vec3{lo.X, lo.Y, hi.Z}
		c1 = voxelfield.Vec3{hi.X, lo.Y, hi.Z}
		c2 = voxelfield.Vec3{hi.X, hi.Y, hi.Z}
		c3 = voxelfield.Vec3{lo.X, hi.Y, hi.Z}
	}
	base := int32(len(*verts))
	*verts = append(*verts, c0, c1, c2, c3)
	if cord == voxelfield.RightHanded {
		*faces = append(*faces,
			voxelfield.Tri{A: base, B: base + 1, C: base + 2},
			voxelfield.Tri{A: base, B: base + 2, C: base + 3},
		)
	} else {
		*faces = append(*faces,
			voxelfield.Tri{A: base, B: base + 2, C: base + 1},
			voxelfield.Tri{A: base, B: base + 3, C: base + 2},
		)
	}
}
