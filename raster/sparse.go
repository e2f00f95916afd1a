package raster

import (
	"fmt"
	"math"
	"sync"

	voxelfield "github.com/soypat/voxelfield"
)

// SparseRasterizer produces the deduplicated set of voxel origins (cell min
// corners) touched by a mesh or polyline, without requiring a grid.
type SparseRasterizer struct{}

// quantKey is the integer lattice triple a voxel origin quantizes to. Keying
// the dedup set on the rounded triple rather than the float origin makes two
// origins that differ by floating noise below half a voxel hash the same.
type quantKey struct {
	x, y, z int64
}

func quantize(o, size voxelfield.Vec3) quantKey {
	return quantKey{
		x: int64(math.Round(float64(o.X) / float64(size.X))),
		y: int64(math.Round(float64(o.Y) / float64(size.Y))),
		z: int64(math.Round(float64(o.Z) / float64(size.Z))),
	}
}

// RasterizeMesh returns the origins of every lattice cell of the given size
// that overlaps a face of m, with duplicates across faces removed. The
// result is deterministic as a set; enumeration order is not.
// parallelThreshold is the minimum face count for the parallel path.
func (SparseRasterizer) RasterizeMesh(m *voxelfield.Mesh, size voxelfield.Vec3, parallelThreshold int) ([]voxelfield.Vec3, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, fmt.Errorf("%w: voxel size must be positive, got %v", voxelfield.ErrArgument, size)
	}
	faces := m.Faces()
	if len(faces) == 0 {
		return nil, nil
	}
	lo := voxelfield.GridIndex{-1 << 30, -1 << 30, -1 << 30}
	hi := voxelfield.GridIndex{1 << 30, 1 << 30, 1 << 30}

	faceVoxels := func(i int, emit func(idx voxelfield.GridIndex)) {
		a, b, c := m.TriangleVerts(i)
		forEachTriangleVoxel(a, b, c, size, lo, hi, emit)
	}

	set := make(map[quantKey]voxelfield.Vec3)
	if parallelThreshold > 0 && len(faces) >= parallelThreshold {
		var mu sync.Mutex
		parallelOverFaces(len(faces), func(i int) {
			local := make(map[quantKey]voxelfield.Vec3)
			faceVoxels(i, func(idx voxelfield.GridIndex) {
				o := idx.ToVec3().MulElem(size)
				local[quantize(o, size)] = o
			})
			mu.Lock()
			for k, o := range local {
				set[k] = o
			}
			mu.Unlock()
		})
	} else {
		for i := range faces {
			faceVoxels(i, func(idx voxelfield.GridIndex) {
				o := idx.ToVec3().MulElem(size)
				set[quantize(o, size)] = o
			})
		}
	}

	out := make([]voxelfield.Vec3, 0, len(set))
	for _, o := range set {
		out = append(out, o)
	}
	return out, nil
}

// RasterizePolyline returns the origins of every cell crossed by the
// polyline's segments, deduplicated. The closing segment of a closed
// polyline is included unless includeClosing is false.
func (SparseRasterizer) RasterizePolyline(pl voxelfield.Polyline, size voxelfield.Vec3, includeClosing bool) ([]voxelfield.Vec3, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, fmt.Errorf("%w: voxel size must be positive, got %v", voxelfield.ErrArgument, size)
	}
	set := make(map[quantKey]voxelfield.Vec3)
	forEachSegment(pl, includeClosing, func(p0, p1 voxelfield.Vec3) {
		TraverseSegment(p0, p1, size, func(idx voxelfield.GridIndex) {
			o := idx.ToVec3().MulElem(size)
			set[quantize(o, size)] = o
		})
	})
	out := make([]voxelfield.Vec3, 0, len(set))
	for _, o := range set {
		out = append(out, o)
	}
	return out, nil
}
