package raster

import (
	"runtime"
	"sync"

	voxelfield "github.com/soypat/voxelfield"
	"github.com/soypat/voxelfield/flood"
)

// DenseRasterizer writes Boundary labels directly into an OccupancyGrid.
// Faces are processed independently and every write is the identical
// Boundary value, so the parallel path over faces is safe; readers must
// not observe the grid concurrently with a rasterize call.
type DenseRasterizer struct{}

// RasterizeMesh marks every grid cell whose box overlaps a face of m as
// Boundary. A mesh with no faces, or whose bounds do not intersect the
// grid's world bounds, is a no-op. When floodFill is set the grid's
// non-boundary cells are then classified Inside/Outside by 6-connected
// flood fill from the grid faces. parallelThreshold is the minimum face
// count for the parallel path; zero or negative means always sequential.
func (DenseRasterizer) RasterizeMesh(grid *voxelfield.OccupancyGrid, m *voxelfield.Mesh, floodFill bool, parallelThreshold int) error {
	meta := grid.Meta()
	faces := m.Faces()
	if len(faces) > 0 && m.Bounds().Intersects(meta.WorldBounds()) {
		lo := meta.Origin()
		hi := lo.Add(meta.Extent()).SubScalar(1)
		rasterFace := func(i int) {
			a, b, c := m.TriangleVerts(i)
			forEachTriangleVoxel(a, b, c, meta.VoxelSize, lo, hi, func(idx voxelfield.GridIndex) {
				grid.SetLin(meta.Lin(idx), voxelfield.Boundary)
			})
		}
		if parallelThreshold > 0 && len(faces) >= parallelThreshold {
			parallelOverFaces(len(faces), rasterFace)
		} else {
			for i := range faces {
				rasterFace(i)
			}
		}
	}
	if floodFill {
		return flood.Fill(grid)
	}
	return nil
}

// RasterizePolyline marks every cell crossed by the polyline's segments as
// Boundary, including the closing segment of a closed polyline.
func (DenseRasterizer) RasterizePolyline(grid *voxelfield.OccupancyGrid, pl voxelfield.Polyline) error {
	meta := grid.Meta()
	mark := func(idx voxelfield.GridIndex) {
		if meta.Contains(idx) {
			grid.SetLin(meta.Lin(idx), voxelfield.Boundary)
		}
	}
	forEachSegment(pl, true, func(p0, p1 voxelfield.Vec3) {
		TraverseSegment(p0, p1, meta.VoxelSize, mark)
	})
	return nil
}

// forEachSegment calls body for every consecutive vertex pair. A closed
// polyline stores its first vertex again at the end, so its final pair is
// the closing edge; includeClosing=false skips it.
func forEachSegment(pl voxelfield.Polyline, includeClosing bool, body func(p0, p1 voxelfield.Vec3)) {
	vs := pl.Vertices()
	last := len(vs) - 1
	for i := 1; i <= last; i++ {
		if i == last && pl.IsClosed() && !includeClosing {
			break
		}
		body(vs[i-1], vs[i])
	}
}

// parallelOverFaces fans body out over disjoint face-index ranges.
func parallelOverFaces(n int, body func(i int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				body(i)
			}
		}(start, end)
	}
	wg.Wait()
}
