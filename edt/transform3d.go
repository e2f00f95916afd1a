package edt

import (
	"fmt"
	"runtime"
	"sync"
)

// Dims is the shape of a dense row-major (x fastest, then y, then z) volume.
type Dims struct {
	Nx, Ny, Nz int
}

// Count returns nx*ny*nz.
func (d Dims) Count() int { return d.Nx * d.Ny * d.Nz }

// Spacing is the per-axis weight used by the weighted (anisotropic) 1-D
// transform: wx=sx^2, wy=sy^2, wz=sz^2 for real-world spacing sx,sy,sz.
type Spacing struct {
	Wx, Wy, Wz float64
}

// Transform3D applies the separable 1-D transform along x, then y, then z,
// using two pool-rented ping-pong buffers so no new volume is allocated per
// pass. f is the read-only input cost volume; out
// receives the squared-distance result and must be a distinct, equally
// sized span. parallel selects whether per-stride work is farmed out to
// goroutines; sequential and parallel runs are bit-identical because every
// stride writes to disjoint output cells.
func Transform3D(d Dims, sp Spacing, f []float64, out []float64, parallel bool) error {
	n := d.Count()
	if len(f) != n || len(out) != n {
		return fmt.Errorf("%w: buffer length %d/%d does not match dims %dx%dx%d=%d", errArgument, len(f), len(out), d.Nx, d.Ny, d.Nz, n)
	}
	if n == 0 {
		return nil
	}
	a := getBuf(n)
	b := getBuf(n)
	defer putBuf(a)
	defer putBuf(b)
	copy(a, f)

	xPass(d, sp.Wx, a, b, parallel)
	yPass(d, sp.Wy, b, a, parallel)
	zPass(d, sp.Wz, a, b, parallel)

	copy(out, b)
	return nil
}

// xPass transforms each contiguous x-row of src into dst.
func xPass(d Dims, w float64, src, dst []float64, parallel bool) {
	runStrides(d.Ny*d.Nz, parallel, func(s int) {
		y, z := s%d.Ny, s/d.Ny
		base := z*d.Nx*d.Ny + y*d.Nx
		Transform1D(src[base:base+d.Nx], w, dst[base:base+d.Nx])
	})
}

// yPass transforms each x,z column (stride nx) of src into dst.
func yPass(d Dims, w float64, src, dst []float64, parallel bool) {
	runStrides(d.Nx*d.Nz, parallel, func(s int) {
		x, z := s%d.Nx, s/d.Nx
		in := getBuf(d.Ny)
		out := getBuf(d.Ny)
		defer putBuf(in)
		defer putBuf(out)
		base := z * d.Nx * d.Ny
		for y := 0; y < d.Ny; y++ {
			in[y] = src[base+y*d.Nx+x]
		}
		Transform1D(in, w, out)
		for y := 0; y < d.Ny; y++ {
			dst[base+y*d.Nx+x] = out[y]
		}
	})
}

// zPass transforms each x,y column (stride nx*ny) of src into dst.
func zPass(d Dims, w float64, src, dst []float64, parallel bool) {
	nxny := d.Nx * d.Ny
	runStrides(nxny, parallel, func(s int) {
		in := getBuf(d.Nz)
		out := getBuf(d.Nz)
		defer putBuf(in)
		defer putBuf(out)
		for z := 0; z < d.Nz; z++ {
			in[z] = src[z*nxny+s]
		}
		Transform1D(in, w, out)
		for z := 0; z < d.Nz; z++ {
			dst[z*nxny+s] = out[z]
		}
	})
}

// runStrides calls body(s) for s in [0,count), either sequentially or
// fanned out over runtime.GOMAXPROCS(0) goroutines operating on disjoint
// stride indices (so results are deterministic regardless of path taken).
func runStrides(count int, parallel bool, body func(s int)) {
	if !parallel || count < 2 {
		for s := 0; s < count; s++ {
			body(s)
		}
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > count {
		workers = count
	}
	chunk := (count + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < count; start += chunk {
		end := start + chunk
		if end > count {
			end = count
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for s := start; s < end; s++ {
				body(s)
			}
		}(start, end)
	}
	wg.Wait()
}
