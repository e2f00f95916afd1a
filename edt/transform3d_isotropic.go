package edt

import "fmt"

var int64Pool = newInt64Pool()

type int64PoolT struct{ pool chan []int64 }

func newInt64Pool() *int64PoolT { return &int64PoolT{pool: make(chan []int64, 64)} }

func (p *int64PoolT) get(n int) []int64 {
	select {
	case b := <-p.pool:
		if cap(b) >= n {
			return b[:n]
		}
	default:
	}
	return make([]int64, n)
}

func (p *int64PoolT) put(b []int64) {
	select {
	case p.pool <- b:
	default:
	}
}

// Transform3DIsotropic is the integer specialization of Transform3D for
// unscaled (unit-spacing) grids, exact for squared Euclidean distance with
// no floating-point rounding. It requires every axis to be no larger than
// MaxIsotropicAxis so that the 1<<28 sentinel cannot
// overflow when squared and summed; callers with larger grids should use
// Transform3D with Spacing{1,1,1} instead.
func Transform3DIsotropic(d Dims, f []int64, out []int64, parallel bool) error {
	if d.Nx > MaxIsotropicAxis || d.Ny > MaxIsotropicAxis || d.Nz > MaxIsotropicAxis {
		return fmt.Errorf("%w: isotropic EDT axis exceeds %d (got %dx%dx%d); use Transform3D instead", errArgument, MaxIsotropicAxis, d.Nx, d.Ny, d.Nz)
	}
	n := d.Count()
	if len(f) != n || len(out) != n {
		return fmt.Errorf("%w: buffer length %d/%d does not match dims %dx%dx%d=%d", errArgument, len(f), len(out), d.Nx, d.Ny, d.Nz, n)
	}
	if n == 0 {
		return nil
	}
	a := int64Pool.get(n)
	b := int64Pool.get(n)
	defer int64Pool.put(a)
	defer int64Pool.put(b)
	copy(a, f)

	xPassIso(d, a, b, parallel)
	yPassIso(d, b, a, parallel)
	zPassIso(d, a, b, parallel)

	copy(out, b)
	return nil
}

func xPassIso(d Dims, src, dst []int64, parallel bool) {
	runStrides(d.Ny*d.Nz, parallel, func(s int) {
		y, z := s%d.Ny, s/d.Ny
		base := z*d.Nx*d.Ny + y*d.Nx
		TransformIsotropic1D(src[base:base+d.Nx], dst[base:base+d.Nx])
	})
}

func yPassIso(d Dims, src, dst []int64, parallel bool) {
	runStrides(d.Nx*d.Nz, parallel, func(s int) {
		x, z := s%d.Nx, s/d.Nx
		in := int64Pool.get(d.Ny)
		out := int64Pool.get(d.Ny)
		defer int64Pool.put(in)
		defer int64Pool.put(out)
		base := z * d.Nx * d.Ny
		for y := 0; y < d.Ny; y++ {
			in[y] = src[base+y*d.Nx+x]
		}
		TransformIsotropic1D(in, out)
		for y := 0; y < d.Ny; y++ {
			dst[base+y*d.Nx+x] = out[y]
		}
	})
}

func zPassIso(d Dims, src, dst []int64, parallel bool) {
	nxny := d.Nx * d.Ny
	runStrides(nxny, parallel, func(s int) {
		in := int64Pool.get(d.Nz)
		out := int64Pool.get(d.Nz)
		defer int64Pool.put(in)
		defer int64Pool.put(out)
		for z := 0; z < d.Nz; z++ {
			in[z] = src[z*nxny+s]
		}
		TransformIsotropic1D(in, out)
		for z := 0; z < d.Nz; z++ {
			dst[z*nxny+s] = out[z]
		}
	})
}
