package edt

import "fmt"

// Transform2D applies the 1-D transform along every row of the nx-by-ny
// image f (row-major, x fastest) and then along every column, writing the
// squared distances to out. wx and wy are the per-axis squared spacings.
func Transform2D(nx, ny int, wx, wy float64, f, out []float64, parallel bool) error {
	n := nx * ny
	if len(f) != n || len(out) != n {
		return fmt.Errorf("%w: buffer length %d/%d does not match dims %dx%d=%d", errArgument, len(f), len(out), nx, ny, n)
	}
	if n == 0 {
		return nil
	}
	a := getBuf(n)
	defer putBuf(a)
	copy(a, f)

	runStrides(ny, parallel, func(y int) {
		base := y * nx
		Transform1D(a[base:base+nx], wx, out[base:base+nx])
	})
	runStrides(nx, parallel, func(x int) {
		in := getBuf(ny)
		col := getBuf(ny)
		defer putBuf(in)
		defer putBuf(col)
		for y := 0; y < ny; y++ {
			in[y] = out[y*nx+x]
		}
		Transform1D(in, wy, col)
		for y := 0; y < ny; y++ {
			out[y*nx+x] = col[y]
		}
	})
	return nil
}

// Transform2DIsotropic is the integer specialization of Transform2D with
// unit spacing on both axes.
func Transform2DIsotropic(nx, ny int, f, out []int64, parallel bool) error {
	if nx > MaxIsotropicAxis || ny > MaxIsotropicAxis {
		return fmt.Errorf("%w: isotropic EDT axis exceeds %d (got %dx%d); use Transform2D instead", errArgument, MaxIsotropicAxis, nx, ny)
	}
	n := nx * ny
	if len(f) != n || len(out) != n {
		return fmt.Errorf("%w: buffer length %d/%d does not match dims %dx%d=%d", errArgument, len(f), len(out), nx, ny, n)
	}
	if n == 0 {
		return nil
	}
	a := int64Pool.get(n)
	defer int64Pool.put(a)
	copy(a, f)

	runStrides(ny, parallel, func(y int) {
		base := y * nx
		TransformIsotropic1D(a[base:base+nx], out[base:base+nx])
	})
	runStrides(nx, parallel, func(x int) {
		in := int64Pool.get(ny)
		col := int64Pool.get(ny)
		defer int64Pool.put(in)
		defer int64Pool.put(col)
		for y := 0; y < ny; y++ {
			in[y] = out[y*nx+x]
		}
		TransformIsotropic1D(in, col)
		for y := 0; y < ny; y++ {
			out[y*nx+x] = col[y]
		}
	})
	return nil
}
