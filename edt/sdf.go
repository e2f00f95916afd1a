package edt

import "fmt"

// Mask values accepted by the SDF builders, mirroring the root package's
// Occupancy enum without importing it so edt stays dependency-free of the
// root package.
const (
	MaskOutside  uint8 = 0
	MaskInside   uint8 = 1
	MaskBoundary uint8 = 2
)

// SDFFromBinaryMask builds a signed distance field from a two-valued
// occupancy mask (MaskOutside/MaskInside) using the weighted (anisotropic)
// transform: two EDT passes, one seeded at inside voxels and one at outside
// voxels, combined as sqrt(Dfg)-sqrt(Dbg) so the field is negative inside
// and positive outside.
func SDFFromBinaryMask(d Dims, sp Spacing, mask []uint8, out []float32, parallel bool) error {
	n := d.Count()
	if len(mask) != n || len(out) != n {
		return fmt.Errorf("%w: mask/out length %d/%d does not match dims %dx%dx%d=%d", errArgument, len(mask), len(out), d.Nx, d.Ny, d.Nz, n)
	}
	fg := getBuf(n)
	bg := getBuf(n)
	dfg := getBuf(n)
	dbg := getBuf(n)
	defer putBuf(fg)
	defer putBuf(bg)
	defer putBuf(dfg)
	defer putBuf(dbg)

	for i, m := range mask {
		if m == MaskInside {
			fg[i] = 0
			bg[i] = sentinelWeighted
		} else {
			fg[i] = sentinelWeighted
			bg[i] = 0
		}
	}
	if err := Transform3D(d, sp, fg, dfg, parallel); err != nil {
		return err
	}
	if err := Transform3D(d, sp, bg, dbg, parallel); err != nil {
		return err
	}
	combineSigned(dfg, dbg, out)
	return nil
}

// SDFFromTernaryMask is SDFFromBinaryMask extended to a three-valued mask
// (MaskOutside/MaskInside/MaskBoundary): boundary voxels seed both passes so
// they land at (or within rounding of) zero, and are then snapped to
// exactly 0.0 to remove floating noise on the zero level set.
func SDFFromTernaryMask(d Dims, sp Spacing, mask []uint8, out []float32, parallel bool) error {
	n := d.Count()
	if len(mask) != n || len(out) != n {
		return fmt.Errorf("%w: mask/out length %d/%d does not match dims %dx%dx%d=%d", errArgument, len(mask), len(out), d.Nx, d.Ny, d.Nz, n)
	}
	fg := getBuf(n)
	bg := getBuf(n)
	dfg := getBuf(n)
	dbg := getBuf(n)
	defer putBuf(fg)
	defer putBuf(bg)
	defer putBuf(dfg)
	defer putBuf(dbg)

	for i, m := range mask {
		switch m {
		case MaskInside, MaskBoundary:
			fg[i] = 0
		default:
			fg[i] = sentinelWeighted
		}
		switch m {
		case MaskOutside, MaskBoundary:
			bg[i] = 0
		default:
			bg[i] = sentinelWeighted
		}
	}
	if err := Transform3D(d, sp, fg, dfg, parallel); err != nil {
		return err
	}
	if err := Transform3D(d, sp, bg, dbg, parallel); err != nil {
		return err
	}
	combineSigned(dfg, dbg, out)
	snapBoundary(mask, out)
	return nil
}

// SDFFromBinaryMaskIsotropic is SDFFromBinaryMask specialized to unit
// spacing, exact in integer arithmetic; it requires every axis to be at
// most MaxIsotropicAxis (Transform3DIsotropic enforces this).
func SDFFromBinaryMaskIsotropic(d Dims, mask []uint8, out []float32, parallel bool) error {
	n := d.Count()
	if len(mask) != n || len(out) != n {
		return fmt.Errorf("%w: mask/out length %d/%d does not match dims %dx%dx%d=%d", errArgument, len(mask), len(out), d.Nx, d.Ny, d.Nz, n)
	}
	fg := int64Pool.get(n)
	bg := int64Pool.get(n)
	dfg := int64Pool.get(n)
	dbg := int64Pool.get(n)
	defer int64Pool.put(fg)
	defer int64Pool.put(bg)
	defer int64Pool.put(dfg)
	defer int64Pool.put(dbg)

	for i, m := range mask {
		if m == MaskInside {
			fg[i] = 0
			bg[i] = sentinelIsotropic
		} else {
			fg[i] = sentinelIsotropic
			bg[i] = 0
		}
	}
	if err := Transform3DIsotropic(d, fg, dfg, parallel); err != nil {
		return err
	}
	if err := Transform3DIsotropic(d, bg, dbg, parallel); err != nil {
		return err
	}
	combineSignedInt(dfg, dbg, out)
	return nil
}

// SDFFromTernaryMaskIsotropic is the integer-exact counterpart of
// SDFFromTernaryMask.
func SDFFromTernaryMaskIsotropic(d Dims, mask []uint8, out []float32, parallel bool) error {
	n := d.Count()
	if len(mask) != n || len(out) != n {
		return fmt.Errorf("%w: mask/out length %d/%d does not match dims %dx%dx%d=%d", errArgument, len(mask), len(out), d.Nx, d.Ny, d.Nz, n)
	}
	fg := int64Pool.get(n)
	bg := int64Pool.get(n)
	dfg := int64Pool.get(n)
	dbg := int64Pool.get(n)
	defer int64Pool.put(fg)
	defer int64Pool.put(bg)
	defer int64Pool.put(dfg)
	defer int64Pool.put(dbg)

	for i, m := range mask {
		switch m {
		case MaskInside, MaskBoundary:
			fg[i] = 0
		default:
			fg[i] = sentinelIsotropic
		}
		switch m {
		case MaskOutside, MaskBoundary:
			bg[i] = 0
		default:
			bg[i] = sentinelIsotropic
		}
	}
	if err := Transform3DIsotropic(d, fg, dfg, parallel); err != nil {
		return err
	}
	if err := Transform3DIsotropic(d, bg, dbg, parallel); err != nil {
		return err
	}
	combineSignedInt(dfg, dbg, out)
	snapBoundary(mask, out)
	return nil
}

func combineSigned(dfg, dbg []float64, out []float32) {
	for i := range out {
		out[i] = float32(sqrt64(dfg[i]) - sqrt64(dbg[i]))
	}
}

func combineSignedInt(dfg, dbg []int64, out []float32) {
	for i := range out {
		out[i] = float32(sqrt64(float64(dfg[i])) - sqrt64(float64(dbg[i])))
	}
}

func snapBoundary(mask []uint8, out []float32) {
	for i, m := range mask {
		if m == MaskBoundary {
			out[i] = 0
		}
	}
}
