package edt

import (
	"math"
	"testing"
)

// buildUnitCubeMask returns a 5x5x5 binary mask with a solid 3x3x3 cube of
// MaskInside centered in a MaskOutside volume.
func buildUnitCubeMask(d Dims) []uint8 {
	mask := make([]uint8, d.Count())
	for z := 0; z < d.Nz; z++ {
		for y := 0; y < d.Ny; y++ {
			for x := 0; x < d.Nx; x++ {
				i := x + y*d.Nx + z*d.Nx*d.Ny
				if x >= 1 && x <= 3 && y >= 1 && y <= 3 && z >= 1 && z <= 3 {
					mask[i] = MaskInside
				} else {
					mask[i] = MaskOutside
				}
			}
		}
	}
	return mask
}

func TestSDFFromBinaryMaskSignLaw(t *testing.T) {
	d := Dims{Nx: 5, Ny: 5, Nz: 5}
	sp := Spacing{Wx: 1, Wy: 1, Wz: 1}
	mask := buildUnitCubeMask(d)
	out := make([]float32, d.Count())
	if err := SDFFromBinaryMask(d, sp, mask, out, false); err != nil {
		t.Fatal(err)
	}
	for i, m := range mask {
		if m == MaskInside && out[i] > 0 {
			t.Fatalf("cell %d inside mask has positive sdf %v", i, out[i])
		}
		if m == MaskOutside && out[i] < 0 {
			t.Fatalf("cell %d outside mask has negative sdf %v", i, out[i])
		}
	}
	center := 2 + 2*d.Nx + 2*d.Nx*d.Ny
	if out[center] >= 0 {
		t.Fatalf("center of solid cube should be strictly negative, got %v", out[center])
	}
}

func TestSDFFromTernaryMaskZeroSnap(t *testing.T) {
	d := Dims{Nx: 5, Ny: 5, Nz: 5}
	sp := Spacing{Wx: 1, Wy: 1, Wz: 1}
	mask := buildUnitCubeMask(d)
	// mark the cube's boundary shell explicitly
	for z := 1; z <= 3; z++ {
		for y := 1; y <= 3; y++ {
			for x := 1; x <= 3; x++ {
				if x == 1 || x == 3 || y == 1 || y == 3 || z == 1 || z == 3 {
					mask[x+y*d.Nx+z*d.Nx*d.Ny] = MaskBoundary
				}
			}
		}
	}
	out := make([]float32, d.Count())
	if err := SDFFromTernaryMask(d, sp, mask, out, false); err != nil {
		t.Fatal(err)
	}
	for i, m := range mask {
		if m == MaskBoundary && out[i] != 0 {
			t.Fatalf("boundary cell %d not snapped to zero: %v", i, out[i])
		}
	}
}

func TestSDFIsotropicMatchesWeightedUnitSpacing(t *testing.T) {
	d := Dims{Nx: 5, Ny: 5, Nz: 5}
	mask := buildUnitCubeMask(d)
	outIso := make([]float32, d.Count())
	outW := make([]float32, d.Count())
	if err := SDFFromBinaryMaskIsotropic(d, mask, outIso, false); err != nil {
		t.Fatal(err)
	}
	if err := SDFFromBinaryMask(d, Spacing{1, 1, 1}, mask, outW, false); err != nil {
		t.Fatal(err)
	}
	for i := range outIso {
		if math.Abs(float64(outIso[i]-outW[i])) > 1e-4 {
			t.Fatalf("cell %d: isotropic=%v weighted=%v", i, outIso[i], outW[i])
		}
	}
}

func TestSDFRejectsMismatchedLength(t *testing.T) {
	d := Dims{Nx: 2, Ny: 2, Nz: 2}
	mask := make([]uint8, 4)
	out := make([]float32, d.Count())
	if err := SDFFromBinaryMask(d, Spacing{1, 1, 1}, mask, out, false); err == nil {
		t.Fatal("expected error for mismatched mask length, got nil")
	}
}
