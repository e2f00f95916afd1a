package edt

import (
	"math"
	"testing"
)

func TestTransform3DSingleSeedCorners(t *testing.T) {
	d := Dims{Nx: 3, Ny: 3, Nz: 3}
	sp := Spacing{Wx: 1, Wy: 1, Wz: 1}
	f := make([]float64, d.Count())
	for i := range f {
		f[i] = sentinelWeighted
	}
	seed := 0 // (0,0,0)
	f[seed] = 0
	out := make([]float64, d.Count())
	if err := Transform3D(d, sp, f, out, false); err != nil {
		t.Fatal(err)
	}
	// corner (2,2,2) linear index:
	idx := 2 + 2*d.Nx + 2*d.Nx*d.Ny
	want := 4.0 + 4.0 + 4.0
	if math.Abs(out[idx]-want) > 1e-6 {
		t.Fatalf("far corner = %v, want %v", out[idx], want)
	}
	if out[seed] != 0 {
		t.Fatalf("seed cell = %v, want 0", out[seed])
	}
}

func TestTransform3DDeterministicParallelVsSequential(t *testing.T) {
	d := Dims{Nx: 7, Ny: 5, Nz: 6}
	sp := Spacing{Wx: 1, Wy: 2.25, Wz: 0.64}
	n := d.Count()
	f := make([]float64, n)
	for i := range f {
		if i%13 == 0 {
			f[i] = 0
		} else {
			f[i] = sentinelWeighted
		}
	}
	seq := make([]float64, n)
	par := make([]float64, n)
	if err := Transform3D(d, sp, f, seq, false); err != nil {
		t.Fatal(err)
	}
	if err := Transform3D(d, sp, f, par, true); err != nil {
		t.Fatal(err)
	}
	for i := range seq {
		if seq[i] != par[i] {
			t.Fatalf("mismatch at %d: seq=%v par=%v", i, seq[i], par[i])
		}
	}
}

func TestTransform3DIsotropicMatchesWeightedUnitSpacing(t *testing.T) {
	d := Dims{Nx: 6, Ny: 4, Nz: 5}
	n := d.Count()
	fInt := make([]int64, n)
	fFloat := make([]float64, n)
	for i := range fInt {
		if i%7 == 0 {
			fInt[i] = 0
			fFloat[i] = 0
		} else {
			fInt[i] = sentinelIsotropic
			fFloat[i] = sentinelWeighted
		}
	}
	outInt := make([]int64, n)
	outFloat := make([]float64, n)
	if err := Transform3DIsotropic(d, fInt, outInt, false); err != nil {
		t.Fatal(err)
	}
	if err := Transform3D(d, Spacing{1, 1, 1}, fFloat, outFloat, false); err != nil {
		t.Fatal(err)
	}
	for i := range outInt {
		if math.Abs(float64(outInt[i])-outFloat[i]) > 1e-6 {
			t.Fatalf("cell %d: isotropic=%v weighted=%v", i, outInt[i], outFloat[i])
		}
	}
}

func TestTransform3DIsotropicRejectsOversizedAxis(t *testing.T) {
	d := Dims{Nx: MaxIsotropicAxis + 1, Ny: 1, Nz: 1}
	f := make([]int64, d.Count())
	out := make([]int64, d.Count())
	if err := Transform3DIsotropic(d, f, out, false); err == nil {
		t.Fatal("expected error for oversized axis, got nil")
	}
}

func TestTransform3DRejectsMismatchedLength(t *testing.T) {
	d := Dims{Nx: 2, Ny: 2, Nz: 2}
	f := make([]float64, 4)
	out := make([]float64, d.Count())
	if err := Transform3D(d, Spacing{1, 1, 1}, f, out, false); err == nil {
		t.Fatal("expected error for mismatched buffer length, got nil")
	}
}
