package voxelfield

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
)

func TestPolylineLength(t *testing.T) {
	p, err := NewPolyline([]Vec3{{0, 0, 0}, {3, 0, 0}, {3, 4, 0}}, false)
	if err != nil {
		t.Fatal(err)
	}
	if p.Length() != 7 {
		t.Fatalf("length: got %v", p.Length())
	}
	if p.IsClosed() {
		t.Fatal("open polyline reported closed")
	}
}

func TestPolylineClosedValidation(t *testing.T) {
	if _, err := NewPolyline([]Vec3{{0, 0, 0}, {1, 0, 0}}, true); !errors.Is(err, ErrArgument) {
		t.Fatalf("closed with 2 vertices: got %v", err)
	}
	if _, err := NewPolyline([]Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}, true); !errors.Is(err, ErrArgument) {
		t.Fatalf("closed without coincident endpoints: got %v", err)
	}
	p, err := NewPolyline([]Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 0, 0}}, true)
	if err != nil {
		t.Fatal(err)
	}
	want := 1 + 1 + math32.Sqrt(2)
	if math32.Abs(p.Length()-want) > 1e-6 {
		t.Fatalf("closed length: got %v, want %v", p.Length(), want)
	}
}

func TestPolylineAppendIncrementalLength(t *testing.T) {
	var p Polyline
	p.Append(Vec3{0, 0, 0})
	if p.Length() != 0 {
		t.Fatalf("single vertex length: got %v", p.Length())
	}
	p.Append(Vec3{1, 0, 0})
	p.AppendMany([]Vec3{{1, 1, 0}, {1, 1, 2}})
	if got := p.Length(); got != 4 {
		t.Fatalf("appended length: got %v", got)
	}
	if len(p.Vertices()) != 4 {
		t.Fatalf("vertex count: got %d", len(p.Vertices()))
	}
}
