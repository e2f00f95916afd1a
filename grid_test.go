package voxelfield

import "testing"

func TestNewGridMetaExtents(t *testing.T) {
	bb := BBox{Min: Elem(-2), Max: Elem(2)}
	meta, err := NewGridMeta(bb, Elem(1))
	if err != nil {
		t.Fatal(err)
	}
	if meta.MinX != -2 || meta.MinY != -2 || meta.MinZ != -2 {
		t.Fatalf("origin: got %v", meta.Origin())
	}
	if meta.Nx != 4 || meta.Ny != 4 || meta.Nz != 4 {
		t.Fatalf("extent: got %v", meta.Extent())
	}
	if meta.Count() != 64 {
		t.Fatalf("count: got %d", meta.Count())
	}
	wb := meta.WorldBounds()
	if wb.Min != Elem(-2) || wb.Max != Elem(2) {
		t.Fatalf("world bounds: got %v", wb)
	}
	if sw := meta.SizeWorld(); sw != Elem(4) {
		t.Fatalf("size world: got %v", sw)
	}
}

func TestNewGridMetaBadArgs(t *testing.T) {
	bb := BBox{Min: Elem(0), Max: Elem(1)}
	if _, err := NewGridMeta(bb, Vec3{X: 1, Y: 0, Z: 1}); err == nil {
		t.Fatal("expected error for zero voxel size")
	}
	if _, err := NewGridMeta(BBox{Min: Elem(1), Max: Elem(0)}, Elem(1)); err == nil {
		t.Fatal("expected error for inverted bounds")
	}
}

func TestQuantizationBias(t *testing.T) {
	size := Elem(1)
	// A point exactly on a lattice plane lands in the cell above the plane
	// for min queries and in the cell below it for max-inclusive ones.
	if got := WorldToGridMin(Elem(1), size); got != (GridIndex{1, 1, 1}) {
		t.Fatalf("min: got %v", got)
	}
	if got := WorldToGridMaxInclusive(Elem(1), size); got != (GridIndex{0, 0, 0}) {
		t.Fatalf("max inclusive: got %v", got)
	}
	if got := WorldToGridMin(Vec3{X: 0.5, Y: -0.5, Z: 1.5}, size); got != (GridIndex{0, -1, 1}) {
		t.Fatalf("interior: got %v", got)
	}
}

func TestLinUnlinRoundTrip(t *testing.T) {
	meta, err := NewGridMeta(BBox{Min: Vec3{X: -1, Y: 0, Z: 2}, Max: Vec3{X: 2, Y: 2, Z: 5}}, Elem(1))
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[int]bool)
	for z := meta.MinZ; z < meta.MinZ+meta.Nz; z++ {
		for y := meta.MinY; y < meta.MinY+meta.Ny; y++ {
			for x := meta.MinX; x < meta.MinX+meta.Nx; x++ {
				idx := GridIndex{x, y, z}
				lin := meta.Lin(idx)
				if lin < 0 || lin >= meta.Count() {
					t.Fatalf("lin out of range: %d for %v", lin, idx)
				}
				if seen[lin] {
					t.Fatalf("duplicate lin %d for %v", lin, idx)
				}
				seen[lin] = true
				if back := meta.Unlin(lin); back != idx {
					t.Fatalf("unlin(%d): got %v, want %v", lin, back, idx)
				}
			}
		}
	}
	// x must be the fastest axis.
	if meta.Lin(GridIndex{meta.MinX + 1, meta.MinY, meta.MinZ}) != 1 {
		t.Fatal("x is not the fastest axis")
	}
}

func TestIndexCorners(t *testing.T) {
	meta, err := NewGridMeta(BBox{Min: Elem(0), Max: Elem(2)}, Vec3{X: 1, Y: 0.5, Z: 2})
	if err != nil {
		t.Fatal(err)
	}
	idx := GridIndex{1, 2, 0}
	if lo := meta.IndexToMinCorner(idx); lo != (Vec3{X: 1, Y: 1, Z: 0}) {
		t.Fatalf("min corner: got %v", lo)
	}
	if hi := meta.IndexToMaxCorner(idx); hi != (Vec3{X: 2, Y: 1.5, Z: 2}) {
		t.Fatalf("max corner: got %v", hi)
	}
}
