package voxelfield

import "testing"

func TestEmptyBBoxExpand(t *testing.T) {
	bb := EmptyBBox()
	if bb.Valid() {
		t.Fatal("empty box must be degenerate")
	}
	if bb.SurfaceArea() != 0 {
		t.Fatal("degenerate box must have zero surface area")
	}
	bb = bb.ExpandPoint(Vec3{X: 1, Y: 2, Z: 3})
	if !bb.Valid() || bb.Min != bb.Max {
		t.Fatalf("single point box: got %v", bb)
	}
	bb = bb.ExpandPoint(Vec3{X: -1, Y: 0, Z: 5})
	want := BBox{Min: Vec3{X: -1, Y: 0, Z: 3}, Max: Vec3{X: 1, Y: 2, Z: 5}}
	if bb != want {
		t.Fatalf("expand: got %v, want %v", bb, want)
	}
}

func TestBBoxContainsInclusive(t *testing.T) {
	bb := BBox{Min: Elem(0), Max: Elem(1)}
	for _, p := range []Vec3{Elem(0), Elem(1), {X: 0, Y: 1, Z: 0.5}} {
		if !bb.ContainsPoint(p) {
			t.Fatalf("face point %v must be contained", p)
		}
	}
	if bb.ContainsPoint(Vec3{X: 1.0001, Y: 0, Z: 0}) {
		t.Fatal("exterior point contained")
	}
	if !bb.ContainsBox(bb) {
		t.Fatal("box must contain itself")
	}
	if !bb.Intersects(BBox{Min: Elem(1), Max: Elem(2)}) {
		t.Fatal("face-touching boxes must intersect")
	}
	if bb.Intersects(BBox{Min: Elem(1.5), Max: Elem(2)}) {
		t.Fatal("disjoint boxes must not intersect")
	}
}

func TestBBoxDerived(t *testing.T) {
	bb := BBox{Min: Elem(0), Max: Vec3{X: 1, Y: 2, Z: 3}}
	if c := bb.Center(); c != (Vec3{X: 0.5, Y: 1, Z: 1.5}) {
		t.Fatalf("center: got %v", c)
	}
	if s := bb.Size(); s != (Vec3{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("size: got %v", s)
	}
	if sa := bb.SurfaceArea(); sa != 2*(1*2+2*3+3*1) {
		t.Fatalf("surface area: got %v", sa)
	}
}

func TestBBoxToMesh(t *testing.T) {
	bb := BBox{Min: Elem(-0.5), Max: Elem(0.5)}
	for _, cord := range []CordSystem{RightHanded, LeftHanded} {
		m := bb.ToMesh(cord)
		if len(m.Vertices()) != 24 || len(m.Faces()) != 12 {
			t.Fatalf("box mesh: %d verts, %d faces", len(m.Vertices()), len(m.Faces()))
		}
		if !m.Closed() {
			t.Fatal("box mesh must be closed")
		}
		if got := m.Bounds(); got != bb {
			t.Fatalf("box mesh bounds: got %v", got)
		}
	}
	// Outward normals flip with handedness.
	rh := bb.ToMesh(RightHanded)
	lh := bb.ToMesh(LeftHanded)
	for i := range rh.Faces() {
		a, b, c := rh.TriangleVerts(i)
		nR := TriangleNormal(a, b, c)
		a, b, c = lh.TriangleVerts(i)
		nL := TriangleNormal(a, b, c)
		if nR.Add(nL).Length() > 1e-6 {
			t.Fatalf("face %d: left-handed normal %v is not the negation of %v", i, nL, nR)
		}
	}
}

func TestBBoxGetCorners(t *testing.T) {
	bb := BBox{Min: Elem(0), Max: Elem(1)}
	var c [8]Vec3
	bb.GetCorners(c[:])
	seen := make(map[Vec3]bool)
	for _, p := range c {
		if !bb.ContainsPoint(p) {
			t.Fatalf("corner %v outside box", p)
		}
		if seen[p] {
			t.Fatalf("duplicate corner %v", p)
		}
		seen[p] = true
	}
}
