package voxelfield

import (
	"bytes"
	"errors"
	"testing"
)

func TestSTLRoundTrip(t *testing.T) {
	verts, faces := pyramid()
	m, err := NewMesh(verts, faces, nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteSTL(&buf, m); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 84+50*len(faces) {
		t.Fatalf("stream length: got %d", buf.Len())
	}
	back, err := ReadSTL(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Faces()) != len(faces) {
		t.Fatalf("face count: got %d, want %d", len(back.Faces()), len(faces))
	}
	for i := range faces {
		wa, wb, wc := m.TriangleVerts(i)
		ga, gb, gc := back.TriangleVerts(i)
		if wa != ga || wb != gb || wc != gc {
			t.Fatalf("face %d differs: (%v,%v,%v) != (%v,%v,%v)", i, ga, gb, gc, wa, wb, wc)
		}
	}
}

func TestWriteSTLEmptyMesh(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSTL(&buf, Mesh{}); !errors.Is(err, ErrArgument) {
		t.Fatalf("empty mesh: got %v", err)
	}
}

func TestReadSTLBadHeader(t *testing.T) {
	if _, err := ReadSTL(bytes.NewReader(make([]byte, 10))); !errors.Is(err, ErrFormat) {
		t.Fatalf("truncated header: got %v", err)
	}
	// A full header declaring zero triangles is also rejected.
	if _, err := ReadSTL(bytes.NewReader(make([]byte, 84))); !errors.Is(err, ErrFormat) {
		t.Fatalf("zero triangles: got %v", err)
	}
}
