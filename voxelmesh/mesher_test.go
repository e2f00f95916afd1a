package voxelmesh

import (
	"errors"
	"testing"

	voxelfield "github.com/soypat/voxelfield"
)

func TestGenerateMeshSingleVoxel(t *testing.T) {
	m, err := DiscreteMesher{}.GenerateMesh(
		[]voxelfield.Vec3{{1, 2, 3}}, voxelfield.Elem(1), voxelfield.RightHanded)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Faces()) != 12 || len(m.Vertices()) != 24 {
		t.Fatalf("single voxel: %d faces, %d verts", len(m.Faces()), len(m.Vertices()))
	}
	if !m.Closed() {
		t.Fatal("voxel surface must be closed")
	}
	want := voxelfield.BBox{Min: voxelfield.Vec3{X: 1, Y: 2, Z: 3}, Max: voxelfield.Vec3{X: 2, Y: 3, Z: 4}}
	if got := m.Bounds(); got != want {
		t.Fatalf("bounds: got %v, want %v", got, want)
	}
}

func TestGenerateMeshCullsSharedFace(t *testing.T) {
	origins := []voxelfield.Vec3{{0, 0, 0}, {1, 0, 0}}
	m, err := DiscreteMesher{}.GenerateMesh(origins, voxelfield.Elem(1), voxelfield.RightHanded)
	if err != nil {
		t.Fatal(err)
	}
	// Two boxes share one face: 12 - 2 = 10 quads, 20 triangles.
	if len(m.Faces()) != 20 {
		t.Fatalf("culled mesh: %d triangles, want 20", len(m.Faces()))
	}
}

func TestGenerateMeshNonUniformSkipsCulling(t *testing.T) {
	origins := []voxelfield.Vec3{{0, 0, 0}, {1, 0, 0}}
	m, err := DiscreteMesher{}.GenerateMesh(origins, voxelfield.Vec3{X: 1, Y: 1, Z: 2}, voxelfield.RightHanded)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Faces()) != 24 {
		t.Fatalf("non-uniform mesh: %d triangles, want 24", len(m.Faces()))
	}
}

func TestGenerateMeshOutwardNormals(t *testing.T) {
	m, err := DiscreteMesher{}.GenerateMesh(
		[]voxelfield.Vec3{{0, 0, 0}}, voxelfield.Elem(2), voxelfield.RightHanded)
	if err != nil {
		t.Fatal(err)
	}
	center := voxelfield.Elem(1)
	for i := range m.Faces() {
		a, b, c := m.TriangleVerts(i)
		n := voxelfield.TriangleNormal(a, b, c)
		faceCenter := a.Add(b).Add(c).Scale(1.0 / 3.0)
		if n.Dot(faceCenter.Sub(center)) <= 0 {
			t.Fatalf("face %d: normal %v points inward", i, n)
		}
	}
}

func TestGenerateMeshLeftHandedFlipsWinding(t *testing.T) {
	origins := []voxelfield.Vec3{{0, 0, 0}}
	rh, err := DiscreteMesher{}.GenerateMesh(origins, voxelfield.Elem(1), voxelfield.RightHanded)
	if err != nil {
		t.Fatal(err)
	}
	lh, err := DiscreteMesher{}.GenerateMesh(origins, voxelfield.Elem(1), voxelfield.LeftHanded)
	if err != nil {
		t.Fatal(err)
	}
	for i := range rh.Faces() {
		a, b, c := rh.TriangleVerts(i)
		nR := voxelfield.TriangleNormal(a, b, c)
		a, b, c = lh.TriangleVerts(i)
		nL := voxelfield.TriangleNormal(a, b, c)
		if nR.Add(nL).Length() > 1e-6 {
			t.Fatalf("face %d: %v is not the negation of %v", i, nL, nR)
		}
	}
}

func TestGenerateMeshNoisyOriginsDedupNeighbours(t *testing.T) {
	// Origins carry float noise below the quantization tolerance; the
	// shared face must still be culled.
	origins := []voxelfield.Vec3{{0, 0, 0}, {1.0000001, 0, 0}}
	m, err := DiscreteMesher{}.GenerateMesh(origins, voxelfield.Elem(1), voxelfield.RightHanded)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Faces()) != 20 {
		t.Fatalf("noisy origins: %d triangles, want 20", len(m.Faces()))
	}
}

func TestGenerateMeshEmptySet(t *testing.T) {
	if _, err := (DiscreteMesher{}).GenerateMesh(nil, voxelfield.Elem(1), voxelfield.RightHanded); !errors.Is(err, voxelfield.ErrInvariant) {
		t.Fatalf("empty set: got %v", err)
	}
	if _, err := (DiscreteMesher{}).GetVoxelBounds(nil, voxelfield.Elem(1)); !errors.Is(err, voxelfield.ErrInvariant) {
		t.Fatalf("empty bounds: got %v", err)
	}
}

func TestGenerateMeshesPairwise(t *testing.T) {
	sets := [][]voxelfield.Vec3{
		{{0, 0, 0}},
		{{0, 0, 0}, {0, 1, 0}},
	}
	sizes := []voxelfield.Vec3{voxelfield.Elem(1), voxelfield.Elem(0.5)}
	ms, err := DiscreteMesher{}.GenerateMeshes(sets, sizes, voxelfield.RightHanded)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != 2 {
		t.Fatalf("mesh count: got %d", len(ms))
	}
	if len(ms[0].Faces()) != 12 || len(ms[1].Faces()) != 20 {
		t.Fatalf("face counts: %d, %d", len(ms[0].Faces()), len(ms[1].Faces()))
	}
	if _, err := (DiscreteMesher{}).GenerateMeshes(sets, sizes[:1], voxelfield.RightHanded); !errors.Is(err, voxelfield.ErrArgument) {
		t.Fatalf("mismatched lengths: got %v", err)
	}
}

func TestGenerateMeshNaive(t *testing.T) {
	origins := []voxelfield.Vec3{{0, 0, 0}, {1, 0, 0}}
	m, err := DiscreteMesher{}.GenerateMeshNaive(origins, voxelfield.Elem(1), voxelfield.RightHanded)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Faces()) != 24 || len(m.Vertices()) != 48 {
		t.Fatalf("naive mesh: %d faces, %d verts", len(m.Faces()), len(m.Vertices()))
	}
}

func TestGetVoxelBounds(t *testing.T) {
	origins := []voxelfield.Vec3{{0, 0, 0}, {2, 1, 0}}
	bb, err := DiscreteMesher{}.GetVoxelBounds(origins, voxelfield.Elem(1))
	if err != nil {
		t.Fatal(err)
	}
	want := voxelfield.BBox{Min: voxelfield.Vec3{}, Max: voxelfield.Vec3{X: 3, Y: 2, Z: 1}}
	if bb != want {
		t.Fatalf("bounds: got %v, want %v", bb, want)
	}
}
