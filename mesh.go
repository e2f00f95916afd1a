package voxelfield

import "fmt"

// Mesh owns a vertex array, a face array, and a closed flag derived by a
// watertight test when not supplied explicitly.
type Mesh struct {
	vertices []Vec3
	faces    []Tri
	closed   bool

	boundsValid bool
	bounds      BBox
}

// NewMesh constructs a Mesh from vertices and faces. If closed is nil, the
// closed flag is derived by the watertight test (every undirected edge
// appears exactly twice, once per orientation). Returns ErrArgument if any
// face references an out-of-range or duplicate vertex index.
func NewMesh(vertices []Vec3, faces []Tri, closed *bool) (Mesh, error) {
	for i, f := range faces {
		if !f.Valid(len(vertices)) {
			return Mesh{}, fmt.Errorf("%w: face %d has invalid or degenerate indices %v", ErrArgument, i, f)
		}
	}
	m := Mesh{
		vertices: vertices,
		faces:    faces,
	}
	if closed != nil {
		m.closed = *closed
	} else {
		m.closed = m.watertight()
	}
	return m, nil
}

// Vertices returns the mesh's vertex slice. The caller must not mutate it.
func (m Mesh) Vertices() []Vec3 { return m.vertices }

// Faces returns the mesh's face slice. The caller must not mutate it.
func (m Mesh) Faces() []Tri { return m.faces }

// Closed reports the mesh's watertight flag.
func (m Mesh) Closed() bool { return m.closed }

// TriangleVerts returns the three world-space vertices of face i.
func (m Mesh) TriangleVerts(i int) (a, b, c Vec3) {
	f := m.faces[i]
	return m.vertices[f.A], m.vertices[f.B], m.vertices[f.C]
}

// watertight reports whether every undirected edge appears exactly twice,
// once with each orientation.
func (m Mesh) watertight() bool {
	if len(m.faces) == 0 {
		return false
	}
	type count struct {
		forward, backward int
	}
	seen := make(map[edge]*count, len(m.faces)*3)
	touch := func(a, b int32) {
		e := newEdge(a, b)
		c, ok := seen[e]
		if !ok {
			c = &count{}
			seen[e] = c
		}
		if a < b {
			c.forward++
		} else {
			c.backward++
		}
	}
	for _, f := range m.faces {
		touch(f.A, f.B)
		touch(f.B, f.C)
		touch(f.C, f.A)
	}
	for _, c := range seen {
		if c.forward != 1 || c.backward != 1 {
			return false
		}
	}
	return true
}

// Bounds returns the mesh's bounding box, computing and caching it on first
// call. InvalidateBounds forces recomputation on next call.
func (m *Mesh) Bounds() BBox {
	if m.boundsValid {
		return m.bounds
	}
	bb := EmptyBBox()
	for _, v := range m.vertices {
		bb = bb.ExpandPoint(v)
	}
	m.bounds = bb
	m.boundsValid = true
	return bb
}

// InvalidateBounds clears the cached bounding box, forcing the next Bounds
// call to recompute it.
func (m *Mesh) InvalidateBounds() {
	m.boundsValid = false
}

// EnumerateTriangleBounds calls cb with the bounding box of every face,
// without allocating a slice of results.
func (m Mesh) EnumerateTriangleBounds(cb func(faceIndex int, bb BBox)) {
	for i, f := range m.faces {
		a, b, c := m.vertices[f.A], m.vertices[f.B], m.vertices[f.C]
		bb := EmptyBBox().ExpandPoint(a).ExpandPoint(b).ExpandPoint(c)
		cb(i, bb)
	}
}

// TriangleNormal returns the unit normal of the triangle (a,b,c) via
// (b-a)×(c-a).
func TriangleNormal(a, b, c Vec3) Vec3 {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	return e1.Cross(e2).Normalize()
}

func boxMeshFromCorners(c [8]Vec3, cord CordSystem) Mesh {
	// Corner layout matches BBox.GetCorners: indices 0..7 are
	// (lll, llh, lhl, lhh, hll, hlh, hhl, hhh) where l=min, h=max per axis.
	quads := [6][4]int32{
		{0, 1, 3, 2}, // -x face (min.X)
		{4, 6, 7, 5}, // +x face (max.X)
		{0, 4, 5, 1}, // -y face (min.Y)
		{2, 3, 7, 6}, // +y face (max.Y)
		{0, 2, 6, 4}, // -z face (min.Z)
		{1, 5, 7, 3}, // +z face (max.Z)
	}
	verts := make([]Vec3, 0, 24)
	faces := make([]Tri, 0, 12)
	for _, q := range quads {
		base := int32(len(verts))
		verts = append(verts, c[q[0]], c[q[1]], c[q[2]], c[q[3]])
		appendQuadFaces(&faces, base, cord)
	}
	closed := true
	m, _ := NewMesh(verts, faces, &closed)
	return m
}

// appendQuadFaces appends the two triangles of a quad (vertices base..base+3)
// with winding selected by cord.
func appendQuadFaces(faces *[]Tri, base int32, cord CordSystem) {
	if cord == RightHanded {
		*faces = append(*faces,
			Tri{base + 0, base + 1, base + 2},
			Tri{base + 0, base + 2, base + 3},
		)
	} else {
		*faces = append(*faces,
			Tri{base + 0, base + 2, base + 1},
			Tri{base + 0, base + 3, base + 2},
		)
	}
}
