package voxelfield

// Tri is a triangular face: three non-negative 0-based indices into a
// Mesh's vertex array.
type Tri struct {
	A, B, C int32
}

// Valid reports whether the three indices are distinct and within
// [0, numVerts).
func (t Tri) Valid(numVerts int) bool {
	if t.A < 0 || t.B < 0 || t.C < 0 {
		return false
	}
	if int(t.A) >= numVerts || int(t.B) >= numVerts || int(t.C) >= numVerts {
		return false
	}
	return t.A != t.B && t.B != t.C && t.A != t.C
}

// edge is an undirected edge key: the (min,max) of two vertex indices.
type edge struct {
	lo, hi int32
}

func newEdge(a, b int32) edge {
	if a < b {
		return edge{a, b}
	}
	return edge{b, a}
}
