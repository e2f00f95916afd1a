package voxelfield

// GridIndex is a 3D integer lattice coordinate used for grid and voxel
// index arithmetic.
type GridIndex [3]int32

// Add returns a+b.
func (a GridIndex) Add(b GridIndex) GridIndex {
	return GridIndex{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns a-b.
func (a GridIndex) Sub(b GridIndex) GridIndex {
	return GridIndex{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// AddScalar adds a scalar to each component.
func (a GridIndex) AddScalar(b int32) GridIndex {
	return GridIndex{a[0] + b, a[1] + b, a[2] + b}
}

// SubScalar subtracts a scalar from each component.
func (a GridIndex) SubScalar(b int32) GridIndex {
	return GridIndex{a[0] - b, a[1] - b, a[2] - b}
}

// InRange reports whether a lies in [lo,hi) componentwise.
func (a GridIndex) InRange(lo, hi GridIndex) bool {
	return a[0] >= lo[0] && a[0] < hi[0] &&
		a[1] >= lo[1] && a[1] < hi[1] &&
		a[2] >= lo[2] && a[2] < hi[2]
}

// ToVec3 converts a GridIndex to a Vec3.
func (a GridIndex) ToVec3() Vec3 {
	return Vec3{float32(a[0]), float32(a[1]), float32(a[2])}
}
