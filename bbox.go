package voxelfield

import "github.com/chewxy/math32"

// BBox is an axis-aligned bounding box with an Empty representation that
// Expand can grow from scratch.
type BBox struct {
	Min, Max Vec3
}

// EmptyBBox returns a BBox positioned so that Expand grows it from scratch:
// Min = +inf, Max = -inf componentwise.
func EmptyBBox() BBox {
	return BBox{
		Min: Elem(math32.Inf(1)),
		Max: Elem(math32.Inf(-1)),
	}
}

// Valid reports whether the box is non-degenerate: min <= max elementwise.
func (b BBox) Valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Center returns (min+max)/2.
func (b BBox) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns max-min.
func (b BBox) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// SurfaceArea returns 2(xy+yz+zx) of the box's size, or 0 if invalid.
func (b BBox) SurfaceArea() float32 {
	if !b.Valid() {
		return 0
	}
	s := b.Size()
	return 2 * (s.X*s.Y + s.Y*s.Z + s.Z*s.X)
}

// ExpandPoint returns a box enlarged, if needed, to contain p.
func (b BBox) ExpandPoint(p Vec3) BBox {
	return BBox{Min: MinElem(b.Min, p), Max: MaxElem(b.Max, p)}
}

// ExpandBox returns a box enclosing b and other.
func (b BBox) ExpandBox(other BBox) BBox {
	return BBox{Min: MinElem(b.Min, other.Min), Max: MaxElem(b.Max, other.Max)}
}

// ContainsPoint reports whether p lies within b, bounds inclusive.
func (b BBox) ContainsPoint(p Vec3) bool {
	return b.Min.X <= p.X && b.Min.Y <= p.Y && b.Min.Z <= p.Z &&
		p.X <= b.Max.X && p.Y <= b.Max.Y && p.Z <= b.Max.Z
}

// ContainsBox reports whether other lies entirely within b, bounds inclusive.
func (b BBox) ContainsBox(other BBox) bool {
	return b.ContainsPoint(other.Min) && b.ContainsPoint(other.Max)
}

// Intersects reports whether b and other overlap, bounds inclusive.
func (b BBox) Intersects(other BBox) bool {
	return b.Min.X <= other.Max.X && other.Min.X <= b.Max.X &&
		b.Min.Y <= other.Max.Y && other.Min.Y <= b.Max.Y &&
		b.Min.Z <= other.Max.Z && other.Min.Z <= b.Max.Z
}

// GetCorners writes the box's 8 corner vertices to out, which must have
// length 8, in min/max bit-pattern order (x varies slowest).
func (b BBox) GetCorners(out []Vec3) {
	if len(out) < 8 {
		panic("voxelfield: GetCorners requires an 8-element slice")
	}
	out[0] = b.Min
	out[1] = Vec3{b.Min.X, b.Min.Y, b.Max.Z}
	out[2] = Vec3{b.Min.X, b.Max.Y, b.Min.Z}
	out[3] = Vec3{b.Min.X, b.Max.Y, b.Max.Z}
	out[4] = Vec3{b.Max.X, b.Min.Y, b.Min.Z}
	out[5] = Vec3{b.Max.X, b.Min.Y, b.Max.Z}
	out[6] = Vec3{b.Max.X, b.Max.Y, b.Min.Z}
	out[7] = b.Max
	return
}

// ToMesh returns a standalone 24-vertex/12-triangle box mesh for b, winding
// according to cord.
func (b BBox) ToMesh(cord CordSystem) Mesh {
	var corners [8]Vec3
	b.GetCorners(corners[:])
	return boxMeshFromCorners(corners, cord)
}
