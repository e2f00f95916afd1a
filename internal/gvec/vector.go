// Package gvec provides float64 vector helpers used internally by the SAT
// triangle-box test and the rasterizer's bounds math, where the public
// float32 Vec3/BBox types would lose precision during accumulation. They
// are free functions over gonum's r3.Vec.
package gvec

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// MinElem returns a vector with the minimum components of two vectors.
func MinElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

// MaxElem returns a vector with the maximum components of two vectors.
func MaxElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

// AbsElem returns the componentwise absolute value of a.
func AbsElem(a r3.Vec) r3.Vec {
	return r3.Vec{X: math.Abs(a.X), Y: math.Abs(a.Y), Z: math.Abs(a.Z)}
}
