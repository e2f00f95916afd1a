package raster

import (
	"gonum.org/v1/gonum/spatial/r3"

	voxelfield "github.com/soypat/voxelfield"
)

func toR3(v voxelfield.Vec3) r3.Vec { return r3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)} }

func fromR3(v r3.Vec) voxelfield.Vec3 {
	return voxelfield.Vec3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
