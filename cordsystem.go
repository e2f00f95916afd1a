package voxelfield

// CordSystem selects the handedness convention used when emitting generated
// triangle winding (box meshes, voxel mesher quads). The only observable
// effect is face winding; everything else is handedness-agnostic.
type CordSystem uint8

const (
	// RightHanded winds generated triangles (0,1,2)+(0,2,3) per quad.
	RightHanded CordSystem = iota
	// LeftHanded winds generated triangles (0,2,1)+(0,3,2) per quad,
	// i.e. b and c are swapped relative to RightHanded.
	LeftHanded
)
