package voxelfield

import "errors"

// Sentinel error kinds, wrapped with fmt.Errorf("%w: ...", Err*) at call
// sites.
var (
	// ErrArgument marks a bad argument: wrong buffer length, non-positive
	// dimension or spacing, mismatched slice lengths, invalid mesh indices.
	ErrArgument = errors.New("voxelfield: invalid argument")
	// ErrOutOfRange marks an index or position outside grid bounds.
	ErrOutOfRange = errors.New("voxelfield: out of range")
	// ErrFormat marks a malformed OBJ line, zero face index, or
	// non-numeric vertex coordinate.
	ErrFormat = errors.New("voxelfield: malformed input")
	// ErrNotSupported marks an unsupported feature, e.g. a non-triangular
	// OBJ face.
	ErrNotSupported = errors.New("voxelfield: not supported")
	// ErrInvariant marks an internal invariant violation: mesher invoked
	// on an empty occupancy set, flood-fill queue growth past its hard
	// limit.
	ErrInvariant = errors.New("voxelfield: invariant violation")
)
