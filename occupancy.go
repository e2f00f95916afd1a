package voxelfield

// Occupancy is a per-cell classification label.
type Occupancy uint8

const (
	// Outside marks a cell outside the meshed surface.
	Outside Occupancy = 0
	// Inside marks a cell inside the meshed surface.
	Inside Occupancy = 1
	// Boundary marks a cell touched by the rasterized surface.
	Boundary Occupancy = 2
)
