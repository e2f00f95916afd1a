package voxelfield

import "fmt"

// Polyline is an ordered sequence of Vec3 with a cached length that Append
// maintains incrementally.
type Polyline struct {
	vertices []Vec3
	closed   bool
	length   float32
}

// NewPolyline constructs a Polyline. If closed, the last vertex must coincide
// with the first to within 1e-6 and there must be at least 3 vertices.
func NewPolyline(vertices []Vec3, closed bool) (Polyline, error) {
	if closed {
		if len(vertices) < 3 {
			return Polyline{}, fmt.Errorf("%w: closed polyline needs at least 3 vertices", ErrArgument)
		}
		if vertices[0].Sub(vertices[len(vertices)-1]).Length() > 1e-6 {
			return Polyline{}, fmt.Errorf("%w: closed polyline endpoints do not coincide", ErrArgument)
		}
	}
	p := Polyline{vertices: vertices, closed: closed}
	p.length = p.computeLength()
	return p, nil
}

func (p Polyline) computeLength() float32 {
	var l float32
	for i := 1; i < len(p.vertices); i++ {
		l += p.vertices[i].Sub(p.vertices[i-1]).Length()
	}
	if p.closed && len(p.vertices) > 1 {
		l += p.vertices[0].Sub(p.vertices[len(p.vertices)-1]).Length()
	}
	return l
}

// Vertices returns the polyline's vertex slice. The caller must not mutate it.
func (p Polyline) Vertices() []Vec3 { return p.vertices }

// IsClosed reports whether the polyline is closed.
func (p Polyline) IsClosed() bool { return p.closed }

// Length returns the cached polyline length.
func (p Polyline) Length() float32 { return p.length }

// Append adds a vertex to the polyline, updating the cached length
// incrementally rather than recomputing from scratch.
func (p *Polyline) Append(v Vec3) {
	if len(p.vertices) > 0 {
		p.length += v.Sub(p.vertices[len(p.vertices)-1]).Length()
	}
	p.vertices = append(p.vertices, v)
}

// AppendMany appends multiple vertices via Append.
func (p *Polyline) AppendMany(vs []Vec3) {
	for _, v := range vs {
		p.Append(v)
	}
}
