package voxelfield

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/chewxy/math32"
)

// WriteSTL writes the mesh's triangles to w in binary STL format.
func WriteSTL(w io.Writer, m Mesh) error {
	if len(m.Faces()) == 0 {
		return fmt.Errorf("%w: empty mesh", ErrArgument)
	}
	header := stlHeader{
		Count: uint32(len(m.Faces())),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	var d stlTriangle
	var b [50]byte
	for i := range m.Faces() {
		va, vb, vc := m.TriangleVerts(i)
		n := TriangleNormal(va, vb, vc)
		d.Normal = [3]float32{n.X, n.Y, n.Z}
		d.Vertex1 = [3]float32{va.X, va.Y, va.Z}
		d.Vertex2 = [3]float32{vb.X, vb.Y, vb.Z}
		d.Vertex3 = [3]float32{vc.X, vc.Y, vc.Z}
		d.put(b[:])
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	return nil
}

// ReadSTL reads a binary STL stream into a triangle-soup Mesh (three fresh
// vertices per face). The closed flag is derived by the watertight test,
// which for an un-welded soup reports false.
func ReadSTL(r io.Reader) (m Mesh, readErr error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Mesh{}, fmt.Errorf("%w: EOF while reading STL header", ErrFormat)
		}
		return Mesh{}, fmt.Errorf("%w: STL header read failed: %s", ErrFormat, err)
	}
	if header.Count == 0 {
		return Mesh{}, fmt.Errorf("%w: STL header indicates 0 triangles present", ErrFormat)
	}
	var (
		buf   [50]byte
		d     stlTriangle
		i     int
		verts = make([]Vec3, 0, 3*header.Count)
		faces = make([]Tri, 0, header.Count)
	)
	defer func() {
		if readErr != nil {
			readErr = fmt.Errorf("%d/%d STL triangles read: %w", i+1, header.Count, readErr)
		}
	}()
	for i = 0; i < int(header.Count); i++ {
		var n int
		for n < 50 {
			nr, err := r.Read(buf[n:])
			if err != nil {
				return Mesh{}, err
			}
			n += nr
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			return Mesh{}, err
		}
		base := int32(len(verts))
		verts = append(verts,
			Vec3{d.Vertex1[0], d.Vertex1[1], d.Vertex1[2]},
			Vec3{d.Vertex2[0], d.Vertex2[1], d.Vertex2[2]},
			Vec3{d.Vertex3[0], d.Vertex3[1], d.Vertex3[2]},
		)
		faces = append(faces, Tri{base, base + 1, base + 2})
	}
	return NewMesh(verts, faces, nil)
}

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func (t stlTriangle) put(b []byte) {
	if len(b) < 50 {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < 50 {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
	// no attributes supported yet.
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

func (t stlTriangle) validate() error {
	if bad3F32(t.Normal) {
		return fmt.Errorf("%w: inf/NaN STL triangle normal", ErrFormat)
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return fmt.Errorf("%w: inf/NaN STL triangle vertex", ErrFormat)
	}
	return nil
}
