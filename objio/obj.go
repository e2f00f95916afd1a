// Package objio reads and writes Wavefront OBJ meshes, restricted to the
// `v` and `f` record types with triangular faces. It exists for interop;
// everything else in the format is ignored.
package objio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	voxelfield "github.com/soypat/voxelfield"
)

// Read parses an OBJ stream into a Mesh. Face indices are 1-based; negative
// indices are relative to the vertex count at the time the face is read
// (-1 is the last vertex). Inline `#` comments and unknown record types are
// ignored. Faces with other than 3 vertex tokens are rejected.
func Read(r io.Reader) (voxelfield.Mesh, error) {
	var (
		verts []voxelfield.Vec3
		faces []voxelfield.Tri
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		raw := sc.Text()
		line := raw
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return voxelfield.Mesh{}, fmt.Errorf("%w: vertex needs 3 coordinates: %q", voxelfield.ErrFormat, raw)
			}
			var coords [3]float32
			for i := 0; i < 3; i++ {
				f, err := strconv.ParseFloat(fields[1+i], 32)
				if err != nil {
					return voxelfield.Mesh{}, fmt.Errorf("%w: non-numeric vertex coordinate: %q", voxelfield.ErrFormat, raw)
				}
				c := float32(f)
				if math32.IsNaN(c) || math32.IsInf(c, 0) {
					return voxelfield.Mesh{}, fmt.Errorf("%w: non-finite vertex coordinate: %q", voxelfield.ErrFormat, raw)
				}
				coords[i] = c
			}
			// An optional fourth coordinate (w) is ignored.
			verts = append(verts, voxelfield.Vec3{X: coords[0], Y: coords[1], Z: coords[2]})
		case "f":
			if len(fields) != 4 {
				return voxelfield.Mesh{}, fmt.Errorf("%w: only triangular faces: %q", voxelfield.ErrNotSupported, raw)
			}
			var idx [3]int32
			for i := 0; i < 3; i++ {
				v, err := parseFaceIndex(fields[1+i], len(verts))
				if err != nil {
					return voxelfield.Mesh{}, fmt.Errorf("%w: %q", err, raw)
				}
				idx[i] = v
			}
			faces = append(faces, voxelfield.Tri{A: idx[0], B: idx[1], C: idx[2]})
		}
	}
	if err := sc.Err(); err != nil {
		return voxelfield.Mesh{}, err
	}
	return voxelfield.NewMesh(verts, faces, nil)
}

// parseFaceIndex resolves one face token (`v`, `v/vt`, `v//vn`, or
// `v/vt/vn`; only the leading vertex field is used) to a 0-based index.
func parseFaceIndex(token string, numVerts int) (int32, error) {
	if i := strings.IndexByte(token, '/'); i >= 0 {
		token = token[:i]
	}
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric face index", voxelfield.ErrFormat)
	}
	switch {
	case v == 0:
		return 0, fmt.Errorf("%w: face index 0", voxelfield.ErrFormat)
	case v < 0:
		v += numVerts
	default:
		v--
	}
	if v < 0 || v >= numVerts {
		return 0, fmt.Errorf("%w: face index out of range", voxelfield.ErrFormat)
	}
	return int32(v), nil
}

// Write emits m as OBJ text: one `v x y z` per vertex and one 1-based
// `f a b c` per face, LF line endings, decimal-point numeric formatting.
func Write(w io.Writer, m voxelfield.Mesh) error {
	bw := bufio.NewWriter(w)
	for _, v := range m.Vertices() {
		if _, err := fmt.Fprintf(bw, "v %s %s %s\n", fmtF32(v.X), fmtF32(v.Y), fmtF32(v.Z)); err != nil {
			return err
		}
	}
	for _, f := range m.Faces() {
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", f.A+1, f.B+1, f.C+1); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// fmtF32 formats a coordinate with the shortest representation that
// round-trips at float32 precision.
func fmtF32(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
