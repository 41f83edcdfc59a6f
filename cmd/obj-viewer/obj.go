package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	mgl "github.com/go-gl/mathgl/mgl32"
)

// mesh_t is an OBJ file as flat arrays in file order. indices holds
// (position, texcoord, normal) triples, 0-based, three triples per triangle.
// A missing texcoord or normal index is -1.
type mesh_t struct {
	vertices   []float
	normals    []float
	tex_coords []float
	indices    []int

	// content problems found while loading, prefixed with the line number
	warnings []string
}

// triangle_t is one triangle of a mesh with its indices resolved.
type triangle_t struct {
	points  [3]vec3
	uvs     [3]vec2
	normals [3]vec3
}

func (m *mesh_t) vertex_count() int    { return len(m.vertices) / 3 }
func (m *mesh_t) normal_count() int    { return len(m.normals) / 3 }
func (m *mesh_t) tex_coord_count() int { return len(m.tex_coords) / 2 }
func (m *mesh_t) triangle_count() int  { return len(m.indices) / 9 }

func (m *mesh_t) position(i int) (vec3, bool) {
	if i < 0 || i >= m.vertex_count() {
		return vec3{}, false
	}
	return vec3{m.vertices[i*3], m.vertices[i*3+1], m.vertices[i*3+2]}, true
}

func (m *mesh_t) normal(i int) (vec3, bool) {
	if i < 0 || i >= m.normal_count() {
		return vec3{}, false
	}
	return vec3{m.normals[i*3], m.normals[i*3+1], m.normals[i*3+2]}, true
}

func (m *mesh_t) tex_coord(i int) (vec2, bool) {
	if i < 0 || i >= m.tex_coord_count() {
		return vec2{}, false
	}
	return vec2{m.tex_coords[i*2], m.tex_coords[i*2+1]}, true
}

// triangle resolves the i-th triangle. It reports false when a corner
// references a position that does not exist. Unresolvable texcoords become
// (0, 0) and unresolvable normals fall back to the surface normal.
func (m *mesh_t) triangle(i int) (t triangle_t, ok bool) {
	if i < 0 || i >= m.triangle_count() {
		return t, false
	}
	corners := m.indices[i*9 : i*9+9]

	for k := range 3 {
		if t.points[k], ok = m.position(corners[k*3]); !ok {
			return t, false
		}
		t.uvs[k], _ = m.tex_coord(corners[k*3+1])
	}

	var flat *vec3
	for k := range 3 {
		n, ok := m.normal(corners[k*3+2])
		if !ok {
			if flat == nil {
				sn := surface_normal(t.points[0], t.points[1], t.points[2])
				flat = &sn
			}
			n = *flat
		}
		t.normals[k] = n
	}

	return t, true
}

// invalid_triangles counts the triangles the renderer will skip.
func (m *mesh_t) invalid_triangles() (n int) {
	for i := range m.triangle_count() {
		if _, ok := m.triangle(i); !ok {
			n++
		}
	}
	return n
}

// fit centers the mesh on the origin and scales it so the largest absolute
// coordinate is 1.
func (m *mesh_t) fit() {
	count := m.vertex_count()
	if count == 0 {
		return
	}

	var center vec3
	for i := range count {
		p, _ := m.position(i)
		center = center.Add(p)
	}
	center = center.Mul(1 / float(count))

	var extent float
	for i := range count {
		p, _ := m.position(i)
		d := p.Sub(center)
		extent = max(extent, mgl.Abs(d.X()), mgl.Abs(d.Y()), mgl.Abs(d.Z()))
	}
	if extent == 0 {
		extent = 1
	}

	for i := range count {
		p, _ := m.position(i)
		p = p.Sub(center).Mul(1 / extent)
		copy(m.vertices[i*3:i*3+3], p[:])
	}
}

func load_obj_file(path string) (*mesh_t, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := load_obj(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mesh, nil
}

// load_obj reads the v, vn, vt and f records of an OBJ file and ignores every
// other line. Malformed records do not fail the load: they are zero-filled,
// or dropped for faces, and noted in mesh.warnings. Only read errors are
// returned.
func load_obj(r io.Reader) (*mesh_t, error) {
	mesh := &mesh_t{}

	// lines may be any length
	reader := bufio.NewReader(r)

	line := 0
	for {
		text, err := reader.ReadString('\n')
		if len(text) > 0 {
			line++
			mesh.parse_line(text, line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read obj: %w", err)
		}
	}

	return mesh, nil
}

func (m *mesh_t) parse_line(text string, line int) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "v":
		m.vertices = m.parse_floats(m.vertices, fields[1:], 3, line, "vertex")
	case "vn":
		m.normals = m.parse_floats(m.normals, fields[1:], 3, line, "normal")
	case "vt":
		m.tex_coords = m.parse_floats(m.tex_coords, fields[1:], 2, line, "texcoord")
	case "f":
		m.parse_face(fields[1:], line)
	}
}

func (m *mesh_t) warn(line int, format string, args ...any) {
	m.warnings = append(m.warnings, fmt.Sprintf("line %d: ", line)+fmt.Sprintf(format, args...))
}

// parse_floats appends exactly n values to dst. Extra fields are ignored.
func (m *mesh_t) parse_floats(dst []float, fields []string, n, line int, what string) []float {
	if len(fields) < n {
		m.warn(line, "%s has %d components, want %d", what, len(fields), n)
	}
	for i := range n {
		var value float
		if i < len(fields) {
			f, err := strconv.ParseFloat(fields[i], 32)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				m.warn(line, "bad %s component %q", what, fields[i])
			} else {
				value = float(f)
			}
		}
		dst = append(dst, value)
	}
	return dst
}

// parse_face appends one triangle per fan step: (0, i-1, i).
func (m *mesh_t) parse_face(groups []string, line int) {
	if len(groups) < 3 {
		m.warn(line, "face has %d vertices, want at least 3", len(groups))
		return
	}

	corners := make([][3]int, len(groups))
	for i, group := range groups {
		corners[i] = m.parse_corner(group, line)
	}

	for i := 2; i < len(corners); i++ {
		for _, c := range [...][3]int{corners[0], corners[i-1], corners[i]} {
			m.indices = append(m.indices, c[0], c[1], c[2])
		}
	}
}

// parse_corner converts a v, v/t, v//n or v/t/n group to 0-based indices.
// Negative indices count back from the records read so far.
func (m *mesh_t) parse_corner(group string, line int) (corner [3]int) {
	parts := strings.SplitN(group, "/", 3)
	counts := [3]int{m.vertex_count(), m.tex_coord_count(), m.normal_count()}

	for k := range corner {
		corner[k] = -1
		if k >= len(parts) || parts[k] == "" {
			if k == 0 {
				m.warn(line, "face vertex %q has no position", group)
			}
			continue
		}
		n, err := strconv.Atoi(parts[k])
		switch {
		case err != nil || n == 0:
			m.warn(line, "bad face index %q", group)
		case n < 0:
			corner[k] = counts[k] + n
		default:
			corner[k] = n - 1
		}
	}
	return corner
}
