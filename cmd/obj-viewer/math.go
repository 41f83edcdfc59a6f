package main

import (
	"math"

	mgl "github.com/go-gl/mathgl/mgl32"
)

// min_intensity is the floor of the per-vertex shading term.
const min_intensity = 0.2

type light_t struct {
	// w = 0, so this is a direction in the space where the light is set
	position vec4
	ambient  vec3
	diffuse  vec3
	specular vec3
}

type material_t struct {
	specular  vec3
	shininess float
}

var (
	// global ambient term applied to every vertex regardless of lights
	scene_ambient = vec3{0.2, 0.2, 0.2}

	scene_light = light_t{
		position: vec4{1, 1, 1, 0},
		ambient:  vec3{0.2, 0.2, 0.2},
		diffuse:  vec3{0.8, 0.8, 0.8},
		specular: vec3{1, 1, 1},
	}

	scene_material = material_t{
		specular:  vec3{1, 1, 1},
		shininess: 50,
	}
)

// surface_normal returns the unit normal of the counter-clockwise triangle
// p1, p2, p3. A degenerate triangle yields the zero vector.
func surface_normal(p1, p2, p3 vec3) vec3 {
	return normalize(p2.Sub(p1).Cross(p3.Sub(p1)))
}

func normalize(v vec3) vec3 {
	l := v.Len()
	if l == 0 {
		return vec3{}
	}
	return v.Mul(1 / l)
}

// vertex_intensity is max(0.2, |n . L|) with the normal exactly as stored and
// the unnormalized light position. The absolute value lights both sides.
func vertex_intensity(n vec3) float {
	return max(min_intensity, mgl.Abs(n.Dot(scene_light.position.Vec3())))
}

func mul3(a, b vec3) vec3 {
	return vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// shade lights a vertex whose color drives both the ambient and diffuse
// material terms. normal and light_dir must be in eye space; the viewer is
// at infinity along +z. normal is used as given, so a non-unit normal scales
// the diffuse and specular terms.
func (l *light_t) shade(color, normal, light_dir vec3, m *material_t) vec4 {
	n := normal
	dir := normalize(light_dir)

	result := mul3(color, scene_ambient.Add(l.ambient))

	if n_dot_l := n.Dot(dir); n_dot_l > 0 {
		result = result.Add(mul3(color, l.diffuse).Mul(n_dot_l))

		half := normalize(dir.Add(vec3{0, 0, 1}))
		if n_dot_h := n.Dot(half); n_dot_h > 0 {
			s := float(math.Pow(float64(n_dot_h), float64(m.shininess)))
			result = result.Add(mul3(l.specular, m.specular).Mul(s))
		}
	}

	return vec4{
		mgl.Clamp(result[0], 0, 1),
		mgl.Clamp(result[1], 0, 1),
		mgl.Clamp(result[2], 0, 1),
		1,
	}
}

// projection is a 45 degree perspective for a w x h viewport.
func projection(w, h int) mat4 {
	if h == 0 {
		h = 1
	}
	return mgl.Perspective(mgl.DegToRad(45), float(w)/float(h), 0.1, 100)
}

// frustum_planes are in clip space: p is inside a plane when plane . p >= 0.
var frustum_planes = [...]vec4{
	{-1, 0, 0, 1}, // right
	{1, 0, 0, 1},  // left
	{0, -1, 0, 1}, // top
	{0, 1, 0, 1},  // bottom
	{0, 0, -1, 1}, // far
	{0, 0, 1, 1},  // near
}

func inside_frustum(p vec4) bool {
	for _, plane := range frustum_planes {
		if plane.Dot(p) < 0 {
			return false
		}
	}
	return true
}

func lerp_vertex(a, b vertex, t float) vertex {
	return vertex{
		pos:  a.pos.Add(b.pos.Sub(a.pos).Mul(t)),
		rgba: a.rgba.Add(b.rgba.Sub(a.rgba).Mul(t)),
		uv:   a.uv.Add(b.uv.Sub(a.uv).Mul(t)),
	}
}

// clipper clips triangles against the view frustum with Sutherland-Hodgman.
// https://en.wikipedia.org/wiki/Sutherland-Hodgman_algorithm
type clipper struct {
	input  []vertex
	output []vertex
}

// clip returns the convex polygon left of the triangle after clipping. The
// result is only valid until the next call.
func (c *clipper) clip(v1, v2, v3 vertex) []vertex {
	c.output = append(c.output[:0], v1, v2, v3)

	for _, plane := range frustum_planes {
		if len(c.output) == 0 {
			break
		}
		c.input, c.output = c.output, c.input[:0]

		prev := c.input[len(c.input)-1]
		prev_d := plane.Dot(prev.pos)
		for _, cur := range c.input {
			d := plane.Dot(cur.pos)
			if (d >= 0) != (prev_d >= 0) {
				c.output = append(c.output, lerp_vertex(prev, cur, prev_d/(prev_d-d)))
			}
			if d >= 0 {
				c.output = append(c.output, cur)
			}
			prev, prev_d = cur, d
		}
	}

	return c.output
}

func viewport_transform(ndc, dimension_half float) float {
	return dimension_half*ndc + dimension_half
}

// edge is twice the signed area of a, b, p.
func edge(ax, ay, bx, by, px, py float) float {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}
