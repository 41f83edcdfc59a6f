package main

import (
	"cmp"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

const shader_src = `
//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, rgba vec4, custom vec4) vec4 {
	origin := imageSrc0Origin()

	// atlas -> texture space
	texel := src - origin

	// perspective divide, custom.w is 1/w
	if custom.w != 0.0 {
		texel /= custom.w
		rgba /= custom.w
	}

	texel = clamp(texel, vec2(0), vec2(1))
	texel *= imageSrc0Size() - vec2(1)

	return imageSrc0At(texel + origin + vec2(0.5)) * rgba
}
`

// max_batch_triangles keeps every index of a batch within uint16.
const max_batch_triangles = 65535 / 3

type vertex struct {
	pos  vec4
	rgba vec4
	uv   vec2
}

type viewport struct {
	x      int
	y      int
	w      int
	h      int
	w_half int
	h_half int
}

// screen_triangle holds vertices ready for ebiten. Source and color values
// are pre-multiplied by 1/w and Custom3 holds 1/w, so both rasterizers can
// interpolate them linearly in screen space.
type screen_triangle struct {
	v [3]ebiten.Vertex
	// sum of clip w, larger is farther
	depth float
}

type render_context struct {
	shader       *ebiten.Shader
	proj_matrix  mat4
	view_matrix  mat4
	model_matrix mat4
	viewport     viewport

	// statistics
	drawn_triangles   int
	skipped_triangles int

	// buffers kept between frames to reduce allocations
	clipper   clipper
	triangles []screen_triangle
	vertices  []ebiten.Vertex
	indices   []uint16

	use_cpu bool
	cpu     cpu_context
}

func (ctx *render_context) set_viewport(x, y, w, h int) {
	ctx.viewport.x = x
	ctx.viewport.y = y
	ctx.viewport.w = w
	ctx.viewport.h = h
	ctx.viewport.w_half = w / 2
	ctx.viewport.h_half = h / 2
}

// push_mesh transforms, shades and clips every triangle of the mesh and
// queues the result for draw.
func (ctx *render_context) push_mesh(mesh *mesh_t) {
	model_view := ctx.view_matrix.Mul4(ctx.model_matrix)
	model_view_project := ctx.proj_matrix.Mul4(model_view)

	// model_view is rigid, so its rotation part transforms normals too
	normal_matrix := model_view.Mat3()
	light_dir := normal_matrix.Mul3x1(scene_light.position.Vec3())

	ctx.skipped_triangles = 0

	for i := range mesh.triangle_count() {
		t, ok := mesh.triangle(i)
		if !ok {
			ctx.skipped_triangles++
			continue
		}

		var corners [3]vertex
		inside := true
		for k := range 3 {
			n := t.normals[k]
			intensity := vertex_intensity(n)
			corners[k] = vertex{
				pos: model_view_project.Mul4x1(t.points[k].Vec4(1)),
				rgba: scene_light.shade(
					vec3{intensity, intensity, intensity},
					normal_matrix.Mul3x1(n),
					light_dir,
					&scene_material,
				),
				uv: t.uvs[k],
			}
			inside = inside && inside_frustum(corners[k].pos)
		}

		if inside {
			ctx.push_triangle(corners[0], corners[1], corners[2])
			continue
		}

		points := ctx.clipper.clip(corners[0], corners[1], corners[2])
		for j := 2; j < len(points); j++ {
			ctx.push_triangle(points[0], points[j-1], points[j])
		}
	}
}

func (ctx *render_context) push_triangle(v1, v2, v3 vertex) {
	w_half := float(ctx.viewport.w_half)
	h_half := float(ctx.viewport.h_half)
	x := float(ctx.viewport.x)
	y := float(ctx.viewport.y) + float(ctx.viewport.h)

	var t screen_triangle
	for k, v := range [...]vertex{v1, v2, v3} {
		w := v.pos.W()
		if w <= 0 {
			return
		}
		inv_w := 1 / w

		t.v[k] = ebiten.Vertex{
			// ndc to screen space, y grows downwards
			DstX: x + viewport_transform(v.pos.X()*inv_w, w_half),
			DstY: y - viewport_transform(v.pos.Y()*inv_w, h_half),
			// obj texcoords have v pointing up, images have y pointing down
			SrcX:    v.uv.X() * inv_w,
			SrcY:    (1 - v.uv.Y()) * inv_w,
			ColorR:  v.rgba.X() * inv_w,
			ColorG:  v.rgba.Y() * inv_w,
			ColorB:  v.rgba.Z() * inv_w,
			ColorA:  v.rgba.W() * inv_w,
			Custom3: inv_w,
		}
		t.depth += w
	}

	ctx.triangles = append(ctx.triangles, t)
}

func (ctx *render_context) draw(texture, target *ebiten.Image) {
	if ctx.use_cpu {
		ctx.cpu.draw(ctx.triangles, target)
	} else {
		ctx.draw_gpu(texture, target)
	}
	ctx.drawn_triangles = len(ctx.triangles)
	ctx.triangles = ctx.triangles[:0]
}

func (ctx *render_context) draw_gpu(texture, target *ebiten.Image) {
	// there is no depth buffer on this path, paint far to near
	slices.SortFunc(ctx.triangles, func(a, b screen_triangle) int {
		return cmp.Compare(b.depth, a.depth)
	})

	options := &ebiten.DrawTrianglesShaderOptions{
		Images: [4]*ebiten.Image{texture},
	}

	for start := 0; start < len(ctx.triangles); start += max_batch_triangles {
		end := min(start+max_batch_triangles, len(ctx.triangles))

		ctx.vertices = ctx.vertices[:0]
		ctx.indices = ctx.indices[:0]
		for _, t := range ctx.triangles[start:end] {
			first := uint16(len(ctx.vertices))
			ctx.vertices = append(ctx.vertices, t.v[:]...)
			ctx.indices = append(ctx.indices, first, first+1, first+2)
		}

		target.DrawTrianglesShader(ctx.vertices, ctx.indices, ctx.shader, options)
	}
}
