package main

import (
	"math"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// cpu_texture is an RGBA copy of a texture image.
type cpu_texture struct {
	texels []byte
	width  int
	height int
}

// sample does a nearest lookup of uv clamped to [0, 1].
func (t *cpu_texture) sample(u, v float) (r, g, b float) {
	if t == nil || t.width == 0 || t.height == 0 {
		return 1, 1, 1
	}
	x := min(t.width-1, int(mgl.Clamp(u, 0, 1)*float(t.width)))
	y := min(t.height-1, int(mgl.Clamp(v, 0, 1)*float(t.height)))
	i := (x + y*t.width) * 4
	return float(t.texels[i]) / 255, float(t.texels[i+1]) / 255, float(t.texels[i+2]) / 255
}

// cpu_context is a depth-buffered software rasterizer. Depth is 1/w, so
// larger values are nearer and a cleared buffer of zeros is infinitely far.
type cpu_context struct {
	texture *cpu_texture
	buffer  *ebiten.Image
	pixels  []byte
	depth   []float
	width   int
	height  int
}

func (ctx *cpu_context) resize(w, h int) {
	if ctx.width == w && ctx.height == h && ctx.pixels != nil {
		return
	}
	ctx.width = w
	ctx.height = h
	ctx.pixels = make([]byte, w*h*4)
	ctx.depth = make([]float, w*h)
}

func (ctx *cpu_context) clear() {
	clear(ctx.pixels)
	clear(ctx.depth)
}

func (ctx *cpu_context) draw(triangles []screen_triangle, target *ebiten.Image) {
	bounds := target.Bounds()
	ctx.resize(bounds.Dx(), bounds.Dy())

	if ctx.buffer == nil || ctx.buffer.Bounds() != bounds {
		if ctx.buffer != nil {
			ctx.buffer.Deallocate()
		}
		ctx.buffer = ebiten.NewImageWithOptions(bounds, &ebiten.NewImageOptions{
			Unmanaged: true,
		})
	}

	ctx.clear()
	ctx.rasterize(triangles)

	ctx.buffer.WritePixels(ctx.pixels)
	target.DrawImage(ctx.buffer, nil)
}

func (ctx *cpu_context) rasterize(triangles []screen_triangle) {
	for i := range triangles {
		t := &triangles[i]
		ctx.fill_triangle(&t.v[0], &t.v[1], &t.v[2])
	}
}

// fill_triangle walks the pixel centers inside the bounding box of a, b, c
// and shades those covered by the triangle, in either winding.
func (ctx *cpu_context) fill_triangle(a, b, c *ebiten.Vertex) {
	area := edge(a.DstX, a.DstY, b.DstX, b.DstY, c.DstX, c.DstY)
	if area == 0 {
		return
	}
	inv_area := 1 / area

	left := max(0, floor(min(a.DstX, b.DstX, c.DstX)))
	right := min(ctx.width-1, floor(max(a.DstX, b.DstX, c.DstX)))
	top := max(0, floor(min(a.DstY, b.DstY, c.DstY)))
	bottom := min(ctx.height-1, floor(max(a.DstY, b.DstY, c.DstY)))

	for y := top; y <= bottom; y++ {
		py := float(y) + 0.5
		offset := y * ctx.width

		for x := left; x <= right; x++ {
			px := float(x) + 0.5

			// barycentric weights of a, b and c
			u := edge(b.DstX, b.DstY, c.DstX, c.DstY, px, py) * inv_area
			v := edge(c.DstX, c.DstY, a.DstX, a.DstY, px, py) * inv_area
			w := edge(a.DstX, a.DstY, b.DstX, b.DstY, px, py) * inv_area
			if u < 0 || v < 0 || w < 0 {
				continue
			}

			depth := u*a.Custom3 + v*b.Custom3 + w*c.Custom3
			if depth <= ctx.depth[offset+x] {
				continue
			}
			ctx.depth[offset+x] = depth

			inv_depth := 1 / depth

			tex_r, tex_g, tex_b := ctx.texture.sample(
				(u*a.SrcX+v*b.SrcX+w*c.SrcX)*inv_depth,
				(u*a.SrcY+v*b.SrcY+w*c.SrcY)*inv_depth,
			)

			r := (u*a.ColorR + v*b.ColorR + w*c.ColorR) * inv_depth * tex_r
			g := (u*a.ColorG + v*b.ColorG + w*c.ColorG) * inv_depth * tex_g
			bl := (u*a.ColorB + v*b.ColorB + w*c.ColorB) * inv_depth * tex_b

			i := (offset + x) * 4
			ctx.pixels[i] = to_byte(r)
			ctx.pixels[i+1] = to_byte(g)
			ctx.pixels[i+2] = to_byte(bl)
			ctx.pixels[i+3] = 0xFF
		}
	}
}

func floor(f float) int {
	return int(math.Floor(float64(f)))
}

func to_byte(f float) byte {
	return byte(mgl.Clamp(f, 0, 1)*255 + 0.5)
}
