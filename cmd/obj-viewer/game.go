package main

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type game struct {
	ctx     *render_context
	mesh    *mesh_t
	texture *ebiten.Image
	view    view_state

	cycle     int
	start     time.Time
	frametime time.Duration
	chars     []rune

	// receives the per-frame elapsed time line
	out io.Writer
}

func new_game(mesh *mesh_t, texture *ebiten.Image, shader *ebiten.Shader) *game {
	return &game{
		ctx: &render_context{
			shader:  shader,
			use_cpu: true,
		},
		mesh:    mesh,
		texture: texture,
		view:    default_view(),
		out:     os.Stdout,
	}
}

func (g *game) Layout(outside_width, outside_height int) (int, int) {
	return outside_width, outside_height
}

func (g *game) Update() error {
	// pixels can only be read once the game loop runs
	if g.cycle == 0 {
		g.ctx.cpu.texture = read_texture(g.texture)
	}
	g.cycle++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && !g.view.handle_key(key_escape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctx.use_cpu = !g.ctx.use_cpu
	}

	// input chars include the OS key repeat
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		if !g.view.handle_key(r) {
			return ebiten.Termination
		}
	}

	return nil
}

// print_time writes the seconds since the first frame to g.out.
func (g *game) print_time(now time.Time) {
	fmt.Fprintf(g.out, "Time: %g seconds\n", now.Sub(g.start).Seconds())
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.start.IsZero() {
		g.start = time.Now()
	}

	defer func(t time.Time) {
		ft := time.Since(t)
		if g.frametime == 0 {
			g.frametime = ft
		} else {
			g.frametime += (ft - g.frametime) / 2
		}
	}(time.Now())

	ctx := g.ctx

	w := screen.Bounds().Dx()
	h := screen.Bounds().Dy()

	ctx.set_viewport(0, 0, w, h)
	ctx.proj_matrix = projection(w, h)
	ctx.view_matrix = g.view.view_matrix()
	ctx.model_matrix = g.view.model_matrix()

	screen.Fill(color.Black)

	ctx.push_mesh(g.mesh)
	ctx.draw(g.texture, screen)

	g.print_time(time.Now())

	rasterizer := "gpu"
	if ctx.use_cpu {
		rasterizer = "cpu"
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.0f FPS: %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()), 0, 0)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Ft: %v Raster: %s", g.frametime, rasterizer), 0, 14)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Triangles: %d Skipped: %d", ctx.drawn_triangles, ctx.skipped_triangles), 0, 28)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Cam: %.1f, %.1f, %.1f", g.view.camera_x, g.view.camera_y, g.view.camera_z), 0, 42)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Rot: %.0f, %.0f", g.view.rotation_x, g.view.rotation_y), 0, 56)
}
