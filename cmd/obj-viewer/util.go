package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	texture_size         = 128
	texture_subdivisions = 8
)

func new_white_texture() *ebiten.Image {
	texture := ebiten.NewImage(1, 1)
	texture.Fill(color.White)
	return texture
}

// new_checker_texture draws a black and white board with a red border, so
// both the tiling and the [0, 1] edges of texture space are visible.
func new_checker_texture() *ebiten.Image {
	const tile_size = texture_size / texture_subdivisions

	texture := ebiten.NewImage(texture_size, texture_size)
	texture.Fill(color.Black)

	for row := range texture_subdivisions {
		for col := range texture_subdivisions {
			if (row+col)%2 == 0 {
				continue
			}
			x := float(col * tile_size)
			y := float(row * tile_size)
			vector.DrawFilledRect(texture, x, y, tile_size, tile_size, color.White, false)
		}
	}

	vector.StrokeRect(texture, 1, 1, texture_size-1, texture_size-1, 1, color.RGBA{255, 0, 0, 255}, false)

	return texture
}

func read_texture(img *ebiten.Image) *cpu_texture {
	bounds := img.Bounds()
	t := &cpu_texture{
		texels: make([]byte, bounds.Dx()*bounds.Dy()*4),
		width:  bounds.Dx(),
		height: bounds.Dy(),
	}
	img.ReadPixels(t.texels)
	return t
}
