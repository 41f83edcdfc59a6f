package main

import (
	mgl "github.com/go-gl/mathgl/mgl32"
)

const (
	move_step   = 0.1 // world units per key press
	rotate_step = 1.0 // degrees per key press

	key_escape = 27
)

// view_state is everything the keyboard changes: the camera position and
// the model rotation in degrees around X and Y.
type view_state struct {
	camera_x   float
	camera_y   float
	camera_z   float
	rotation_x float
	rotation_y float
}

func default_view() view_state {
	return view_state{camera_z: 5}
}

// handle_key applies a single character of input and reports whether the
// viewer should keep running.
func (v *view_state) handle_key(key rune) bool {
	switch key {
	case 'w':
		v.camera_z -= move_step
	case 's':
		v.camera_z += move_step
	case 'a':
		v.camera_x -= move_step
	case 'd':
		v.camera_x += move_step
	case 'q':
		v.camera_y += move_step
	case 'e':
		v.camera_y -= move_step

	case 'r':
		v.rotation_x += rotate_step
	case 'f':
		v.rotation_x -= rotate_step
	case 't':
		v.rotation_y += rotate_step
	case 'g':
		v.rotation_y -= rotate_step

	case key_escape:
		return false
	}
	return true
}

func (v *view_state) eye() vec3 {
	return vec3{v.camera_x, v.camera_y, v.camera_z}
}

// view_matrix looks from the camera at the origin with +y up.
func (v *view_state) view_matrix() mat4 {
	return mgl.LookAtV(v.eye(), vec3{0, 0, 0}, vec3{0, 1, 0})
}

// model_matrix rotates around X first, then around Y, in the order the
// rotations are applied to the model-view matrix.
func (v *view_state) model_matrix() mat4 {
	return mgl.HomogRotate3DX(mgl.DegToRad(v.rotation_x)).Mul4(
		mgl.HomogRotate3DY(mgl.DegToRad(v.rotation_y)),
	)
}
