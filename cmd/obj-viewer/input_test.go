package main

import (
	"testing"

	mgl "github.com/go-gl/mathgl/mgl32"
)

func TestHandleKey(t *testing.T) {
	tests := []struct {
		key  rune
		want view_state
	}{
		{'w', view_state{camera_z: 4.9}},
		{'s', view_state{camera_z: 5.1}},
		{'a', view_state{camera_x: -0.1, camera_z: 5}},
		{'d', view_state{camera_x: 0.1, camera_z: 5}},
		{'q', view_state{camera_y: 0.1, camera_z: 5}},
		{'e', view_state{camera_y: -0.1, camera_z: 5}},
		{'r', view_state{camera_z: 5, rotation_x: 1}},
		{'f', view_state{camera_z: 5, rotation_x: -1}},
		{'t', view_state{camera_z: 5, rotation_y: 1}},
		{'g', view_state{camera_z: 5, rotation_y: -1}},
		{'W', view_state{camera_z: 5}},
		{'x', view_state{camera_z: 5}},
		{' ', view_state{camera_z: 5}},
	}

	for _, tc := range tests {
		t.Run(string(tc.key), func(t *testing.T) {
			v := default_view()
			if !v.handle_key(tc.key) {
				t.Fatalf("handle_key(%q) asked to quit", tc.key)
			}
			if !mgl.FloatEqualThreshold(v.camera_x, tc.want.camera_x, 1e-6) ||
				!mgl.FloatEqualThreshold(v.camera_y, tc.want.camera_y, 1e-6) ||
				!mgl.FloatEqualThreshold(v.camera_z, tc.want.camera_z, 1e-6) ||
				v.rotation_x != tc.want.rotation_x ||
				v.rotation_y != tc.want.rotation_y {
				t.Errorf("handle_key(%q) = %+v, want %+v", tc.key, v, tc.want)
			}
		})
	}
}

func TestHandleKeyEscape(t *testing.T) {
	v := default_view()
	if v.handle_key(key_escape) {
		t.Fatal("escape should quit")
	}
	if v != default_view() {
		t.Errorf("escape changed the view: %+v", v)
	}
}

func TestHandleKeyAccumulates(t *testing.T) {
	v := default_view()
	for range 10 {
		v.handle_key('d')
		v.handle_key('t')
	}
	if !mgl.FloatEqualThreshold(v.camera_x, 1, 1e-5) {
		t.Errorf("camera_x = %v, want 1", v.camera_x)
	}
	if v.rotation_y != 10 {
		t.Errorf("rotation_y = %v, want 10", v.rotation_y)
	}
}

func TestViewMatrix(t *testing.T) {
	v := default_view()
	got := v.view_matrix().Mul4x1(vec4{0, 0, 0, 1})
	if !got.ApproxEqualThreshold(vec4{0, 0, -5, 1}, 1e-5) {
		t.Errorf("origin in eye space = %v, want (0, 0, -5, 1)", got)
	}
}

func TestModelMatrix(t *testing.T) {
	v := default_view()
	if !v.model_matrix().ApproxEqual(mgl.Ident4()) {
		t.Fatalf("model_matrix = %v, want identity", v.model_matrix())
	}

	v.rotation_x = 90
	got := v.model_matrix().Mul4x1(vec4{0, 1, 0, 1})
	if !got.ApproxEqualThreshold(vec4{0, 0, 1, 1}, 1e-5) {
		t.Errorf("rotated +y = %v, want +z", got)
	}

	// y is applied to the model first, then x
	v.rotation_y = 90
	got = v.model_matrix().Mul4x1(vec4{1, 0, 0, 1})
	if !got.ApproxEqualThreshold(vec4{0, 1, 0, 1}, 1e-5) {
		t.Errorf("rotated +x = %v, want +y", got)
	}
}
