package lumen

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func project(c Camera, x, y float32) mgl32.Vec4 {
	return c.Uniform().Projection.Mul4x1(mgl32.Vec4{x, y, 0, 1})
}

func TestScreenCamera_PixelMapping(t *testing.T) {
	cam := NewScreenCamera(800, 600)

	tests := []struct {
		name string
		x, y float32
		want mgl32.Vec2
	}{
		{"bottom left", 0, 0, mgl32.Vec2{-1, -1}},
		{"top right", 800, 600, mgl32.Vec2{1, 1}},
		{"center", 400, 300, mgl32.Vec2{0, 0}},
		{"top left", 0, 600, mgl32.Vec2{-1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip := project(cam, tt.x, tt.y)
			got := mgl32.Vec2{clip.X(), clip.Y()}
			if !got.ApproxEqualThreshold(tt.want, 1e-5) {
				t.Errorf("(%v,%v) projected to %v, expected %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestScreenCamera_Translation(t *testing.T) {
	cam := NewScreenCamera(800, 600)
	cam.Translation = mgl32.Vec3{400, 300, 0}

	// Panning the camera by (400,300) drags the world the other way, so the
	// old center lands on the bottom-left corner.
	clip := project(cam, 400, 300)
	if !clip.ApproxEqualThreshold(mgl32.Vec4{-1, -1, 0, 1}, 1e-5) {
		t.Errorf("Expected the panned center at (-1,-1), got %v", clip)
	}
}

func TestCenteredCamera_Mapping(t *testing.T) {
	cam := NewCenteredCamera(400, 300)

	if clip := project(cam, 0, 0); !clip.ApproxEqualThreshold(mgl32.Vec4{0, 0, 0, 1}, 1e-5) {
		t.Errorf("Expected origin at clip center, got %v", clip)
	}
	if clip := project(cam, 400, 300); !mgl32.FloatEqualThreshold(clip.X(), 1, 1e-5) || !mgl32.FloatEqualThreshold(clip.Y(), 1, 1e-5) {
		t.Errorf("Expected (400,300) at clip (1,1), got %v", clip)
	}
}

func TestOrthographicCamera_SetSize(t *testing.T) {
	cam := NewCenteredCamera(10, 10)
	cam.SetSize(800, 600)

	if cam.Left != -400 || cam.Right != 400 || cam.Bottom != -300 || cam.Top != 300 {
		t.Errorf("Unexpected extents after SetSize: %+v", cam)
	}
}

func TestCameraUniform_Position(t *testing.T) {
	cam := NewScreenCamera(100, 100)
	cam.Translation = mgl32.Vec3{1, 2, 3}

	u := cam.Uniform()
	if u.Position != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Expected camera position in the uniform, got %v", u.Position)
	}
}
