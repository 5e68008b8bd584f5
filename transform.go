package lumen

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is the model transform of a drawable entity.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// TransformAt is a flat placement at z = 0 with unit scale.
func TransformAt(x, y float32) Transform {
	t := NewTransform()
	t.Position = mgl32.Vec3{x, y, 0}
	return t
}

func (t Transform) Mat4() mgl32.Mat4 {
	// M = T * R * S
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

// matColumns splits a matrix into the four column vectors instance buffers
// carry, matching the mat4x4 constructor on the shader side.
func matColumns(m mgl32.Mat4) [4]mgl32.Vec4 {
	return [4]mgl32.Vec4{m.Col(0), m.Col(1), m.Col(2), m.Col(3)}
}

// ModelUniform is the entity transform record bound at the entity-transform
// group of the panel and text pipelines.
type ModelUniform struct {
	Transform mgl32.Mat4
}
