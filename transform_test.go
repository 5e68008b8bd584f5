package lumen

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTransform_Mat4Order(t *testing.T) {
	// Scale then rotate then translate: a unit-x point under a 90 degree
	// z-rotation with scale 2 must land at (10, 2+20).
	tr := NewTransform()
	tr.Position = mgl32.Vec3{10, 20, 0}
	tr.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1})
	tr.Scale = mgl32.Vec3{2, 2, 2}

	p := tr.Mat4().Mul4x1(mgl32.Vec4{1, 0, 0, 1})

	want := mgl32.Vec4{10, 22, 0, 1}
	if !p.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("Expected %v, got %v", want, p)
	}
}

func TestTransformAt(t *testing.T) {
	tr := TransformAt(3, 4)

	if tr.Position != (mgl32.Vec3{3, 4, 0}) {
		t.Errorf("Expected position (3,4,0), got %v", tr.Position)
	}
	if tr.Scale != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Expected unit scale, got %v", tr.Scale)
	}

	// With identity rotation and unit scale the matrix is a pure translation.
	p := tr.Mat4().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !p.ApproxEqualThreshold(mgl32.Vec4{3, 4, 0, 1}, 1e-6) {
		t.Errorf("Expected origin to move to (3,4,0), got %v", p)
	}
}

func TestMatColumns(t *testing.T) {
	m := mgl32.Translate3D(5, 6, 7)
	cols := matColumns(m)

	rebuilt := mgl32.Mat4FromCols(cols[0], cols[1], cols[2], cols[3])
	if rebuilt != m {
		t.Errorf("Columns do not reassemble the matrix: %v vs %v", rebuilt, m)
	}
	if cols[3] != (mgl32.Vec4{5, 6, 7, 1}) {
		t.Errorf("Expected translation in the last column, got %v", cols[3])
	}
}
