package lumen

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraUniform is the raw camera record bound at group 0 / binding 0 of
// every pipeline, shared read-only for the whole frame. The pad keeps the
// struct at a 16-byte multiple as the uniform block layout requires.
type CameraUniform struct {
	Projection mgl32.Mat4
	Position   mgl32.Vec3
	Pad        float32
}

// Camera is anything that can describe itself as a camera uniform once per
// frame.
type Camera interface {
	Uniform() CameraUniform
}

// OrthographicCamera projects a flat world rectangle onto the viewport.
type OrthographicCamera struct {
	Left   float32
	Right  float32
	Bottom float32
	Top    float32
	Near   float32
	Far    float32

	Translation mgl32.Vec3
}

// NewScreenCamera maps window pixels one-to-one: origin at the bottom left,
// y growing upward. Panels and text blocks extend downward from their
// transform's origin, so placing an entity at the top edge lays its content
// into view.
func NewScreenCamera(width, height float32) *OrthographicCamera {
	return &OrthographicCamera{
		Left:   0,
		Right:  width,
		Bottom: 0,
		Top:    height,
		Near:   -1000,
		Far:    1000,
	}
}

// NewCenteredCamera places the origin at the viewport center with y growing
// upward, half extents on each side.
func NewCenteredCamera(halfWidth, halfHeight float32) *OrthographicCamera {
	return &OrthographicCamera{
		Left:   -halfWidth,
		Right:  halfWidth,
		Bottom: -halfHeight,
		Top:    halfHeight,
		Near:   -1000,
		Far:    1000,
	}
}

func (c *OrthographicCamera) SetSize(width, height float32) {
	halfWidth := width / 2
	halfHeight := height / 2

	c.Left = -halfWidth
	c.Right = halfWidth
	c.Bottom = -halfHeight
	c.Top = halfHeight
}

func (c *OrthographicCamera) Uniform() CameraUniform {
	projection := mgl32.Ortho(c.Left, c.Right, c.Bottom, c.Top, c.Near, c.Far)
	view := mgl32.Translate3D(-c.Translation.X(), -c.Translation.Y(), -c.Translation.Z())

	return CameraUniform{
		Projection: projection.Mul4(view),
		Position:   c.Translation,
	}
}

// PerspectiveCamera is for hosts that float their panels in a 3D scene.
type PerspectiveCamera struct {
	FovY   float32 // radians
	Aspect float32
	Near   float32
	Far    float32

	Translation mgl32.Vec3
	Rotation    mgl32.Quat
}

func NewPerspectiveCamera(aspect float32) *PerspectiveCamera {
	return &PerspectiveCamera{
		FovY:     mgl32.DegToRad(60),
		Aspect:   aspect,
		Near:     0.1,
		Far:      1000,
		Rotation: mgl32.QuatIdent(),
	}
}

func (c *PerspectiveCamera) Uniform() CameraUniform {
	projection := mgl32.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
	view := c.Rotation.Mat4().Mul4(
		mgl32.Translate3D(-c.Translation.X(), -c.Translation.Y(), -c.Translation.Z()),
	)

	return CameraUniform{
		Projection: projection.Mul4(view),
		Position:   c.Translation,
	}
}

// cameraBinding owns the camera's GPU buffer and bind group. The buffer is
// rewritten at most once per frame.
type cameraBinding struct {
	layout  *wgpu.BindGroupLayout
	uniform *uniformBuffer[CameraUniform]
}

func newCameraBinding(device *wgpu.Device, cam Camera) (*cameraBinding, error) {
	layout, err := uniformBindGroupLayout(device, "Camera Bind Group Layout", wgpu.ShaderStageVertex|wgpu.ShaderStageFragment)
	if err != nil {
		return nil, err
	}

	uniform, err := newUniformBuffer(device, "Camera Buffer", layout, cam.Uniform())
	if err != nil {
		layout.Release()
		return nil, err
	}

	return &cameraBinding{layout: layout, uniform: uniform}, nil
}

func (c *cameraBinding) update(queue *wgpu.Queue, cam Camera) error {
	return c.uniform.write(queue, cam.Uniform())
}

func (c *cameraBinding) bindGroup() *wgpu.BindGroup {
	return c.uniform.group
}

func (c *cameraBinding) release() {
	c.uniform.release()
	c.layout.Release()
}
