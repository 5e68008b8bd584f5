package lumen

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window wraps a GLFW window configured for a wgpu surface.
type Window struct {
	glfwWindow *glfw.Window
	Width      int
	Height     int
	title      string

	onResize func(width, height int)
}

func NewWindow(width, height int, title string) (*Window, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initializing glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // Important: tell GLFW we don't want OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	w := &Window{
		glfwWindow: win,
		Width:      width,
		Height:     height,
		title:      title,
	}

	win.SetSizeCallback(func(_ *glfw.Window, newWidth, newHeight int) {
		if newWidth == 0 || newHeight == 0 {
			return
		}
		w.Width = newWidth
		w.Height = newHeight
		if w.onResize != nil {
			w.onResize(newWidth, newHeight)
		}
	})

	return w, nil
}

// OnResize registers a callback invoked with the new size whenever the
// window is resized. Minimized (zero-sized) states are filtered out.
func (w *Window) OnResize(fn func(width, height int)) {
	w.onResize = fn
}

func (w *Window) ShouldClose() bool {
	return w.glfwWindow.ShouldClose()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.glfwWindow)
}

func (w *Window) Release() {
	w.glfwWindow.Destroy()
	glfw.Terminate()
}
