package lumen

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// instanceBuffer keeps a GPU-side copy of an instance slice, growing the
// underlying buffer when the instance count outgrows its capacity and
// rewriting in place otherwise.
type instanceBuffer[T any] struct {
	buffer *wgpu.Buffer
	count  uint32
	cap    uint32
	label  string
}

func newInstanceBuffer[T any](device *wgpu.Device, label string, data []T) (*instanceBuffer[T], error) {
	buffer, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: wgpu.ToBytes(data),
		Usage:    wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	return &instanceBuffer[T]{
		buffer: buffer,
		count:  uint32(len(data)),
		cap:    uint32(len(data)),
		label:  label,
	}, nil
}

func (b *instanceBuffer[T]) update(device *wgpu.Device, queue *wgpu.Queue, data []T) error {
	if uint32(len(data)) > b.cap {
		b.buffer.Release()
		fresh, err := newInstanceBuffer(device, b.label, data)
		if err != nil {
			return err
		}
		*b = *fresh
		return nil
	}

	b.count = uint32(len(data))
	if len(data) == 0 {
		return nil
	}
	return queue.WriteBuffer(b.buffer, 0, wgpu.ToBytes(data))
}

func (b *instanceBuffer[T]) release() {
	if b.buffer != nil {
		b.buffer.Release()
	}
}

// uniformBuffer pairs a single-struct uniform with its bind group.
type uniformBuffer[T any] struct {
	buffer *wgpu.Buffer
	group  *wgpu.BindGroup
}

func newUniformBuffer[T any](device *wgpu.Device, label string, layout *wgpu.BindGroupLayout, value T) (*uniformBuffer[T], error) {
	buffer, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: wgpu.ToBytes([]T{value}),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}

	group, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: buffer, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		buffer.Release()
		return nil, err
	}

	return &uniformBuffer[T]{buffer: buffer, group: group}, nil
}

func (u *uniformBuffer[T]) write(queue *wgpu.Queue, value T) error {
	return queue.WriteBuffer(u.buffer, 0, wgpu.ToBytes([]T{value}))
}

func (u *uniformBuffer[T]) release() {
	if u.group != nil {
		u.group.Release()
	}
	if u.buffer != nil {
		u.buffer.Release()
	}
}
