// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

var (
	// ErrSurfaceClosed is returned when drawing to a closed surface.
	ErrSurfaceClosed = errors.New("render: surface is closed")

	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("render: invalid dimensions")

	// ErrNoGPU is returned by Present on a headless surface.
	ErrNoGPU = errors.New("render: surface has no GPU canvas")
)

// Surface is the pixel buffer a Renderer paints into and the object a
// container holds as its child. With a device provider it wraps a
// ggcanvas.Canvas so frames can be uploaded and presented on the GPU.
//
// Surface is NOT safe for concurrent use; it belongs to the frame loop.
type Surface struct {
	ctx    *gg.Context
	canvas *ggcanvas.Canvas
	format gputypes.TextureFormat
	width  int
	height int
	closed bool
}

// NewSurface creates a surface of the given size in device pixels.
// provider may be nil for headless rendering.
func NewSurface(provider gpucontext.DeviceProvider, width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	s := &Surface{width: width, height: height, format: gputypes.TextureFormatRGBA8Unorm}
	if provider != nil {
		c, err := ggcanvas.New(provider, width, height)
		if err != nil {
			return nil, fmt.Errorf("render: gpu canvas: %w", err)
		}
		s.canvas = c
		s.format = provider.SurfaceFormat()
		return s, nil
	}
	s.ctx = gg.NewContext(width, height)
	return s, nil
}

// PixelSize returns the backing store size in device pixels.
func (s *Surface) PixelSize() (width, height int) {
	return s.width, s.height
}

// Format returns the pixel format frames are presented in: the provider's
// surface format on the GPU path, RGBA8 otherwise.
func (s *Surface) Format() gputypes.TextureFormat { return s.format }

// GPU reports whether frames can be presented through a GPU canvas.
func (s *Surface) GPU() bool { return s.canvas != nil }

// Canvas returns the GPU canvas, or nil for headless surfaces.
func (s *Surface) Canvas() *ggcanvas.Canvas { return s.canvas }

// Closed reports whether Close has run.
func (s *Surface) Closed() bool { return s.closed }

// Draw calls fn with the drawing context.
func (s *Surface) Draw(fn func(*gg.Context)) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	if s.canvas != nil {
		return s.canvas.Draw(fn)
	}
	fn(s.ctx)
	return nil
}

// Resize changes the backing store size. Content is cleared.
func (s *Surface) Resize(width, height int) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if width == s.width && height == s.height {
		return nil
	}
	var err error
	if s.canvas != nil {
		err = s.canvas.Resize(width, height)
	} else {
		err = s.ctx.Resize(width, height)
	}
	if err != nil {
		return fmt.Errorf("render: resize surface: %w", err)
	}
	s.width, s.height = width, height
	return nil
}

// Image returns a copy of the last drawn frame, or nil once closed.
func (s *Surface) Image() image.Image {
	if s.closed {
		return nil
	}
	if s.canvas != nil {
		return s.canvas.Context().Image()
	}
	return s.ctx.Image()
}

// Present uploads the frame and draws it through dc.
func (s *Surface) Present(dc gpucontext.TextureDrawer) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	if s.canvas == nil {
		return ErrNoGPU
	}
	return s.canvas.RenderTo(dc)
}

// Close releases the pixel buffer and any GPU texture.
// Calling it again is a no-op.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.canvas != nil {
		return s.canvas.Close()
	}
	return s.ctx.Close()
}
