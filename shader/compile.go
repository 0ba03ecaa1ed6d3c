package shader

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vista"
	"github.com/gogpu/vista/scene"
)

var (
	// ErrNoSource is returned when a program carries no WGSL.
	ErrNoSource = errors.New("shader: program has no WGSL source")

	// ErrNoHALDevice is returned when a provider does not expose a HAL device.
	ErrNoHALDevice = errors.New("shader: provider does not expose a HAL device")
)

// compileWGSL is swapped in tests that exercise module lifetime without
// depending on the compiler.
var compileWGSL = func(src string) ([]byte, error) {
	return naga.Compile(src)
}

// Compile compiles WGSL source to little-endian SPIR-V words.
func Compile(wgsl string) ([]uint32, error) {
	if wgsl == "" {
		return nil, ErrNoSource
	}
	spirvBytes, err := compileWGSL(wgsl)
	if err != nil {
		return nil, fmt.Errorf("shader: compile: %w", err)
	}

	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// Device is the part of hal.Device needed to hold shader modules.
type Device interface {
	CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error)
	DestroyShaderModule(module hal.ShaderModule)
}

// DeviceFrom extracts the HAL device from a provider that implements
// HalDevice() any, such as the gogpu application context.
func DeviceFrom(provider any) (Device, error) {
	type halProvider interface {
		HalDevice() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALDevice
	}
	device, ok := hp.HalDevice().(Device)
	if !ok || device == nil {
		return nil, ErrNoHALDevice
	}
	return device, nil
}

// Module is a program compiled onto a device. It satisfies scene.Releaser
// so disposing the owning material destroys it.
type Module struct {
	Label string

	device   Device
	module   hal.ShaderModule
	once     sync.Once
	released bool
}

// Build compiles p and creates its shader module on dev.
func Build(dev Device, p scene.Program) (*Module, error) {
	code, err := Compile(p.WGSL)
	if err != nil {
		return nil, fmt.Errorf("shader: %s: %w", p.Name, err)
	}
	return newModule(dev, p.Name, code)
}

func newModule(dev Device, label string, code []uint32) (*Module, error) {
	m, err := dev.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: code,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("shader: %s: create module: %w", label, err)
	}
	return &Module{Label: label, device: dev, module: m}, nil
}

// Release destroys the module. Calling it again is a no-op.
func (m *Module) Release() {
	m.once.Do(func() {
		m.device.DestroyShaderModule(m.module)
		m.module = nil
		m.released = true
	})
}

// Released reports whether Release has run.
func (m *Module) Released() bool { return m.released }

// BindScene compiles the program of every shader material under root and
// binds the resulting module to it. Programs shared by several materials are
// compiled once. Failures are collected and the remaining materials are
// still bound; it returns how many materials received a module.
func BindScene(dev Device, root scene.Object) (int, error) {
	compiled := make(map[string][]uint32)
	var errs []error
	bound := 0

	root.Base().Traverse(func(o scene.Object) {
		m := shaderMaterialOf(o)
		if m == nil || m.GPU() != nil || m.Disposed() {
			return
		}
		p := m.Program
		code, ok := compiled[p.Name]
		if !ok {
			var err error
			code, err = Compile(p.WGSL)
			if err != nil {
				errs = append(errs, fmt.Errorf("shader: %s: %w", p.Name, err))
				compiled[p.Name] = nil
				return
			}
			compiled[p.Name] = code
		}
		if code == nil {
			return
		}
		mod, err := newModule(dev, p.Name, code)
		if err != nil {
			errs = append(errs, err)
			return
		}
		m.BindGPU(mod)
		bound++
	})

	vista.Logger().Debug("shader: bound scene programs", "materials", bound, "failed", len(errs))
	return bound, errors.Join(errs...)
}

func shaderMaterialOf(o scene.Object) *scene.ShaderMaterial {
	var mat scene.Material
	switch v := o.(type) {
	case *scene.Mesh:
		mat = v.Material
	case *scene.Points:
		mat = v.Material
	default:
		return nil
	}
	sm, _ := mat.(*scene.ShaderMaterial)
	return sm
}
