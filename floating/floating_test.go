package floating

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gogpu/vista"
	"github.com/gogpu/vista/anim"
	"github.com/gogpu/vista/interaction"
	"github.com/gogpu/vista/scene"
)

func TestNew(t *testing.T) {
	root := scene.NewScene()
	opts := DefaultOptions()
	opts.Scale = 1.2
	f := New(root, opts)
	if root.Find("floating") == nil {
		t.Fatal("cube not attached")
	}
	if s := f.Mesh.Scale; s.X() != 1.2 || s.Z() != 1.2 {
		t.Errorf("Scale = %v", s)
	}
	if f.Mesh.Geometry.Kind() != "box" {
		t.Errorf("geometry = %s", f.Mesh.Geometry.Kind())
	}
	if New(scene.NewScene(), Options{}).Mesh.Scale.X() != 1 {
		t.Error("zero scale not defaulted")
	}
}

func TestUpdate(t *testing.T) {
	f := New(scene.NewScene(), DefaultOptions())
	ps := interaction.PointerState{TargetX: 1.5, TargetY: -1.5}

	tests := []struct {
		elapsed time.Duration
		wantY   float64
	}{
		{0, 0},
		{time.Second * 3, math.Sin(1.5) * BobAmplitude},
		{time.Second * 7, math.Sin(3.5) * BobAmplitude},
	}
	for i, tt := range tests {
		f.Update(anim.Frame{Index: uint64(i), Elapsed: tt.elapsed}, ps)
		if got := f.Mesh.Position.Y(); math.Abs(got-tt.wantY) > 1e-12 {
			t.Errorf("t=%v: y = %v, want %v", tt.elapsed, got, tt.wantY)
		}
	}
	if got := f.Mesh.Rotation.Y; math.Abs(got-3*0.005) > 1e-12 {
		t.Errorf("yaw = %v after 3 frames", got)
	}
	if f.Mesh.Rotation.X <= 0 || f.Mesh.Rotation.Z >= 0 {
		t.Errorf("tilt %+v does not follow the target", f.Mesh.Rotation)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	if _, err := OptionsFromConfig(vista.FloatingConfig{Color: "red"}); !errors.Is(err, vista.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
	o, err := OptionsFromConfig(vista.FloatingConfig{Color: "#4fc0ff", Scale: 1.2, RotationSpeed: 0.01})
	if err != nil {
		t.Fatal(err)
	}
	if o.Sensitivity.Yaw != 1.5 || o.Sensitivity.Pitch != 1.5 || o.RotationSpeed != 0.01 {
		t.Errorf("options = %+v", o)
	}
}
