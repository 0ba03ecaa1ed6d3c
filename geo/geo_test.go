package geo

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestLatLongToVector3Magnitude(t *testing.T) {
	tests := []struct {
		lat, long, r float64
	}{
		{0, 0, 1},
		{26.2006, 92.9376, 1.02},
		{90, 0, 2},
		{-90, 45, 0.5},
		{-33.8688, 151.2093, 3},
		{51.5074, -0.1278, 1},
		{0, -180, 10},
	}
	for _, tt := range tests {
		v := LatLongToVector3(tt.lat, tt.long, tt.r)
		if got := v.Len(); math.Abs(got-tt.r) > eps {
			t.Errorf("|LatLongToVector3(%v, %v, %v)| = %v, want %v", tt.lat, tt.long, tt.r, got, tt.r)
		}
	}
}

func TestLatLongToVector3Origin(t *testing.T) {
	v := LatLongToVector3(0, 0, 1)
	want := [3]float64{1, 0, 0}
	for i := range want {
		if math.Abs(v[i]-want[i]) > eps {
			t.Fatalf("LatLongToVector3(0, 0, 1) = %v, want %v", v, want)
		}
	}
}

func TestLatLongToVector3Poles(t *testing.T) {
	north := LatLongToVector3(90, 123, 1)
	if math.Abs(north.Y()-1) > eps || math.Abs(north.X()) > eps || math.Abs(north.Z()) > eps {
		t.Errorf("north pole = %v, want (0, 1, 0)", north)
	}
	south := LatLongToVector3(-90, -40, 1)
	if math.Abs(south.Y()+1) > eps {
		t.Errorf("south pole = %v, want (0, -1, 0)", south)
	}
}

func TestLatLongToVector3Deterministic(t *testing.T) {
	a := LatLongToVector3(26.2006, 92.9376, 1.02)
	b := LatLongToVector3(26.2006, 92.9376, 1.02)
	if a != b {
		t.Errorf("repeated calls differ: %v vs %v", a, b)
	}
}

func TestFallbackTexture(t *testing.T) {
	img := FallbackTexture()
	if img == nil {
		t.Fatal("FallbackTexture() = nil")
	}
	b := img.Bounds()
	if b.Dx() != FallbackWidth || b.Dy() != FallbackHeight {
		t.Fatalf("bounds = %v, want %dx%d", b, FallbackWidth, FallbackHeight)
	}

	top := img.RGBAAt(FallbackWidth/2, 0)
	bottom := img.RGBAAt(FallbackWidth/2, FallbackHeight-1)
	if top.A == 0 || bottom.A == 0 {
		t.Fatalf("gradient is transparent: top=%v bottom=%v", top, bottom)
	}
	// Dark navy at the top, brighter blue at the bottom.
	if bottom.B <= top.B {
		t.Errorf("blue channel top=%d bottom=%d, want increasing downwards", top.B, bottom.B)
	}
	// Rows are uniform across x.
	if l, r := img.RGBAAt(0, FallbackHeight/2), img.RGBAAt(FallbackWidth-1, FallbackHeight/2); l != r {
		t.Errorf("row not uniform: left=%v right=%v", l, r)
	}
}

func TestGradientTextureClampsSize(t *testing.T) {
	img := GradientTexture(0, -3, fallbackTop, fallbackBottom)
	if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("bounds = %v, want 1x1", b)
	}
}
