package core

import (
	"math"
	"testing"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(3, 4, 10, 5)
	if r.Right() != 13 {
		t.Errorf("Right() = %d, want 13", r.Right())
	}
	if r.Bottom() != 9 {
		t.Errorf("Bottom() = %d, want 9", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{5, 1, 10, 5},
		{0, 1, 10, 1},
		{11, 1, 10, 10},
		{1, 1, 1, 1},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tc.val, tc.lo, tc.hi, got, tc.want)
		}
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{800, 100, 0.5, 450},
		{800, 100, 0.05, 765},
	}

	for _, tc := range tests {
		if got := Lerp(tc.a, tc.b, tc.t); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tc.a, tc.b, tc.t, got, tc.want)
		}
	}
}

func TestRuntimeConfigTiming(t *testing.T) {
	tests := []struct {
		rate   int
		delta  float64
		millis float64
	}{
		{60, 1, 1000.0 / 60},
		{30, 2, 1000.0 / 30},
		{120, 0.5, 1000.0 / 120},
		{0, 1, 1000.0 / 60},
	}

	for _, tc := range tests {
		cfg := RuntimeConfig{TickRate: tc.rate}
		if got := cfg.Delta(); got != tc.delta {
			t.Errorf("Delta() at %d ticks/s = %f, want %f", tc.rate, got, tc.delta)
		}
		if got := cfg.TickMillis(); math.Abs(got-tc.millis) > 1e-9 {
			t.Errorf("TickMillis() at %d ticks/s = %f, want %f", tc.rate, got, tc.millis)
		}
	}
}
