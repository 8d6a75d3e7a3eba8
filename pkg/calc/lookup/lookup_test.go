package lookup

import (
	"math"
	"testing"
)

var testBands = Bands[string]{
	{Below: 18.5, Value: "low"},
	{Below: 25, Value: "mid"},
	{Below: math.Inf(1), Value: "high"},
}

func TestBandsHalfOpen(t *testing.T) {
	tests := []struct {
		x    float64
		want string
	}{
		{-10, "low"},
		{18.49, "low"},
		{18.5, "mid"},
		{24.99, "mid"},
		{25, "high"},
		{1e9, "high"},
	}
	for _, tt := range tests {
		if got := testBands.Find(tt.x); got != tt.want {
			t.Errorf("Find(%v): want %s, got %s", tt.x, tt.want, got)
		}
	}
}

func TestBandsRange(t *testing.T) {
	lo, hi := testBands.Range(1)
	if lo != 18.5 || hi != 25 {
		t.Fatalf("expected [18.5, 25), got [%v, %v)", lo, hi)
	}
	lo, _ = testBands.Range(0)
	if !math.IsInf(lo, -1) {
		t.Fatalf("first band should start at -Inf, got %v", lo)
	}
}

func TestInterpolate(t *testing.T) {
	pts := []Point{{0, 0}, {10, 100}, {20, 150}}

	tests := []struct {
		x, want float64
	}{
		{-5, 0},
		{0, 0},
		{5, 50},
		{10, 100},
		{15, 125},
		{20, 150},
		{30, 150},
	}
	for _, tt := range tests {
		if got := Interpolate(pts, tt.x); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Interpolate(%v): want %v, got %v", tt.x, tt.want, got)
		}
	}
}

func TestRound(t *testing.T) {
	if got := Round(24.6913, 1); got != 24.7 {
		t.Fatalf("expected 24.7, got %v", got)
	}
	if got := Round(1779.5, 0); got != 1780 {
		t.Fatalf("expected 1780, got %v", got)
	}
}
