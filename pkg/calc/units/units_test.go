package units

import (
	"math"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	for _, v := range []float64{0.5, 12, 70.3, 154, 180.25, 399.9} {
		if got := KgToLb(LbToKg(v)); math.Abs(got-v) > 1e-9 {
			t.Errorf("lb round trip: want %v, got %v", v, got)
		}
		if got := CmToInch(InchToCm(v)); math.Abs(got-v) > 1e-9 {
			t.Errorf("inch round trip: want %v, got %v", v, got)
		}
		if got := MgdlToMmol(MmolToMgdl(v)); math.Abs(got-v) > 1e-9 {
			t.Errorf("glucose round trip: want %v, got %v", v, got)
		}
	}
}

func TestFeetInch(t *testing.T) {
	cm := FeetInchToCm(5, 10)
	if math.Abs(cm-177.8) > 1e-9 {
		t.Fatalf("expected 177.8cm, got %v", cm)
	}
	feet, inches := CmToFeetInch(cm)
	if feet != 5 || math.Abs(inches-10) > 1e-9 {
		t.Fatalf("expected 5ft 10in, got %dft %vin", feet, inches)
	}
}

func TestParseSystem(t *testing.T) {
	tests := map[string]System{
		"":         Metric,
		"metric":   Metric,
		"Imperial": Imperial,
		" lbs ":    Imperial,
	}
	for in, want := range tests {
		got, err := ParseSystem(in)
		if err != nil {
			t.Fatalf("ParseSystem(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseSystem(%q): want %s, got %s", in, want, got)
		}
	}

	if _, err := ParseSystem("stone"); err == nil {
		t.Fatalf("expected error for unknown system")
	}
}

func TestVolumes(t *testing.T) {
	if got := LitersToCups(2.365882365); math.Abs(got-10) > 1e-9 {
		t.Errorf("expected 10 cups, got %v", got)
	}
	if got := LitersToFlOz(1); math.Abs(got-33.814) > 1e-3 {
		t.Errorf("expected ~33.814 fl oz, got %v", got)
	}
}
