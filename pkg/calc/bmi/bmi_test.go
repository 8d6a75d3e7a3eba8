package bmi

import (
	"reflect"
	"testing"

	"github.com/charlie0129/healthcalc/pkg/calc/validate"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		bmi  float64
		want Category
	}{
		{18.4, Underweight},
		{18.5, Normal},
		{24.9, Normal},
		{25.0, Overweight},
		{29.9, Overweight},
		{30.0, Obese},
	}
	for _, tt := range tests {
		if got := Classify(tt.bmi); got != tt.want {
			t.Errorf("Classify(%v): want %s, got %s", tt.bmi, tt.want, got)
		}
	}
}

func TestCalculate(t *testing.T) {
	res, err := Calculate(Input{WeightKg: 70, HeightCm: 175})
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	if res.BMI != 22.9 {
		t.Errorf("expected BMI 22.9, got %v", res.BMI)
	}
	if res.Category != Normal {
		t.Errorf("expected normal, got %s", res.Category)
	}
	if res.IdealWeight.Min != 56.7 || res.IdealWeight.Max != 76.3 {
		t.Errorf("unexpected ideal range %+v", res.IdealWeight)
	}
	if res.WeightToNormalKg != 0 {
		t.Errorf("expected no weight change, got %v", res.WeightToNormalKg)
	}
}

func TestWeightToNormal(t *testing.T) {
	res, err := Calculate(Input{WeightKg: 100, HeightCm: 175})
	if err != nil {
		t.Fatal(err)
	}
	if res.Category != Obese {
		t.Fatalf("expected obese, got %s", res.Category)
	}
	if res.WeightToNormalKg != -23.7 {
		t.Fatalf("expected -23.7kg to normal, got %v", res.WeightToNormalKg)
	}
}

func TestMonotonic(t *testing.T) {
	prev := 0.0
	for w := 40.0; w <= 150; w += 0.5 {
		res, err := Calculate(Input{WeightKg: w, HeightCm: 170})
		if err != nil {
			t.Fatal(err)
		}
		if res.BMI < prev {
			t.Fatalf("BMI decreased when weight increased to %v: %v < %v", w, res.BMI, prev)
		}
		prev = res.BMI
	}

	prev = 1e9
	for h := 140.0; h <= 210; h += 0.5 {
		res, err := Calculate(Input{WeightKg: 70, HeightCm: h})
		if err != nil {
			t.Fatal(err)
		}
		if res.BMI > prev {
			t.Fatalf("BMI increased when height increased to %v: %v > %v", h, res.BMI, prev)
		}
		prev = res.BMI
	}
}

func TestValidation(t *testing.T) {
	_, err := Calculate(Input{WeightKg: 5, HeightCm: 300})
	verr, ok := validate.As(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields["weightKg"]; !ok {
		t.Errorf("expected weightKg error, got %v", verr.Fields)
	}
	if _, ok := verr.Fields["heightCm"]; !ok {
		t.Errorf("expected heightCm error, got %v", verr.Fields)
	}
}

func TestIdempotent(t *testing.T) {
	in := Input{WeightKg: 81.3, HeightCm: 183.2}
	a, _ := Calculate(in)
	b, _ := Calculate(in)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("results differ for identical input")
	}
}
