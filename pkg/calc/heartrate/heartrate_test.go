package heartrate

import (
	"reflect"
	"testing"

	"github.com/charlie0129/healthcalc/pkg/calc/validate"
	"github.com/charlie0129/healthcalc/pkg/utils/ptr"
)

func TestZonesAreContiguous(t *testing.T) {
	for _, m := range []Method{AgeFormula{}, Karvonen{RestingHR: 60}, Custom{MaxHR: 190}} {
		res, err := Calculate(Input{Age: 35, Method: m})
		if err != nil {
			t.Fatalf("%s: Calculate returned error: %v", m.Name(), err)
		}
		if len(res.Zones) != 5 {
			t.Fatalf("%s: expected 5 zones, got %d", m.Name(), len(res.Zones))
		}
		for i, z := range res.Zones {
			if z.MinBPM > z.MaxBPM {
				t.Errorf("%s zone %d: min %d > max %d", m.Name(), z.Number, z.MinBPM, z.MaxBPM)
			}
			if i > 0 && res.Zones[i-1].MaxPercentage != z.MinPercentage {
				t.Errorf("%s: zone %d max%% %v != zone %d min%% %v", m.Name(), i, res.Zones[i-1].MaxPercentage, i+1, z.MinPercentage)
			}
		}
		if res.Zones[4].MaxPercentage != 100 {
			t.Errorf("%s: last zone should end at 100%%", m.Name())
		}
	}
}

func TestAgeFormula(t *testing.T) {
	res, err := Calculate(Input{Age: 40, Method: AgeFormula{}})
	if err != nil {
		t.Fatal(err)
	}
	if res.MaxHR != 180 {
		t.Fatalf("expected max HR 180, got %d", res.MaxHR)
	}
	if z := res.Zones[0]; z.MinBPM != 90 || z.MaxBPM != 108 {
		t.Fatalf("unexpected zone 1: %+v", z)
	}
	if res.ReserveHR != nil {
		t.Fatalf("reserve should only be reported for Karvonen")
	}
}

func TestKarvonen(t *testing.T) {
	res, err := Calculate(Input{Age: 40, Method: Karvonen{RestingHR: 60}})
	if err != nil {
		t.Fatal(err)
	}
	if res.ReserveHR == nil || *res.ReserveHR != 120 {
		t.Fatalf("expected reserve 120, got %v", res.ReserveHR)
	}
	// 120 * 0.5 + 60 = 120, 120 * 0.6 + 60 = 132
	if z := res.Zones[0]; z.MinBPM != 120 || z.MaxBPM != 132 {
		t.Fatalf("unexpected zone 1: %+v", z)
	}
	if res.Zones[4].MaxBPM != 180 {
		t.Fatalf("zone 5 should end at max HR, got %d", res.Zones[4].MaxBPM)
	}
}

func TestCustom(t *testing.T) {
	res, err := Calculate(Input{Age: 30, Method: Custom{MaxHR: 200}})
	if err != nil {
		t.Fatal(err)
	}
	if res.MaxHR != 200 || res.Zones[3].MinBPM != 160 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name  string
		in    Input
		field string
	}{
		{"resting above max", Input{Age: 100, Method: Karvonen{RestingHR: 120}}, "method.restingHr"},
		{"custom too low", Input{Age: 20, Method: Custom{MaxHR: 150}}, "method.maxHr"},
		{"missing method", Input{Age: 20}, "method"},
		{"age out of range", Input{Age: 5, Method: AgeFormula{}}, "age"},
		{"age formula resting at max", Input{Age: 100, Method: AgeFormula{}, RestingHR: ptr.To(120)}, "restingHr"},
		{"karvonen conflicting resting", Input{Age: 40, Method: Karvonen{RestingHR: 60}, RestingHR: ptr.To(70)}, "restingHr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.in)
			verr, ok := validate.As(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := verr.Fields[tt.field]; !ok {
				t.Fatalf("expected %s error, got %v", tt.field, verr.Fields)
			}
		})
	}
}

func TestIdempotent(t *testing.T) {
	in := Input{Age: 35, Method: Karvonen{RestingHR: 62}}
	a, err := Calculate(in)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	b, _ := Calculate(in)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("results differ for identical input")
	}
}
