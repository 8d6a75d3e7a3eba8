package bloodsugar

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/charlie0129/healthcalc/pkg/calc"
)

func ptr(f float64) *float64 { return &f }

func TestThresholds(t *testing.T) {
	tests := []struct {
		bands classifier
		value float64
		want  Category
	}{
		{fastingBands.Find, 99.9, Normal},
		{fastingBands.Find, 100, Prediabetes},
		{fastingBands.Find, 125, Prediabetes},
		{fastingBands.Find, 126, Diabetes},
		{postMealBands.Find, 139, Normal},
		{postMealBands.Find, 140, Prediabetes},
		{postMealBands.Find, 200, Diabetes},
		{hba1cBands.Find, 5.6, Normal},
		{hba1cBands.Find, 5.7, Prediabetes},
		{hba1cBands.Find, 6.5, Diabetes},
	}
	for _, tt := range tests {
		if got := tt.bands(tt.value); got != tt.want {
			t.Errorf("value %v: want %s, got %s", tt.value, tt.want, got)
		}
	}
}

type classifier func(float64) Category

func TestRisk(t *testing.T) {
	tests := []struct {
		worst Category
		h     History
		want  RiskLevel
	}{
		{Normal, HistoryNone, RiskLow},
		{Normal, HistoryFamily, RiskModerate},
		{Normal, HistoryPersonal, RiskModerate},
		{Prediabetes, HistoryNone, RiskModerate},
		{Prediabetes, HistoryFamily, RiskHigh},
		{Diabetes, HistoryNone, RiskHigh},
		{Diabetes, HistoryFamily, RiskVeryHigh},
		{Diabetes, HistoryPersonal, RiskVeryHigh},
	}
	for _, tt := range tests {
		if got := Risk(tt.worst, tt.h); got != tt.want {
			t.Errorf("Risk(%s, %s): want %s, got %s", tt.worst, tt.h, tt.want, got)
		}
	}
}

func TestCalculateWorstReadingWins(t *testing.T) {
	res, err := Calculate(Input{
		FastingMgdl:  95,
		PostMealMgdl: ptr(150),
		HbA1c:        ptr(6.6),
		History:      HistoryNone,
	})
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	if res.Fasting.Category != Normal || res.PostMeal.Category != Prediabetes || res.HbA1c.Category != Diabetes {
		t.Fatalf("unexpected per-reading categories: %+v", res)
	}
	if res.Overall != Diabetes || res.Risk != RiskHigh {
		t.Fatalf("expected diabetes/high, got %s/%s", res.Overall, res.Risk)
	}
	if res.EstimatedAverageGlucose == nil || *res.EstimatedAverageGlucose != 142.7 {
		t.Fatalf("expected eAG 142.7, got %v", res.EstimatedAverageGlucose)
	}
}

func TestHypoglycemiaWarning(t *testing.T) {
	res, err := Calculate(Input{FastingMgdl: 60, History: HistoryNone})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Severity != calc.SeverityCritical {
		t.Fatalf("expected one critical warning, got %v", res.Warnings)
	}
}

func TestCategoryJSON(t *testing.T) {
	b, err := json.Marshal(Reading{Value: 130, Category: Diabetes})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"category":"diabetes"`) {
		t.Fatalf("category should marshal as text, got %s", b)
	}
}

func TestValidation(t *testing.T) {
	if _, err := Calculate(Input{FastingMgdl: 10, History: "unknown"}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestIdempotent(t *testing.T) {
	in := Input{FastingMgdl: 104, PostMealMgdl: ptr(151.0), HbA1c: ptr(5.9), History: HistoryNone}
	a, err := Calculate(in)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	b, _ := Calculate(in)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("results differ for identical input")
	}
}
