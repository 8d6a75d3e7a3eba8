package energy

import (
	"math"
	"reflect"
	"testing"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/validate"
)

func baseInput() Input {
	return Input{
		Gender:   calc.Male,
		Age:      30,
		WeightKg: 80,
		HeightCm: 180,
		Formula:  MifflinStJeor{},
		Activity: Sedentary,
		Goal:     Maintain,
	}
}

func TestMifflinStJeor(t *testing.T) {
	res, err := CalculateBMR(baseInput())
	if err != nil {
		t.Fatalf("CalculateBMR returned error: %v", err)
	}
	// 10*80 + 6.25*180 - 5*30 + 5
	if res.BMR != 1780 || res.BaseBMR != 1780 {
		t.Fatalf("expected BMR 1780, got base=%d adjusted=%d", res.BaseBMR, res.BMR)
	}
	if res.TDEE != 2136 {
		t.Fatalf("expected TDEE 2136, got %d", res.TDEE)
	}
	if res.GoalCalories != res.TDEE {
		t.Fatalf("maintenance goal should equal TDEE, got %d", res.GoalCalories)
	}

	in := baseInput()
	in.Gender = calc.Female
	res, err = CalculateBMR(in)
	if err != nil {
		t.Fatal(err)
	}
	if res.BMR != 1614 {
		t.Fatalf("expected female BMR 1614, got %d", res.BMR)
	}
}

func TestFormulas(t *testing.T) {
	tests := []struct {
		name    string
		formula Formula
		gender  calc.Gender
		want    float64
	}{
		{"harris male", HarrisBenedict{}, calc.Male, 88.362 + 13.397*80 + 4.799*180 - 5.677*30},
		{"harris female", HarrisBenedict{}, calc.Female, 447.593 + 9.247*80 + 3.098*180 - 4.330*30},
		{"katch", KatchMcArdle{BodyFatPercent: 20}, calc.Male, 370 + 21.6*64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BaseBMR(tt.formula, tt.gender, 30, 80, 180)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAdjustmentsOrderAndCap(t *testing.T) {
	in := baseInput()
	in.Thyroid = Hypothyroid
	in.Diabetes = true
	in.Smoker = true
	in.CaffeineMg = 900

	res, err := CalculateBMR(in)
	if err != nil {
		t.Fatal(err)
	}

	names := make([]string, 0, len(res.Adjustments))
	for _, a := range res.Adjustments {
		names = append(names, a.Name)
	}
	want := []string{"hypothyroidism", "diabetes", "smoking", "caffeine"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected adjustments %v, got %v", want, names)
	}
	if caffeine := res.Adjustments[3].Factor; math.Abs(caffeine-1.10) > 1e-9 {
		t.Fatalf("caffeine boost should be capped at 10%%, got %v", caffeine)
	}

	wantBMR := int(math.Round(1780 * 0.85 * 1.05 * 1.10 * 1.10))
	if res.BMR != wantBMR {
		t.Fatalf("expected adjusted BMR %d, got %d", wantBMR, res.BMR)
	}
}

func TestGoalCalories(t *testing.T) {
	in := baseInput()
	in.Activity = Moderate
	in.Goal = Lose
	in.WeeklyChangeKg = -0.5

	res, err := CalculateCalories(in)
	if err != nil {
		t.Fatal(err)
	}
	// 1780 * 1.55 = 2759; -0.5 * 7700 / 7 = -550
	if res.TDEE != 2759 || res.DailyDelta != -550 || res.GoalCalories != 2209 {
		t.Fatalf("unexpected energy figures: tdee=%d delta=%d goal=%d", res.TDEE, res.DailyDelta, res.GoalCalories)
	}
	if res.Macros.ProteinG != 176 {
		t.Fatalf("expected 176g protein (2.2 g/kg), got %d", res.Macros.ProteinG)
	}
	if res.Macros.FiberG != 31 {
		t.Fatalf("expected 31g fiber, got %d", res.Macros.FiberG)
	}
	if res.MetabolicAge != nil {
		t.Fatalf("calorie variant should not report metabolic age")
	}
}

func TestCalorieVariantFloors(t *testing.T) {
	in := Input{
		Gender:         calc.Female,
		Age:            60,
		WeightKg:       50,
		HeightCm:       150,
		Formula:        MifflinStJeor{},
		Activity:       Sedentary,
		Goal:           Lose,
		WeeklyChangeKg: -1,
	}

	bmrRes, err := CalculateBMR(in)
	if err != nil {
		t.Fatal(err)
	}
	if bmrRes.FlooredToMinimum || bmrRes.GoalCalories >= 1200 {
		t.Fatalf("BMR variant should not floor, got %d", bmrRes.GoalCalories)
	}
	if !hasSeverity(bmrRes.Warnings, calc.SeverityCritical) {
		t.Fatalf("expected a critical warning for goal below 80%% of BMR, got %v", bmrRes.Warnings)
	}

	calRes, err := CalculateCalories(in)
	if err != nil {
		t.Fatal(err)
	}
	if !calRes.FlooredToMinimum || calRes.GoalCalories != 1200 {
		t.Fatalf("calorie variant should floor at 1200, got %d", calRes.GoalCalories)
	}
}

func TestWarnings(t *testing.T) {
	in := baseInput()
	in.Age = 70
	in.Goal = Gain
	in.WeeklyChangeKg = 1

	res, err := CalculateCalories(in)
	if err != nil {
		t.Fatal(err)
	}
	if !hasSeverity(res.Warnings, calc.SeverityWarning) {
		t.Errorf("expected surplus warning, got %v", res.Warnings)
	}
	if !hasSeverity(res.Warnings, calc.SeverityCaution) {
		t.Errorf("expected age caution, got %v", res.Warnings)
	}
}

func TestWeeksToTarget(t *testing.T) {
	in := baseInput()
	in.Goal = Lose
	in.WeeklyChangeKg = -0.5
	target := 72.0
	in.TargetWeightKg = &target

	res, err := CalculateCalories(in)
	if err != nil {
		t.Fatal(err)
	}
	if res.WeeksToTarget == nil || *res.WeeksToTarget != 16 {
		t.Fatalf("expected 16 weeks to target, got %v", res.WeeksToTarget)
	}
}

func TestMetabolicAge(t *testing.T) {
	if got := MetabolicAge(calc.Male, 80, 180, 1780); got != 30 {
		t.Fatalf("unadjusted BMR should give chronological age, got %d", got)
	}
	if got := MetabolicAge(calc.Male, 80, 180, 3000); got != 18 {
		t.Fatalf("metabolic age should clamp at 18, got %d", got)
	}
}

func TestValidation(t *testing.T) {
	in := baseInput()
	in.Formula = KatchMcArdle{BodyFatPercent: 80}
	in.Goal = Lose
	in.WeeklyChangeKg = 0.5

	_, err := CalculateBMR(in)
	verr, ok := validate.As(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, f := range []string{"formula.bodyFatPercent", "weeklyChangeKg"} {
		if _, ok := verr.Fields[f]; !ok {
			t.Errorf("expected %s error, got %v", f, verr.Fields)
		}
	}

	in = baseInput()
	in.Formula = nil
	if _, err := CalculateBMR(in); err == nil {
		t.Fatalf("expected error for missing formula")
	}
}

func TestParseFormula(t *testing.T) {
	f, ok := ParseFormula("katch-mcardle", 18)
	if !ok {
		t.Fatal("katch-mcardle should parse")
	}
	if k, ok := f.(KatchMcArdle); !ok || k.BodyFatPercent != 18 {
		t.Fatalf("unexpected formula %#v", f)
	}
	if _, ok := ParseFormula("cunningham", 0); ok {
		t.Fatal("unknown formula should not parse")
	}
}

func hasSeverity(ws []calc.Warning, s calc.Severity) bool {
	for _, w := range ws {
		if w.Severity == s {
			return true
		}
	}
	return false
}
