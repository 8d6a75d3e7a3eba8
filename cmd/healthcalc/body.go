package main

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/bmi"
	"github.com/charlie0129/healthcalc/pkg/calc/bodyfat"
	"github.com/charlie0129/healthcalc/pkg/calc/energy"
	"github.com/charlie0129/healthcalc/pkg/calc/kidsbmi"
	"github.com/charlie0129/healthcalc/pkg/calc/units"
	"github.com/charlie0129/healthcalc/pkg/client"
	"github.com/charlie0129/healthcalc/pkg/types"
)

func NewBMICommand() *cobra.Command {
	var req types.BMIRequest

	c := calculation[types.BMIRequest, bmi.Input, bmi.Result]{
		toInput: types.BMIRequest.Input,
		local:   bmi.Calculate,
		remote:  (*client.Client).BMI,
		render: func(cmd *cobra.Command, req types.BMIRequest, res bmi.Result) {
			sys := displayUnits(req.WithUnits)
			cmd.Printf("BMI: %s (%s)\n", bold("%.1f", res.BMI), bold("%s", res.Category))
			cmd.Printf("  %s\n", res.Description)
			cmd.Printf("  BMI prime: %.2f, ponderal index: %.1f\n", res.BMIPrime, res.PonderalIndex)
			cmd.Printf("  Healthy weight for your height: %s - %s\n",
				weightText(res.IdealWeight.Min, sys), weightText(res.IdealWeight.Max, sys))
			switch {
			case res.WeightToNormalKg > 0:
				cmd.Printf("  Gain %s to reach a normal BMI\n", bold("%s", weightText(res.WeightToNormalKg, sys)))
			case res.WeightToNormalKg < 0:
				cmd.Printf("  Lose %s to reach a normal BMI\n", bold("%s", weightText(-res.WeightToNormalKg, sys)))
			}
			printList(cmd, "Recommendations:", res.Recommendations)
			printWarnings(cmd, res.Warnings)
		},
	}

	cmd := &cobra.Command{
		Use:     "bmi",
		Short:   "Calculate body mass index",
		GroupID: gBody,
		Example: `  healthcalc bmi --weight 70 --height 175
  healthcalc bmi -u imperial --weight 154 --height 69`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, req)
		},
	}

	f := cmd.Flags()
	addUnitsFlag(f, &req.WithUnits)
	f.Float64Var(&req.Weight, "weight", 0, "body weight")
	f.Float64Var(&req.Height, "height", 0, "height")
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("height")

	return cmd
}

func NewKidsBMICommand() *cobra.Command {
	var (
		req          types.KidsBMIRequest
		gender       string
		fatherHeight float64
		motherHeight float64
	)

	c := calculation[types.KidsBMIRequest, kidsbmi.Input, kidsbmi.Result]{
		toInput: types.KidsBMIRequest.Input,
		local:   kidsbmi.Calculate,
		remote:  (*client.Client).KidsBMI,
		render: func(cmd *cobra.Command, req types.KidsBMIRequest, res kidsbmi.Result) {
			sys := displayUnits(req.WithUnits)
			cmd.Printf("BMI: %s at age %.1f\n", bold("%.1f", res.BMI), res.AgeYears)
			cmd.Printf("  Percentile: %s (%s)\n", bold("%s", humanize.Ordinal(int(res.Percentile))), bold("%s", res.Category))
			cmd.Printf("  %s\n", res.Description)
			cmd.Printf("  Healthy weight range: %s - %s\n",
				weightText(res.HealthyWeightKg.Min, sys), weightText(res.HealthyWeightKg.Max, sys))
			if res.PredictedAdultHeightCm != nil {
				cmd.Printf("  Predicted adult height: %s\n", bold("%s", lengthText(*res.PredictedAdultHeightCm, sys)))
			}
			printList(cmd, "Nutrition:", res.Nutrition)
			printList(cmd, "Activity:", res.Activity)
			printWarnings(cmd, res.Warnings)
		},
	}

	cmd := &cobra.Command{
		Use:     "kids-bmi",
		Short:   "Calculate BMI-for-age percentile for children aged 2 to 20",
		GroupID: gBody,
		Example: `  healthcalc kids-bmi --gender female --age-months 96 --weight 26 --height 128`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Gender = calc.Gender(gender)
			req.FatherHeight = optionalFloat(cmd, "father-height", fatherHeight)
			req.MotherHeight = optionalFloat(cmd, "mother-height", motherHeight)
			return c.run(cmd, req)
		},
	}

	f := cmd.Flags()
	addUnitsFlag(f, &req.WithUnits)
	f.StringVar(&gender, "gender", "", "male or female")
	f.IntVar(&req.AgeMonths, "age-months", 0, "age in months (24-240)")
	f.Float64Var(&req.Weight, "weight", 0, "body weight")
	f.Float64Var(&req.Height, "height", 0, "height")
	f.Float64Var(&fatherHeight, "father-height", 0, "father's height, for adult height prediction")
	f.Float64Var(&motherHeight, "mother-height", 0, "mother's height, for adult height prediction")
	_ = cmd.MarkFlagRequired("gender")
	_ = cmd.MarkFlagRequired("age-months")
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("height")

	return cmd
}

// energyFlags are shared by bmr and calories.
type energyFlags struct {
	req          types.EnergyRequest
	gender       string
	activity     string
	goal         string
	thyroid      string
	targetWeight float64
}

func (e *energyFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	addUnitsFlag(f, &e.req.WithUnits)
	f.StringVar(&e.gender, "gender", "", "male or female")
	f.IntVar(&e.req.Age, "age", 0, "age in years")
	f.Float64Var(&e.req.Weight, "weight", 0, "body weight")
	f.Float64Var(&e.req.Height, "height", 0, "height")
	f.StringVar(&e.req.Formula, "formula", "mifflin-st-jeor", "mifflin-st-jeor, harris-benedict or katch-mcardle")
	f.Float64Var(&e.req.BodyFatPercent, "body-fat", 0, "body fat percentage, for katch-mcardle")
	f.StringVar(&e.activity, "activity", string(energy.Sedentary), "sedentary, light, moderate, very_active or extremely_active")
	f.StringVar(&e.goal, "goal", string(energy.Maintain), "lose, maintain or gain")
	f.Float64Var(&e.req.WeeklyChange, "weekly-change", 0, "weight change per week, negative to lose")
	f.Float64Var(&e.targetWeight, "target-weight", 0, "target body weight")
	f.StringVar(&e.thyroid, "thyroid", "", "none, hypothyroid or hyperthyroid")
	f.BoolVar(&e.req.Diabetes, "diabetes", false, "diabetic")
	f.BoolVar(&e.req.Smoker, "smoker", false, "smoker")
	f.Float64Var(&e.req.CaffeineMg, "caffeine", 0, "daily caffeine in mg")
	for _, name := range []string{"gender", "age", "weight", "height"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

func (e *energyFlags) request(cmd *cobra.Command) types.EnergyRequest {
	r := e.req
	r.Gender = calc.Gender(e.gender)
	r.Activity = energy.ActivityLevel(e.activity)
	r.Goal = energy.Goal(e.goal)
	r.Thyroid = energy.Thyroid(e.thyroid)
	r.TargetWeight = optionalFloat(cmd, "target-weight", e.targetWeight)
	return r
}

func renderEnergy(cmd *cobra.Command, req types.EnergyRequest, res energy.Result) {
	sys := displayUnits(req.WithUnits)
	cmd.Printf("BMR (%s): %s\n", res.Formula, bold("%s/day", kcal(res.BMR)))
	if len(res.Adjustments) > 0 {
		cmd.Printf("  Base %s, adjusted for", kcal(res.BaseBMR))
		for _, a := range res.Adjustments {
			cmd.Printf(" %s (x%.2f)", a.Name, a.Factor)
		}
		cmd.Println()
	}
	cmd.Printf("  Maintenance (TDEE, x%.3f): %s\n", res.ActivityMultiplier, bold("%s/day", kcal(res.TDEE)))
	if res.MetabolicAge != nil {
		cmd.Printf("  Metabolic age: %s\n", bold("%d", *res.MetabolicAge))
	}

	if res.Variant == energy.VariantCalorie {
		cmd.Println()
		heading(cmd, "Goal:")
		cmd.Printf("  Daily target: %s", bold("%s", kcal(res.GoalCalories)))
		if res.DailyDelta != 0 {
			cmd.Printf(" (%+d kcal/day)", res.DailyDelta)
		}
		cmd.Println()
		if res.FlooredToMinimum {
			cmd.Println("  Raised to the minimum safe intake")
		}
		if res.WeeksToTarget != nil && req.TargetWeight != nil {
			cmd.Printf("  About %s weeks to reach %s\n", humanize.Comma(int64(*res.WeeksToTarget)), weightText(units.WeightToKg(*req.TargetWeight, sys), sys))
		}
		m := res.Macros
		cmd.Printf("  Protein %dg (%d%%), fat %dg (%d%%), carbs %dg (%d%%), fiber %dg\n",
			m.ProteinG, m.ProteinPercent, m.FatG, m.FatPercent, m.CarbsG, m.CarbsPercent, m.FiberG)
	}

	cmd.Println()
	heading(cmd, "By activity level:")
	for _, a := range res.ActivityTable {
		cmd.Printf("  %-17s %s\n", a.Level, kcal(a.Calories))
	}

	printList(cmd, "Insights:", res.Insights)
	printWarnings(cmd, res.Warnings)
}

func newEnergyCommand(use, short string, remote func(*client.Client, context.Context, types.EnergyRequest) (energy.Result, error), local func(energy.Input) (energy.Result, error)) *cobra.Command {
	var e energyFlags

	c := calculation[types.EnergyRequest, energy.Input, energy.Result]{
		toInput: types.EnergyRequest.Input,
		local:   local,
		remote:  remote,
		render:  renderEnergy,
	}

	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		GroupID: gBody,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, e.request(cmd))
		},
	}
	e.register(cmd)

	return cmd
}

func NewBMRCommand() *cobra.Command {
	cmd := newEnergyCommand("bmr", "Calculate basal metabolic rate",
		(*client.Client).BMR, energy.CalculateBMR)
	cmd.Example = `  healthcalc bmr --gender male --age 30 --weight 80 --height 180`
	return cmd
}

func NewCaloriesCommand() *cobra.Command {
	cmd := newEnergyCommand("calories", "Calculate daily calories for a weight goal",
		(*client.Client).Calories, energy.CalculateCalories)
	cmd.Example = `  healthcalc calories --gender female --age 35 --weight 70 --height 165 \
    --activity moderate --goal lose --weekly-change -0.5 --target-weight 62`
	return cmd
}

func NewBodyFatCommand() *cobra.Command {
	var (
		req    types.BodyFatRequest
		gender string
		hip    float64
	)

	c := calculation[types.BodyFatRequest, bodyfat.Input, bodyfat.Result]{
		toInput: types.BodyFatRequest.Input,
		local:   bodyfat.Calculate,
		remote:  (*client.Client).BodyFat,
		render: func(cmd *cobra.Command, req types.BodyFatRequest, res bodyfat.Result) {
			sys := displayUnits(req.WithUnits)
			cmd.Printf("Body fat (%s): %s (%s)\n", res.Method, bold("%.1f%%", res.BodyFatPercent), bold("%s", res.Category))
			cmd.Printf("  Healthy range: %.0f%% - %.0f%%\n", res.HealthyRange.Min, res.HealthyRange.Max)
			comp := res.Composition
			cmd.Printf("  Fat mass: %s, lean mass: %s\n", weightText(comp.FatMassKg, sys), weightText(comp.LeanMassKg, sys))
			cmd.Printf("  Muscle: %s, bone: %s\n", weightText(comp.MuscleMassKg, sys), weightText(comp.BoneMassKg, sys))
			printList(cmd, "Recommendations:", res.Recommendations)
			printWarnings(cmd, res.Warnings)
		},
	}

	cmd := &cobra.Command{
		Use:     "body-fat",
		Short:   "Estimate body fat percentage",
		GroupID: gBody,
		Long: `Estimate body fat percentage.

Pick a method with a subcommand. Circumferences are in the selected length
unit; skinfolds are always in millimetres.`,
	}

	common := func(sub *cobra.Command) *cobra.Command {
		f := sub.Flags()
		addUnitsFlag(f, &req.WithUnits)
		f.StringVar(&gender, "gender", "", "male or female")
		f.IntVar(&req.Age, "age", 0, "age in years")
		f.Float64Var(&req.Weight, "weight", 0, "body weight")
		f.Float64Var(&req.Height, "height", 0, "height")
		for _, name := range []string{"gender", "age", "weight", "height"} {
			_ = sub.MarkFlagRequired(name)
		}
		sub.Args = cobra.NoArgs
		return sub
	}
	runWith := func(method bodyfat.Method) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			req.Gender = calc.Gender(gender)
			req.Measurements.Method = method
			req.Measurements.Hip = optionalFloat(cmd, "hip", hip)
			return c.run(cmd, req)
		}
	}

	m := &req.Measurements

	navy := common(&cobra.Command{
		Use:     "navy",
		Short:   "U.S. Navy circumference method",
		Example: `  healthcalc body-fat navy --gender male --age 30 --weight 80 --height 180 --neck 38 --waist 85`,
		RunE:    runWith(bodyfat.MethodUSNavy),
	})
	navy.Flags().Float64Var(&m.Neck, "neck", 0, "neck circumference")
	navy.Flags().Float64Var(&m.Waist, "waist", 0, "waist circumference at the navel")
	navy.Flags().Float64Var(&hip, "hip", 0, "hip circumference (women)")

	ymca := common(&cobra.Command{
		Use:   "ymca",
		Short: "YMCA waist method",
		RunE:  runWith(bodyfat.MethodYMCA),
	})
	ymca.Flags().Float64Var(&m.Waist, "waist", 0, "waist circumference at the navel")

	jp3 := common(&cobra.Command{
		Use:     "jp3",
		Aliases: []string{string(bodyfat.MethodJP3)},
		Short:   "Jackson-Pollock 3-site skinfold method",
		RunE:    runWith(bodyfat.MethodJP3),
	})
	for name, p := range map[string]*float64{
		"chest":      &m.Chest,
		"abdomen":    &m.Abdomen,
		"thigh":      &m.Thigh,
		"triceps":    &m.Triceps,
		"suprailiac": &m.Suprailiac,
	} {
		jp3.Flags().Float64Var(p, name, 0, name+" skinfold in mm")
	}

	jp7 := common(&cobra.Command{
		Use:     "jp7",
		Aliases: []string{string(bodyfat.MethodJP7)},
		Short:   "Jackson-Pollock 7-site skinfold method",
		RunE:    runWith(bodyfat.MethodJP7),
	})
	for name, p := range map[string]*float64{
		"chest":       &m.Chest,
		"midaxillary": &m.Midaxillary,
		"triceps":     &m.Triceps,
		"subscapular": &m.Subscapular,
		"abdomen":     &m.Abdomen,
		"suprailiac":  &m.Suprailiac,
		"thigh":       &m.Thigh,
	} {
		jp7.Flags().Float64Var(p, name, 0, name+" skinfold in mm")
	}

	cmd.AddCommand(navy, ymca, jp3, jp7)

	return cmd
}
