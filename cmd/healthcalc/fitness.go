package main

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/bloodsugar"
	"github.com/charlie0129/healthcalc/pkg/calc/heartrate"
	"github.com/charlie0129/healthcalc/pkg/calc/hydration"
	"github.com/charlie0129/healthcalc/pkg/calc/sleep"
	"github.com/charlie0129/healthcalc/pkg/calc/units"
	"github.com/charlie0129/healthcalc/pkg/client"
	"github.com/charlie0129/healthcalc/pkg/types"
)

func NewHeartRateCommand() *cobra.Command {
	var (
		req       types.HeartRateRequest
		restingHR int
	)

	c := calculation[types.HeartRateRequest, heartrate.Input, heartrate.Result]{
		toInput: types.HeartRateRequest.Input,
		local:   heartrate.Calculate,
		remote:  (*client.Client).HeartRate,
		render: func(cmd *cobra.Command, _ types.HeartRateRequest, res heartrate.Result) {
			cmd.Printf("Max heart rate (%s): %s\n", res.Method, bold("%d bpm", res.MaxHR))
			if res.RestingHR != nil {
				cmd.Printf("  Resting: %d bpm\n", *res.RestingHR)
			}
			if res.ReserveHR != nil {
				cmd.Printf("  Reserve: %d bpm\n", *res.ReserveHR)
			}
			cmd.Printf("  Fat burn: %d-%d bpm, cardio: %d-%d bpm\n",
				res.FatBurn.MinBPM, res.FatBurn.MaxBPM, res.Cardio.MinBPM, res.Cardio.MaxBPM)

			cmd.Println()
			heading(cmd, "Zones:")
			for _, z := range res.Zones {
				cmd.Printf("  %d %-10s %s  %.0f-%.0f%%  %s\n", z.Number, z.Name,
					bold("%3d-%3d bpm", z.MinBPM, z.MaxBPM), z.MinPercentage, z.MaxPercentage, z.Benefits)
			}
			printList(cmd, "Tips:", res.Tips)
		},
	}

	cmd := &cobra.Command{
		Use:     "heart-rate",
		Short:   "Calculate max heart rate and training zones",
		GroupID: gFitness,
		Long: `Calculate max heart rate and training zones.

Methods:
  age       max HR = 220 - age, zones from max HR (default)
  karvonen  zones from the heart rate reserve; needs --resting-hr
  custom    zones from a measured --max-hr`,
		Example: `  healthcalc heart-rate --age 40
  healthcalc heart-rate --age 40 --method karvonen --resting-hr 60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := req
			if strings.EqualFold(r.Method.Type, "karvonen") {
				r.Method.RestingHR = restingHR
			} else {
				r.RestingHR = optionalInt(cmd, "resting-hr", restingHR)
			}
			return c.run(cmd, r)
		},
	}

	f := cmd.Flags()
	f.IntVar(&req.Age, "age", 0, "age in years")
	f.StringVar(&req.Method.Type, "method", "age", "age, karvonen or custom")
	f.IntVar(&restingHR, "resting-hr", 0, "resting heart rate in bpm")
	f.IntVar(&req.Method.MaxHR, "max-hr", 0, "measured max heart rate in bpm, for custom")
	_ = cmd.MarkFlagRequired("age")

	return cmd
}

func categoryText(c bloodsugar.Category) string {
	switch c {
	case bloodsugar.Normal:
		return color.New(color.Bold, color.FgGreen).Sprint(c)
	case bloodsugar.Prediabetes:
		return color.New(color.Bold, color.FgYellow).Sprint(c)
	default:
		return color.New(color.Bold, color.FgRed).Sprint(c)
	}
}

func NewBloodSugarCommand() *cobra.Command {
	var (
		req      types.BloodSugarRequest
		history  string
		postMeal float64
		hba1c    float64
	)

	c := calculation[types.BloodSugarRequest, bloodsugar.Input, bloodsugar.Result]{
		toInput: types.BloodSugarRequest.Input,
		local:   bloodsugar.Calculate,
		remote:  (*client.Client).BloodSugar,
		render: func(cmd *cobra.Command, _ types.BloodSugarRequest, res bloodsugar.Result) {
			reading := func(name string, r bloodsugar.Reading) {
				cmd.Printf("  %-9s %s mg/dL (%.1f mmol/L)  %s\n", name,
					bold("%.0f", r.Value), units.MgdlToMmol(r.Value), categoryText(r.Category))
			}

			heading(cmd, "Readings:")
			reading("Fasting:", res.Fasting)
			if res.PostMeal != nil {
				reading("Post-meal:", *res.PostMeal)
			}
			if res.HbA1c != nil {
				cmd.Printf("  %-9s %s  %s\n", "HbA1c:", bold("%.1f%%", res.HbA1c.Value), categoryText(res.HbA1c.Category))
			}
			if res.EstimatedAverageGlucose != nil {
				cmd.Printf("  Estimated average glucose: %.1f mg/dL\n", *res.EstimatedAverageGlucose)
			}

			cmd.Println()
			cmd.Printf("Overall: %s, diabetes risk: %s\n", categoryText(res.Overall),
				bold("%s", strings.ReplaceAll(string(res.Risk), "_", " ")))
			printList(cmd, "Recommendations:", res.Recommendations)
			printWarnings(cmd, res.Warnings)
		},
	}

	cmd := &cobra.Command{
		Use:     "blood-sugar",
		Short:   "Classify blood glucose and HbA1c readings",
		GroupID: gFitness,
		Example: `  healthcalc blood-sugar --fasting 105 --hba1c 5.9 --history family
  healthcalc blood-sugar --glucose-unit mmol/L --fasting 5.8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := req
			r.History = bloodsugar.History(history)
			r.PostMeal = optionalFloat(cmd, "post-meal", postMeal)
			r.HbA1c = optionalFloat(cmd, "hba1c", hba1c)
			return c.run(cmd, r)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.GlucoseUnit, "glucose-unit", "mg/dL", "mg/dL or mmol/L")
	f.Float64Var(&req.Fasting, "fasting", 0, "fasting glucose")
	f.Float64Var(&postMeal, "post-meal", 0, "glucose two hours after a meal")
	f.Float64Var(&hba1c, "hba1c", 0, "HbA1c in %")
	f.StringVar(&history, "history", string(bloodsugar.HistoryNone), "diabetes history: none, family or personal")
	_ = cmd.MarkFlagRequired("fasting")

	return cmd
}

func NewHydrationCommand() *cobra.Command {
	var (
		req        types.HydrationRequest
		gender     string
		intensity  string
		sweatRate  string
		climate    string
		conditions []string
	)

	c := calculation[types.HydrationRequest, hydration.Input, hydration.Result]{
		toInput: types.HydrationRequest.Input,
		local:   hydration.Calculate,
		remote:  (*client.Client).Hydration,
		render: func(cmd *cobra.Command, _ types.HydrationRequest, res hydration.Result) {
			cmd.Printf("Daily water: %s (%s fl oz, %s cups)\n", bold("%.2f L", res.TotalL),
				humanize.FormatFloat("#,###.#", res.TotalFlOz), humanize.FormatFloat("#,###.#", res.TotalCups))
			cmd.Printf("  About %s per waking hour\n", bold("%s ml", humanize.FormatFloat("#,###.", res.HourlyMl)))

			cmd.Println()
			heading(cmd, "Breakdown:")
			for _, b := range res.Breakdown {
				cmd.Printf("  %-22s %+.2f L\n", b.Name, b.Liters)
			}
			printList(cmd, "Tips:", res.Tips)
			printWarnings(cmd, res.Warnings)
		},
	}

	cmd := &cobra.Command{
		Use:     "hydration",
		Short:   "Calculate daily water intake",
		GroupID: gFitness,
		Example: `  healthcalc hydration --gender male --age 30 --weight 70 --exercise-hours 1 --intensity moderate --climate hot`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := req
			r.Gender = calc.Gender(gender)
			r.Intensity = hydration.Intensity(intensity)
			r.SweatRate = hydration.SweatRate(sweatRate)
			r.Climate = hydration.Climate(climate)
			r.Conditions = nil
			for _, cond := range conditions {
				r.Conditions = append(r.Conditions, hydration.Condition(cond))
			}
			return c.run(cmd, r)
		},
	}

	f := cmd.Flags()
	addUnitsFlag(f, &req.WithUnits)
	f.StringVar(&gender, "gender", "", "male or female")
	f.IntVar(&req.Age, "age", 0, "age in years")
	f.Float64Var(&req.Weight, "weight", 0, "body weight")
	f.Float64Var(&req.ExerciseHours, "exercise-hours", 0, "hours of exercise per day")
	f.StringVar(&intensity, "intensity", "", "exercise intensity: light, moderate, vigorous or extreme")
	f.StringVar(&sweatRate, "sweat-rate", "", "low, average or high")
	f.StringVar(&climate, "climate", string(hydration.Temperate), "temperate, warm, hot, humid or extreme")
	f.StringSliceVar(&conditions, "condition", nil, "health condition (repeatable): fever, vomiting_diarrhea, kidney_stones, urinary_infection, diabetes")
	f.BoolVar(&req.Pregnant, "pregnant", false, "pregnant")
	f.BoolVar(&req.Breastfeeding, "breastfeeding", false, "breastfeeding")
	f.Float64Var(&req.CaffeineMg, "caffeine", 0, "daily caffeine in mg")
	f.IntVar(&req.AlcoholDrinks, "alcohol", 0, "alcoholic drinks per day")
	for _, name := range []string{"gender", "age", "weight"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func renderSleep(cmd *cobra.Command, _ types.SleepRequest, res sleep.Result) {
	what := "bedtimes"
	if res.Mode == sleep.SleepAt {
		what = "wake-up times"
	}
	cmd.Printf("Suggested %s for %s:\n", what, bold("%s", res.Target.Kitchen()))
	for _, c := range res.Candidates {
		meets := ""
		if c.MeetsRecommendation != nil {
			meets = " " + bool2Text(*c.MeetsRecommendation)
		}
		cmd.Printf("  %8s  %d cycles, %.1f h  %s%s\n", bold("%s", c.Time.Kitchen()), c.Cycles, c.SleepHours, c.Quality, meets)
	}
	cmd.Println()
	cmd.Printf("Chronotype: %s\n", bold("%s", strings.ReplaceAll(string(res.Chronotype), "_", " ")))
	if r := res.RecommendedHours; r != nil {
		cmd.Printf("Recommended for your age: %s\n", bold("%g-%g h", r.Min, r.Max))
	}
	printList(cmd, "Tips:", res.Tips)
}

func NewSleepCommand() *cobra.Command {
	var (
		count int
		age   int
	)

	c := calculation[types.SleepRequest, sleep.Input, sleep.Result]{
		toInput: types.SleepRequest.Input,
		local:   sleep.Calculate,
		remote:  (*client.Client).Sleep,
		render:  renderSleep,
	}

	cmd := &cobra.Command{
		Use:     "sleep",
		Short:   "Find bedtimes or wake-up times that end on a full sleep cycle",
		GroupID: gFitness,
		Long: `Find bedtimes or wake-up times that end on a full 90-minute sleep cycle.

Times are HH:MM on a 24-hour clock. About 15 minutes to fall asleep is
already accounted for.`,
	}

	sub := func(mode sleep.Mode, use, short, example string) *cobra.Command {
		s := &cobra.Command{
			Use:     use,
			Short:   short,
			Example: example,
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.run(cmd, types.SleepRequest{
					Mode:  mode,
					Time:  args[0],
					Count: count,
					Age:   optionalInt(cmd, "age", age),
				})
			},
		}
		s.Flags().IntVarP(&count, "count", "n", 3, "number of suggestions (1-3)")
		s.Flags().IntVar(&age, "age", 0, "age in years, to compare with the recommended sleep duration")
		return s
	}

	cmd.AddCommand(
		sub(sleep.WakeAt, "wake [HH:MM]", "Suggest bedtimes for a wake-up time", "  healthcalc sleep wake 07:00"),
		sub(sleep.SleepAt, "bed [HH:MM]", "Suggest wake-up times for a bedtime", "  healthcalc sleep bed 23:00 --age 30"),
	)

	return cmd
}
