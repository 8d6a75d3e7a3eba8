package main

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/ovulation"
	"github.com/charlie0129/healthcalc/pkg/calc/pregnancy"
	"github.com/charlie0129/healthcalc/pkg/client"
	"github.com/charlie0129/healthcalc/pkg/types"
)

// todayOf returns the day results are relative to: the --today override or
// the local date.
func todayOf(s string) calc.Date {
	if d, err := calc.ParseDate(s); err == nil {
		return d
	}
	return calc.DateOf(now())
}

func NewOvulationCommand() *cobra.Command {
	var req types.OvulationRequest

	c := calculation[types.OvulationRequest, ovulation.Input, ovulation.Result]{
		toInput: types.OvulationRequest.Input,
		local:   ovulation.Calculate,
		remote:  (*client.Client).Ovulation,
		render: func(cmd *cobra.Command, req types.OvulationRequest, res ovulation.Result) {
			today := todayOf(req.Today)

			cmd.Printf("Cycle day %s, %s phase\n", bold("%d", res.CycleDay), bold("%s", res.CurrentPhase))
			cmd.Printf("  Next period in %s, next ovulation in %s\n",
				bold("%d days", res.DaysUntilNextPeriod), bold("%d days", res.DaysUntilOvulation))

			cmd.Println()
			heading(cmd, "This cycle:")
			cmd.Printf("  Ovulation:      %s\n", dateText(res.OvulationDate))
			cmd.Printf("  Fertile window: %s to %s\n", dateText(res.FertileWindow.Start), dateText(res.FertileWindow.End))
			cmd.Printf("  Next period:    %s (%s)\n", dateText(res.NextPeriodDate), relativeDate(res.NextPeriodDate, today))
			cmd.Printf("  Pregnancy test: %s or later\n", dateText(res.PregnancyTestDate))

			cmd.Println()
			heading(cmd, "Upcoming cycles:")
			for i, cy := range res.UpcomingCycles {
				cmd.Printf("  %s period %s, fertile %s to %s\n", humanize.Ordinal(i+1),
					bold("%s", cy.PeriodStart), cy.FertileWindow.Start, cy.FertileWindow.End)
			}
			printList(cmd, "Tips:", res.Tips)
		},
	}

	cmd := &cobra.Command{
		Use:     "ovulation",
		Short:   "Predict ovulation, the fertile window and upcoming periods",
		GroupID: gCycle,
		Example: `  healthcalc ovulation --lmp 2024-01-01
  healthcalc ovulation --lmp 2024-01-01 --cycle-length 30 --period-length 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, req)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.LMP, "lmp", "", "first day of the last period (YYYY-MM-DD)")
	f.IntVar(&req.CycleLength, "cycle-length", 28, "average cycle length in days (21-45)")
	f.IntVar(&req.PeriodLength, "period-length", 5, "average period length in days (2-10)")
	f.StringVar(&req.Today, "today", "", "calculate as of this date (YYYY-MM-DD) instead of today")
	_ = cmd.MarkFlagRequired("lmp")

	return cmd
}

func renderDueDate(cmd *cobra.Command, req types.DueDateRequest, res pregnancy.Result) {
	today := todayOf(req.Today)

	cmd.Printf("Due date: %s (%s)\n", bold("%s", dateText(res.DueDate)), relativeDate(res.DueDate, today))
	cmd.Printf("  Dated by %s; estimated LMP %s, conception %s\n", res.Method, res.EstimatedLMP, res.ConceptionDate)
	cmd.Printf("  %s, %s trimester, %s complete, %s days to go\n",
		bold("%d weeks %d days", res.GestationalAge.Weeks, res.GestationalAge.Days),
		humanize.Ordinal(res.Trimester), bold("%.1f%%", res.ProgressPercent), humanize.Comma(int64(res.DaysRemaining)))

	cmd.Println()
	heading(cmd, "Milestones:")
	for _, m := range res.Milestones {
		when := m.Date.String()
		if m.Until != nil {
			when += " to " + m.Until.String()
		}
		cmd.Printf("  %s %-34s %s\n", bool2Text(m.Passed), m.Name, when)
	}
	printList(cmd, "Tips:", res.Tips)
	printWarnings(cmd, res.Warnings)
}

func NewDueDateCommand() *cobra.Command {
	var today string

	c := calculation[types.DueDateRequest, pregnancy.Input, pregnancy.Result]{
		toInput: types.DueDateRequest.Input,
		local:   pregnancy.Calculate,
		remote:  (*client.Client).DueDate,
		render:  renderDueDate,
	}

	cmd := &cobra.Command{
		Use:     "due-date",
		Short:   "Estimate a pregnancy due date",
		GroupID: gCycle,
		Long: `Estimate a pregnancy due date, gestational age and upcoming milestones.

Date the pregnancy with a subcommand: from the last menstrual period, a known
conception date, or an ultrasound measurement.`,
	}
	cmd.PersistentFlags().StringVar(&today, "today", "", "calculate as of this date (YYYY-MM-DD) instead of today")

	byDate := func(kind, use, short, example string) *cobra.Command {
		return &cobra.Command{
			Use:     use,
			Short:   short,
			Example: example,
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.run(cmd, types.DueDateRequest{
					Method: types.DueDateMethod{Type: kind, Date: args[0]},
					Today:  today,
				})
			},
		}
	}

	var weeks, days int
	ultrasound := &cobra.Command{
		Use:     "ultrasound [scan date]",
		Short:   "Date from an ultrasound measurement",
		Example: "  healthcalc due-date ultrasound 2024-03-15 --weeks 10 --days 2",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, types.DueDateRequest{
				Method: types.DueDateMethod{Type: "ultrasound", ScanDate: args[0], Weeks: weeks, Days: days},
				Today:  today,
			})
		},
	}
	ultrasound.Flags().IntVar(&weeks, "weeks", 0, "gestational age at the scan, whole weeks")
	ultrasound.Flags().IntVar(&days, "days", 0, "gestational age at the scan, extra days (0-6)")
	_ = ultrasound.MarkFlagRequired("weeks")

	cmd.AddCommand(
		byDate("lmp", "lmp [date]", "Date from the first day of the last period", "  healthcalc due-date lmp 2024-01-01"),
		byDate("conception", "conception [date]", "Date from a known conception date", "  healthcalc due-date conception 2024-01-15"),
		ultrasound,
	)

	return cmd
}
