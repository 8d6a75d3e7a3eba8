package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/units"
	"github.com/charlie0129/healthcalc/pkg/client"
	"github.com/charlie0129/healthcalc/pkg/config"
	"github.com/charlie0129/healthcalc/pkg/types"
)

// now is replaced in tests.
var now = time.Now

// localDefaults reads the default unit system from the config; a missing
// config file just means metric.
func localDefaults() (types.Defaults, error) {
	conf, err := config.NewFile(configPath, envFile)
	if err != nil {
		return types.Defaults{}, err
	}
	return types.Defaults{
		Units: conf.DefaultUnits(),
		Today: calc.DateOf(now()),
	}, nil
}

// calculation ties a request to both ways of answering it.
type calculation[R, I, O any] struct {
	toInput func(R, types.Defaults) (I, error)
	local   func(I) (O, error)
	remote  func(*client.Client, context.Context, R) (O, error)
	render  func(cmd *cobra.Command, req R, res O)
}

func (c calculation[R, I, O]) run(cmd *cobra.Command, req R) error {
	var (
		res O
		err error
	)

	if serverAddr != "" {
		logrus.WithField("server", serverAddr).Debug("calculating remotely")
		res, err = c.remote(client.NewClient(serverAddr), cmd.Context(), req)
	} else {
		var d types.Defaults
		d, err = localDefaults()
		if err != nil {
			return err
		}
		var in I
		in, err = c.toInput(req, d)
		if err == nil {
			res, err = c.local(in)
		}
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(b))
		return nil
	}

	c.render(cmd, req, res)
	return nil
}

func addUnitsFlag(f *pflag.FlagSet, u *types.WithUnits) {
	f.StringVarP(&u.Units, "units", "u", "", "unit system for weights and lengths: metric (kg, cm) or imperial (lb, in); default from config")
}

// optionalFloat returns a pointer to v if the flag was set.
func optionalFloat(cmd *cobra.Command, name string, v float64) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func optionalInt(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

// displayUnits is the unit system results should be echoed back in: the
// one the request was given in.
func displayUnits(u types.WithUnits) units.System {
	if u.Units == "" {
		d, err := localDefaults()
		if err != nil {
			return units.Metric
		}
		return d.Units
	}
	sys, err := units.ParseSystem(u.Units)
	if err != nil {
		return units.Metric
	}
	return sys
}

func weightText(kg float64, sys units.System) string {
	if sys == units.Imperial {
		return humanize.FormatFloat("#,###.#", units.KgToLb(kg)) + " lb"
	}
	return humanize.FormatFloat("#,###.#", kg) + " kg"
}

func lengthText(cm float64, sys units.System) string {
	if sys == units.Imperial {
		feet, inches := units.CmToFeetInch(cm)
		return fmt.Sprintf("%d ft %.1f in", feet, inches)
	}
	return humanize.FormatFloat("#,###.#", cm) + " cm"
}

func kcal(v int) string {
	return humanize.Comma(int64(v)) + " kcal"
}

func dateText(d calc.Date) string {
	return d.Weekday().String()[:3] + " " + d.String()
}

// relativeDate describes d relative to today, e.g. "3 weeks from now".
func relativeDate(d, today calc.Date) string {
	if d.Equal(today) {
		return "today"
	}
	t := now()
	days := d.DaysSince(today)
	return humanize.RelTime(t, t.Add(time.Duration(days)*24*time.Hour), "from now", "ago")
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

func heading(cmd *cobra.Command, s string) {
	cmd.Println(bold("%s", s))
}

func printList(cmd *cobra.Command, title string, items []string) {
	if len(items) == 0 {
		return
	}
	cmd.Println()
	heading(cmd, title)
	for _, i := range items {
		cmd.Println("  - " + i)
	}
}

func printWarnings(cmd *cobra.Command, ws []calc.Warning) {
	if len(ws) == 0 {
		return
	}
	cmd.Println()
	heading(cmd, "Warnings:")
	for _, w := range ws {
		c := color.New(color.FgYellow)
		if w.Severity == calc.SeverityCritical || w.Severity == calc.SeverityWarning {
			c = color.New(color.Bold, color.FgRed)
		}
		cmd.Printf("  %s %s\n", c.Sprintf("[%s]", strings.ToUpper(string(w.Severity))), w.Message)
	}
}
