// Package pregnancy estimates the due date and current gestational age from
// one of three independent references: the last menstrual period, the
// conception date or an ultrasound dating scan.
package pregnancy

import (
	"fmt"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/calc/lookup"
	"github.com/charlie0129/healthcalc/pkg/calc/validate"
)

const (
	termDays       = 280
	conceptionDays = 14
	maxWeeks       = 44
)

// Method is the dating reference: LMP, Conception or Ultrasound. Each one
// produces every date from its own input only.
type Method interface {
	Name() string
	// Reference is the date the user supplied.
	Reference() calc.Date
	isMethod()
}

type LMP struct {
	Date calc.Date `json:"date" validate:"-"`
}

type Conception struct {
	Date calc.Date `json:"date" validate:"-"`
}

// Ultrasound dates the pregnancy from the gestational age measured at a scan.
type Ultrasound struct {
	ScanDate calc.Date `json:"scanDate" validate:"-"`
	Weeks    int       `json:"weeks" validate:"gte=4,lte=42"`
	Days     int       `json:"days" validate:"gte=0,lte=6"`
}

func (LMP) Name() string        { return "lmp" }
func (Conception) Name() string { return "conception" }
func (Ultrasound) Name() string { return "ultrasound" }

func (m LMP) Reference() calc.Date        { return m.Date }
func (m Conception) Reference() calc.Date { return m.Date }
func (m Ultrasound) Reference() calc.Date { return m.ScanDate }

func (LMP) isMethod()        {}
func (Conception) isMethod() {}
func (Ultrasound) isMethod() {}

type Input struct {
	Method Method    `json:"-" validate:"-"`
	Today  calc.Date `json:"today" validate:"-"`
}

func (in Input) Validate() error {
	verr := validate.Struct(in)

	if in.Today.IsZero() {
		verr.Add("today", "is required")
	}

	var refField string
	switch m := in.Method.(type) {
	case nil:
		verr.Add("method", "is required")
		return verr.OrNil()
	case LMP:
		refField = "method.date"
	case Conception:
		refField = "method.date"
	case Ultrasound:
		refField = "method.scanDate"
		verr.Check("method", m)
	default:
		calc.UnknownVariant("dating method", m)
	}

	ref := in.Method.Reference()
	switch {
	case ref.IsZero():
		verr.Add(refField, "is required")
	case in.Today.IsZero():
	case ref.After(in.Today):
		verr.Add(refField, "must not be in the future")
	case !verr.Has("method.weeks") && !verr.Has("method.days"):
		if ga := in.Today.DaysSince(estimatedLMP(in.Method)); ga > maxWeeks*7 {
			verr.Add(refField, "gives a gestational age beyond %d weeks", maxWeeks)
		}
	}

	return verr.OrNil()
}

// estimatedLMP is the start of gestation implied by m.
func estimatedLMP(m Method) calc.Date {
	switch m := m.(type) {
	case LMP:
		return m.Date
	case Conception:
		return m.Date.AddDays(-conceptionDays)
	case Ultrasound:
		return m.ScanDate.AddDays(-(m.Weeks*7 + m.Days))
	default:
		calc.UnknownVariant("dating method", m)
		return calc.Date{}
	}
}

// DueDate returns the estimated due date for m.
//
// From an LMP this is Naegele's rule: nine calendar months plus seven days.
// Conception adds 266 days and an ultrasound adds 280 days to the LMP it
// implies.
func DueDate(m Method) calc.Date {
	switch m := m.(type) {
	case LMP:
		return m.Date.AddDate(0, 9, 7)
	case Conception:
		return m.Date.AddDays(termDays - conceptionDays)
	case Ultrasound:
		return estimatedLMP(m).AddDays(termDays)
	default:
		calc.UnknownVariant("dating method", m)
		return calc.Date{}
	}
}

// GestationalAge is a duration of pregnancy in whole weeks plus days.
type GestationalAge struct {
	Weeks int `json:"weeks"`
	Days  int `json:"days"`
}

func gestationalAge(days int) GestationalAge {
	return GestationalAge{Weeks: days / 7, Days: days % 7}
}

func (g GestationalAge) TotalDays() int { return g.Weeks*7 + g.Days }

func (g GestationalAge) String() string {
	return fmt.Sprintf("%dw%dd", g.Weeks, g.Days)
}

type Milestone struct {
	Name   string         `json:"name"`
	Date   calc.Date      `json:"date"`
	Until  *calc.Date     `json:"until,omitempty"`
	Passed bool           `json:"passed"`
	Age    GestationalAge `json:"gestationalAge"`
}

type Result struct {
	Method          string         `json:"method"`
	DueDate         calc.Date      `json:"dueDate"`
	EstimatedLMP    calc.Date      `json:"estimatedLmp"`
	ConceptionDate  calc.Date      `json:"conceptionDate"`
	GestationalAge  GestationalAge `json:"gestationalAge"`
	Trimester       int            `json:"trimester"`
	ProgressPercent float64        `json:"progressPercent"`
	DaysRemaining   int            `json:"daysRemaining"`
	Milestones      []Milestone    `json:"milestones"`
	Tips            []string       `json:"tips"`
	Warnings        []calc.Warning `json:"warnings,omitempty"`
}

// Trimester returns 1, 2 or 3 for a gestational age in days.
func Trimester(days int) int {
	switch {
	case days < 14*7:
		return 1
	case days < 28*7:
		return 2
	default:
		return 3
	}
}

type milestoneDef struct {
	name     string
	from, to int // days of gestation; to is 0 for a single day
}

var milestoneDefs = []milestoneDef{
	{name: "End of first trimester", from: 13*7 + 6},
	{name: "Anatomy scan", from: 18 * 7, to: 22 * 7},
	{name: "Viability", from: 24 * 7},
	{name: "Third trimester begins", from: 28 * 7},
	{name: "Full term", from: 37 * 7},
}

func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	lmp := estimatedLMP(in.Method)
	due := DueDate(in.Method)
	ga := in.Today.DaysSince(lmp)
	// Naegele's rule makes the LMP term 280 to 283 days, so progress is
	// measured against this pregnancy's own due date.
	term := due.DaysSince(lmp)

	res := Result{
		Method:          in.Method.Name(),
		DueDate:         due,
		EstimatedLMP:    lmp,
		ConceptionDate:  lmp.AddDays(conceptionDays),
		GestationalAge:  gestationalAge(ga),
		Trimester:       Trimester(ga),
		ProgressPercent: lookup.Round(min(100, float64(ga)/float64(term)*100), 1),
		DaysRemaining:   max(0, due.DaysSince(in.Today)),
	}

	for _, def := range milestoneDefs {
		m := Milestone{
			Name: def.name,
			Date: lmp.AddDays(def.from),
			Age:  gestationalAge(def.from),
		}
		last := m.Date
		if def.to > 0 {
			until := lmp.AddDays(def.to)
			m.Until = &until
			last = until
		}
		m.Passed = last.Before(in.Today)
		res.Milestones = append(res.Milestones, m)
	}
	res.Milestones = append(res.Milestones, Milestone{
		Name:   "Due date",
		Date:   due,
		Passed: due.Before(in.Today),
		Age:    gestationalAge(term),
	})

	res.Tips = tips(res.Trimester)
	if ga > term+7 {
		res.Warnings = append(res.Warnings, calc.Warning{
			Severity: calc.SeverityWarning,
			Message:  "You are more than a week past your due date. Talk to your healthcare provider about monitoring and induction.",
		})
	}

	return res, nil
}

func tips(trimester int) []string {
	switch trimester {
	case 1:
		return []string{
			"Take 400 mcg of folic acid daily.",
			"Book your first prenatal appointment if you have not already.",
			"Avoid alcohol, smoking and raw or undercooked foods.",
		}
	case 2:
		return []string{
			"Schedule the anatomy scan between weeks 18 and 22.",
			"Stay active with pregnancy-safe exercise such as walking or swimming.",
		}
	case 3:
		return []string{
			"Learn the signs of labor and when to call your provider.",
			"Count fetal movements daily.",
			"Prepare your hospital bag by week 36.",
		}
	default:
		calc.UnknownVariant("trimester", trimester)
		return nil
	}
}
