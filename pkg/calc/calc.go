// Package calc holds the few types shared by every calculator package.
//
// Each calculator lives in its own sub-package and exposes a pure
//
//	func Calculate(in Input) (Result, error)
//
// that validates in, runs a fixed formula and returns a fresh Result. The
// only error a calculator returns is a *validate.ValidationError. Calculators
// never import each other, never log and never read the clock; calculators
// that depend on the current date take it as an explicit Today field.
package calc

import "fmt"

// Gender selects gender-specific formulas and reference tables.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Severity grades an advisory warning attached to a result.
type Severity string

const (
	SeverityCaution  Severity = "caution"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Warning is advice attached to a successful result. It is data, not an
// error: the calculation still completed.
type Warning struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// UnknownVariant panics for an enum or tagged-union value the calculator
// does not know. Validation rejects such values first, so reaching this is a
// caller bug rather than bad user input.
func UnknownVariant(kind string, v any) {
	panic(fmt.Sprintf("calc: unknown %s %v (%T)", kind, v, v))
}
