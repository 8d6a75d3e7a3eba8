// Package units converts between imperial and metric body measurements.
//
// Every calculator works in kilograms and centimeters. Conversion happens
// once, at the input boundary, before a calculator sees the value.
package units

import (
	"fmt"
	"strings"
)

// System is a measurement system selected by the caller.
type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

const (
	kgPerLb   = 0.45359237
	cmPerInch = 2.54
	inPerFoot = 12

	mlPerFlOz = 29.5735295625
	mlPerCup  = 236.5882365

	// MgdlPerMmol converts glucose from mmol/L to mg/dL.
	MgdlPerMmol = 18.0182
)

// ParseSystem accepts "metric"/"imperial" and their usual short forms.
// The empty string means metric.
func ParseSystem(s string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "metric", "si", "kg", "cm":
		return Metric, nil
	case "imperial", "us", "lb", "lbs", "in":
		return Imperial, nil
	default:
		return "", fmt.Errorf("unsupported unit system %q", s)
	}
}

func LbToKg(lb float64) float64 { return lb * kgPerLb }
func KgToLb(kg float64) float64 { return kg / kgPerLb }

func InchToCm(in float64) float64 { return in * cmPerInch }
func CmToInch(cm float64) float64 { return cm / cmPerInch }

// FeetInchToCm converts a height given as feet plus inches.
func FeetInchToCm(feet, inches float64) float64 {
	return InchToCm(feet*inPerFoot + inches)
}

// CmToFeetInch splits a height into whole feet and remaining inches.
func CmToFeetInch(cm float64) (feet int, inches float64) {
	total := CmToInch(cm)
	feet = int(total / inPerFoot)
	inches = total - float64(feet*inPerFoot)
	return feet, inches
}

func LitersToFlOz(l float64) float64 { return l * 1000 / mlPerFlOz }
func LitersToCups(l float64) float64 { return l * 1000 / mlPerCup }

func MmolToMgdl(mmol float64) float64 { return mmol * MgdlPerMmol }
func MgdlToMmol(mgdl float64) float64 { return mgdl / MgdlPerMmol }

// WeightToKg normalizes a weight in the given system.
func WeightToKg(v float64, sys System) float64 {
	if sys == Imperial {
		return LbToKg(v)
	}
	return v
}

// LengthToCm normalizes a length (height or circumference) in the given
// system. Imperial lengths are inches.
func LengthToCm(v float64, sys System) float64 {
	if sys == Imperial {
		return InchToCm(v)
	}
	return v
}
