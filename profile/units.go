package profile

import "math"

// Canonical units the remote store persists. The client, not the server,
// converts imperial input before transmission.
const (
	UnitCentimeters = "cm"
	UnitFeetInches  = "ft/in"
	UnitKilograms   = "kg"
	UnitPounds      = "lb"
)

const (
	centimetersPerInch = 2.54
	kilogramsPerPound  = 0.453592
)

// Round1 rounds half away from zero to one decimal place.
func Round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// NormalizeHeight converts a height reading to centimeters. Imperial input
// is a total inch count (the form slider ranges 36-96 in).
func NormalizeHeight(value float64, unit string) float64 {
	if unit == UnitFeetInches {
		return Round1(value * centimetersPerInch)
	}
	return Round1(value)
}

// NormalizeWeight converts a weight reading to kilograms.
func NormalizeWeight(value float64, unit string) float64 {
	if unit == UnitPounds {
		return Round1(value * kilogramsPerPound)
	}
	return Round1(value)
}
