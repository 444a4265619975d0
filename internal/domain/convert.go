package domain

import "fmt"

const kgToLb = 2.2046226218

// ConvertFromKg converts a kilogram value into the given display unit.
// Returns v unchanged for "kg" or an unrecognised unit.
func ConvertFromKg(v float64, unit string) float64 {
	if unit == "lb" {
		return v * kgToLb
	}
	return v
}

// DisplayWeight renders a kilogram value in the profile's display unit.
func DisplayWeight(valueKg float64, unit string) string {
	if unit != "lb" {
		unit = "kg"
	}
	return fmt.Sprintf("%.1f %s", ConvertFromKg(valueKg, unit), unit)
}
