// Package metric converts an aggregated fuel quantity into the reported
// carbon-savings figure.
package metric

import (
	"fmt"
	"strings"
)

const (
	// SavingsPerKilogram is the CO2 saved, in kg, per kilogram of LNG
	// burned in place of diesel. Domain parameter, not derived.
	SavingsPerKilogram = 0.926

	// kilogramsPerTon scales the savings into the reporting unit.
	kilogramsPerTon = 1000.0
)

// InvalidUnitError reports an unrecognized fuel unit. This is a
// configuration error and fails fast, independent of network state.
type InvalidUnitError struct {
	Unit string
}

func (e *InvalidUnitError) Error() string {
	return fmt.Sprintf("metric: invalid fuel unit %q (want kg or L)", e.Unit)
}

// ToKilograms normalizes a fuel total to mass. "kg" passes through
// unchanged; "L" multiplies by density (kg per liter). Units compare
// case-insensitively.
func ToKilograms(total float64, unit string, density float64) (float64, error) {
	switch strings.ToLower(unit) {
	case "kg":
		return total, nil
	case "l":
		return total * density, nil
	}
	return 0, &InvalidUnitError{Unit: unit}
}

// SavingsTons converts a fuel mass in kilograms to tons of CO2 saved.
func SavingsTons(kilograms float64) float64 {
	return kilograms * SavingsPerKilogram / kilogramsPerTon
}

// Finalize runs the full conversion pipeline: normalize the summed fuel
// quantity to kilograms, then scale to tons of CO2 saved.
func Finalize(total float64, unit string, density float64) (float64, error) {
	kg, err := ToKilograms(total, unit, density)
	if err != nil {
		return 0, err
	}
	return SavingsTons(kg), nil
}
