package validation

import (
	"fmt"
	"math"

	"github.com/iwvelando/plantainpro/pkg/constants"
)

// FieldHint describes the numeric input hints of one assumption field.
type FieldHint struct {
	Field string
	Min   float64
	Max   float64 // 0 means unbounded
	Step  float64
}

// AssumptionHints lists the input hints for the editable fields in display
// order.
var AssumptionHints = []FieldHint{
	{Field: "dailyCapacity", Min: constants.MinDailyCapacity, Step: constants.StepDailyCapacity},
	{Field: "sellingPrice", Min: constants.MinSellingPrice, Step: constants.StepSellingPrice},
	{Field: "currencyDepreciationFactor", Min: constants.MinDepreciationFactor, Max: constants.MaxDepreciationFactor, Step: constants.StepDepreciationFactor},
}

// CheckHint returns warnings for a value that falls outside a hint. Hints are
// advisory; the value is still used.
func CheckHint(hint FieldHint, value float64) []string {
	var warnings []string

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return []string{fmt.Sprintf("%s is not a finite number", hint.Field)}
	}

	if value < hint.Min {
		warnings = append(warnings, fmt.Sprintf("%s %.2f is below the minimum of %.2f", hint.Field, value, hint.Min))
	}
	if hint.Max > 0 && value > hint.Max {
		warnings = append(warnings, fmt.Sprintf("%s %.2f is above the maximum of %.2f", hint.Field, value, hint.Max))
	}
	if hint.Step > 0 && !onStep(value, hint.Min, hint.Step) {
		warnings = append(warnings, fmt.Sprintf("%s %.2f is not a multiple of %.2f from %.2f", hint.Field, value, hint.Step, hint.Min))
	}

	return warnings
}

// AssumptionWarnings checks the three assumption values against
// AssumptionHints.
func AssumptionWarnings(dailyCapacity, sellingPrice, depreciationFactor float64) []string {
	values := []float64{dailyCapacity, sellingPrice, depreciationFactor}
	var warnings []string
	for i, hint := range AssumptionHints {
		warnings = append(warnings, CheckHint(hint, values[i])...)
	}
	if sellingPrice == constants.VariableCostPerKg {
		warnings = append(warnings, fmt.Sprintf("sellingPrice equals the production cost of %.0f/kg; break-even is not applicable", constants.VariableCostPerKg))
	}
	return warnings
}

func onStep(value, base, step float64) bool {
	steps := (value - base) / step
	return math.Abs(steps-math.Round(steps)) < 1e-6
}
