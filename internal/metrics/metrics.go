// Package metrics defines the business assumptions of the plantain flour
// factory, the figures derived from them, and the session model that keeps the
// two consistent.
package metrics

import (
	"math"

	"github.com/iwvelando/plantainpro/pkg/constants"
	"github.com/iwvelando/plantainpro/pkg/mathutil"
)

// BusinessAssumptions holds the user-editable inputs.
type BusinessAssumptions struct {
	// DailyCapacity is kg of raw plantain processed per day.
	DailyCapacity float64 `json:"dailyCapacity" yaml:"dailyCapacity" mapstructure:"dailyCapacity"`
	// SellingPrice is Naira per kg of flour.
	SellingPrice float64 `json:"sellingPrice" yaml:"sellingPrice" mapstructure:"sellingPrice"`
	// CurrencyDepreciationFactor is 1.0 when stable, >1.0 under depreciation
	// and <1.0 under appreciation.
	CurrencyDepreciationFactor float64 `json:"currencyDepreciationFactor" yaml:"currencyDepreciationFactor" mapstructure:"currencyDepreciationFactor"`
}

// DerivedMetrics holds the figures computed by Derive. They are never edited
// directly.
type DerivedMetrics struct {
	StaffCount     int     `json:"staffCount"`
	InitialCapital float64 `json:"initialCapital"`
	DailyRevenue   float64 `json:"dailyRevenue"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
	YearlyRevenue  float64 `json:"yearlyRevenue"`
	ProfitMargin   float64 `json:"profitMargin"`   // percent, floored at 0
	BreakEvenPoint float64 `json:"breakEvenPoint"` // kg of flour per month; +Inf when price equals variable cost
}

// DefaultAssumptions returns the assumptions a new session starts with.
func DefaultAssumptions() BusinessAssumptions {
	return BusinessAssumptions{
		DailyCapacity:              constants.DefaultDailyCapacity,
		SellingPrice:               constants.DefaultSellingPrice,
		CurrencyDepreciationFactor: constants.DefaultCurrencyDepreciationFactor,
	}
}

// DailyFlourOutput is the kg of flour produced per day.
func (a BusinessAssumptions) DailyFlourOutput() float64 {
	return a.DailyCapacity * constants.FlourYieldRatio
}

// ContributionMargin is the selling price minus the variable cost per kg.
func (a BusinessAssumptions) ContributionMargin() float64 {
	return a.SellingPrice - constants.VariableCostPerKg
}

// Derive computes the DerivedMetrics for a. The currency depreciation factor
// does not take part.
func Derive(a BusinessAssumptions) DerivedMetrics {
	dailyRevenue := a.DailyFlourOutput() * a.SellingPrice
	monthlyRevenue := dailyRevenue * constants.DaysPerMonth

	return DerivedMetrics{
		StaffCount:     StaffCount(a.DailyCapacity),
		InitialCapital: constants.InitialCapital,
		DailyRevenue:   dailyRevenue,
		MonthlyRevenue: monthlyRevenue,
		YearlyRevenue:  dailyRevenue * constants.DaysPerYear,
		ProfitMargin:   ProfitMargin(monthlyRevenue),
		BreakEvenPoint: BreakEvenPoint(a.SellingPrice),
	}
}

// StaffCount returns the crew needed for a daily capacity: the base crew plus
// two employees for every full 500 kg.
func StaffCount(dailyCapacity float64) int {
	steps := math.Floor(dailyCapacity / constants.StaffCapacityStep)
	if steps < 0 || !mathutil.IsFinite(steps) {
		steps = 0
	}
	return constants.BaseStaff + constants.StaffPerStep*int(steps)
}

// ProfitMargin returns the monthly margin over the fixed operating cost as a
// percentage. It is floored at 0, and is 0 when there is no revenue.
func ProfitMargin(monthlyRevenue float64) float64 {
	if monthlyRevenue <= 0 || !mathutil.IsFinite(monthlyRevenue) {
		return 0
	}
	margin := (monthlyRevenue - constants.MonthlyOperatingCost) / monthlyRevenue * constants.PercentageMultiplier
	return mathutil.Max(0, margin)
}

// BreakEvenPoint returns the monthly kg of flour that covers the fixed
// operating cost. The result is +Inf when sellingPrice equals the variable
// cost and negative below it; callers must guard its display.
func BreakEvenPoint(sellingPrice float64) float64 {
	contribution := sellingPrice - constants.VariableCostPerKg
	if contribution == 0 {
		return math.Inf(1)
	}
	return constants.MonthlyOperatingCost / contribution
}
