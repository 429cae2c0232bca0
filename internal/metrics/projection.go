package metrics

import (
	"math"

	"github.com/iwvelando/plantainpro/pkg/constants"
	"github.com/iwvelando/plantainpro/pkg/mathutil"
)

// ChartQuarter is one bar pair of the quarterly chart.
type ChartQuarter struct {
	Quarter      int     `json:"quarter"`
	Revenue      float64 `json:"revenue"`
	Profit       float64 `json:"profit"`
	RevenueWidth float64 `json:"revenueWidth"` // percent of the largest revenue
	ProfitWidth  float64 `json:"profitWidth"`  // percent of the largest revenue
}

// ProgressionQuarter is one row of the quarterly progression table.
type ProgressionQuarter struct {
	Quarter    int     `json:"quarter"`
	Production float64 `json:"production"` // kg of flour
	Revenue    float64 `json:"revenue"`
	Profit     float64 `json:"profit"`
	GrowthRate float64 `json:"growthRate"` // percent over Q1
}

// GrowthFactor is the linear growth multiplier of quarter q (1-based).
func GrowthFactor(q int) float64 {
	return 1 + float64(q-1)*constants.QuarterlyGrowthRate
}

// ChartProjection returns the display-only quarterly projection used by the
// chart. It starts from three months of revenue and applies the currency
// depreciation factor, so it differs from QuarterlyProgression whenever the
// factor is not 1.
func ChartProjection(s Snapshot) []ChartQuarter {
	quarters := make([]ChartQuarter, 0, constants.QuartersPerYear)
	revenues := make([]float64, 0, constants.QuartersPerYear)

	base := s.Derived.MonthlyRevenue * constants.MonthsPerQuarter
	for q := 1; q <= constants.QuartersPerYear; q++ {
		revenue := base * GrowthFactor(q) * s.Assumptions.CurrencyDepreciationFactor
		quarters = append(quarters, ChartQuarter{
			Quarter: q,
			Revenue: revenue,
			Profit:  mathutil.ApplyPercentage(revenue, s.Derived.ProfitMargin),
		})
		revenues = append(revenues, revenue)
	}

	max := mathutil.MaxOf(revenues)
	for i := range quarters {
		quarters[i].RevenueWidth = mathutil.BarWidth(quarters[i].Revenue, max)
		quarters[i].ProfitWidth = mathutil.BarWidth(quarters[i].Profit, max)
	}
	return quarters
}

// QuarterlyProgression returns the production-based quarterly table. It
// ignores the currency depreciation factor.
func QuarterlyProgression(s Snapshot) []ProgressionQuarter {
	rows := make([]ProgressionQuarter, 0, constants.QuartersPerYear)
	quarterProduction := s.Assumptions.DailyFlourOutput() * constants.DaysPerQuarter
	for q := 1; q <= constants.QuartersPerYear; q++ {
		production := quarterProduction * GrowthFactor(q)
		revenue := production * s.Assumptions.SellingPrice
		rows = append(rows, ProgressionQuarter{
			Quarter:    q,
			Production: production,
			Revenue:    revenue,
			Profit:     mathutil.ApplyPercentage(revenue, s.Derived.ProfitMargin),
			GrowthRate: float64(q-1) * constants.QuarterlyGrowthRate * constants.PercentageMultiplier,
		})
	}
	return rows
}

// KeyCalculations are the per-kg and return figures shown next to the inputs.
type KeyCalculations struct {
	ProductionCostPerKg  float64 `json:"productionCostPerKg"`
	GrossProfitPerKg     float64 `json:"grossProfitPerKg"`
	MonthlyOperatingCost float64 `json:"monthlyOperatingCost"`
	AnnualROI            float64 `json:"annualRoi"` // percent
	DailyFlourOutput     float64 `json:"dailyFlourOutput"`
}

// ComputeKeyCalculations derives the key calculation panel from s.
func ComputeKeyCalculations(s Snapshot) KeyCalculations {
	return KeyCalculations{
		ProductionCostPerKg:  constants.VariableCostPerKg,
		GrossProfitPerKg:     s.Assumptions.ContributionMargin(),
		MonthlyOperatingCost: constants.MonthlyOperatingCost,
		AnnualROI:            mathutil.CalculatePercentage(s.Derived.YearlyRevenue-constants.AnnualOperatingCost, s.Derived.InitialCapital),
		DailyFlourOutput:     s.Assumptions.DailyFlourOutput(),
	}
}

// BankFunding summarises the loan case. BreakEvenDays and PaybackMonths are
// NaN when they cannot be computed.
type BankFunding struct {
	RecommendedLoan float64 `json:"recommendedLoan"`
	BreakEvenDays   float64 `json:"breakEvenDays"`
	PaybackMonths   float64 `json:"paybackMonths"`
}

// ComputeBankFunding derives the bank funding panel from s.
func ComputeBankFunding(s Snapshot) BankFunding {
	funding := BankFunding{
		RecommendedLoan: s.Derived.InitialCapital * constants.LoanCapitalRate,
		BreakEvenDays:   math.NaN(),
		PaybackMonths:   math.NaN(),
	}

	output := s.Assumptions.DailyFlourOutput()
	breakEven := s.Derived.BreakEvenPoint
	if output > 0 && mathutil.IsFinite(breakEven) && breakEven >= 0 {
		funding.BreakEvenDays = math.Ceil(breakEven / output)
	}

	surplus := s.Derived.MonthlyRevenue - constants.MonthlyOperatingCost
	if surplus > 0 {
		funding.PaybackMonths = s.Derived.InitialCapital / surplus * constants.MonthsPerYear
	}
	return funding
}

// CapitalItem is one component of the initial capital.
type CapitalItem struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// CapitalBreakdown lists the fixed capital components with their share of the
// total.
func CapitalBreakdown() []CapitalItem {
	items := []CapitalItem{
		{Category: "Equipment", Amount: constants.EquipmentCost},
		{Category: "Facility Setup", Amount: constants.FacilityCost},
		{Category: "Working Capital", Amount: constants.WorkingCapital},
	}
	for i := range items {
		items[i].Percentage = mathutil.CalculatePercentage(items[i].Amount, constants.InitialCapital)
	}
	return items
}

// CurrencyImpact is the display-only effect of the depreciation factor on the
// annual revenue.
type CurrencyImpact struct {
	Factor                float64 `json:"factor"`
	AdjustedAnnualRevenue float64 `json:"adjustedAnnualRevenue"`
	HighRisk              bool    `json:"highRisk"`
}

// ComputeCurrencyImpact derives the currency impact panel from s.
func ComputeCurrencyImpact(s Snapshot) CurrencyImpact {
	factor := s.Assumptions.CurrencyDepreciationFactor
	return CurrencyImpact{
		Factor:                factor,
		AdjustedAnnualRevenue: s.Derived.YearlyRevenue * factor,
		HighRisk:              factor > constants.DepreciationRiskThreshold,
	}
}
