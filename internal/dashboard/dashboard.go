// Package dashboard turns a metrics snapshot into the display-ready business
// analysis view: metric cards, key calculations, bank funding, the quarterly
// chart and table, the capital breakdown and the currency impact panel.
//
// Every figure is rendered through pkg/format, so non-finite values show as
// "N/A" and never reach a template or JSON encoder.
package dashboard

import (
	"fmt"

	"github.com/iwvelando/plantainpro/internal/metrics"
	"github.com/iwvelando/plantainpro/pkg/constants"
	"github.com/iwvelando/plantainpro/pkg/format"
	"github.com/iwvelando/plantainpro/pkg/mathutil"
	"github.com/iwvelando/plantainpro/pkg/validation"
)

// View is the complete business analysis page.
type View struct {
	Assumptions    metrics.BusinessAssumptions `json:"assumptions"`
	Inputs         []Input                     `json:"inputs"`
	Cards          []Card                      `json:"cards"`
	Key            []Line                      `json:"keyCalculations"`
	Funding        []Line                      `json:"bankFunding"`
	Chart          []Bar                       `json:"chart"`
	Progression    []Row                       `json:"progression"`
	Capital        []CapitalLine               `json:"capital"`
	CapitalTotal   string                      `json:"capitalTotal"`
	CurrencyImpact Impact                      `json:"currencyImpact"`
	Warnings       []string                    `json:"warnings,omitempty"`
}

// Input describes one editable assumption field.
type Input struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max,omitempty"`
	Step  float64 `json:"step"`
	Hint  string  `json:"hint,omitempty"`
}

// Card is one overview tile.
type Card struct {
	Title    string `json:"title"`
	Value    string `json:"value"`
	SubValue string `json:"subValue"`
	Color    string `json:"color"`
}

// Line is a label and its rendered value.
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Bar is one quarter of the chart with widths in percent of the largest
// revenue.
type Bar struct {
	Label        string  `json:"label"`
	Revenue      string  `json:"revenue"`
	Profit       string  `json:"profit"`
	RevenueWidth float64 `json:"revenueWidth"`
	ProfitWidth  float64 `json:"profitWidth"`
}

// Row is one line of the quarterly progression table.
type Row struct {
	Quarter    string `json:"quarter"`
	Production string `json:"production"`
	Revenue    string `json:"revenue"`
	Profit     string `json:"profit"`
	Growth     string `json:"growth"`
	Growing    bool   `json:"growing"`
}

// CapitalLine is one component of the capital breakdown.
type CapitalLine struct {
	Category   string `json:"category"`
	Amount     string `json:"amount"`
	Percentage string `json:"percentage"`
	Color      string `json:"color"`
}

// Impact is the currency depreciation panel.
type Impact struct {
	AdjustedAnnualRevenue string `json:"adjustedAnnualRevenue"`
	Factor                string `json:"factor"`
	HighRisk              bool   `json:"highRisk"`
}

// ProjectionYear labels the quarters of both projections.
const ProjectionYear = 2025

var capitalColors = []string{"blue", "emerald", "orange"}

// Build renders s into a View.
func Build(s metrics.Snapshot) View {
	a := s.Assumptions
	return View{
		Assumptions:    a,
		Inputs:         Inputs(a),
		Cards:          Cards(s),
		Key:            KeyLines(metrics.ComputeKeyCalculations(s)),
		Funding:        FundingLines(metrics.ComputeBankFunding(s)),
		Chart:          Bars(metrics.ChartProjection(s)),
		Progression:    Rows(metrics.QuarterlyProgression(s)),
		Capital:        CapitalLines(metrics.CapitalBreakdown()),
		CapitalTotal:   format.Millions(constants.InitialCapital, 0),
		CurrencyImpact: ImpactPanel(metrics.ComputeCurrencyImpact(s)),
		Warnings:       validation.AssumptionWarnings(a.DailyCapacity, a.SellingPrice, a.CurrencyDepreciationFactor),
	}
}

// Inputs describes the three editable fields with their hints.
func Inputs(a metrics.BusinessAssumptions) []Input {
	hints := validation.AssumptionHints
	return []Input{
		{
			Name:  hints[0].Field,
			Label: "Daily Raw Plantain Capacity (kg)",
			Value: a.DailyCapacity,
			Min:   hints[0].Min,
			Step:  hints[0].Step,
			Hint:  fmt.Sprintf("Flour output: %skg/day", format.Number(a.DailyFlourOutput(), 0)),
		},
		{
			Name:  hints[1].Field,
			Label: "Selling Price per kg (" + constants.CurrencySymbol + ")",
			Value: a.SellingPrice,
			Min:   hints[1].Min,
			Step:  hints[1].Step,
		},
		{
			Name:  hints[2].Field,
			Label: "Currency Depreciation Factor",
			Value: a.CurrencyDepreciationFactor,
			Min:   hints[2].Min,
			Max:   hints[2].Max,
			Step:  hints[2].Step,
			Hint:  "1.0 = stable, >1.0 = depreciation, <1.0 = appreciation",
		},
	}
}

// Cards builds the six overview tiles.
func Cards(s metrics.Snapshot) []Card {
	a, d := s.Assumptions, s.Derived
	return []Card{
		{
			Title:    "Daily Production Capacity",
			Value:    format.Number(a.DailyCapacity, 0) + "kg",
			SubValue: format.Number(a.DailyFlourOutput(), 0) + "kg flour output",
			Color:    "blue",
		},
		{
			Title:    "Required Staff",
			Value:    fmt.Sprintf("%d employees", d.StaffCount),
			SubValue: "Including supervisors & workers",
			Color:    "emerald",
		},
		{
			Title:    "Initial Capital Required",
			Value:    format.Millions(d.InitialCapital, 1),
			SubValue: "Equipment, facility & working capital",
			Color:    "orange",
		},
		{
			Title:    "Monthly Revenue",
			Value:    format.Millions(d.MonthlyRevenue, 2),
			SubValue: format.Percent(d.ProfitMargin, 1) + " profit margin",
			Color:    "purple",
		},
		{
			Title:    "Break-Even Point",
			Value:    format.GuardNonNegative(d.BreakEvenPoint, BreakEvenPerMonth),
			SubValue: "Production needed to break even",
			Color:    "red",
		},
		{
			Title:    "Currency Impact Factor",
			Value:    format.Factor(a.CurrencyDepreciationFactor),
			SubValue: "Depreciation adjustment multiplier",
			Color:    "yellow",
		},
	}
}

// BreakEvenPerMonth renders a break-even quantity, rounded up to the kg.
func BreakEvenPerMonth(kg float64) string {
	return format.Kilograms(kg) + "/month"
}

// KeyLines renders the key calculation panel.
func KeyLines(k metrics.KeyCalculations) []Line {
	return []Line{
		{Label: "Production Cost/kg", Value: format.NairaWhole(k.ProductionCostPerKg)},
		{Label: "Gross Profit/kg", Value: format.NairaWhole(k.GrossProfitPerKg)},
		{Label: "Monthly Operating Cost", Value: format.Millions(k.MonthlyOperatingCost, 1)},
		{Label: "ROI (Annual)", Value: format.Percent(k.AnnualROI, 1)},
	}
}

// FundingLines renders the bank funding panel.
func FundingLines(f metrics.BankFunding) []Line {
	return []Line{
		{Label: "Recommended Loan Amount", Value: format.Millions(f.RecommendedLoan, 1) + " (70% of capital)"},
		{Label: "Break-even", Value: format.GuardNonNegative(f.BreakEvenDays, func(v float64) string {
			return format.Number(v, 0) + " days of production"
		})},
		{Label: "Payback Period", Value: format.GuardNonNegative(f.PaybackMonths, func(v float64) string {
			return format.Number(v, 1) + " months"
		})},
	}
}

// Bars renders the chart projection.
func Bars(quarters []metrics.ChartQuarter) []Bar {
	bars := make([]Bar, 0, len(quarters))
	for _, q := range quarters {
		bars = append(bars, Bar{
			Label:        fmt.Sprintf("Q%d %d", q.Quarter, ProjectionYear),
			Revenue:      format.Millions(q.Revenue, 2),
			Profit:       format.Millions(q.Profit, 1),
			RevenueWidth: mathutil.Round(q.RevenueWidth),
			ProfitWidth:  mathutil.Round(q.ProfitWidth),
		})
	}
	return bars
}

// Rows renders the quarterly progression table.
func Rows(quarters []metrics.ProgressionQuarter) []Row {
	rows := make([]Row, 0, len(quarters))
	for _, q := range quarters {
		rows = append(rows, Row{
			Quarter:    fmt.Sprintf("Q%d %d", q.Quarter, ProjectionYear),
			Production: format.Number(q.Production, 0),
			Revenue:    format.Millions(q.Revenue, 2),
			Profit:     format.Millions(q.Profit, 2),
			Growth:     format.SignedPercent(q.GrowthRate, 1),
			Growing:    q.GrowthRate > 0,
		})
	}
	return rows
}

// CapitalLines renders the capital breakdown.
func CapitalLines(items []metrics.CapitalItem) []CapitalLine {
	lines := make([]CapitalLine, 0, len(items))
	for i, item := range items {
		lines = append(lines, CapitalLine{
			Category:   item.Category,
			Amount:     format.Millions(item.Amount, 0),
			Percentage: format.Percent(item.Percentage, 1),
			Color:      capitalColors[i%len(capitalColors)],
		})
	}
	return lines
}

// ImpactPanel renders the currency impact panel.
func ImpactPanel(c metrics.CurrencyImpact) Impact {
	return Impact{
		AdjustedAnnualRevenue: format.Millions(c.AdjustedAnnualRevenue, 1),
		Factor:                format.Factor(c.Factor),
		HighRisk:              c.HighRisk,
	}
}
