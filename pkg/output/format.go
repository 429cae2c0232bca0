// Package output provides utilities for formatting and displaying the
// business analysis report.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/iwvelando/plantainpro/internal/dashboard"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, view dashboard.View) {
	p := message.NewPrinter(language.English)

	_, _ = p.Fprintf(w, "--- Business analysis ---\n")
	_, _ = p.Fprintf(w, "Daily capacity: %.0fkg | Selling price: ₦%.0f/kg | Depreciation factor: %.2f\n\n",
		view.Assumptions.DailyCapacity, view.Assumptions.SellingPrice, view.Assumptions.CurrencyDepreciationFactor)

	for _, card := range view.Cards {
		fmt.Fprintf(w, "%-26s | %-16s | %s\n", card.Title, card.Value, card.SubValue)
	}

	fmt.Fprintf(w, "\n--- Key calculations ---\n")
	writeLines(w, view.Key)

	fmt.Fprintf(w, "\n--- Bank funding analysis ---\n")
	writeLines(w, view.Funding)

	fmt.Fprintf(w, "\n--- Quarterly financial projection ---\n")
	fmt.Fprintf(w, "Quarter | Revenue    | Profit    | Bar\n")
	fmt.Fprintf(w, "_______ | __________ | _________ | ___\n")
	for _, bar := range view.Chart {
		fmt.Fprintf(w, "%s | %-10s | %-9s | %s\n", bar.Label, bar.Revenue, bar.Profit, Bar(bar.RevenueWidth, 20))
	}

	fmt.Fprintf(w, "\n--- Quarterly business progression ---\n")
	fmt.Fprintf(w, "Quarter | Production (kg) | Revenue    | Profit     | Growth\n")
	fmt.Fprintf(w, "_______ | _______________ | __________ | __________ | ______\n")
	for _, row := range view.Progression {
		fmt.Fprintf(w, "%s | %-15s | %-10s | %-10s | %s\n", row.Quarter, row.Production, row.Revenue, row.Profit, row.Growth)
	}

	fmt.Fprintf(w, "\n--- Initial capital breakdown ---\n")
	for _, line := range view.Capital {
		fmt.Fprintf(w, "%-16s | %-5s | %s\n", line.Category, line.Amount, line.Percentage)
	}
	fmt.Fprintf(w, "%-16s | %s\n", "Total Investment", view.CapitalTotal)

	fmt.Fprintf(w, "\n--- Currency depreciation impact ---\n")
	fmt.Fprintf(w, "Adjusted annual revenue | %s\n", view.CurrencyImpact.AdjustedAnnualRevenue)
	fmt.Fprintf(w, "Impact factor           | %s\n", view.CurrencyImpact.Factor)
	if view.CurrencyImpact.HighRisk {
		fmt.Fprintf(w, "Warning: significant depreciation risk; consider hedging strategies or pricing adjustments\n")
	}

	if len(view.Warnings) > 0 {
		fmt.Fprintf(w, "\n--- Input warnings ---\n")
		for _, warning := range view.Warnings {
			fmt.Fprintf(w, "- %s\n", warning)
		}
	}
}

func writeLines(w io.Writer, lines []dashboard.Line) {
	for _, line := range lines {
		fmt.Fprintf(w, "%-24s | %s\n", line.Label, line.Value)
	}
}

// CsvFormat writes the report as section,label,value rows.
func CsvFormat(w io.Writer, view dashboard.View) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"section", "label", "value", "detail"}); err != nil {
		return err
	}

	var records [][]string
	for _, card := range view.Cards {
		records = append(records, []string{"overview", card.Title, card.Value, card.SubValue})
	}
	for _, line := range view.Key {
		records = append(records, []string{"key calculations", line.Label, line.Value, ""})
	}
	for _, line := range view.Funding {
		records = append(records, []string{"bank funding", line.Label, line.Value, ""})
	}
	for _, bar := range view.Chart {
		records = append(records, []string{"projection", bar.Label, bar.Revenue, bar.Profit})
	}
	for _, row := range view.Progression {
		detail := strings.Join([]string{row.Production, row.Profit, row.Growth}, "; ")
		records = append(records, []string{"progression", row.Quarter, row.Revenue, detail})
	}
	for _, line := range view.Capital {
		records = append(records, []string{"capital", line.Category, line.Amount, line.Percentage})
	}
	records = append(records,
		[]string{"capital", "Total Investment", view.CapitalTotal, ""},
		[]string{"currency impact", "Adjusted Annual Revenue", view.CurrencyImpact.AdjustedAnnualRevenue, ""},
		[]string{"currency impact", "Impact Factor", view.CurrencyImpact.Factor, ""},
	)

	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// CsvString returns the CSV report as a string.
func CsvString(view dashboard.View) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, view); err != nil {
		return ""
	}
	return buf.String()
}

// JSONFormat writes the report as indented JSON.
func JSONFormat(w io.Writer, view dashboard.View) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(view); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// Bar renders a width percentage as a text bar of the given length.
func Bar(widthPercent float64, length int) string {
	filled := int(widthPercent/100*float64(length) + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > length {
		filled = length
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", length-filled)
}
