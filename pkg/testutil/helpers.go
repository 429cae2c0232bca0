// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/plantainpro/internal/dashboard"
)

// FindCard finds a metric card by title in the view.
// Returns a pointer to the card if found, nil otherwise.
func FindCard(view dashboard.View, title string) *dashboard.Card {
	for i := range view.Cards {
		if view.Cards[i].Title == title {
			return &view.Cards[i]
		}
	}
	return nil
}

// FindLine finds a labelled line by label.
// Returns a pointer to the line if found, nil otherwise.
func FindLine(lines []dashboard.Line, label string) *dashboard.Line {
	for i := range lines {
		if lines[i].Label == label {
			return &lines[i]
		}
	}
	return nil
}
