package plan

import (
	"fmt"
	"math"
)

const percentageTolerance = 1.0

// TotalBudget sums the breakdown amounts.
func TotalBudget(it *Itinerary) float64 {
	if it == nil {
		return 0
	}
	var total float64
	for _, b := range it.BudgetBreakdown {
		total += b.Amount
	}
	return total
}

// Check reports inconsistencies in a parsed plan. The plan itself is left as is.
func Check(it *Itinerary, budget float64) []Warning {
	warnings := []Warning{}
	if it == nil {
		return warnings
	}

	if len(it.BudgetBreakdown) > 0 {
		var pct float64
		for _, b := range it.BudgetBreakdown {
			pct += b.Percentage
		}
		if math.Abs(pct-100) > percentageTolerance {
			warnings = append(warnings, Warning{
				Code:    WarnPercentageSum,
				Message: fmt.Sprintf("budget percentages add up to %.1f%%, not 100%%", pct),
			})
		}
	}

	if total := TotalBudget(it); budget > 0 && total > budget {
		warnings = append(warnings, Warning{
			Code:    WarnExceedsBudget,
			Message: fmt.Sprintf("budget breakdown totals $%.2f, above the requested $%.2f", total, budget),
		})
	}

	for i, d := range it.Days {
		if d.Day != i+1 {
			warnings = append(warnings, Warning{
				Code:    WarnDaySequence,
				Message: fmt.Sprintf("day %d found at position %d", d.Day, i+1),
			})
			break
		}
	}
	return warnings
}
