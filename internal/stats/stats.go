// Package stats aggregates expense statistics over one period's journal.
package stats

import (
	"sort"

	"uchet/internal/core"
)

// Aggregate computes the expense summary for a period. Income entries share
// the journal but are excluded from every figure except Count, which is the
// highest index present. Per-category totals are zero-filled from the given
// catalog name set; a transaction whose stored category is no longer in the
// catalog is left out of the per-category map on purpose.
func Aggregate(period core.Period, entries []core.Transaction, categories []string) core.Summary {
	summary := core.Summary{
		Period:      period,
		PerCategory: make(map[string]int64, len(categories)),
	}
	for _, name := range categories {
		summary.PerCategory[name] = 0
	}

	var expenses []core.Transaction
	for _, t := range entries {
		if t.Index > summary.Count {
			summary.Count = t.Index
		}
		if t.Kind != core.Expense {
			continue
		}
		expenses = append(expenses, t)
		summary.Total += t.Amount
		if _, known := summary.PerCategory[t.Category]; known {
			summary.PerCategory[t.Category] += t.Amount
		}
	}

	// Largest first; ties keep journal order.
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Amount > expenses[j].Amount
	})
	top := core.TopExpenses
	if len(expenses) < top {
		top = len(expenses)
	}
	summary.Top = expenses[:top]

	return summary
}
