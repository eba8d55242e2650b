package http

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"uchet/internal/core"
)

func TestFormatSummaryOrdersCategories(t *testing.T) {
	s := &core.Summary{
		Period: core.Period{Year: 2025, Month: time.September},
		Total:  390,
		Count:  3,
		PerCategory: map[string]int64{
			"Food":  350,
			"Other": 40,
			"Taxi":  0,
		},
	}

	got := formatSummary(s)
	if !strings.Contains(got, "2025.09: spent 390 over 3 entries") {
		t.Errorf("header missing in %q", got)
	}
	foodAt := strings.Index(got, "Food")
	otherAt := strings.Index(got, "Other")
	taxiAt := strings.Index(got, "Taxi")
	if !(foodAt < otherAt && otherAt < taxiAt) {
		t.Errorf("category order wrong in %q", got)
	}
}

func TestFormatErrorCoversTaxonomy(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{core.ErrInvalidExpense, "Invalid expense"},
		{core.ErrBalanceNotInitialized, "Balance is not set"},
		{core.ErrPeriodNotFound, "No entries"},
		{core.ErrExchangeUnavailable, "unavailable"},
		{fmt.Errorf("disk on fire"), "Something went wrong"},
	}
	for _, tt := range tests {
		if got := FormatError(tt.err); !strings.Contains(got, tt.want) {
			t.Errorf("FormatError(%v) = %q, want mention of %q", tt.err, got, tt.want)
		}
	}
}

func TestIsUserError(t *testing.T) {
	if !IsUserError(fmt.Errorf("wrap: %w", core.ErrInvalidDelete)) {
		t.Error("wrapped taxonomy error not recognized")
	}
	if IsUserError(fmt.Errorf("db locked")) {
		t.Error("internal error misclassified as user error")
	}
	if IsUserError(core.ErrExchangeUnavailable) {
		t.Error("exchange outage is not the user's fault")
	}
}
