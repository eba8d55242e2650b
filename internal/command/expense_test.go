package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"uchet/internal/core"
)

// staticResolver resolves known aliases and falls back to "Other".
type staticResolver map[string]string

func (r staticResolver) Resolve(_ context.Context, token string) (string, error) {
	if name, ok := r[strings.ToLower(token)]; ok {
		return name, nil
	}
	return "Other", nil
}

func TestParseExpense(t *testing.T) {
	resolver := staticResolver{"taxi": "Transport", "cab": "Transport"}

	cases := []struct {
		line     string
		category string
		amount   int64
		note     string
		wantErr  bool
	}{
		{line: "250 taxi", category: "Transport", amount: 250, note: "Taxi"},
		{line: "250 cafe mcdonalds", category: "Other", amount: 250, note: "Cafe mcdonalds"},
		{line: "99 TAXI to airport", category: "Transport", amount: 99, note: "TAXI to airport"},
		{line: "-40 taxi", category: "Transport", amount: -40, note: "Taxi"},
		{line: "250 250", wantErr: true},
		{line: "250 ta2xi", wantErr: true},
		{line: "250", wantErr: true},
		{line: "0 taxi", wantErr: true},
		{line: "bla bla", wantErr: true},
		{line: "2.5 taxi", wantErr: true},
	}
	for _, tc := range cases {
		tx, err := ParseExpense(context.Background(), tc.line, resolver)
		if tc.wantErr {
			if !errors.Is(err, core.ErrInvalidExpense) {
				t.Errorf("ParseExpense(%q) error = %v, want ErrInvalidExpense", tc.line, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseExpense(%q) unexpected error: %v", tc.line, err)
			continue
		}
		if tx.Kind != core.Expense {
			t.Errorf("ParseExpense(%q) kind = %q", tc.line, tx.Kind)
		}
		if tx.Amount != tc.amount || tx.Category != tc.category || tx.Note != tc.note {
			t.Errorf("ParseExpense(%q) = {amount %d, category %q, note %q}, want {%d, %q, %q}",
				tc.line, tx.Amount, tx.Category, tx.Note, tc.amount, tc.category, tc.note)
		}
		if tx.Date.IsZero() {
			t.Errorf("ParseExpense(%q) did not stamp a date", tc.line)
		}
	}
}

func TestParseExpenseNoteTrimmed(t *testing.T) {
	tx, err := ParseExpense(context.Background(), "10 taxi", staticResolver{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.Note != "Taxi" {
		t.Fatalf("note = %q, want no trailing space", tx.Note)
	}
}
