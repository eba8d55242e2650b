package core

import (
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	cases := []struct {
		in   string
		want Period
		ok   bool
	}{
		{"2025.09", Period{2025, time.September}, true},
		{"2024.12", Period{2024, time.December}, true},
		{"2025.9", Period{}, false},
		{"25.09", Period{}, false},
		{"2025-09", Period{}, false},
		{"2025.13", Period{}, false},
		{"2025.00", Period{}, false},
		{"abcd.ef", Period{}, false},
		{"", Period{}, false},
	}
	for _, tc := range cases {
		got, err := ParsePeriod(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParsePeriod(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParsePeriod(%q) expected error", tc.in)
		}
	}
}

func TestPeriodString(t *testing.T) {
	p := Period{2025, time.March}
	if p.String() != "2025.03" {
		t.Fatalf("got %q", p.String())
	}
}

func TestDatePeriod(t *testing.T) {
	d := NewDate(2025, time.September, 1)
	if d.String() != "2025.09.01" {
		t.Fatalf("date string: got %q", d.String())
	}
	if d.Period() != (Period{2025, time.September}) {
		t.Fatalf("period: got %v", d.Period())
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024.02.29")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.String() != "2024.02.29" {
		t.Fatalf("got %q", d.String())
	}
	if _, err := ParseDate("2024-02-29"); err == nil {
		t.Fatalf("expected error for wrong separator")
	}
}

func TestTransactionSigned(t *testing.T) {
	e := Transaction{Amount: 250, Kind: Expense}
	if e.Signed() != -250 {
		t.Fatalf("expense signed: got %d", e.Signed())
	}
	i := Transaction{Amount: 250, Kind: Income}
	if i.Signed() != 250 {
		t.Fatalf("income signed: got %d", i.Signed())
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{Date: NewDate(2025, 1, 1), Amount: 100, Category: "Other", Kind: Expense}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Date: NewDate(2025, 1, 1), Amount: 100, Category: "Other", Kind: "transfer"},
		{Date: NewDate(2025, 1, 1), Amount: 0, Category: "Other", Kind: Expense},
		{Amount: 100, Category: "Other", Kind: Expense},
		{Date: NewDate(2025, 1, 1), Amount: 100, Kind: Expense},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}

	income := Transaction{Date: NewDate(2025, 1, 1), Amount: 100, Kind: Income}
	if err := income.Validate(); err != nil {
		t.Fatalf("income without category should be valid, got %v", err)
	}
}
