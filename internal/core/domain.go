package core

import (
	"strings"
	"time"
)

const (
	Expense Kind = "expense"
	Income  Kind = "income"
)

type (
	// Kind tells whether a journal entry moves the balance down or up.
	Kind string

	Date struct {
		time.Time
	}

	// Transaction is a single journal entry. Once stored it never changes,
	// except for Index which is recomputed when an earlier entry is removed.
	Transaction struct {
		Index    int
		Date     Date
		Amount   int64
		Category string // canonical catalog name, empty for incomes
		Note     string
		Kind     Kind
	}

	// DeleteTarget is a resolved deletion request: either the last entry of
	// the period or a specific 1-based index.
	DeleteTarget struct {
		Last  bool
		Index int
	}
)

// DateFormat is how dates are written into the journal, e.g. "2025.09.01".
const DateFormat = "2006.01.02"

// NewDate creates a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses a journal date in DateFormat.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateFormat)
}

// Period returns the year-month bucket the date belongs to.
func (d Date) Period() Period {
	return Period{Year: d.Time.Year(), Month: d.Time.Month()}
}

func (k Kind) Valid() bool {
	return k == Expense || k == Income
}

// Signed returns the transaction amount with the sign its kind implies for
// the balance: negative for expenses, positive for incomes.
func (t Transaction) Signed() int64 {
	if t.Kind == Income {
		return t.Amount
	}
	return -t.Amount
}

// Validate checks the structural invariants of a transaction before it is
// handed to storage.
func (t Transaction) Validate() error {
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if t.Amount == 0 {
		return ErrInvalidAmount
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if t.Kind == Expense && strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
