package core

import "errors"

// Command validation failures. Every parser returns exactly one of these so
// the presentation layer can map them to user-facing replies.
var (
	ErrInvalidExpense       = errors.New("invalid expense syntax")
	ErrInvalidIncome        = errors.New("invalid income syntax")
	ErrInvalidDelete        = errors.New("invalid delete syntax")
	ErrInvalidCategory      = errors.New("invalid category syntax")
	ErrInvalidMonth         = errors.New("invalid month syntax")
	ErrInvalidBalanceQuery  = errors.New("invalid balance query")
	ErrInvalidExchangeQuery = errors.New("invalid exchange query")
)

// Lookup and store failures.
var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCatalogNotFound       = errors.New("catalog not created yet")
	ErrPeriodNotFound        = errors.New("no journal for period")
	ErrIndexOutOfRange       = errors.New("index out of range")
	ErrBalanceNotInitialized = errors.New("balance not initialized")
	ErrExchangeUnavailable   = errors.New("exchange service unavailable")
)

// Structural transaction defects, caught before storage.
var (
	ErrInvalidKind   = errors.New("invalid transaction kind")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyCategory = errors.New("empty category")
)
