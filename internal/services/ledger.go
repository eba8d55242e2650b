// Package services wires the command pipeline together: one raw line in, a
// typed result out, with storage mutations applied and journal events
// published along the way.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"uchet/internal/amqp"
	"uchet/internal/catalog"
	"uchet/internal/command"
	"uchet/internal/core"
	"uchet/internal/exchange"
	"uchet/internal/log"
	"uchet/internal/stats"
	"uchet/internal/storage"
)

// Ledger executes commands against the journal, the balance and the catalog.
// Commands are processed one at a time by the caller; the ledger itself does
// no locking beyond what storage transactions give it.
type Ledger struct {
	repo         *storage.SQLiteRepository
	catalog      *catalog.Store
	exchange     *exchange.Client
	events       *amqp.Client // nil when event publishing is disabled
	baseCurrency string
	logger       *log.Logger
}

// Result is the typed outcome of one executed line. Exactly the fields for
// the result's Kind are populated; the presentation layer formats them.
type Result struct {
	Kind command.Kind

	Transaction *core.Transaction // appended entry (expense, income)
	Deleted     *core.Transaction // removed entry (delete)

	Balance    int64 // balance after the operation, when it was touched or read
	HasBalance bool

	Summary *core.Summary      // month statistics
	Listing []core.Transaction // month listing

	Categories []storage.CategoryRow // category show
	Category   string                // category add/delete
	Aliases    []string              // category add

	Exchange     *exchange.Result // exchange query, balance conversion
	ExchangeFrom string
	ExchangeTo   string
}

func NewLedger(repo *storage.SQLiteRepository, cat *catalog.Store, exch *exchange.Client, events *amqp.Client, baseCurrency string, logger *log.Logger) *Ledger {
	return &Ledger{
		repo:         repo,
		catalog:      cat,
		exchange:     exch,
		events:       events,
		baseCurrency: baseCurrency,
		logger:       logger.WithComponent(log.ComponentLedger),
	}
}

// Execute classifies a raw line, runs the matching operation and returns its
// result. Validation and lookup failures come back as taxonomy errors from
// uchet/internal/core; an unrecognized line is a valid no-op result.
func (l *Ledger) Execute(ctx context.Context, line string) (*Result, error) {
	kind := command.Classify(line)
	switch kind {
	case command.KindExpense:
		return l.addExpense(ctx, line)
	case command.KindIncome:
		return l.addIncome(ctx, line)
	case command.KindDelete:
		return l.deleteTransaction(ctx, line)
	case command.KindBalanceQuery:
		return l.balanceQuery(ctx, line)
	case command.KindExchangeQuery:
		return l.exchangeQuery(ctx, line)
	case command.KindMonthQuery:
		return l.monthQuery(ctx, line)
	case command.KindCategoryShow:
		return l.showCategories(ctx)
	case command.KindCategoryAdd:
		return l.addCategory(ctx, line)
	case command.KindCategoryDelete:
		return l.deleteCategory(ctx, line)
	}
	return &Result{Kind: command.KindUnrecognized}, nil
}

func (l *Ledger) addExpense(ctx context.Context, line string) (*Result, error) {
	t, err := command.ParseExpense(ctx, line, l.catalog)
	if err != nil {
		return nil, err
	}
	return l.apply(ctx, command.KindExpense, t)
}

func (l *Ledger) addIncome(ctx context.Context, line string) (*Result, error) {
	t, err := command.ParseIncome(line)
	if err != nil {
		return nil, err
	}
	return l.apply(ctx, command.KindIncome, t)
}

// apply journals a parsed transaction and moves the balance by its signed
// amount. A balance that was never set starts from zero here; only explicit
// reads fail on the missing scalar.
func (l *Ledger) apply(ctx context.Context, kind command.Kind, t core.Transaction) (*Result, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	stored, err := l.repo.AppendTransaction(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("journal transaction: %w", err)
	}

	balance, err := l.shiftBalance(ctx, stored.Signed())
	if err != nil {
		return nil, err
	}

	l.publishAppend(ctx, stored)

	l.logger.InfoContext(ctx, "Transaction applied",
		log.FieldOperation, log.OpAppend,
		log.FieldPeriod, stored.Period,
		log.FieldIndex, stored.Index,
		log.FieldKind, string(stored.Kind),
		log.FieldAmount, stored.Amount,
		log.FieldBalance, balance)

	tx := stored.Transaction
	return &Result{Kind: kind, Transaction: &tx, Balance: balance, HasBalance: true}, nil
}

func (l *Ledger) deleteTransaction(ctx context.Context, line string) (*Result, error) {
	target, err := command.ParseDelete(line)
	if err != nil {
		return nil, err
	}

	period := core.CurrentPeriod()
	removed, err := l.repo.DeleteTransaction(ctx, period, target)
	if err != nil {
		return nil, err
	}

	// Reversing is sign-aware: a deleted expense restores money, a deleted
	// income takes it back.
	balance, err := l.shiftBalance(ctx, -removed.Signed())
	if err != nil {
		return nil, err
	}

	l.publishDelete(ctx, period, removed)

	l.logger.InfoContext(ctx, "Transaction removed",
		log.FieldOperation, log.OpDelete,
		log.FieldPeriod, period.String(),
		log.FieldIndex, removed.Index,
		log.FieldBalance, balance)

	return &Result{Kind: command.KindDelete, Deleted: &removed, Balance: balance, HasBalance: true}, nil
}

func (l *Ledger) balanceQuery(ctx context.Context, line string) (*Result, error) {
	q, err := command.ParseBalance(line, exchange.Currencies)
	if err != nil {
		return nil, err
	}

	switch q.Op {
	case command.BalanceSet:
		if err := l.repo.SetBalance(ctx, q.Value); err != nil {
			return nil, err
		}
		return &Result{Kind: command.KindBalanceQuery, Balance: q.Value, HasBalance: true}, nil

	case command.BalanceConvert:
		balance, err := l.repo.Balance(ctx)
		if err != nil {
			return nil, err
		}
		res, err := l.exchange.Convert(ctx, l.baseCurrency, q.Currency, decimal.NewFromInt(balance), true)
		if err != nil {
			return nil, err
		}
		return &Result{
			Kind:         command.KindBalanceQuery,
			Balance:      balance,
			HasBalance:   true,
			Exchange:     &res,
			ExchangeFrom: l.baseCurrency,
			ExchangeTo:   q.Currency,
		}, nil
	}

	balance, err := l.repo.Balance(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: command.KindBalanceQuery, Balance: balance, HasBalance: true}, nil
}

func (l *Ledger) exchangeQuery(ctx context.Context, line string) (*Result, error) {
	q, err := command.ParseExchange(line, exchange.Currencies)
	if err != nil {
		return nil, err
	}

	res, err := l.exchange.Convert(ctx, q.From, q.To, decimal.NewFromFloat(q.Amount), q.HasAmount)
	if err != nil {
		return nil, err
	}
	return &Result{
		Kind:         command.KindExchangeQuery,
		Exchange:     &res,
		ExchangeFrom: q.From,
		ExchangeTo:   q.To,
	}, nil
}

func (l *Ledger) monthQuery(ctx context.Context, line string) (*Result, error) {
	q, err := command.ParseMonth(line)
	if err != nil {
		return nil, err
	}

	entries, err := l.repo.ListTransactions(ctx, q.Period)
	if err != nil {
		return nil, err
	}
	if q.Listing {
		return &Result{Kind: command.KindMonthQuery, Listing: entries}, nil
	}

	summary, err := l.Summarize(ctx, q.Period, entries)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: command.KindMonthQuery, Summary: summary}, nil
}

// Summarize aggregates one period's entries against the live catalog key
// set. A catalog that was never created zero-fills nothing.
func (l *Ledger) Summarize(ctx context.Context, period core.Period, entries []core.Transaction) (*core.Summary, error) {
	names, err := l.catalog.Names(ctx)
	if err != nil && !errors.Is(err, core.ErrCatalogNotFound) {
		return nil, err
	}
	summary := stats.Aggregate(period, entries, names)
	return &summary, nil
}

// Stats loads and summarizes a period in one call, for callers outside the
// command pipeline.
func (l *Ledger) Stats(ctx context.Context, period core.Period) (*core.Summary, error) {
	entries, err := l.repo.ListTransactions(ctx, period)
	if err != nil {
		return nil, err
	}
	return l.Summarize(ctx, period, entries)
}

func (l *Ledger) showCategories(ctx context.Context) (*Result, error) {
	entries, err := l.catalog.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: command.KindCategoryShow, Categories: entries}, nil
}

func (l *Ledger) addCategory(ctx context.Context, line string) (*Result, error) {
	add, err := command.ParseCategoryAdd(line)
	if err != nil {
		return nil, err
	}
	name, err := l.catalog.Add(ctx, add.Name, add.Aliases)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: command.KindCategoryAdd, Category: name, Aliases: add.Aliases}, nil
}

func (l *Ledger) deleteCategory(ctx context.Context, line string) (*Result, error) {
	name, err := command.ParseCategoryDelete(line)
	if err != nil {
		return nil, err
	}
	deleted, err := l.catalog.Delete(ctx, name)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: command.KindCategoryDelete, Category: deleted}, nil
}

// shiftBalance moves the balance by delta, starting from zero when the
// scalar was never set.
func (l *Ledger) shiftBalance(ctx context.Context, delta int64) (int64, error) {
	balance, err := l.repo.Balance(ctx)
	if err != nil && !errors.Is(err, core.ErrBalanceNotInitialized) {
		return 0, err
	}
	balance += delta
	if err := l.repo.SetBalance(ctx, balance); err != nil {
		return 0, err
	}
	return balance, nil
}

func (l *Ledger) publishAppend(ctx context.Context, st storage.StoredTransaction) {
	if l.events == nil {
		return
	}
	ev := &amqp.JournalEvent{
		Op:       amqp.OpAppend,
		ID:       st.ID,
		Period:   st.Period,
		Index:    st.Index,
		Date:     st.Date.String(),
		Kind:     string(st.Kind),
		Amount:   st.Amount,
		Category: st.Category,
		Note:     st.Note,
	}
	if err := l.events.PublishJournalEvent(ctx, ev); err != nil {
		// The entry is committed locally; the sweep will pick it up.
		l.logger.WarnContext(ctx, "Failed to publish append event",
			log.FieldError, err, log.FieldPeriod, st.Period, log.FieldIndex, st.Index)
	}
}

func (l *Ledger) publishDelete(ctx context.Context, period core.Period, removed core.Transaction) {
	if l.events == nil {
		return
	}
	ev := &amqp.JournalEvent{
		Op:       amqp.OpDelete,
		Period:   period.String(),
		Index:    removed.Index,
		Date:     removed.Date.String(),
		Kind:     string(removed.Kind),
		Amount:   removed.Amount,
		Category: removed.Category,
		Note:     removed.Note,
	}
	if err := l.events.PublishJournalEvent(ctx, ev); err != nil {
		l.logger.WarnContext(ctx, "Failed to publish delete event",
			log.FieldError, err, log.FieldPeriod, period.String(), log.FieldIndex, removed.Index)
	}
}
