// Package storage persists the ledger in a single SQLite database: the
// per-period journal, the balance scalar and the category catalog.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"uchet/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

// StoredTransaction is a journal entry together with its database identity,
// used by the sync worker to mirror rows downstream.
type StoredTransaction struct {
	ID     int64
	Period string
	core.Transaction
}

// CategoryRow is one catalog entry as persisted.
type CategoryRow struct {
	Name    string
	Aliases []string
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AppendTransaction writes a transaction into the journal of the period its
// date falls into. The index is always recomputed from the current tail, so
// indices stay contiguous from 1 regardless of earlier deletions.
func (r *SQLiteRepository) AppendTransaction(ctx context.Context, t core.Transaction) (StoredTransaction, error) {
	period := t.Date.Period().String()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return StoredTransaction{}, fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	var last int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(idx), 0) FROM transactions WHERE period = ?`, period).Scan(&last)
	if err != nil {
		return StoredTransaction{}, fmt.Errorf("read journal tail: %w", err)
	}
	t.Index = last + 1

	res, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (period, idx, entry_date, kind, amount, category, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		period, t.Index, t.Date.String(), string(t.Kind), t.Amount, t.Category, t.Note)
	if err != nil {
		return StoredTransaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return StoredTransaction{}, fmt.Errorf("read insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return StoredTransaction{}, fmt.Errorf("commit append: %w", err)
	}

	slog.InfoContext(ctx, "Transaction appended",
		"id", id,
		"period", period,
		"index", t.Index,
		"kind", string(t.Kind),
		"amount", t.Amount)

	return StoredTransaction{ID: id, Period: period, Transaction: t}, nil
}

// DeleteTransaction removes one entry from a period's journal. Deleting the
// last entry leaves the remaining indices untouched; deleting by index shifts
// every later entry down by one so indices stay contiguous from 1. The
// removed transaction is returned for the caller to reverse against the
// balance.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, period core.Period, target core.DeleteTarget) (core.Transaction, error) {
	key := period.String()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	entries, err := scanTransactions(tx.QueryContext(ctx,
		`SELECT idx, entry_date, kind, amount, category, note
		 FROM transactions WHERE period = ? ORDER BY idx`, key))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("read journal: %w", err)
	}
	if len(entries) == 0 {
		return core.Transaction{}, core.ErrPeriodNotFound
	}

	var victim core.Transaction
	renumber := false
	if target.Last {
		victim = entries[len(entries)-1]
	} else {
		if target.Index > len(entries) {
			return core.Transaction{}, core.ErrIndexOutOfRange
		}
		victim = entries[target.Index-1]
		renumber = victim.Index < len(entries)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM transactions WHERE period = ? AND idx = ?`, key, victim.Index); err != nil {
		return core.Transaction{}, fmt.Errorf("delete transaction: %w", err)
	}
	if renumber {
		if _, err := tx.ExecContext(ctx,
			`UPDATE transactions SET idx = idx - 1 WHERE period = ? AND idx > ?`, key, victim.Index); err != nil {
			return core.Transaction{}, fmt.Errorf("renumber journal: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return core.Transaction{}, fmt.Errorf("commit delete: %w", err)
	}

	slog.InfoContext(ctx, "Transaction deleted",
		"period", key,
		"index", victim.Index,
		"kind", string(victim.Kind),
		"amount", victim.Amount,
		"renumbered", renumber)

	return victim, nil
}

// ListTransactions returns a period's journal ordered by index.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, period core.Period) ([]core.Transaction, error) {
	entries, err := scanTransactions(r.db.QueryContext(ctx,
		`SELECT idx, entry_date, kind, amount, category, note
		 FROM transactions WHERE period = ? ORDER BY idx`, period.String()))
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	if len(entries) == 0 {
		return nil, core.ErrPeriodNotFound
	}
	return entries, nil
}

func scanTransactions(rows *sql.Rows, err error) ([]core.Transaction, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []core.Transaction
	for rows.Next() {
		var t core.Transaction
		var date, kind string
		if err := rows.Scan(&t.Index, &date, &kind, &t.Amount, &t.Category, &t.Note); err != nil {
			return nil, err
		}
		d, err := core.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("stored date %q: %w", date, err)
		}
		t.Date = d
		t.Kind = core.Kind(kind)
		entries = append(entries, t)
	}
	return entries, rows.Err()
}

// Balance returns the persisted balance scalar.
func (r *SQLiteRepository) Balance(ctx context.Context) (int64, error) {
	var amount int64
	err := r.db.QueryRowContext(ctx, `SELECT amount FROM balance WHERE id = 1`).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, core.ErrBalanceNotInitialized
	}
	if err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}
	return amount, nil
}

// SetBalance overwrites the balance, creating it on first call.
func (r *SQLiteRepository) SetBalance(ctx context.Context, amount int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO balance (id, amount) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET amount = excluded.amount, updated_at = CURRENT_TIMESTAMP`,
		amount)
	if err != nil {
		return fmt.Errorf("set balance: %w", err)
	}
	return nil
}

// LoadCategories returns all catalog entries in insertion order. An empty
// result means the catalog was never created.
func (r *SQLiteRepository) LoadCategories(ctx context.Context) ([]CategoryRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, aliases FROM categories ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}
	defer rows.Close()

	var entries []CategoryRow
	for rows.Next() {
		var row CategoryRow
		var aliases string
		if err := rows.Scan(&row.Name, &aliases); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if err := json.Unmarshal([]byte(aliases), &row.Aliases); err != nil {
			return nil, fmt.Errorf("stored aliases for %q: %w", row.Name, err)
		}
		entries = append(entries, row)
	}
	return entries, rows.Err()
}

// SaveCategory stores or overwrites one catalog entry.
func (r *SQLiteRepository) SaveCategory(ctx context.Context, name string, aliases []string) error {
	if aliases == nil {
		aliases = []string{}
	}
	encoded, err := json.Marshal(aliases)
	if err != nil {
		return fmt.Errorf("encode aliases: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO categories (name, aliases) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET aliases = excluded.aliases`,
		name, string(encoded))
	if err != nil {
		return fmt.Errorf("save category: %w", err)
	}
	return nil
}

// DeleteCategory removes a catalog entry and reports whether it existed.
// Historical transactions keep their category string; nothing cascades.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete category result: %w", err)
	}
	return affected > 0, nil
}

// PendingTransactions returns journal entries that have not been mirrored
// downstream yet, oldest first.
func (r *SQLiteRepository) PendingTransactions(ctx context.Context, limit int) ([]StoredTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, period, idx, entry_date, kind, amount, category, note
		 FROM transactions WHERE synced = 0 ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("read pending transactions: %w", err)
	}
	defer rows.Close()

	var pending []StoredTransaction
	for rows.Next() {
		var st StoredTransaction
		var date, kind string
		if err := rows.Scan(&st.ID, &st.Period, &st.Transaction.Index, &date, &kind,
			&st.Transaction.Amount, &st.Transaction.Category, &st.Transaction.Note); err != nil {
			return nil, fmt.Errorf("scan pending transaction: %w", err)
		}
		d, err := core.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("stored date %q: %w", date, err)
		}
		st.Transaction.Date = d
		st.Transaction.Kind = core.Kind(kind)
		pending = append(pending, st)
	}
	return pending, rows.Err()
}

// MarkSynced records that a journal entry was mirrored successfully.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET synced = 1, sync_error = 0 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	return nil
}

// MarkSyncError flags a journal entry whose mirroring failed so the sweep can
// retry it later.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_error = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark sync error: %w", err)
	}
	return nil
}
