// Package worker mirrors journal changes to the Google Sheets copy. Events
// arrive over AMQP; a cron sweep re-pushes anything the event path missed.
package worker

import (
	"context"
	"fmt"

	"uchet/internal/amqp"
	"uchet/internal/gsheet"
	"uchet/internal/log"
	"uchet/internal/storage"
)

// RowAppender is the slice of the sheet client the mirror needs.
type RowAppender interface {
	AppendRow(ctx context.Context, row gsheet.Row) error
}

// Mirror pushes journal rows downstream and tracks sync state in storage.
type Mirror struct {
	storage   *storage.SQLiteRepository
	sheet     RowAppender
	batchSize int
	logger    *log.Logger
}

func NewMirror(storage *storage.SQLiteRepository, sheet RowAppender, batchSize int, logger *log.Logger) *Mirror {
	return &Mirror{
		storage:   storage,
		sheet:     sheet,
		batchSize: batchSize,
		logger:    logger.WithComponent(log.ComponentWorker),
	}
}

// HandleEvent processes one journal change event from AMQP. Appends mirror
// the row and flip its sync flag; deletes mirror a reversal row, since the
// sheet never removes lines.
func (m *Mirror) HandleEvent(ctx context.Context, ev *amqp.JournalEvent) error {
	switch ev.Op {
	case amqp.OpAppend:
		return m.mirrorAppend(ctx, ev)
	case amqp.OpDelete:
		return m.mirrorReversal(ctx, ev)
	}
	return fmt.Errorf("unknown journal event op %q", ev.Op)
}

func (m *Mirror) mirrorAppend(ctx context.Context, ev *amqp.JournalEvent) error {
	row := gsheet.Row{
		Period:   ev.Period,
		Index:    ev.Index,
		Date:     ev.Date,
		Kind:     ev.Kind,
		Amount:   ev.Amount,
		Category: ev.Category,
		Note:     ev.Note,
	}
	if err := m.sheet.AppendRow(ctx, row); err != nil {
		if markErr := m.storage.MarkSyncError(ctx, ev.ID); markErr != nil {
			m.logger.ErrorContext(ctx, "Failed to mark sync error",
				"id", ev.ID, log.FieldError, markErr)
		}
		return fmt.Errorf("mirror append: %w", err)
	}

	if err := m.storage.MarkSynced(ctx, ev.ID); err != nil {
		// The row landed; only the bookkeeping failed.
		m.logger.ErrorContext(ctx, "Failed to mark as synced",
			"id", ev.ID, log.FieldError, err)
	}

	m.logger.InfoContext(ctx, "Journal row mirrored",
		log.FieldOperation, log.OpMirror,
		"id", ev.ID,
		log.FieldPeriod, ev.Period,
		log.FieldIndex, ev.Index)

	return nil
}

func (m *Mirror) mirrorReversal(ctx context.Context, ev *amqp.JournalEvent) error {
	row := gsheet.Row{
		Period:   ev.Period,
		Index:    ev.Index,
		Date:     ev.Date,
		Kind:     ev.Kind,
		Amount:   -ev.Amount,
		Category: ev.Category,
		Note:     "deleted: " + ev.Note,
	}
	if err := m.sheet.AppendRow(ctx, row); err != nil {
		return fmt.Errorf("mirror reversal: %w", err)
	}

	m.logger.InfoContext(ctx, "Journal deletion mirrored as reversal",
		log.FieldOperation, log.OpMirror,
		log.FieldPeriod, ev.Period,
		log.FieldIndex, ev.Index)

	return nil
}

// Sweep pushes journal entries whose events never made it downstream, a
// batch at a time, oldest first. It runs on a schedule and at startup.
func (m *Mirror) Sweep(ctx context.Context) error {
	pending, err := m.storage.PendingTransactions(ctx, m.batchSize)
	if err != nil {
		return fmt.Errorf("load pending transactions: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	m.logger.InfoContext(ctx, "Sweeping unsynced journal entries",
		log.FieldOperation, log.OpSweep, "count", len(pending))

	synced := 0
	for _, st := range pending {
		row := gsheet.Row{
			Period:   st.Period,
			Index:    st.Index,
			Date:     st.Date.String(),
			Kind:     string(st.Kind),
			Amount:   st.Amount,
			Category: st.Category,
			Note:     st.Note,
		}
		if err := m.sheet.AppendRow(ctx, row); err != nil {
			m.logger.ErrorContext(ctx, "Failed to mirror pending entry",
				"id", st.ID, log.FieldError, err)
			if markErr := m.storage.MarkSyncError(ctx, st.ID); markErr != nil {
				m.logger.ErrorContext(ctx, "Failed to mark sync error",
					"id", st.ID, log.FieldError, markErr)
			}
			continue
		}
		if err := m.storage.MarkSynced(ctx, st.ID); err != nil {
			m.logger.ErrorContext(ctx, "Failed to mark as synced",
				"id", st.ID, log.FieldError, err)
			continue
		}
		synced++
	}

	m.logger.InfoContext(ctx, "Sweep completed",
		log.FieldOperation, log.OpSweep,
		"total", len(pending),
		"synced", synced)

	return nil
}
