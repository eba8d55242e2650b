// Package gsheet appends mirrored journal rows to a Google Sheets
// spreadsheet using a service account. The sheet is append-only: deletions
// arrive as reversal rows, never as row removals.
package gsheet

import (
	"context"
	"errors"
	"fmt"
	"os"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"uchet/internal/log"
)

// Row is one mirrored journal line in sheet column order.
type Row struct {
	Period   string
	Index    int
	Date     string
	Kind     string
	Amount   int64
	Category string
	Note     string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	logger        *log.Logger
}

// NewClient builds a Sheets client from service account credentials, given
// inline or as a file path. Exactly one of the two must be set.
func NewClient(ctx context.Context, spreadsheetID, sheetName, credentialsFile, credentialsJSON string, logger *log.Logger) (*Client, error) {
	var credentials []byte
	switch {
	case credentialsJSON != "":
		credentials = []byte(credentialsJSON)
	case credentialsFile != "":
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentials = data
	default:
		return nil, errors.New("missing service account credentials")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        logger.WithComponent(log.ComponentSheets),
	}, nil
}

// AppendRow appends one journal row after the current data.
func (c *Client) AppendRow(ctx context.Context, row Row) error {
	vr := &gsheet.ValueRange{Values: [][]any{{
		row.Period, row.Index, row.Date, row.Kind, row.Amount, row.Category, row.Note,
	}}}

	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, c.sheetName+"!A:G", vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append row to sheet: %w", err)
	}

	c.logger.InfoContext(ctx, "Row mirrored to sheet",
		log.FieldPeriod, row.Period,
		log.FieldIndex, row.Index,
		log.FieldKind, row.Kind,
		log.FieldAmount, row.Amount)

	return nil
}
