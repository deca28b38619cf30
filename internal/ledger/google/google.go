// Package google backs the ledger with a Google Sheets worksheet.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/ledger"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ ledger.Store = (*Client)(nil)

type Config struct {
	SpreadsheetID string
	SheetName     string
	// Credentials: inline JSON wins over the file path. When both are
	// empty GOOGLE_APPLICATION_CREDENTIALS decides.
	ServiceAccountJSON string
	ServiceAccountFile string
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	sheetName := strings.TrimSpace(cfg.SheetName)
	if sheetName == "" {
		sheetName = "Расходы"
	}

	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context, cfg Config) (*gsheet.Service, error) {
	credentialsJSON := []byte(strings.TrimSpace(cfg.ServiceAccountJSON))
	if len(credentialsJSON) == 0 {
		file := strings.TrimSpace(cfg.ServiceAccountFile)
		if file == "" {
			file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
		}
		if file == "" {
			return nil, errors.New("missing service account credentials")
		}
		var err error
		credentialsJSON, err = os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	}

	return gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
}

// AppendRow appends one ledger row after the last non-empty row. The
// call is retried once on transient API failures; a second failure is
// surfaced to the caller, a silently lost expense row is worse than a
// visible error.
func (c *Client) AppendRow(ctx context.Context, row []string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	values := make([]any, len(row))
	for i, cell := range row {
		values[i] = cell
	}
	vr := &gsheet.ValueRange{Values: [][]any{values}}
	writeRange := fmt.Sprintf("%s!A:D", c.sheetName)

	err := retry.Do(
		func() error {
			_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, writeRange, vr).
				ValueInputOption("USER_ENTERED").
				InsertDataOption("INSERT_ROWS").
				Context(ctx).
				Do()
			return err
		},
		retry.RetryIf(func(err error) bool {
			retryable := isTransient(err)
			if retryable {
				slog.WarnContext(ctx, "Sheets append failed, will retry", "error", err)
			}
			return retryable
		}),
		retry.Attempts(2),
		retry.Delay(2*time.Second),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("append row to sheet %s: %w", c.sheetName, err)
	}
	return nil
}

// Rows returns all data rows in sheet order. The header row is skipped
// here so callers never see it.
func (c *Client) Rows(ctx context.Context) ([][]string, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	readRange := fmt.Sprintf("%s!A:D", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", c.sheetName, err)
	}
	if len(resp.Values) <= 1 {
		return nil, nil
	}

	rows := make([][]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// EnsureHeader writes the header row into an empty sheet so aggregation
// can always skip exactly one row.
func (c *Client) EnsureHeader(ctx context.Context) error {
	readRange := fmt.Sprintf("%s!A1:D1", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header of sheet %s: %w", c.sheetName, err)
	}
	if len(resp.Values) > 0 {
		return nil
	}

	values := make([]any, len(ledger.Header))
	for i, cell := range ledger.Header {
		values[i] = cell
	}
	vr := &gsheet.ValueRange{Values: [][]any{values}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, readRange, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header to sheet %s: %w", c.sheetName, err)
	}
	return nil
}

func isTransient(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests || gerr.Code >= http.StatusInternalServerError
	}
	// Network-level failures come through without a status code.
	return err != nil && !errors.Is(err, context.Canceled)
}
