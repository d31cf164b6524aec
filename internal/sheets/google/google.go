// Package google mirrors spend records into a Google Sheet so the
// single-device ledger has an off-device backup a person can open.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"parksmart/internal/core"
	ports "parksmart/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Ensure interface conformance
var (
	_ ports.SpendWriter  = (*Client)(nil)
	_ ports.SpendDeleter = (*Client)(nil)
)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Auth: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_SHEET_NAME (default "SpendLog").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "SpendLog"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case serviceAccountJSON != "":
		return gsheet.NewService(ctx,
			goption.WithCredentialsJSON([]byte(serviceAccountJSON)),
			goption.WithScopes(gsheet.SpreadsheetsScope))
	case serviceAccountFile != "":
		return gsheet.NewService(ctx,
			goption.WithCredentialsFile(serviceAccountFile),
			goption.WithScopes(gsheet.SpreadsheetsScope))
	default:
		// Fall back to Application Default Credentials.
		return gsheet.NewService(ctx, goption.WithScopes(gsheet.SpreadsheetsScope))
	}
}

// Append writes one record as a row: id, carpark, agency, cost,
// duration, session start and end in Singapore local time.
func (c *Client) Append(ctx context.Context, rec core.SpendRecord) (string, error) {
	row := []interface{}{
		rec.ID,
		rec.CarparkName,
		rec.Agency,
		rec.Cost,
		rec.DurationHours,
		core.ToSGT(rec.ParkedAt).Format("2006-01-02 15:04"),
		core.ToSGT(rec.EndedAt).Format("2006-01-02 15:04"),
	}

	vr := &gsheet.ValueRange{Values: [][]interface{}{row}}
	resp, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, c.sheetName+"!A:G", vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("append row: %w", err)
	}

	ref := ""
	if resp.Updates != nil {
		ref = resp.Updates.UpdatedRange
	}
	slog.InfoContext(ctx, "Spend record appended to sheet",
		"id", rec.ID,
		"range", ref)
	return ref, nil
}

// Delete finds the row whose first column matches the record id and
// removes it. A record that was never synced is not an error.
func (c *Client) Delete(ctx context.Context, id string) error {
	rowIndex, sheetID, err := c.findRow(ctx, id)
	if err != nil {
		return err
	}
	if rowIndex < 0 {
		slog.WarnContext(ctx, "Spend record not found in sheet, skipping delete", "id", id)
		return nil
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			DeleteDimension: &gsheet.DeleteDimensionRequest{
				Range: &gsheet.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowIndex),
					EndIndex:   int64(rowIndex + 1),
				},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete row %d: %w", rowIndex, err)
	}

	slog.InfoContext(ctx, "Spend record deleted from sheet", "id", id, "row", rowIndex)
	return nil
}

// findRow returns the zero-based row index holding the id, or -1.
func (c *Client) findRow(ctx context.Context, id string) (int, int64, error) {
	sheetID, err := c.sheetInternalID(ctx)
	if err != nil {
		return -1, 0, err
	}

	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, c.sheetName+"!A:A").
		Context(ctx).
		Do()
	if err != nil {
		return -1, 0, fmt.Errorf("read id column: %w", err)
	}

	for i, row := range resp.Values {
		if len(row) > 0 && toString(row[0]) == id {
			return i, sheetID, nil
		}
	}
	return -1, sheetID, nil
}

func (c *Client) sheetInternalID(ctx context.Context) (int64, error) {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("get spreadsheet metadata: %w", err)
	}
	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.Title == c.sheetName {
			return s.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found", c.sheetName)
}

func toString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
