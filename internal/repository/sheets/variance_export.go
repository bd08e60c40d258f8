// Package sheets exports variance reports to a Google Sheet for operators
// who track execution discipline in spreadsheets.
package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/aquarian247/aquamind-planning/internal/config"
	"github.com/aquarian247/aquamind-planning/internal/domain/models"
)

const (
	varianceRange = "Variance!A:G"
	dateLayout    = "2006-01-02"
)

// Exporter appends variance rows to a spreadsheet.
type Exporter interface {
	AppendVarianceRows(ctx context.Context, records []models.VarianceRecord) error
}

// GoogleSheetExporter implements Exporter using the official Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Sheets-backed exporter.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendVarianceRows writes one row per variance record.
func (e *GoogleSheetExporter) AppendVarianceRows(ctx context.Context, records []models.VarianceRecord) error {
	if len(records) == 0 {
		return nil
	}

	values := make([][]interface{}, 0, len(records))
	for _, record := range records {
		values = append(values, []interface{}{
			record.ActivityID,
			record.BatchNumber,
			record.ActivityType.DisplayName(),
			record.PlannedDue.Format(dateLayout),
			record.CompletedAt.Format(dateLayout),
			record.VarianceDays,
			string(record.Class),
		})
	}

	payload := &sheetsapi.ValueRange{Values: values}
	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, varianceRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append %d variance rows: %w", len(records), err)
	}

	e.logger.Debug("variance rows appended", zap.Int("rows", len(records)))
	return nil
}
