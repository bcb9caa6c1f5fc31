package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"agri-reconciliation/internal/domain"
)

const noRecords = "No records"

// CSVRenderer writes a statement as CSV: a short header block, then each
// section as its title, a column row and the data rows, separated by a
// blank line.
type CSVRenderer struct{}

func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

func (r *CSVRenderer) Render(ctx context.Context, doc domain.Statement, w io.Writer) error {
	writer := csv.NewWriter(w)

	header := [][]string{{doc.Title}}
	if doc.Subject != "" {
		header = append(header, []string{"Subject", doc.Subject})
	}
	if doc.SubjectID != "" {
		header = append(header, []string{"Subject ID", doc.SubjectID})
	}
	header = append(header, []string{"Generated At", doc.GeneratedAt.Format(time.RFC3339)})
	if err := writer.WriteAll(header); err != nil {
		return fmt.Errorf("failed to write statement header: %w", err)
	}

	for _, section := range doc.Sections {
		if err := ctx.Err(); err != nil {
			return err
		}
		records := [][]string{{}, {section.Title}, section.Columns}
		if len(section.Rows) == 0 {
			records = append(records, []string{noRecords})
		}
		for _, row := range section.Rows {
			record := make([]string, len(section.Columns))
			for i, col := range section.Columns {
				record[i] = row[col]
			}
			records = append(records, record)
		}
		if err := writer.WriteAll(records); err != nil {
			return fmt.Errorf("failed to write section %q: %w", section.Title, err)
		}
	}
	return nil
}
