package gateway

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agri-reconciliation/internal/domain"
)

func sampleStatement() domain.Statement {
	return domain.Statement{
		Title:       "Farmer Financial Statement",
		Subject:     "Musa Ibrahim",
		SubjectID:   "f-1",
		GeneratedAt: time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
		Sections: []domain.Section{
			{
				Title:   "Wallet Information",
				Columns: []string{"Field", "Value"},
				Rows: []map[string]string{
					{"Field": "Balance", "Value": "₦12,345.50"},
					{"Field": "Currency", "Value": "NGN"},
				},
			},
			{
				Title:   "Outstanding Loans",
				Columns: []string{"Reference", "Outstanding"},
				Rows:    []map[string]string{},
			},
		},
	}
}

func TestCSVRenderer_Render(t *testing.T) {
	var buf bytes.Buffer
	err := NewCSVRenderer().Render(context.Background(), sampleStatement(), &buf)
	require.NoError(t, err)

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	expected := [][]string{
		{"Farmer Financial Statement"},
		{"Subject", "Musa Ibrahim"},
		{"Subject ID", "f-1"},
		{"Generated At", "2025-03-14T10:30:00Z"},
		{"Wallet Information"},
		{"Field", "Value"},
		{"Balance", "₦12,345.50"},
		{"Currency", "NGN"},
		{"Outstanding Loans"},
		{"Reference", "Outstanding"},
		{"No records"},
	}
	assert.Equal(t, expected, records)
}

func TestCSVRenderer_ListingWithoutSubject(t *testing.T) {
	doc := domain.Statement{
		Title:       "Wallet page 1",
		GeneratedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		Sections: []domain.Section{{
			Title:   "Wallet page 1",
			Columns: []string{"Date", "Amount"},
			Rows:    []map[string]string{{"Date": "2025-01-01 09:00"}},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewCSVRenderer().Render(context.Background(), doc, &buf))

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, []string{"2025-01-01 09:00", ""}, records[4])
}

func TestCSVRenderer_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewCSVRenderer().Render(ctx, sampleStatement(), &buf)
	assert.ErrorIs(t, err, context.Canceled)
}
