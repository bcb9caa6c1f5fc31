package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// CSVFarmerList reads the farmer ids for a bulk statement run from a CSV
// file whose first column holds the id.
type CSVFarmerList struct{}

func NewCSVFarmerList() *CSVFarmerList {
	return &CSVFarmerList{}
}

// FarmerIDs returns the ids in file order with blanks and repeats removed.
func (r *CSVFarmerList) FarmerIDs(ctx context.Context, path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open farmer list %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	var ids []string
	seen := make(map[string]bool)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}

		id := strings.TrimSpace(record[0])
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}
