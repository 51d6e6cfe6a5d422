package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"salesdash/internal/models"
)

// ReadCSV normalizes a CSV stream into a canonical table. The first row is
// the header; an unreadable stream or an empty one is a structural error.
func ReadCSV(ctx context.Context, r io.Reader, mapping ColumnMapping) ([]models.Record, models.DropReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, models.DropReport{}, fmt.Errorf("input is empty")
	}
	if err != nil {
		return nil, models.DropReport{}, fmt.Errorf("read header: %w", err)
	}

	var rows [][]string
	for {
		select {
		case <-ctx.Done():
			return nil, models.DropReport{}, ctx.Err()
		default:
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, models.DropReport{}, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, row)
	}

	return NewNormalizer(mapping).Normalize(ctx, header, rows)
}

// LoadFile reads a CSV file from disk, transparently unpacking .gz, .lz4 and
// .zip archives.
func LoadFile(ctx context.Context, path string, mapping ColumnMapping) ([]models.Record, models.DropReport, error) {
	rc, err := openData(path)
	if err != nil {
		return nil, models.DropReport{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer rc.Close()
	return ReadCSV(ctx, rc, mapping)
}
