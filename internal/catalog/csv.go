package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"modhome/pkg/models"
)

// FeatureSeparator joins features inside one CSV cell.
const FeatureSeparator = "|"

var csvHeader = []string{"id", "name", "description", "price", "image", "category", "features"}

// WriteCSV writes products with a header row.
func WriteCSV(w io.Writer, products []models.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range products {
		if err := cw.Write([]string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Description,
			p.Price,
			p.Image,
			p.Category,
			strings.Join(p.Features, FeatureSeparator),
		}); err != nil {
			return fmt.Errorf("write csv row %d: %w", p.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadRawCSV reads a spreadsheet export into raw records. Columns are found
// by header name in any order; a column missing from the header leaves the
// field nil.
func ReadRawCSV(r io.Reader) ([]models.RawProduct, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := readHeader(cr)
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	out := []models.RawProduct{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}

		var p models.RawProduct
		if v := valueAt(header, row, "id"); v != nil && *v != "" {
			id, err := strconv.Atoi(*v)
			if err != nil {
				return nil, fmt.Errorf("parse id on line %d: %w", line, err)
			}
			p.ID = &id
		}
		p.Name = valueAt(header, row, "name")
		p.Description = valueAt(header, row, "description")
		p.Price = valueAt(header, row, "price")
		p.Image = valueAt(header, row, "image")
		p.Category = valueAt(header, row, "category")
		if v := valueAt(header, row, "features"); v != nil && *v != "" {
			p.Features = strings.Split(*v, FeatureSeparator)
		}
		out = append(out, p)
	}
	return out, nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) *string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return nil
	}
	v := strings.TrimSpace(row[idx])
	return &v
}
