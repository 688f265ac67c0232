package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ErrNotFound is returned when the catalog file does not exist.
var ErrNotFound = errors.New("catalog file not found")

// ListColumns are parsed as list literals when building metadata.
var ListColumns = map[string]bool{
	"tags":         true,
	"menu_andalan": true,
}

// Row is one catalog record keyed by column name.
type Row map[string]string

// Get returns the trimmed cell, treating pandas-style "nan" as empty.
func (r Row) Get(column string) string {
	v := strings.TrimSpace(r[column])
	if strings.EqualFold(v, "nan") {
		return ""
	}
	return v
}

// GetOr returns fallback when the cell is empty.
func (r Row) GetOr(column, fallback string) string {
	if v := r.Get(column); v != "" {
		return v
	}
	return fallback
}

type Catalog struct {
	Header []string
	Rows   []Row
}

// Load reads the whole CSV catalog from path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses CSV with a header row. Short rows are padded with empty cells.
func Read(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Catalog{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimPrefix(strings.TrimSpace(header[i]), "\ufeff")
	}

	c := &Catalog{Header: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(c.Rows)+1, err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		c.Rows = append(c.Rows, row)
	}
	return c, nil
}

// Page returns the rows of a 1-based page and the total row count.
func (c *Catalog) Page(page, limit int) ([]Row, int) {
	total := len(c.Rows)
	if page < 1 || limit < 1 {
		return []Row{}, total
	}
	start := (page - 1) * limit
	if start >= total {
		return []Row{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return c.Rows[start:end], total
}
