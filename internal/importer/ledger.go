package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expensenote/expensenote/internal/model"
)

// LedgerParser reads the native layout: a header row naming date, type,
// amount and optionally category and note, in any order.
type LedgerParser struct{}

// Format returns the parser name.
func (p *LedgerParser) Format() string { return "ledger" }

var ledgerRequired = []string{"date", "type", "amount"}

// Parse reads a ledger CSV.
func (p *LedgerParser) Parse(r io.Reader, opts Options) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range ledgerRequired {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("ledger CSV header is missing %q", name)
		}
	}
	cr.FieldsPerRecord = len(header)

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading ledger CSV: %w", err)
		}
		row, err := parseLedgerRow(rec, cols, opts)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		row.Line = line
		rows = append(rows, row)
	}
	return rows, nil
}

func parseLedgerRow(rec []string, cols map[string]int, opts Options) (Row, error) {
	field := func(name string) string {
		if i, ok := cols[name]; ok {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	kind := model.Kind(strings.ToLower(field("type")))
	if !kind.Valid() {
		return Row{}, fmt.Errorf("type %q must be income or expense", field("type"))
	}
	amount, err := decimal.NewFromString(field("amount"))
	if err != nil {
		return Row{}, fmt.Errorf("parsing amount %q: %w", field("amount"), err)
	}
	ts, err := parseDate(field("date"), opts.location())
	if err != nil {
		return Row{}, err
	}

	return Row{
		Kind:               kind,
		Amount:             amount,
		CategoryOrSourceID: opts.reference(kind, field("category")),
		Timestamp:          ts,
		Note:               field("note"),
		Explicit:           field("category") != "",
	}, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}
