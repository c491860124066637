// Package pricing normalizes tabular pricing schedules (BoQ-style XLSX/CSV
// files) into a structured result with per-row and grand totals.
//
// The component is predictable rather than clever: column roles come from
// simple substring matches, unparseable values stay raw, and every failure
// degrades to either a row-level omission or a Result with OK=false. Nothing
// here panics or returns a Go error to the caller.
package pricing

import (
	"math"
	"strconv"
	"strings"
)

// Options tune a single Parse call. Unset values fall back to the defaults.
// Rounding is a pointer so that an explicit 0 (whole units) is distinct from
// unset.
type Options struct {
	Currency      string  // default "ZAR"
	DefaultMarkUp float64 // proportional surcharge, e.g. 0.25
	Rounding      *int    // decimal places, default 2
}

func (o *Options) defaults() {
	if o.Currency == "" {
		o.Currency = "ZAR"
	}
	if o.Rounding == nil {
		places := 2
		o.Rounding = &places
	}
}

// Item is one pricing row. Raw always holds the full original row keyed by
// header name (nil for missing cells). Typed fields are set only when the
// matching column was identified; Quantity and UnitRate keep the raw value
// when numeric parsing fails.
type Item struct {
	RowIndex        int            `json:"row_index"`
	Raw             map[string]any `json:"raw"`
	Description     any            `json:"description,omitempty"`
	Quantity        any            `json:"quantity,omitempty"`
	UnitRate        any            `json:"unit_rate,omitempty"`
	Total           *float64       `json:"total,omitempty"`
	TotalWithMarkUp *float64       `json:"total_with_mark_up,omitempty"`
}

// Result is the outcome of parsing one pricing file.
type Result struct {
	OK                   bool     `json:"ok"`
	Error                string   `json:"error,omitempty"`
	Currency             string   `json:"currency,omitempty"`
	Rounding             int      `json:"rounding"`
	DefaultMarkUp        float64  `json:"default_mark_up"`
	ColumnNames          []string `json:"column_names,omitempty"`
	ItemCount            int      `json:"item_count"`
	GrandTotal           float64  `json:"grand_total"`
	GrandTotalWithMarkUp float64  `json:"grand_total_with_mark_up"`
	Items                []Item   `json:"items"`
}

func failure(msg string) Result {
	return Result{OK: false, Error: msg, Items: []Item{}}
}

// Parse loads a pricing table and computes totals. It never returns a Go
// error: unreadable input yields a Result with OK=false.
func Parse(path string, opts Options) Result {
	opts.defaults()
	rounding := *opts.Rounding

	headers, rows, err := loadTable(path)
	if err != nil {
		return failure("failed to read pricing file: " + err.Error())
	}

	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	descCol := findColumn(headers, "description")
	qtyCol := findColumn(headers, "qty", "quantity")
	rateCol := findColumn(headers, "rate", "unit price")
	totalCol := findColumn(headers, "total")

	items := []Item{}
	for idx, row := range rows {
		if blankRow(row) {
			continue
		}

		raw := make(map[string]any, len(headers))
		for j, h := range headers {
			raw[h] = cellValue(row, j)
		}

		item := Item{RowIndex: idx, Raw: raw}

		if descCol >= 0 {
			item.Description = cellValue(row, descCol)
		}
		if qtyCol >= 0 {
			item.Quantity = numberOrRaw(cellValue(row, qtyCol))
		}
		if rateCol >= 0 {
			item.UnitRate = numberOrRaw(cellValue(row, rateCol))
		}

		if total, ok := rowTotal(row, qtyCol, rateCol, totalCol); ok {
			rounded := roundTo(total, rounding)
			item.Total = &rounded
			if opts.DefaultMarkUp != 0 {
				marked := roundTo(total*(1+opts.DefaultMarkUp), rounding)
				item.TotalWithMarkUp = &marked
			}
		}

		items = append(items, item)
	}

	var grand, grandMarked float64
	for _, it := range items {
		if it.Total != nil {
			grand += *it.Total
		}
		switch {
		case it.TotalWithMarkUp != nil:
			grandMarked += *it.TotalWithMarkUp
		case it.Total != nil:
			grandMarked += *it.Total
		}
	}

	return Result{
		OK:                   true,
		Currency:             opts.Currency,
		Rounding:             rounding,
		DefaultMarkUp:        opts.DefaultMarkUp,
		ColumnNames:          headers,
		ItemCount:            len(items),
		GrandTotal:           roundTo(grand, rounding),
		GrandTotalWithMarkUp: roundTo(grandMarked, rounding),
		Items:                items,
	}
}

// rowTotal resolves a row's total. A detected total column takes precedence
// when its cell holds a value; an empty total cell falls through to
// quantity x rate, but a cell that fails to parse leaves the total absent.
func rowTotal(row []string, qtyCol, rateCol, totalCol int) (float64, bool) {
	if totalCol >= 0 {
		if v := cellValue(row, totalCol); v != nil {
			return parseNumber(v)
		}
	}
	if qtyCol < 0 || rateCol < 0 {
		return 0, false
	}
	qty, okQ := parseNumber(cellValue(row, qtyCol))
	rate, okR := parseNumber(cellValue(row, rateCol))
	if !okQ || !okR {
		return 0, false
	}
	return qty * rate, true
}

// findColumn returns the index of the first header containing any of the
// given substrings (case-insensitive), or -1. First match in column order
// wins even when several headers qualify.
func findColumn(headers []string, substrings ...string) int {
	for i, h := range headers {
		lower := strings.ToLower(h)
		for _, sub := range substrings {
			if strings.Contains(lower, sub) {
				return i
			}
		}
	}
	return -1
}

// cellValue returns the cell at column j, or nil when the cell is missing or
// empty.
func cellValue(row []string, j int) any {
	if j >= len(row) {
		return nil
	}
	if strings.TrimSpace(row[j]) == "" {
		return nil
	}
	return row[j]
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// numberOrRaw parses a cell as a float, keeping the original value when
// parsing fails. Missing cells stay nil.
func numberOrRaw(v any) any {
	if v == nil {
		return nil
	}
	if n, ok := parseNumber(v); ok {
		return n
	}
	return v
}

func parseNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		return t, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
