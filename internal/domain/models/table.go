package models

// Fixed leading columns of every result table.
const (
	SymbolKey   = "symbol"
	SymbolLabel = "Symbol"
)

// HeaderMode selects which identifiers a ResultTable exposes as headers.
type HeaderMode int

const (
	// HeaderLabels shows display labels.
	HeaderLabels HeaderMode = iota
	// HeaderTechnical pairs each wire key with its label.
	HeaderTechnical
	// HeaderTechnicalOnly shows wire keys only.
	HeaderTechnicalOnly
)

// Column is one table column: its wire key and display label.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ResultTable is a decoded scan response. The first column is always the symbol.
// Switching header mode never touches Rows. Not safe for concurrent mutation.
type ResultTable struct {
	Columns  []Column     `json:"columns"`
	Rows     [][]any      `json:"rows"`
	Interval TimeInterval `json:"interval"`
	// HeaderMode travels with the table so stored scans keep their headers.
	HeaderMode HeaderMode `json:"header_mode,omitempty"`
}

func NewResultTable(columns []Column, rows [][]any, interval TimeInterval) *ResultTable {
	return &ResultTable{Columns: columns, Rows: rows, Interval: interval}
}

func (t *ResultTable) Len() int { return len(t.Rows) }

func (t *ResultTable) Mode() HeaderMode { return t.HeaderMode }

// SetTechnicalColumns switches to wire-key headers; only drops the label pairing.
func (t *ResultTable) SetTechnicalColumns(only bool) {
	if only {
		t.HeaderMode = HeaderTechnicalOnly
		return
	}
	t.HeaderMode = HeaderTechnical
}

// SetLabelColumns restores display-label headers.
func (t *ResultTable) SetLabelColumns() { t.HeaderMode = HeaderLabels }

// SetMode restores a mode read back from storage. Unknown values fall back to labels.
func (t *ResultTable) SetMode(m HeaderMode) {
	switch m {
	case HeaderTechnical, HeaderTechnicalOnly:
		t.HeaderMode = m
	default:
		t.HeaderMode = HeaderLabels
	}
}

// Headers returns one identifier per column for the current mode.
// In HeaderTechnical mode the wire key is returned; HeaderRows exposes the pairing.
func (t *ResultTable) Headers() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		if t.HeaderMode == HeaderLabels {
			out[i] = c.Label
		} else {
			out[i] = c.Key
		}
	}
	return out
}

// HeaderRows returns a single header row, or key and label rows in HeaderTechnical mode.
func (t *ResultTable) HeaderRows() [][]string {
	if t.HeaderMode != HeaderTechnical {
		return [][]string{t.Headers()}
	}
	keys := make([]string, len(t.Columns))
	labels := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		keys[i] = c.Key
		labels[i] = c.Label
	}
	return [][]string{keys, labels}
}

// IndexByLabel returns the column position for a display label, or -1.
func (t *ResultTable) IndexByLabel(label string) int {
	for i, c := range t.Columns {
		if c.Label == label {
			return i
		}
	}
	return -1
}

// IndexByKey returns the column position for a wire key, or -1.
func (t *ResultTable) IndexByKey(key string) int {
	for i, c := range t.Columns {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// ColumnIndex resolves an identifier valid in the current header mode.
func (t *ResultTable) ColumnIndex(id string) int {
	if t.HeaderMode == HeaderLabels {
		return t.IndexByLabel(id)
	}
	return t.IndexByKey(id)
}

// Values returns a copy of one column.
func (t *ResultTable) Values(idx int) []any {
	if idx < 0 || idx >= len(t.Columns) {
		return nil
	}
	out := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// Records returns rows as maps keyed by the current headers.
func (t *ResultTable) Records() []map[string]any {
	headers := t.Headers()
	out := make([]map[string]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]any, len(headers))
		for i, h := range headers {
			rec[h] = row[i]
		}
		out = append(out, rec)
	}
	return out
}

// Symbols returns the first column as strings.
func (t *ResultTable) Symbols() []string {
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		s, _ := row[0].(string)
		out = append(out, s)
	}
	return out
}
