package screener

import (
	"strings"

	"FinScreen/internal/domain/models"
)

// UpdateModeLabel labels the marker column requested for non-default intervals.
const UpdateModeLabel = "Update Mode"

// ColumnPlan is an ordered key -> label mapping. Key order is the request column order
// and the positional layout of every response row (after the symbol).
type ColumnPlan struct {
	keys   []string
	labels map[string]string
}

func newColumnPlan(capacity int) *ColumnPlan {
	return &ColumnPlan{keys: make([]string, 0, capacity), labels: make(map[string]string, capacity)}
}

// add keeps the first label seen for a key.
func (p *ColumnPlan) add(key, label string) {
	key = models.NormalizeTimedKey(key)
	if _, ok := p.labels[key]; ok {
		return
	}
	p.keys = append(p.keys, key)
	p.labels[key] = label
}

func (p *ColumnPlan) Len() int { return len(p.keys) }

// Keys returns the wire keys in request order.
func (p *ColumnPlan) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Label returns the display label of key.
func (p *ColumnPlan) Label(key string) (string, bool) {
	l, ok := p.labels[key]
	return l, ok
}

// Columns returns the plan as table columns, without the symbol.
func (p *ColumnPlan) Columns() []models.Column {
	out := make([]models.Column, len(p.keys))
	for i, k := range p.keys {
		out[i] = models.Column{Key: k, Label: p.labels[k]}
	}
	return out
}

// PlanColumns expands a catalog into the columns requested for interval.
//
// Base keys come first, then the update-mode marker, then recommendation companions,
// then previous-bar companions. A key already planned is never relabelled.
func PlanColumns(c *models.Catalog, interval models.TimeInterval) *ColumnPlan {
	fields := c.Fields()
	plan := newColumnPlan(len(fields) + len(fields)/4)

	for _, f := range fields {
		if isPatternKey(f.Key) {
			continue
		}
		plan.add(f.KeyFor(interval), f.Label)
	}

	if !interval.IsDefault() {
		plan.add(interval.UpdateModeKey(), UpdateModeLabel)
	}

	for _, f := range fields {
		if f.HasRecommendation() {
			plan.add(f.RecKey(interval), f.RecLabel())
		}
	}

	for _, f := range fields {
		if f.Historical {
			plan.add(f.HistoricalKey(interval, 1), f.HistoricalLabel())
		}
	}
	return plan
}

// FormatHistoricalField returns the wire key of field n bars back.
func FormatHistoricalField(field models.Field, interval models.TimeInterval, n int) (string, error) {
	if !field.Historical {
		return "", newValidationError("historical field", field.Label, "field has no previous-bar variant")
	}
	if n < 1 {
		return "", newValidationError("historical offset", n, "offset must be positive")
	}
	return field.HistoricalKey(interval, n), nil
}

// Candlestick detectors are filter-only columns.
func isPatternKey(key string) bool {
	return key == "candlestick" || strings.HasPrefix(key, "Candle.")
}
