// Package beautify turns raw scan values into display values according to each
// column's format tag.
package beautify

import (
	"encoding/json"
	"fmt"
	"strconv"

	"FinScreen/internal/catalog"
	"FinScreen/internal/domain/models"
	"FinScreen/pkg/logger"
)

// row exposes the unformatted values of one table row by column label.
type row struct {
	raw     []interface{}
	byLabel map[string]int
}

func (r row) value(label string) interface{} {
	i, ok := r.byLabel[label]
	if !ok {
		return nil
	}
	return r.raw[i]
}

func (r row) float(label string) (float64, bool) { return toFloat(r.value(label)) }

type transform func(f models.Field, v interface{}, r row) interface{}

// Formatter rewrites table columns in place. Companion values (recommendation scores,
// previous bars, price, currency) are always read from the unformatted row.
type Formatter struct {
	catalog    *models.Catalog
	log        *logger.Logger
	transforms map[models.FormatTag]transform
}

func New(c *models.Catalog, log *logger.Logger) *Formatter {
	if log == nil {
		log = logger.NewNop()
	}
	return &Formatter{
		catalog: c,
		log:     log,
		transforms: map[models.FormatTag]transform{
			models.FormatBool:                   formatBool,
			models.FormatRating:                 formatRating,
			models.FormatPercent:                formatPercent,
			models.FormatRound:                  formatRound,
			models.FormatNumberGroup:            formatNumberGroup,
			models.FormatRecommendation:         formatRecommendation,
			models.FormatComputedRecommendation: formatComputedRecommendation,
			models.FormatCurrency:               formatCurrency,
			models.FormatNone:                   passThrough,
			models.FormatText:                   passThrough,
			models.FormatDate:                   passThrough,
			models.FormatMissing:                passThrough,
			models.FormatFloat:                  passThrough,
		},
	}
}

// Apply formats every column whose label is a catalog field. Columns with an
// unknown format tag are logged and left unchanged.
func (f *Formatter) Apply(t *models.ResultTable) {
	byLabel := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		byLabel[c.Label] = i
	}
	raw := make([][]interface{}, len(t.Rows))
	for i, r := range t.Rows {
		raw[i] = append([]interface{}(nil), r...)
	}

	for col, c := range t.Columns {
		field, ok := f.catalog.FindByLabel(c.Label)
		if !ok {
			continue
		}
		fn, ok := f.transforms[field.Format]
		if !ok {
			f.log.Warn("unknown format tag",
				logger.String("format", string(field.Format)),
				logger.String("column", c.Label),
			)
			continue
		}
		for i := range t.Rows {
			t.Rows[i][col] = fn(field, raw[i][col], row{raw: raw[i], byLabel: byLabel})
		}
	}
}

// Beautify is shorthand for New(c, log).Apply(t).
func Beautify(t *models.ResultTable, c *models.Catalog, log *logger.Logger) {
	New(c, log).Apply(t)
}

func passThrough(_ models.Field, v interface{}, _ row) interface{} { return v }

func formatBool(_ models.Field, v interface{}, _ row) interface{} {
	switch b := v.(type) {
	case string:
		return b == "true"
	case bool:
		return b
	}
	return false
}

func formatRating(_ models.Field, v interface{}, _ row) interface{} {
	n, ok := toFloat(v)
	if !ok {
		return models.FindRating(nil).Label
	}
	return models.FindRating(&n).Label
}

func formatPercent(_ models.Field, v interface{}, _ row) interface{} {
	n, ok := toFloat(v)
	if !ok {
		return v
	}
	return fmt.Sprintf("%.2f%%", n)
}

func formatRound(_ models.Field, v interface{}, _ row) interface{} {
	n, ok := toFloat(v)
	if !ok {
		return v
	}
	return Round2(n)
}

func formatNumberGroup(_ models.Field, v interface{}, _ row) interface{} {
	if v == nil {
		return Millify(0)
	}
	n, ok := toFloat(v)
	if !ok {
		return v
	}
	return Millify(n)
}

func formatCurrency(_ models.Field, v interface{}, r row) interface{} {
	n, ok := toFloat(v)
	if !ok {
		return v
	}
	out := Millify(Round2(n))
	if code, ok := r.value(catalog.Currency.Label).(string); ok && code != "" {
		out += " " + code
	}
	return out
}

func formatRecommendation(f models.Field, v interface{}, r row) interface{} {
	if v == nil {
		return v
	}
	signal := models.SignalNeutral
	if score, ok := r.float(f.RecLabel()); ok {
		signal = models.SignalFromScore(score)
	}
	return withSignal(v, signal)
}

func formatComputedRecommendation(f models.Field, v interface{}, r row) interface{} {
	cur, ok := toFloat(v)
	if !ok {
		return v
	}
	signal := models.SignalNeutral
	switch f.Key {
	case catalog.ADX.Key:
		plus, ok1 := r.float(catalog.ADXPlusDI.Label)
		minus, ok2 := r.float(catalog.ADXMinusDI.Label)
		plusPrev, ok3 := r.float(catalog.ADXPlusDI.HistoricalLabel())
		minusPrev, ok4 := r.float(catalog.ADXMinusDI.HistoricalLabel())
		if ok1 && ok2 && ok3 && ok4 {
			signal = adxSignal(cur, plus, minus, plusPrev, minusPrev)
		}
	case catalog.AO.Key:
		if prev, ok := r.float(catalog.AO.HistoricalLabel()); ok {
			signal = aoSignal(cur, prev)
		}
	case catalog.BBLower.Key:
		if price, ok := r.float(catalog.Price.Label); ok {
			signal = bbLowerSignal(cur, price)
		}
	case catalog.BBUpper.Key:
		if price, ok := r.float(catalog.Price.Label); ok {
			signal = bbUpperSignal(cur, price)
		}
	default:
		return v
	}
	return withSignal(v, signal)
}

func withSignal(v interface{}, s models.Signal) string {
	return display(v) + " " + string(s)
}

func display(v interface{}) string {
	if n, ok := v.(float64); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
