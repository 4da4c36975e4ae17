package screener

import (
	"fmt"

	"FinScreen/internal/domain/models"
)

// ScanRow is one instrument of a scan response.
type ScanRow struct {
	Symbol string        `json:"s"`
	Values []interface{} `json:"d"`
}

// ScanResponse is the decoded reply body.
type ScanResponse struct {
	TotalCount int       `json:"totalCount"`
	Data       []ScanRow `json:"data"`
}

// Leading columns of every table, in this order, when planned.
var frontKeys = []string{models.SymbolKey, "name", "description"}

// MapResult binds positional response rows to plan and moves symbol, name and
// description to the front. A row whose width differs from the plan is an error.
func MapResult(resp *ScanResponse, plan *ColumnPlan, interval models.TimeInterval) (*models.ResultTable, error) {
	columns := append([]models.Column{{Key: models.SymbolKey, Label: models.SymbolLabel}}, plan.Columns()...)

	order := frontOrder(columns)
	ordered := make([]models.Column, len(order))
	for i, src := range order {
		ordered[i] = columns[src]
	}

	rows := make([][]interface{}, 0, len(resp.Data))
	for n, d := range resp.Data {
		if len(d.Values) != plan.Len() {
			return nil, fmt.Errorf("row %d (%s): got %d values, planned %d columns", n, d.Symbol, len(d.Values), plan.Len())
		}
		raw := make([]interface{}, 0, len(columns))
		raw = append(raw, d.Symbol)
		raw = append(raw, d.Values...)

		row := make([]interface{}, len(order))
		for i, src := range order {
			row[i] = raw[src]
		}
		rows = append(rows, row)
	}

	if interval == "" {
		interval = models.DefaultInterval
	}
	return models.NewResultTable(ordered, rows, interval), nil
}

// frontOrder returns source positions: front keys first, then the rest unchanged.
// Every position appears exactly once.
func frontOrder(columns []models.Column) []int {
	order := make([]int, 0, len(columns))
	used := make([]bool, len(columns))
	for _, key := range frontKeys {
		for i, c := range columns {
			if c.Key == key && !used[i] {
				order = append(order, i)
				used[i] = true
				break
			}
		}
	}
	for i := range columns {
		if !used[i] {
			order = append(order, i)
		}
	}
	return order
}
