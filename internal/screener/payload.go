package screener

import (
	"encoding/json"

	"FinScreen/internal/domain/models"
)

// Sort orders the server-side result set.
type Sort struct {
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Payload is the scan request body. Misc entries are merged at the top level
// and win over the named fields.
type Payload struct {
	Filter  []models.WireFilter
	Options map[string]interface{}
	Symbols interface{}
	Sort    *Sort
	Range   [2]int
	Columns []string
	Markets []string
	Misc    map[string]interface{}
}

func (p *Payload) MarshalJSON() ([]byte, error) {
	filter := p.Filter
	if filter == nil {
		filter = []models.WireFilter{}
	}
	columns := p.Columns
	if columns == nil {
		columns = []string{}
	}
	body := map[string]interface{}{
		"filter":  filter,
		"options": p.Options,
		"symbols": p.Symbols,
		"sort":    p.Sort,
		"range":   p.Range,
		"columns": columns,
	}
	if len(p.Markets) > 0 {
		body["markets"] = p.Markets
	}
	for k, v := range p.Misc {
		body[k] = v
	}
	return json.Marshal(body)
}

// Encode renders the body the way it is sent: indented with four spaces.
func (p *Payload) Encode() ([]byte, error) {
	return json.MarshalIndent(p, "", "    ")
}

func defaultSymbols() map[string]interface{} {
	return map[string]interface{}{
		"query":   map[string]interface{}{"types": []string{}},
		"tickers": []string{},
	}
}
