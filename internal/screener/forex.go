package screener

import (
	"FinScreen/internal/catalog"
	"FinScreen/internal/domain/models"
)

// ForexScreener scans currency pairs.
type ForexScreener struct {
	*Screener
}

func NewForexScreener(opts ...Option) *ForexScreener {
	s := &ForexScreener{Screener: newScreener(models.ScreenerForex, "forex", catalog.Forex, opts...)}
	s.markets = []models.Market{models.MarketForex}
	s.SortBy(catalog.Name, true)
	s.AddMisc("symbols", map[string]interface{}{
		"query": map[string]interface{}{"types": []string{"forex"}},
	})
	return s
}

func (s *ForexScreener) SetRegions(regions ...models.Region) error {
	values, err := enumValues("region", regions)
	if err != nil {
		return err
	}
	return s.filters.Add(catalog.Region, models.OpInRange, values...)
}
