package screener

import (
	"FinScreen/internal/catalog"
	"FinScreen/internal/domain/models"
)

// StockScreener scans equities on the global endpoint.
type StockScreener struct {
	*Screener
}

func NewStockScreener(opts ...Option) *StockScreener {
	s := &StockScreener{Screener: newScreener(models.ScreenerStock, "global", catalog.Stock, opts...)}
	s.markets = []models.Market{models.DefaultMarket}
	s.SortBy(catalog.MarketCap, false)
	return s
}

// SetMarkets replaces the market scope. ALL expands to every stock market.
func (s *StockScreener) SetMarkets(markets ...models.Market) error {
	if len(markets) == 0 {
		return newValidationError("market", markets, "at least one market is required")
	}
	for _, m := range markets {
		if !m.Valid() || m == models.MarketForex || m == models.MarketCrypto {
			return newValidationError("market", m, "not a stock market")
		}
	}
	s.markets = models.MarketValues(markets...)
	return nil
}

func (s *StockScreener) Markets() []models.Market {
	out := make([]models.Market, len(s.markets))
	copy(out, s.markets)
	return out
}

// SetSymbolTypes adds the broad type and subtype filters for each symbol type.
// Common stock also selects depository receipts unless they were given.
func (s *StockScreener) SetSymbolTypes(types ...models.SymbolType) error {
	if len(types) == 0 {
		return newValidationError("symbol type", types, "at least one symbol type is required")
	}
	selected := make(map[models.SymbolType]bool, len(types))
	for _, t := range types {
		if !t.Valid() {
			return newValidationError("symbol type", t, "unknown symbol type")
		}
		selected[t] = true
	}

	for _, t := range models.TypedSymbolTypes {
		if !selected[t] {
			continue
		}
		if asset, ok := t.AssetType(); ok {
			if err := s.filters.Add(catalog.Type, models.OpEqual, string(asset)); err != nil {
				return err
			}
		}
	}

	subtypes := append([]models.SymbolType(nil), types...)
	if selected[models.SymbolCommonStock] && !selected[models.SymbolDepositoryReceipt] {
		subtypes = append(subtypes, models.SymbolDepositoryReceipt)
	}
	for _, t := range subtypes {
		if err := s.filters.Add(catalog.Subtype, models.OpInRange, t.Values()); err != nil {
			return err
		}
	}
	return nil
}

func (s *StockScreener) SetCountries(countries ...models.Country) error {
	values, err := enumValues("country", countries)
	if err != nil {
		return err
	}
	return s.filters.Add(catalog.Country, models.OpInRange, values...)
}

func (s *StockScreener) SetExchanges(exchanges ...models.Exchange) error {
	values, err := enumValues("exchange", exchanges)
	if err != nil {
		return err
	}
	return s.filters.Add(catalog.Exchange, models.OpInRange, values...)
}

func (s *StockScreener) SetSubMarkets(subMarkets ...models.SubMarket) error {
	values, err := enumValues("submarket", subMarkets)
	if err != nil {
		return err
	}
	return s.filters.Add(catalog.Submarket, models.OpInRange, values...)
}

func (s *StockScreener) SetSectors(sectors ...models.Sector) error {
	values, err := enumValues("sector", sectors)
	if err != nil {
		return err
	}
	return s.filters.Add(catalog.Sector, models.OpInRange, values...)
}

type enum interface {
	~string
	Valid() bool
}

// enumValues validates every value and returns them as wire strings.
func enumValues[T enum](kind string, in []T) ([]interface{}, error) {
	if len(in) == 0 {
		return nil, newValidationError(kind, in, "at least one value is required")
	}
	out := make([]interface{}, 0, len(in))
	for _, v := range in {
		if !v.Valid() {
			return nil, newValidationError(kind, v, "unknown %s", kind)
		}
		out = append(out, string(v))
	}
	return out, nil
}
