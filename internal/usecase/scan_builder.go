package usecase

import (
	"fmt"
	"strings"

	"FinScreen/internal/domain/models"
	"FinScreen/internal/screener"
)

// scanPlan is a configured screener ready to run.
type scanPlan struct {
	sc       *screener.Screener
	interval models.TimeInterval
}

// buildScreener turns a request into a configured screener without touching the network.
// Every rejection is a *screener.ValidationError.
func buildScreener(req *models.ScanRequest, opts ...screener.Option) (*scanPlan, error) {
	kind := models.ScreenerKind(req.Screener)
	if kind == "" {
		kind = models.ScreenerStock
	}
	interval, err := models.ParseTimeInterval(req.Interval)
	if err != nil {
		return nil, invalid("interval", req.Interval, err)
	}

	var sc *screener.Screener
	switch kind {
	case models.ScreenerStock:
		stock := screener.NewStockScreener(opts...)
		if err := applyStock(stock, req); err != nil {
			return nil, err
		}
		sc = stock.Screener
	case models.ScreenerForex:
		if err := rejectStockOnly(req); err != nil {
			return nil, err
		}
		forex := screener.NewForexScreener(opts...)
		if len(req.Regions) > 0 {
			regions, err := parseAll("regions", req.Regions, models.ParseRegion)
			if err != nil {
				return nil, err
			}
			if err := forex.SetRegions(regions...); err != nil {
				return nil, err
			}
		}
		sc = forex.Screener
	case models.ScreenerCrypto:
		if err := rejectStockOnly(req); err != nil {
			return nil, err
		}
		if len(req.Regions) > 0 {
			return nil, &screener.ValidationError{Field: "regions", Value: req.Regions, Message: "only supported by the forex screener"}
		}
		sc = screener.NewCryptoScreener(opts...).Screener
	default:
		return nil, &screener.ValidationError{Field: "screener", Value: req.Screener, Message: "must be one of stock, forex, crypto"}
	}

	if err := applyCommon(sc, req); err != nil {
		return nil, err
	}
	return &scanPlan{sc: sc, interval: interval}, nil
}

func applyStock(s *screener.StockScreener, req *models.ScanRequest) error {
	if len(req.Regions) > 0 {
		return &screener.ValidationError{Field: "regions", Value: req.Regions, Message: "only supported by the forex screener"}
	}
	if len(req.Markets) > 0 {
		markets, err := parseAll("markets", req.Markets, models.ParseMarket)
		if err != nil {
			return err
		}
		if err := s.SetMarkets(markets...); err != nil {
			return err
		}
	}
	if len(req.SymbolTypes) > 0 {
		types, err := parseAll("symbol_types", req.SymbolTypes, models.ParseSymbolType)
		if err != nil {
			return err
		}
		if err := s.SetSymbolTypes(types...); err != nil {
			return err
		}
	}
	if len(req.Countries) > 0 {
		countries, err := parseAll("countries", req.Countries, models.ParseCountry)
		if err != nil {
			return err
		}
		if err := s.SetCountries(countries...); err != nil {
			return err
		}
	}
	if len(req.Exchanges) > 0 {
		exchanges, err := parseAll("exchanges", req.Exchanges, models.ParseExchange)
		if err != nil {
			return err
		}
		if err := s.SetExchanges(exchanges...); err != nil {
			return err
		}
	}
	if len(req.SubMarkets) > 0 {
		subs, err := parseAll("submarkets", req.SubMarkets, models.ParseSubMarket)
		if err != nil {
			return err
		}
		if err := s.SetSubMarkets(subs...); err != nil {
			return err
		}
	}
	if len(req.Sectors) > 0 {
		sectors, err := parseAll("sectors", req.Sectors, models.ParseSector)
		if err != nil {
			return err
		}
		if err := s.SetSectors(sectors...); err != nil {
			return err
		}
	}
	return nil
}

func applyCommon(sc *screener.Screener, req *models.ScanRequest) error {
	if req.Primary {
		sc.SetPrimaryListing(true)
	}
	if req.CurrentTradingDay {
		sc.SetCurrentTradingDay(true)
	}
	if strings.TrimSpace(req.Search) != "" {
		if err := sc.Search(req.Search); err != nil {
			return err
		}
	}

	cat := sc.Catalog()
	for i, f := range req.Filters {
		field, ok := cat.Lookup(f.Field)
		if !ok {
			return &screener.ValidationError{
				Field:   fmt.Sprintf("filters[%d].field", i),
				Value:   f.Field,
				Message: fmt.Sprintf("not a %s field", cat.Name()),
			}
		}
		op, err := models.ParseFilterOperator(f.Operator)
		if err != nil {
			return invalid(fmt.Sprintf("filters[%d].operator", i), f.Operator, err)
		}
		if err := sc.AddFilter(field, op, f.Values...); err != nil {
			return err
		}
	}

	if req.SortBy != "" {
		field, ok := cat.Lookup(req.SortBy)
		if !ok {
			return &screener.ValidationError{Field: "sort_by", Value: req.SortBy, Message: fmt.Sprintf("not a %s field", cat.Name())}
		}
		sc.SortBy(field, req.SortOrder == "asc")
	}

	to := req.RangeTo
	if to == 0 {
		to = screener.DefaultMaxRange
	}
	return sc.SetRange(req.RangeFrom, to)
}

func rejectStockOnly(req *models.ScanRequest) error {
	for field, v := range map[string][]string{
		"markets":      req.Markets,
		"symbol_types": req.SymbolTypes,
		"countries":    req.Countries,
		"exchanges":    req.Exchanges,
		"submarkets":   req.SubMarkets,
		"sectors":      req.Sectors,
	} {
		if len(v) > 0 {
			return &screener.ValidationError{Field: field, Value: v, Message: "only supported by the stock screener"}
		}
	}
	return nil
}

func parseAll[T any](field string, in []string, parse func(string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(in))
	for _, s := range in {
		v, err := parse(s)
		if err != nil {
			return nil, invalid(field, s, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func invalid(field string, value interface{}, err error) *screener.ValidationError {
	return &screener.ValidationError{Field: field, Value: value, Message: err.Error()}
}
