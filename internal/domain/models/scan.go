package models

import "time"

// ScreenerKind names a screener variant.
type ScreenerKind string

const (
	ScreenerStock  ScreenerKind = "stock"
	ScreenerForex  ScreenerKind = "forex"
	ScreenerCrypto ScreenerKind = "crypto"
)

func (k ScreenerKind) Valid() bool {
	return k == ScreenerStock || k == ScreenerForex || k == ScreenerCrypto
}

// Requests for scan HTTP endpoints and the Kafka request topic.

type ScanRequest struct {
	Screener          string       `json:"screener" default:"stock" validate:"oneof=stock forex crypto"`
	Interval          string       `json:"interval" default:"1D" validate:"oneof=1 5 15 30 60 120 240 1D 1W"`
	Markets           []string     `json:"markets,omitempty"`
	SymbolTypes       []string     `json:"symbol_types,omitempty"`
	Countries         []string     `json:"countries,omitempty"`
	Exchanges         []string     `json:"exchanges,omitempty"`
	SubMarkets        []string     `json:"submarkets,omitempty"`
	Sectors           []string     `json:"sectors,omitempty"`
	Regions           []string     `json:"regions,omitempty"`
	Primary           bool         `json:"primary,omitempty"`
	CurrentTradingDay bool         `json:"current_trading_day,omitempty"`
	Search            string       `json:"search,omitempty" validate:"max=128"`
	Filters           []FilterSpec `json:"filters,omitempty" validate:"dive"`
	SortBy            string       `json:"sort_by,omitempty"`
	SortOrder         string       `json:"sort_order,omitempty" validate:"omitempty,oneof=asc desc"`
	RangeFrom         int          `json:"range_from" default:"0" validate:"gte=0"`
	RangeTo           int          `json:"range_to" default:"150" validate:"gtfield=RangeFrom,lte=5000"`
	Beautify          bool         `json:"beautify,omitempty"`
	Technical         bool         `json:"technical,omitempty"`
}

// FilterSpec is a generic predicate; Field is a catalog label or wire key.
type FilterSpec struct {
	Field    string `json:"field" validate:"required"`
	Operator string `json:"operator" validate:"required,oneof=less eless greater egreater crosses crosses_above crosses_below in_range not_in_range equal nequal match"`
	Values   []any  `json:"values" validate:"required,min=1"`
}

type PresetRequest struct {
	Name        string      `param:"name" json:"-" validate:"required,max=64,slug"`
	Description string      `json:"description,omitempty" validate:"max=256"`
	Scan        ScanRequest `json:"scan"`
}

type PresetNameRequest struct {
	Name string `param:"name" validate:"required,max=64,slug"`
}

type ScanIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

type CatalogRequest struct {
	Screener string `param:"screener" validate:"oneof=stock forex crypto"`
}

// Preset is a saved, named scan.
type Preset struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Scan        ScanRequest `json:"scan"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ScanResult is a completed scan as returned, stored and published.
type ScanResult struct {
	ID        string       `json:"id"`
	Screener  ScreenerKind `json:"screener"`
	Interval  TimeInterval `json:"interval"`
	Preset    string       `json:"preset,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	Duration  string       `json:"duration"`
	Headers   []string     `json:"headers"`
	Table     *ResultTable `json:"table"`
}

// Summary drops the table.
func (r *ScanResult) Summary() ScanSummary {
	rows := 0
	if r.Table != nil {
		rows = r.Table.Len()
	}
	return ScanSummary{
		ID:        r.ID,
		Screener:  r.Screener,
		Interval:  r.Interval,
		Preset:    r.Preset,
		CreatedAt: r.CreatedAt,
		Rows:      rows,
	}
}

// ScanSummary is one entry of the scan history listing.
type ScanSummary struct {
	ID        string       `json:"id"`
	Screener  ScreenerKind `json:"screener"`
	Interval  TimeInterval `json:"interval"`
	Preset    string       `json:"preset,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	Rows      int          `json:"rows"`
}

type ScanListRequest struct {
	Since string `query:"since"`
	Limit string `query:"limit"`
}
