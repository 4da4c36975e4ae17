package models

import "fmt"

// FilterOperator is the comparison code understood by the scanner API.
type FilterOperator string

const (
	OpBelow        FilterOperator = "less"
	OpBelowOrEqual FilterOperator = "eless"
	OpAbove        FilterOperator = "greater"
	OpAboveOrEqual FilterOperator = "egreater"
	OpCrosses      FilterOperator = "crosses"
	OpCrossesUp    FilterOperator = "crosses_above"
	OpCrossesDown  FilterOperator = "crosses_below"
	OpInRange      FilterOperator = "in_range"
	OpNotInRange   FilterOperator = "not_in_range"
	OpEqual        FilterOperator = "equal"
	OpNotEqual     FilterOperator = "nequal"
	OpMatch        FilterOperator = "match"
)

var filterOperators = []FilterOperator{
	OpBelow, OpBelowOrEqual, OpAbove, OpAboveOrEqual,
	OpCrosses, OpCrossesUp, OpCrossesDown,
	OpInRange, OpNotInRange, OpEqual, OpNotEqual, OpMatch,
}

func (o FilterOperator) Valid() bool {
	for _, v := range filterOperators {
		if v == o {
			return true
		}
	}
	return false
}

func ParseFilterOperator(s string) (FilterOperator, error) {
	op := FilterOperator(s)
	if !op.Valid() {
		return "", fmt.Errorf("unknown filter operator %q", s)
	}
	return op, nil
}

// FilterField is anything a predicate can be keyed on: a catalog Field or an ExtraFilter.
type FilterField interface {
	FilterName() string
}

// ExtraFilter is a pseudo-field that exists only on the filter side.
type ExtraFilter string

const (
	FilterCurrentTradingDay ExtraFilter = "active_symbol"
	FilterSearch            ExtraFilter = "name,description"
	FilterPrimary           ExtraFilter = "is_primary"
)

func (e ExtraFilter) FilterName() string { return string(e) }

// FilterPredicate is one (field, operator, values) triple. Values is never empty.
type FilterPredicate struct {
	Field    FilterField
	Operator FilterOperator
	Values   []any
}

// WireFilter is the serialized predicate.
type WireFilter struct {
	Left      string         `json:"left"`
	Operation FilterOperator `json:"operation"`
	Right     any            `json:"right"`
}

// Wire collapses a single value to a scalar.
func (p *FilterPredicate) Wire() WireFilter {
	var right any
	if len(p.Values) == 1 {
		right = p.Values[0]
	} else {
		vals := make([]any, len(p.Values))
		copy(vals, p.Values)
		right = vals
	}
	return WireFilter{Left: p.Field.FilterName(), Operation: p.Operator, Right: right}
}
