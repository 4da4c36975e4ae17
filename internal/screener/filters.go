package screener

import (
	"fmt"
	"reflect"

	"FinScreen/internal/domain/models"
)

// FilterSet holds at most one predicate per field, in insertion order.
type FilterSet struct {
	byName map[string]*models.FilterPredicate
	order  []string
}

func NewFilterSet() *FilterSet {
	return &FilterSet{byName: make(map[string]*models.FilterPredicate)}
}

// Add merges a predicate into the set.
//
// A new field gets its own predicate; a single value with OpInRange is stored as OpEqual.
// For an existing field, values that are already present make the call a no-op.
// Otherwise the values are appended and the operator becomes OpInRange.
func (s *FilterSet) Add(field models.FilterField, op models.FilterOperator, values ...interface{}) error {
	if field == nil || field.FilterName() == "" {
		return newValidationError("filter field", field, "field is required")
	}
	if !op.Valid() {
		return newValidationError("filter operator", op, "unknown operator")
	}
	values = flattenValues(values)
	if len(values) == 0 {
		return newValidationError("filter values", field.FilterName(), "at least one value is required")
	}

	name := field.FilterName()
	if existing, ok := s.byName[name]; ok {
		if !isSubset(values, existing.Values) {
			existing.Operator = models.OpInRange
			existing.Values = append(existing.Values, values...)
		}
		return nil
	}

	if len(values) == 1 && op == models.OpInRange {
		op = models.OpEqual
	}
	s.byName[name] = &models.FilterPredicate{Field: field, Operator: op, Values: values}
	s.order = append(s.order, name)
	return nil
}

// Remove drops the predicate for field. Unknown fields are ignored.
func (s *FilterSet) Remove(field models.FilterField) {
	name := field.FilterName()
	if _, ok := s.byName[name]; !ok {
		return
	}
	delete(s.byName, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Get returns a copy of the predicate for field.
func (s *FilterSet) Get(field models.FilterField) (models.FilterPredicate, bool) {
	p, ok := s.byName[field.FilterName()]
	if !ok {
		return models.FilterPredicate{}, false
	}
	return clonePredicate(p), true
}

func (s *FilterSet) Len() int { return len(s.order) }

// Predicates returns copies in insertion order.
func (s *FilterSet) Predicates() []models.FilterPredicate {
	out := make([]models.FilterPredicate, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, clonePredicate(s.byName[name]))
	}
	return out
}

// Wire serializes the set. The result is never nil.
func (s *FilterSet) Wire() []models.WireFilter {
	out := make([]models.WireFilter, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name].Wire())
	}
	return out
}

func clonePredicate(p *models.FilterPredicate) models.FilterPredicate {
	vals := make([]interface{}, len(p.Values))
	copy(vals, p.Values)
	return models.FilterPredicate{Field: p.Field, Operator: p.Operator, Values: vals}
}

// flattenValues expands a lone slice or array argument so Add(f, op, []string{"a", "b"}) and
// Add(f, op, "a", "b") are equivalent. Typed enum slices such as []models.Country flatten too.
func flattenValues(values []interface{}) []interface{} {
	if len(values) != 1 || values[0] == nil {
		return values
	}
	rv := reflect.ValueOf(values[0])
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return values
		}
		out := make([]interface{}, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return values
}

func isSubset(values, of []interface{}) bool {
	have := make(map[string]struct{}, len(of))
	for _, v := range of {
		have[valueKey(v)] = struct{}{}
	}
	for _, v := range values {
		if _, ok := have[valueKey(v)]; !ok {
			return false
		}
	}
	return true
}

// valueKey compares named string and bool types by their underlying value, so
// models.Country("Canada") and "Canada" are the same filter value.
func valueKey(v interface{}) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return "string:" + rv.String()
	case reflect.Bool:
		return fmt.Sprintf("bool:%t", rv.Bool())
	}
	return fmt.Sprintf("%T:%v", v, v)
}
