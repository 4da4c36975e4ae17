package models

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeInterval is the bar resolution a scan is evaluated on.
type TimeInterval string

const (
	IntervalOneMinute      TimeInterval = "1"
	IntervalFiveMinutes    TimeInterval = "5"
	IntervalFifteenMinutes TimeInterval = "15"
	IntervalThirtyMinutes  TimeInterval = "30"
	IntervalOneHour        TimeInterval = "60"
	IntervalTwoHours       TimeInterval = "120"
	IntervalFourHours      TimeInterval = "240"
	IntervalOneDay         TimeInterval = "1D"
	IntervalOneWeek        TimeInterval = "1W"

	DefaultInterval = IntervalOneDay
)

var timeIntervals = []TimeInterval{
	IntervalOneMinute,
	IntervalFiveMinutes,
	IntervalFifteenMinutes,
	IntervalThirtyMinutes,
	IntervalOneHour,
	IntervalTwoHours,
	IntervalFourHours,
	IntervalOneDay,
	IntervalOneWeek,
}

// TimeIntervals returns every supported interval, shortest first.
func TimeIntervals() []TimeInterval {
	out := make([]TimeInterval, len(timeIntervals))
	copy(out, timeIntervals)
	return out
}

// ParseTimeInterval accepts the wire suffix ("60", "1D", ...). Empty means default.
func ParseTimeInterval(s string) (TimeInterval, error) {
	if s == "" {
		return DefaultInterval, nil
	}
	ti := TimeInterval(s)
	if !ti.Valid() {
		return "", fmt.Errorf("unknown time interval %q", s)
	}
	return ti, nil
}

func (t TimeInterval) Valid() bool {
	for _, v := range timeIntervals {
		if v == t {
			return true
		}
	}
	return false
}

// IsDefault reports whether keys need no interval suffix.
func (t TimeInterval) IsDefault() bool { return t == "" || t == DefaultInterval }

// Suffix is the wire suffix appended after '|'.
func (t TimeInterval) Suffix() string {
	if t == "" {
		return string(DefaultInterval)
	}
	return string(t)
}

// UpdateModeKey is the marker column requested for non-default intervals.
func (t TimeInterval) UpdateModeKey() string { return "update_mode|" + t.Suffix() }

func (t TimeInterval) String() string { return t.Suffix() }

// FormatTag selects the presentation transform applied to a column.
type FormatTag string

const (
	FormatNone                   FormatTag = ""
	FormatBool                   FormatTag = "bool"
	FormatRating                 FormatTag = "rating"
	FormatPercent                FormatTag = "percent"
	FormatRound                  FormatTag = "round"
	FormatCurrency               FormatTag = "currency"
	FormatNumberGroup            FormatTag = "number_group"
	FormatRecommendation         FormatTag = "recommendation"
	FormatComputedRecommendation FormatTag = "computed_recommendation"
	FormatText                   FormatTag = "text"
	FormatDate                   FormatTag = "date"
	FormatMissing                FormatTag = "missing"
	FormatFloat                  FormatTag = "float"
)

// Field is one immutable catalog entry.
type Field struct {
	Label      string    `json:"label"`
	Key        string    `json:"key"`
	Format     FormatTag `json:"format,omitempty"`
	Interval   bool      `json:"interval"`
	Historical bool      `json:"historical"`
}

// NewField is shorthand used by the catalog tables.
func NewField(label, key string, format FormatTag, interval, historical bool) Field {
	return Field{Label: label, Key: key, Format: format, Interval: interval, Historical: historical}
}

// FilterName implements FilterField.
func (f Field) FilterName() string { return f.Key }

// HasRecommendation reports whether the server publishes a Rec. companion.
func (f Field) HasRecommendation() bool { return f.Format == FormatRecommendation }

// KeyFor returns the wire key for the interval.
func (f Field) KeyFor(interval TimeInterval) string {
	if f.Interval && !interval.IsDefault() {
		return AddTimeInterval(f.Key, interval)
	}
	return f.Key
}

// RecKey returns the companion recommendation key, or "" when there is none.
func (f Field) RecKey(interval TimeInterval) string {
	if !f.HasRecommendation() {
		return ""
	}
	return "Rec." + f.KeyFor(interval)
}

// RecLabel returns the companion recommendation label, or "" when there is none.
func (f Field) RecLabel() string {
	if !f.HasRecommendation() {
		return ""
	}
	return "Reco. " + f.Label
}

// HistoricalKey builds "<key>[n]" and appends the interval suffix when it applies.
func (f Field) HistoricalKey(interval TimeInterval, n int) string {
	key := AddHistorical(f.Key, n)
	if f.Interval && !interval.IsDefault() {
		key = AddTimeInterval(key, interval)
	}
	return key
}

// HistoricalLabel returns the display label of the previous-bar companion.
func (f Field) HistoricalLabel() string { return HistoricalLabel(f.Label) }

// AddTimeInterval always appends the interval suffix.
func AddTimeInterval(key string, interval TimeInterval) string {
	return key + "|" + interval.Suffix()
}

// AddHistorical appends a bar offset.
func AddHistorical(key string, n int) string {
	return key + "[" + strconv.Itoa(n) + "]"
}

func HistoricalLabel(label string) string { return "Prev. " + label }

// NormalizeTimedKey rewrites dotted interval keys ("change.1W") into pipe form ("change|1W").
func NormalizeTimedKey(key string) string {
	parts := strings.Split(key, ".")
	if len(parts) < 2 {
		return key
	}
	suffix := parts[1]
	if isDigits(suffix) || suffix == "1W" || suffix == "1M" {
		return strings.ReplaceAll(key, ".", "|")
	}
	return key
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
