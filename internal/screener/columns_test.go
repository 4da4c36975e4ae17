package screener

import (
	"strings"
	"testing"

	"FinScreen/internal/catalog"
	"FinScreen/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanColumnsDefaultInterval(t *testing.T) {
	plan := PlanColumns(catalog.Stock, models.IntervalOneDay)

	label, ok := plan.Label("close")
	require.True(t, ok)
	assert.Equal(t, "Price", label)

	_, ok = plan.Label(models.IntervalOneDay.UpdateModeKey())
	assert.False(t, ok, "default interval has no update mode column")

	label, ok = plan.Label("Rec.EMA10")
	require.True(t, ok)
	assert.Equal(t, "Reco. Exponential Moving Average (10)", label)

	label, ok = plan.Label("ADX-DI[1]")
	require.True(t, ok)
	assert.Equal(t, "Prev. Negative Directional Indicator (14)", label)
}

func TestPlanColumnsNonDefaultInterval(t *testing.T) {
	plan := PlanColumns(catalog.Stock, models.IntervalOneWeek)

	for key, label := range map[string]string{
		"close|1W":         "Price",
		"update_mode|1W":   UpdateModeLabel,
		"Rec.EMA10|1W":     "Reco. Exponential Moving Average (10)",
		"ADX-DI[1]|1W":     "Prev. Negative Directional Indicator (14)",
		"AO[1]|1W":         "Prev. Awesome Oscillator",
		"Perf.W":           "Weekly Performance",
		"market_cap_basic": "Market Capitalization",
	} {
		got, ok := plan.Label(key)
		if assert.True(t, ok, key) {
			assert.Equal(t, label, got, key)
		}
	}

	_, ok := plan.Label("close")
	assert.False(t, ok)
}

func TestPlanColumnsRewritesDottedIntervalKeys(t *testing.T) {
	plan := PlanColumns(catalog.Stock, models.IntervalOneDay)
	keys := strings.Join(plan.Keys(), " ")

	assert.Contains(t, keys, "change|1W")
	assert.Contains(t, keys, "change|15")
	assert.NotContains(t, plan.Keys(), "change.1W")
	assert.Contains(t, plan.Keys(), "Volatility.D")
}

func TestPlanColumnsDropsPatternKeys(t *testing.T) {
	for _, key := range PlanColumns(catalog.Crypto, models.IntervalFourHours).Keys() {
		assert.False(t, strings.HasPrefix(key, "Candle."), key)
		assert.False(t, strings.HasPrefix(key, "candlestick"), key)
	}
}

func TestPlanColumnsKeysAreUnique(t *testing.T) {
	for _, c := range []*models.Catalog{catalog.Stock, catalog.Forex, catalog.Crypto} {
		for _, interval := range models.TimeIntervals() {
			plan := PlanColumns(c, interval)
			seen := make(map[string]bool, plan.Len())
			for _, k := range plan.Keys() {
				assert.False(t, seen[k], "%s %s duplicate %s", c.Name(), interval, k)
				seen[k] = true
			}
			assert.Equal(t, plan.Len(), len(plan.Columns()))
		}
	}
}

func TestFormatHistoricalField(t *testing.T) {
	key, err := FormatHistoricalField(catalog.ADXMinusDI, models.IntervalOneWeek, 1)
	require.NoError(t, err)
	assert.Equal(t, "ADX-DI[1]|1W", key)

	key, err = FormatHistoricalField(catalog.ADXMinusDI, models.IntervalOneDay, 1)
	require.NoError(t, err)
	assert.Equal(t, "ADX-DI[1]", key)

	var verr *ValidationError
	_, err = FormatHistoricalField(catalog.Name, models.IntervalOneDay, 1)
	assert.ErrorAs(t, err, &verr)

	_, err = FormatHistoricalField(catalog.AO, models.IntervalOneDay, 0)
	assert.ErrorAs(t, err, &verr)
}
