package catalog

import (
	"testing"

	"FinScreen/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogsResolveSharedFields(t *testing.T) {
	for _, kind := range []models.ScreenerKind{models.ScreenerStock, models.ScreenerForex, models.ScreenerCrypto} {
		t.Run(string(kind), func(t *testing.T) {
			c, err := ForKind(kind)
			require.NoError(t, err)
			assert.Equal(t, string(kind), c.Name())

			for _, want := range []models.Field{Name, Description, Price, Currency, ADX, ADXMinusDI, ADXPlusDI, AO, BBLower, BBUpper} {
				got, ok := c.FindByLabel(want.Label)
				require.True(t, ok, want.Label)
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestForKindRejectsUnknown(t *testing.T) {
	_, err := ForKind("bonds")
	assert.Error(t, err)
}

func TestStockSpecificFields(t *testing.T) {
	got, ok := Stock.FindByKey("market_cap_basic")
	require.True(t, ok)
	assert.Equal(t, MarketCap, got)

	_, ok = Forex.FindByKey("market_cap_basic")
	assert.False(t, ok)

	v, ok := Crypto.FindByLabel("Volume 24h in USD")
	require.True(t, ok)
	assert.Equal(t, "24h_vol|5", v.Key)
}

func TestComputedRecommendationInputsAreHistorical(t *testing.T) {
	for _, fld := range []models.Field{ADXPlusDI, ADXMinusDI, AO} {
		assert.True(t, fld.Historical, fld.Key)
		assert.True(t, fld.Interval, fld.Key)
	}
	assert.Equal(t, "ADX-DI[1]|1W", ADXMinusDI.HistoricalKey(models.IntervalOneWeek, 1))
	assert.Equal(t, "ADX-DI[2]", ADXMinusDI.HistoricalKey(models.IntervalOneDay, 2))
}

func TestNewCatalogRejectsDuplicateLabels(t *testing.T) {
	_, err := models.NewCatalog("dup", Name, models.Field{Label: "Name", Key: "other"})
	assert.Error(t, err)
}
