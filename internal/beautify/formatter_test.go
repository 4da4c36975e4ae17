package beautify

import (
	"bytes"
	"math"
	"testing"

	"FinScreen/internal/catalog"
	"FinScreen/internal/domain/models"
	"FinScreen/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMillify(t *testing.T) {
	for in, want := range map[float64]string{
		0:              "0.000",
		999:            "999.000",
		1_000:          "1.000K",
		-1_500:         "-1.500K",
		1_000_000:      "1.000M",
		1_234_567:      "1.235M",
		10_000_000:     "10.000M",
		1_000_000_000:  "1.000B",
		-2_500_000_000: "-2.500B",
		3e12:           "3.000T",
		4e15:           "4000.000T",
		0.25:           "0.250",
	} {
		assert.Equal(t, want, Millify(in), "%v", in)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.46, Round2(10.456))
	assert.Equal(t, -1.24, Round2(-1.235))
	assert.True(t, math.IsNaN(Round2(math.NaN())))
}

func TestSignalRules(t *testing.T) {
	assert.Equal(t, models.SignalBuy, adxSignal(25, 30, 20, 15, 22))
	assert.Equal(t, models.SignalSell, adxSignal(25, 20, 30, 22, 15))
	assert.Equal(t, models.SignalNeutral, adxSignal(20, 30, 20, 15, 22), "ADX must exceed 20")
	assert.Equal(t, models.SignalNeutral, adxSignal(40, 30, 20, 31, 19), "no crossover")

	assert.Equal(t, models.SignalBuy, aoSignal(1, -1))
	assert.Equal(t, models.SignalSell, aoSignal(-1, 1))
	assert.Equal(t, models.SignalNeutral, aoSignal(1, 1))
	assert.Equal(t, models.SignalNeutral, aoSignal(0, -1))

	assert.Equal(t, models.SignalBuy, bbLowerSignal(11, 10))
	assert.Equal(t, models.SignalNeutral, bbLowerSignal(9, 10))
	assert.Equal(t, models.SignalSell, bbUpperSignal(9, 10))
	assert.Equal(t, models.SignalNeutral, bbUpperSignal(11, 10))
}

func stockTable() *models.ResultTable {
	fields := []models.Field{
		catalog.Name, catalog.Price, catalog.Change, catalog.Volume, catalog.TechnicalRating,
	}
	cols := []models.Column{{Key: models.SymbolKey, Label: models.SymbolLabel}}
	for _, f := range fields {
		cols = append(cols, models.Column{Key: f.Key, Label: f.Label})
	}
	ema, _ := catalog.Stock.FindByKey("EMA10")
	fractional, _ := catalog.Stock.FindByKey("fractional")
	cols = append(cols,
		models.Column{Key: fractional.Key, Label: fractional.Label},
		models.Column{Key: ema.Key, Label: ema.Label},
		models.Column{Key: ema.RecKey(models.IntervalOneDay), Label: ema.RecLabel()},
		models.Column{Key: "ADX", Label: catalog.ADX.Label},
		models.Column{Key: "ADX+DI", Label: catalog.ADXPlusDI.Label},
		models.Column{Key: "ADX-DI", Label: catalog.ADXMinusDI.Label},
		models.Column{Key: "ADX+DI[1]", Label: catalog.ADXPlusDI.HistoricalLabel()},
		models.Column{Key: "ADX-DI[1]", Label: catalog.ADXMinusDI.HistoricalLabel()},
		models.Column{Key: "AO", Label: catalog.AO.Label},
		models.Column{Key: "AO[1]", Label: catalog.AO.HistoricalLabel()},
		models.Column{Key: "BB.lower", Label: catalog.BBLower.Label},
		models.Column{Key: "BB.upper", Label: catalog.BBUpper.Label},
		models.Column{Key: "market_cap_basic", Label: catalog.MarketCap.Label},
		models.Column{Key: "currency", Label: catalog.Currency.Label},
		models.Column{Key: "description", Label: catalog.Description.Label},
	)
	rows := [][]interface{}{
		{"NASDAQ:AAPL", "AAPL", 10.456, 1.2345, 1_500_000.0, 0.5, "true", 9.8, 1.0,
			25.0, 30.0, 20.0, 15.0, 22.0, 1.5, -0.5, 11.0, 10.0, 2_500_000_000.0, "USD", nil},
		{"NYSE:IBM", "IBM", nil, nil, nil, nil, "false", 9.8, -1.0,
			15.0, 30.0, 20.0, 15.0, 22.0, -1.0, 2.0, 5.0, 5.0, nil, "USD", "International Business Machines"},
	}
	return models.NewResultTable(cols, rows, models.IntervalOneDay)
}

func TestApplyFormatsByTag(t *testing.T) {
	table := stockTable()
	New(catalog.Stock, nil).Apply(table)

	rec := table.Records()
	first, second := rec[0], rec[1]

	assert.Equal(t, "NASDAQ:AAPL", first["Symbol"])
	assert.Equal(t, "AAPL", first["Name"])
	assert.Equal(t, 10.46, first["Price"])
	assert.Equal(t, "1.23%", first["Change %"])
	assert.Equal(t, "1.500M", first["Volume"])
	assert.Equal(t, "Strong Buy", first["Technical Rating"])
	assert.Equal(t, true, first["Fractional"])
	assert.Equal(t, "9.8 B", first["Exponential Moving Average (10)"])
	assert.Equal(t, 1.0, first["Reco. Exponential Moving Average (10)"], "companions are left raw")
	assert.Equal(t, "25 B", first[catalog.ADX.Label])
	assert.Equal(t, "1.5 B", first[catalog.AO.Label])
	assert.Equal(t, "11 B", first[catalog.BBLower.Label])
	assert.Equal(t, "10 S", first[catalog.BBUpper.Label])
	assert.Equal(t, 30.0, first[catalog.ADXPlusDI.Label])
	assert.Equal(t, "2.500B USD", first[catalog.MarketCap.Label])
	assert.Nil(t, first["Description"])

	assert.Nil(t, second["Price"])
	assert.Nil(t, second["Change %"])
	assert.Equal(t, "0.000", second["Volume"])
	assert.Equal(t, "Unknown", second["Technical Rating"])
	assert.Equal(t, false, second["Fractional"])
	assert.Equal(t, "9.8 S", second["Exponential Moving Average (10)"])
	assert.Equal(t, "15 N", second[catalog.ADX.Label])
	assert.Equal(t, "-1 S", second[catalog.AO.Label])
	assert.Equal(t, "5 N", second[catalog.BBLower.Label], "missing price gives no signal")
	assert.Nil(t, second[catalog.MarketCap.Label])
	assert.Equal(t, "International Business Machines", second["Description"])
}

func TestApplyIgnoresHeaderMode(t *testing.T) {
	labelled := stockTable()
	technical := stockTable()
	technical.SetTechnicalColumns(true)

	New(catalog.Stock, nil).Apply(labelled)
	New(catalog.Stock, nil).Apply(technical)

	assert.Equal(t, labelled.Rows, technical.Rows)
	assert.Equal(t, models.HeaderTechnicalOnly, technical.Mode())
}

func TestUnknownFormatIsLoggedAndSkipped(t *testing.T) {
	c := models.MustCatalog("custom",
		models.Field{Label: "Spark", Key: "spark", Format: "sparkline"},
		models.Field{Label: "Pct", Key: "pct", Format: models.FormatPercent},
	)
	table := models.NewResultTable(
		[]models.Column{{Key: "symbol", Label: "Symbol"}, {Key: "spark", Label: "Spark"}, {Key: "pct", Label: "Pct"}},
		[][]interface{}{{"X:Y", 1.0, 2.5}},
		models.IntervalOneDay,
	)

	var buf bytes.Buffer
	Beautify(table, c, logger.NewWriter(&buf, zerolog.WarnLevel))

	require.Len(t, table.Rows, 1)
	assert.Equal(t, 1.0, table.Rows[0][1])
	assert.Equal(t, "2.50%", table.Rows[0][2])
	assert.Contains(t, buf.String(), "unknown format tag")
	assert.Contains(t, buf.String(), "sparkline")
}
