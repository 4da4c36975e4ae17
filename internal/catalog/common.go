// Package catalog holds the static field tables of the stock, forex and crypto screeners.
package catalog

import (
	"fmt"

	"FinScreen/internal/domain/models"
)

type f = models.Field

const (
	none     = models.FormatNone
	boolean  = models.FormatBool
	rating   = models.FormatRating
	percent  = models.FormatPercent
	round    = models.FormatRound
	currency = models.FormatCurrency
	group    = models.FormatNumberGroup
	rec      = models.FormatRecommendation
	computed = models.FormatComputedRecommendation
	text     = models.FormatText
	date     = models.FormatDate
	missing  = models.FormatMissing
	float    = models.FormatFloat
)

// Fields referenced by screener defaults, convenience filters and the formatter.
var (
	Name        = f{Label: "Name", Key: "name", Format: text}
	Description = f{Label: "Description", Key: "description", Format: text}
	Currency    = f{Label: "Currency", Key: "currency", Format: text}
	Price       = f{Label: "Price", Key: "close", Format: round, Interval: true}
	Change      = f{Label: "Change %", Key: "change", Format: percent, Interval: true}
	Volume      = f{Label: "Volume", Key: "volume", Format: group, Interval: true}
	Type        = f{Label: "Type", Key: "type", Format: text}
	Subtype     = f{Label: "Subtype", Key: "subtype", Format: text}
	Exchange    = f{Label: "Exchange", Key: "exchange", Format: text}

	ADX        = f{Label: "Average Directional Index (14)", Key: "ADX", Format: computed, Interval: true}
	ADXPlusDI  = f{Label: "Positive Directional Indicator (14)", Key: "ADX+DI", Format: round, Interval: true, Historical: true}
	ADXMinusDI = f{Label: "Negative Directional Indicator (14)", Key: "ADX-DI", Format: round, Interval: true, Historical: true}
	AO         = f{Label: "Awesome Oscillator", Key: "AO", Format: computed, Interval: true, Historical: true}
	BBLower    = f{Label: "Bollinger Lower Band (20)", Key: "BB.lower", Format: computed, Interval: true}
	BBUpper    = f{Label: "Bollinger Upper Band (20)", Key: "BB.upper", Format: computed, Interval: true}
	BBPower    = f{Label: "Bull Bear Power", Key: "BBPower", Format: rec, Interval: true}

	TechnicalRating = f{Label: "Technical Rating", Key: "Recommend.All", Format: rating, Interval: true}
	MARating        = f{Label: "Moving Averages Rating", Key: "Recommend.MA", Format: rating, Interval: true}
	OscRating       = f{Label: "Oscillators Rating", Key: "Recommend.Other", Format: rating, Interval: true}
)

// technical returns the indicator block shared by every screener.
func technical() []models.Field {
	return []models.Field{
		{Label: "All Time High", Key: "High.All", Format: round},
		{Label: "All Time Low", Key: "Low.All", Format: round},
		{Label: "All Time Performance", Key: "Perf.All", Format: percent},
		{Label: "Aroon Down (14)", Key: "Aroon.Down", Format: round, Interval: true},
		{Label: "Aroon Up (14)", Key: "Aroon.Up", Format: round, Interval: true},
		{Label: "Average Day Range (14)", Key: "ADR", Format: round, Interval: true},
		ADX,
		{Label: "Average True Range (14)", Key: "ATR", Format: round, Interval: true},
		AO,
		BBLower,
		BBUpper,
		BBPower,
		Change,
		{Label: "Change 1W, %", Key: "change.1W", Format: percent},
		{Label: "Change 15m, %", Key: "change.15", Format: percent},
		{Label: "Change from Open %", Key: "change_from_open", Format: percent, Interval: true},
		{Label: "Commodity Channel Index (20)", Key: "CCI20", Format: round, Interval: true, Historical: true},
		Currency,
		Description,
		{Label: "Donchian Channels Lower Band (20)", Key: "DonchCh20.Lower", Format: round, Interval: true},
		{Label: "Donchian Channels Upper Band (20)", Key: "DonchCh20.Upper", Format: round, Interval: true},
		{Label: "Exponential Moving Average (10)", Key: "EMA10", Format: rec, Interval: true},
		{Label: "Exponential Moving Average (20)", Key: "EMA20", Format: rec, Interval: true},
		{Label: "Exponential Moving Average (50)", Key: "EMA50", Format: rec, Interval: true},
		{Label: "Exponential Moving Average (100)", Key: "EMA100", Format: rec, Interval: true},
		{Label: "Exponential Moving Average (200)", Key: "EMA200", Format: rec, Interval: true},
		{Label: "Fractional", Key: "fractional", Format: boolean},
		{Label: "Fundamental Currency Code", Key: "fundamental_currency_code", Format: missing},
		{Label: "Gap %", Key: "gap", Format: percent, Interval: true},
		{Label: "High", Key: "high", Format: round, Interval: true},
		{Label: "Hull Moving Average (9)", Key: "HullMA9", Format: rec, Interval: true},
		{Label: "Ichimoku Base Line (9, 26, 52, 26)", Key: "Ichimoku.BLine", Format: round, Interval: true},
		{Label: "Keltner Channels Lower Band (20)", Key: "KltChnl.lower", Format: round, Interval: true},
		{Label: "Keltner Channels Upper Band (20)", Key: "KltChnl.upper", Format: round, Interval: true},
		{Label: "Low", Key: "low", Format: round, Interval: true},
		{Label: "MACD Level (12, 26)", Key: "MACD.macd", Format: round, Interval: true},
		{Label: "MACD Signal (12, 26)", Key: "MACD.signal", Format: round, Interval: true},
		{Label: "Min Move", Key: "minmov", Format: float},
		{Label: "Momentum (10)", Key: "Mom", Format: round, Interval: true, Historical: true},
		{Label: "Monthly Performance", Key: "Perf.1M", Format: percent},
		MARating,
		Name,
		ADXMinusDI,
		{Label: "Open", Key: "open", Format: round, Interval: true},
		OscRating,
		{Label: "Parabolic SAR", Key: "P.SAR", Format: round, Interval: true},
		{Label: "Pattern", Key: "candlestick", Interval: true},
		{Label: "Doji", Key: "Candle.Doji", Interval: true},
		{Label: "Engulfing Bullish", Key: "Candle.Engulfing.Bullish", Interval: true},
		{Label: "Hammer", Key: "Candle.Hammer", Interval: true},
		{Label: "Pivot Classic P", Key: "Pivot.M.Classic.Middle", Format: round, Interval: true},
		{Label: "Pivot Classic R1", Key: "Pivot.M.Classic.R1", Format: round, Interval: true},
		{Label: "Pivot Classic S1", Key: "Pivot.M.Classic.S1", Format: round, Interval: true},
		ADXPlusDI,
		Price,
		{Label: "Price Scale", Key: "pricescale", Format: float},
		{Label: "Rate Of Change (9)", Key: "ROC", Format: round, Interval: true},
		{Label: "Relative Strength Index (14)", Key: "RSI", Format: round, Interval: true, Historical: true},
		{Label: "Relative Strength Index (7)", Key: "RSI7", Format: round, Interval: true},
		{Label: "Simple Moving Average (10)", Key: "SMA10", Format: rec, Interval: true},
		{Label: "Simple Moving Average (20)", Key: "SMA20", Format: rec, Interval: true},
		{Label: "Simple Moving Average (50)", Key: "SMA50", Format: rec, Interval: true},
		{Label: "Simple Moving Average (100)", Key: "SMA100", Format: rec, Interval: true},
		{Label: "Simple Moving Average (200)", Key: "SMA200", Format: rec, Interval: true},
		{Label: "Stochastic %D (14, 3, 3)", Key: "Stoch.D", Format: round, Interval: true, Historical: true},
		{Label: "Stochastic %K (14, 3, 3)", Key: "Stoch.K", Format: round, Interval: true, Historical: true},
		{Label: "Stochastic RSI Fast (3, 3, 14, 14)", Key: "Stoch.RSI.K", Format: round, Interval: true},
		{Label: "Stochastic RSI Slow (3, 3, 14, 14)", Key: "Stoch.RSI.D", Format: round, Interval: true},
		TechnicalRating,
		{Label: "Ultimate Oscillator (7, 14, 28)", Key: "UO", Format: rec, Interval: true},
		{Label: "Volatility", Key: "Volatility.D", Format: percent},
		{Label: "Volatility Week", Key: "Volatility.W", Format: percent},
		{Label: "Volatility Month", Key: "Volatility.M", Format: percent},
		Volume,
		{Label: "Volume Weighted Average Price", Key: "VWAP", Format: round, Interval: true},
		{Label: "Volume Weighted Moving Average (20)", Key: "VWMA", Format: rec, Interval: true},
		{Label: "Weekly Performance", Key: "Perf.W", Format: percent},
		{Label: "52 Week High", Key: "price_52_week_high", Format: round},
		{Label: "52 Week Low", Key: "price_52_week_low", Format: round},
		{Label: "Williams Percent Range (14)", Key: "W.R", Format: round, Interval: true},
		{Label: "Yearly Performance", Key: "Perf.Y", Format: percent},
		{Label: "YTD Performance", Key: "Perf.YTD", Format: percent},
	}
}

// ForKind returns the catalog of a screener variant.
func ForKind(kind models.ScreenerKind) (*models.Catalog, error) {
	switch kind {
	case models.ScreenerStock:
		return Stock, nil
	case models.ScreenerForex:
		return Forex, nil
	case models.ScreenerCrypto:
		return Crypto, nil
	default:
		return nil, fmt.Errorf("unknown screener %q", kind)
	}
}

func merge(blocks ...[]models.Field) []models.Field {
	var out []models.Field
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}
