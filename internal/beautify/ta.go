package beautify

import "FinScreen/internal/domain/models"

// adxTrendFloor is the ADX level below which DI crossovers are ignored.
const adxTrendFloor = 20

// crossesUp reports x moving from below y (previous bar) to above y (current bar).
func crossesUp(x, xPrev, y, yPrev float64) bool {
	return x > y && xPrev < yPrev
}

func adxSignal(adx, plusDI, minusDI, plusDIPrev, minusDIPrev float64) models.Signal {
	switch {
	case crossesUp(plusDI, plusDIPrev, minusDI, minusDIPrev) && adx > adxTrendFloor:
		return models.SignalBuy
	case crossesUp(minusDI, minusDIPrev, plusDI, plusDIPrev) && adx > adxTrendFloor:
		return models.SignalSell
	default:
		return models.SignalNeutral
	}
}

// aoSignal detects a zero-line cross of the Awesome Oscillator.
func aoSignal(ao, aoPrev float64) models.Signal {
	switch {
	case ao > 0 && aoPrev < 0:
		return models.SignalBuy
	case ao < 0 && aoPrev > 0:
		return models.SignalSell
	default:
		return models.SignalNeutral
	}
}

func bbLowerSignal(lower, close float64) models.Signal {
	if close < lower {
		return models.SignalBuy
	}
	return models.SignalNeutral
}

func bbUpperSignal(upper, close float64) models.Signal {
	if close > upper {
		return models.SignalSell
	}
	return models.SignalNeutral
}
