package models

import "math"

// Rating is a labelled band over a technical rating score in [-1, 1].
type Rating struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

var (
	RatingStrongBuy  = Rating{Name: "STRONG_BUY", Label: "Strong Buy", Min: 0.5, Max: 1}
	RatingBuy        = Rating{Name: "BUY", Label: "Buy", Min: 0.1, Max: 0.5}
	RatingNeutral    = Rating{Name: "NEUTRAL", Label: "Neutral", Min: -0.1, Max: 0.1}
	RatingSell       = Rating{Name: "SELL", Label: "Sell", Min: -0.5, Max: -0.1}
	RatingStrongSell = Rating{Name: "STRONG_SELL", Label: "Strong Sell", Min: -1, Max: -0.5}
	RatingUnknown    = Rating{Name: "UNKNOWN", Label: "Unknown", Min: math.NaN(), Max: math.NaN()}
)

// Highest band first: a shared boundary resolves to the higher band.
var ratings = []Rating{RatingStrongBuy, RatingBuy, RatingNeutral, RatingSell, RatingStrongSell}

// Ratings returns the known bands, highest first. Unknown is not included.
func Ratings() []Rating { return cloneOf(ratings) }

// Contains uses closed bounds; callers rely on band order for tie-breaks.
func (r Rating) Contains(v float64) bool { return r.Min <= v && v <= r.Max }

func (r Rating) Range() [2]float64 { return [2]float64{r.Min, r.Max} }

// FindRating maps a score to its band. Nil, NaN and out-of-range scores are Unknown.
func FindRating(v *float64) Rating {
	if v == nil || math.IsNaN(*v) {
		return RatingUnknown
	}
	for _, r := range ratings {
		if r.Contains(*v) {
			return r
		}
	}
	return RatingUnknown
}

// Signal is the single-letter recommendation appended to formatted values.
type Signal string

const (
	SignalBuy     Signal = "B"
	SignalSell    Signal = "S"
	SignalNeutral Signal = "N"
)

// SignalFromScore maps a server recommendation score to a letter.
func SignalFromScore(score float64) Signal {
	switch {
	case score < 0:
		return SignalSell
	case score > 0:
		return SignalBuy
	default:
		return SignalNeutral
	}
}

// RatingNames lists band names, highest first.
func RatingNames() []string {
	out := make([]string, len(ratings))
	for i, r := range ratings {
		out[i] = r.Name
	}
	return out
}
