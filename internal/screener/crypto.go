package screener

import (
	"FinScreen/internal/catalog"
	"FinScreen/internal/domain/models"
)

// CryptoScreener scans crypto assets.
type CryptoScreener struct {
	*Screener
}

func NewCryptoScreener(opts ...Option) *CryptoScreener {
	s := &CryptoScreener{Screener: newScreener(models.ScreenerCrypto, "crypto", catalog.Crypto, opts...)}
	s.markets = []models.Market{models.MarketCrypto}
	s.SortBy(catalog.Volume24hUSD, false)
	s.AddMisc("price_conversion", map[string]interface{}{"to_symbol": false})
	return s
}
