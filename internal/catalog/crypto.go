package catalog

import "FinScreen/internal/domain/models"

var Volume24hUSD = f{Label: "Volume 24h in USD", Key: "24h_vol|5", Format: group}

// Crypto is the crypto-asset screener catalog.
var Crypto = models.MustCatalog(string(models.ScreenerCrypto), merge(technical(), []models.Field{
	{Label: "Available Coins", Key: "total_shares_outstanding", Format: group},
	{Label: "Average Volume (10 day)", Key: "average_volume_10d_calc", Format: group},
	{Label: "Average Volume (30 day)", Key: "average_volume_30d_calc", Format: group},
	{Label: "Ask", Key: "ask", Format: round},
	{Label: "Bid", Key: "bid", Format: round},
	Exchange,
	{Label: "Fully Diluted Market Cap", Key: "market_cap_diluted_calc", Format: group},
	{Label: "Market Capitalization", Key: "market_cap_calc", Format: group},
	{Label: "Relative Volume", Key: "relative_volume_10d_calc", Format: round, Interval: true},
	{Label: "Total Coins", Key: "total_shares_diluted", Format: group},
	{Label: "Traded Volume", Key: "total_value_traded", Format: group},
	{Label: "Volume 24h Change %", Key: "24h_vol_change|5", Format: percent},
	Volume24hUSD,
})...)
