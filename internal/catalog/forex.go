package catalog

import "FinScreen/internal/domain/models"

var Region = f{Label: "Region", Key: "region", Format: text}

// Forex is the currency-pair screener catalog.
var Forex = models.MustCatalog(string(models.ScreenerForex), merge(technical(), []models.Field{
	{Label: "Ask", Key: "ask", Format: round},
	{Label: "Bid", Key: "bid", Format: round},
	{Label: "Change 1M, %", Key: "change.1M", Format: percent},
	{Label: "Change 1h, %", Key: "change.60", Format: percent},
	Exchange,
	Region,
})...)
