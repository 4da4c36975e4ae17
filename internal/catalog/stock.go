package catalog

import "FinScreen/internal/domain/models"

var (
	MarketCap = f{Label: "Market Capitalization", Key: "market_cap_basic", Format: currency}
	Country   = f{Label: "Country", Key: "country", Format: text}
	Submarket = f{Label: "Submarket", Key: "submarket", Format: text}
	Sector    = f{Label: "Sector", Key: "sector", Format: text}
	Industry  = f{Label: "Industry", Key: "industry", Format: text}
)

// Stock is the equity screener catalog.
var Stock = models.MustCatalog(string(models.ScreenerStock), merge(technical(), []models.Field{
	{Label: "1-Year Beta", Key: "beta_1_year", Format: round},
	{Label: "Average Volume (10 day)", Key: "average_volume_10d_calc", Format: group},
	{Label: "Average Volume (30 day)", Key: "average_volume_30d_calc", Format: group},
	{Label: "Basic EPS (TTM)", Key: "earnings_per_share_basic_ttm", Format: round},
	{Label: "Change", Key: "change_abs", Format: round, Interval: true},
	{Label: "Change 1M, %", Key: "change.1M", Format: percent},
	{Label: "Chaikin Money Flow (20)", Key: "ChaikinMoneyFlow", Format: round},
	Country,
	{Label: "Current Ratio (MRQ)", Key: "current_ratio", Format: round},
	{Label: "Debt to Equity Ratio (MRQ)", Key: "debt_to_equity", Format: round},
	{Label: "Dividend Yield Forward", Key: "dividend_yield_recent", Format: percent},
	{Label: "EBITDA (TTM)", Key: "ebitda", Format: currency},
	{Label: "Enterprise Value (MRQ)", Key: "enterprise_value_fq", Format: currency},
	{Label: "EPS Diluted (TTM)", Key: "earnings_per_share_diluted_ttm", Format: round},
	Exchange,
	{Label: "Gross Margin (TTM)", Key: "gross_margin", Format: percent},
	Industry,
	MarketCap,
	{Label: "Money Flow (14)", Key: "MoneyFlow", Format: round, Interval: true},
	{Label: "Net Income (FY)", Key: "net_income", Format: currency},
	{Label: "Number of Employees", Key: "number_of_employees", Format: group},
	{Label: "Operating Margin (TTM)", Key: "operating_margin", Format: percent},
	{Label: "Post-market Change %", Key: "postmarket_change", Format: percent},
	{Label: "Pre-market Change %", Key: "premarket_change", Format: percent},
	{Label: "Pre-market Volume", Key: "premarket_volume", Format: group},
	{Label: "Price to Book (MRQ)", Key: "price_book_fq", Format: round},
	{Label: "Price to Earnings Ratio (TTM)", Key: "price_earnings_ttm", Format: round},
	{Label: "Recent Earnings Date", Key: "earnings_release_date", Format: date},
	{Label: "Relative Volume", Key: "relative_volume_10d_calc", Format: round, Interval: true},
	{Label: "Return on Equity (TTM)", Key: "return_on_equity", Format: percent},
	Sector,
	{Label: "Shares Float", Key: "float_shares_outstanding", Format: group},
	Submarket,
	Subtype,
	{Label: "Total Revenue (FY)", Key: "total_revenue", Format: currency},
	{Label: "Total Shares Outstanding", Key: "total_shares_outstanding_fundamental", Format: group},
	Type,
	{Label: "Upcoming Earnings Date", Key: "earnings_release_next_date", Format: date},
	{Label: "Volume*Price", Key: "Value.Traded", Format: group, Interval: true},
})...)
