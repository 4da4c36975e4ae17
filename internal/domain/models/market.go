package models

import "fmt"

// Market is a stock market scope sent in the "markets" array.
type Market string

const MarketAll Market = "ALL"

const (
	MarketAmerica     Market = "america"
	MarketUK          Market = "uk"
	MarketIndia       Market = "india"
	MarketSpain       Market = "spain"
	MarketRussia      Market = "russia"
	MarketAustralia   Market = "australia"
	MarketBrazil      Market = "brazil"
	MarketJapan       Market = "japan"
	MarketNewZealand  Market = "newzealand"
	MarketTurkey      Market = "turkey"
	MarketSwitzerland Market = "switzerland"
	MarketHongKong    Market = "hongkong"
	MarketTaiwan      Market = "taiwan"
	MarketNetherlands Market = "netherlands"
	MarketBelgium     Market = "belgium"
	MarketPortugal    Market = "portugal"
	MarketFrance      Market = "france"
	MarketMexico      Market = "mexico"
	MarketCanada      Market = "canada"
	MarketColombia    Market = "colombia"
	MarketUAE         Market = "uae"
	MarketNigeria     Market = "nigeria"
	MarketSingapore   Market = "singapore"
	MarketGermany     Market = "germany"
	MarketPakistan    Market = "pakistan"
	MarketPeru        Market = "peru"
	MarketPoland      Market = "poland"
	MarketItaly       Market = "italy"
	MarketArgentina   Market = "argentina"
	MarketIsrael      Market = "israel"
	MarketEgypt       Market = "egypt"
	MarketSriLanka    Market = "srilanka"
	MarketSerbia      Market = "serbia"
	MarketChile       Market = "chile"
	MarketChina       Market = "china"
	MarketMalaysia    Market = "malaysia"
	MarketMorocco     Market = "morocco"
	MarketKSA         Market = "ksa"
	MarketBahrain     Market = "bahrain"
	MarketQatar       Market = "qatar"
	MarketIndonesia   Market = "indonesia"
	MarketFinland     Market = "finland"
	MarketIceland     Market = "iceland"
	MarketDenmark     Market = "denmark"
	MarketRomania     Market = "romania"
	MarketHungary     Market = "hungary"
	MarketSweden      Market = "sweden"
	MarketSlovakia    Market = "slovakia"
	MarketLithuania   Market = "lithuania"
	MarketLuxembourg  Market = "luxembourg"
	MarketEstonia     Market = "estonia"
	MarketLatvia      Market = "latvia"
	MarketVietnam     Market = "vietnam"
	MarketRSA         Market = "rsa"
	MarketThailand    Market = "thailand"
	MarketTunisia     Market = "tunisia"
	MarketKorea       Market = "korea"
	MarketKenya       Market = "kenya"
	MarketKuwait      Market = "kuwait"
	MarketNorway      Market = "norway"
	MarketPhilippines Market = "philippines"
	MarketGreece      Market = "greece"
	MarketVenezuela   Market = "venezuela"
	MarketCyprus      Market = "cyprus"
	MarketBangladesh  Market = "bangladesh"

	// Scopes used by the non-equity screeners.
	MarketForex  Market = "forex"
	MarketCrypto Market = "crypto"

	DefaultMarket = MarketAmerica
)

var stockMarkets = []Market{
	MarketAmerica, MarketUK, MarketIndia, MarketSpain, MarketRussia, MarketAustralia,
	MarketBrazil, MarketJapan, MarketNewZealand, MarketTurkey, MarketSwitzerland,
	MarketHongKong, MarketTaiwan, MarketNetherlands, MarketBelgium, MarketPortugal,
	MarketFrance, MarketMexico, MarketCanada, MarketColombia, MarketUAE, MarketNigeria,
	MarketSingapore, MarketGermany, MarketPakistan, MarketPeru, MarketPoland, MarketItaly,
	MarketArgentina, MarketIsrael, MarketEgypt, MarketSriLanka, MarketSerbia, MarketChile,
	MarketChina, MarketMalaysia, MarketMorocco, MarketKSA, MarketBahrain, MarketQatar,
	MarketIndonesia, MarketFinland, MarketIceland, MarketDenmark, MarketRomania,
	MarketHungary, MarketSweden, MarketSlovakia, MarketLithuania, MarketLuxembourg,
	MarketEstonia, MarketLatvia, MarketVietnam, MarketRSA, MarketThailand, MarketTunisia,
	MarketKorea, MarketKenya, MarketKuwait, MarketNorway, MarketPhilippines, MarketGreece,
	MarketVenezuela, MarketCyprus, MarketBangladesh,
}

// StockMarkets lists every concrete equity market (ALL excluded).
func StockMarkets() []Market { return cloneOf(stockMarkets) }

// MarketNames lists the accepted market identifiers, ALL included.
func MarketNames() []string {
	out := make([]string, 0, len(stockMarkets)+1)
	out = append(out, string(MarketAll))
	for _, m := range stockMarkets {
		out = append(out, string(m))
	}
	return out
}

// MarketValues expands ALL into every stock market and drops duplicates.
func MarketValues(markets ...Market) []Market {
	seen := make(map[Market]bool, len(markets))
	var out []Market
	for _, m := range markets {
		if m == MarketAll {
			for _, sm := range stockMarkets {
				if !seen[sm] {
					seen[sm] = true
					out = append(out, sm)
				}
			}
			continue
		}
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// Valid accepts concrete equity markets and the ALL sentinel.
func (m Market) Valid() bool { return m == MarketAll || contains(stockMarkets, m) }

func ParseMarket(s string) (Market, error) { return parseEnum[Market]("market", s) }

// Country is a value of the "country" field.
type Country string

var countries = []Country{
	"Albania", "Argentina", "Australia", "Austria", "Azerbaijan", "Bahamas", "Barbados",
	"Belgium", "Bermuda", "Brazil", "British Virgin Islands", "Cambodia", "Canada",
	"Cayman Islands", "Chile", "China", "Colombia", "Costa Rica", "Cyprus", "Czech Republic",
	"Denmark", "Dominican Republic", "Egypt", "Faroe Islands", "Finland", "France", "Germany",
	"Gibraltar", "Greece", "Hong Kong", "Hungary", "Iceland", "India", "Indonesia", "Ireland",
	"Israel", "Italy", "Jamaica", "Japan", "Jordan", "Kazakhstan", "Luxembourg", "Macau",
	"Macedonia", "Malaysia", "Malta", "Mauritius", "Mexico", "Monaco", "Mongolia",
	"Montenegro", "Netherlands", "New Zealand", "Norway", "Panama", "Papua New Guinea", "Peru",
	"Philippines", "Poland", "Portugal", "Puerto Rico", "Romania", "Russian Federation",
	"Singapore", "South Africa", "South Korea", "Spain", "Sweden", "Switzerland", "Taiwan",
	"Tanzania", "Thailand", "Turkey", "U.S. Virgin Islands", "United Arab Emirates",
	"United Kingdom", "United States", "Uruguay", "Vietnam",
}

const (
	CountryUnitedStates  Country = "United States"
	CountryUnitedKingdom Country = "United Kingdom"
	CountryCanada        Country = "Canada"
	CountryGermany       Country = "Germany"
)

func Countries() []Country { return cloneOf(countries) }

func (c Country) Valid() bool { return contains(countries, c) }

func ParseCountry(s string) (Country, error) { return parseEnum[Country]("country", s) }

// Sector is a value of the "sector" field.
type Sector string

var sectors = []Sector{
	"Commercial Services", "Communications", "Consumer Durables", "Consumer Non-Durables",
	"Consumer Services", "Distribution Services", "Electronic Technology", "Energy Minerals",
	"Finance", "Government", "Health Services", "Health Technology", "Industrial Services",
	"Miscellaneous", "Non-Energy Minerals", "Process Industries", "Producer Manufacturing",
	"Retail Trade", "Technology Services", "Transportation", "Utilities",
}

func Sectors() []Sector { return cloneOf(sectors) }

func (s Sector) Valid() bool { return contains(sectors, s) }

func ParseSector(s string) (Sector, error) { return parseEnum[Sector]("sector", s) }

// Region scopes the forex screener.
type Region string

const (
	RegionAfrica     Region = "Africa"
	RegionAmericas   Region = "Americas"
	RegionAsia       Region = "Asia"
	RegionEurope     Region = "Europe"
	RegionMiddleEast Region = "Middle East"
	RegionPacific    Region = "Pacific"
)

var regions = []Region{RegionAfrica, RegionAmericas, RegionAsia, RegionEurope, RegionMiddleEast, RegionPacific}

func Regions() []Region { return cloneOf(regions) }

func (r Region) Valid() bool { return contains(regions, r) }

func ParseRegion(s string) (Region, error) { return parseEnum[Region]("region", s) }

// Exchange is a value of the "exchange" field.
type Exchange string

const (
	ExchangeOTC      Exchange = "OTC"
	ExchangeNYSEArca Exchange = "AMEX"
	ExchangeNASDAQ   Exchange = "NASDAQ"
	ExchangeNYSE     Exchange = "NYSE"
)

var exchanges = []Exchange{ExchangeOTC, ExchangeNYSEArca, ExchangeNASDAQ, ExchangeNYSE}

func Exchanges() []Exchange { return cloneOf(exchanges) }

func (e Exchange) Valid() bool { return contains(exchanges, e) }

func ParseExchange(s string) (Exchange, error) { return parseEnum[Exchange]("exchange", s) }

// SubMarket is a value of the "submarket" field.
type SubMarket string

const (
	SubMarketOTCQB SubMarket = "OTCQB"
	SubMarketOTCQX SubMarket = "OTCQX"
	SubMarketPink  SubMarket = "PINK"
)

var subMarkets = []SubMarket{SubMarketOTCQB, SubMarketOTCQX, SubMarketPink}

func SubMarkets() []SubMarket { return cloneOf(subMarkets) }

func (s SubMarket) Valid() bool { return contains(subMarkets, s) }

func ParseSubMarket(s string) (SubMarket, error) { return parseEnum[SubMarket]("submarket", s) }

// AssetType is the broad "type" field value.
type AssetType string

const (
	AssetStock             AssetType = "stock"
	AssetDepositoryReceipt AssetType = "dr"
	AssetFund              AssetType = "fund"
	AssetStructured        AssetType = "structured"
)

// SymbolType is a narrow instrument subtype. Each maps to one or more "subtype" values.
type SymbolType string

const (
	SymbolClosedEndFund     SymbolType = "closed_end_fund"
	SymbolCommonStock       SymbolType = "common_stock"
	SymbolDepositoryReceipt SymbolType = "depository_receipt"
	SymbolETF               SymbolType = "etf"
	SymbolETN               SymbolType = "etn"
	SymbolMutualFund        SymbolType = "mutual_fund"
	SymbolPreferredStock    SymbolType = "preferred_stock"
	SymbolREIT              SymbolType = "reit"
	SymbolStructured        SymbolType = "structured"
	SymbolTrustFund         SymbolType = "trust_fund"
	SymbolUIT               SymbolType = "uit"
)

var symbolTypes = []SymbolType{
	SymbolClosedEndFund, SymbolCommonStock, SymbolDepositoryReceipt, SymbolETF, SymbolETN,
	SymbolMutualFund, SymbolPreferredStock, SymbolREIT, SymbolStructured, SymbolTrustFund, SymbolUIT,
}

var subtypeValues = map[SymbolType][]string{
	SymbolClosedEndFund:     {"closedend"},
	SymbolCommonStock:       {"common"},
	SymbolDepositoryReceipt: {"foreign-issuer"},
	SymbolETF:               {"etf", "etf,odd", "etf,otc", "etf,cfd"},
	SymbolETN:               {"etn"},
	SymbolMutualFund:        {"mutual"},
	SymbolPreferredStock:    {"preferred"},
	SymbolREIT:              {"reit", "reit,cfd", "trust,reit"},
	SymbolStructured:        {""},
	SymbolTrustFund:         {"trust"},
	SymbolUIT:               {"unit"},
}

// Closed-end and trust funds carry no broad type.
var subtypeAsset = map[SymbolType]AssetType{
	SymbolCommonStock:       AssetStock,
	SymbolDepositoryReceipt: AssetDepositoryReceipt,
	SymbolETF:               AssetFund,
	SymbolMutualFund:        AssetFund,
	SymbolREIT:              AssetFund,
	SymbolPreferredStock:    AssetStock,
	SymbolETN:               AssetStructured,
	SymbolStructured:        AssetStructured,
	SymbolUIT:               AssetFund,
}

// TypedSymbolTypes is the order in which broad type filters are emitted.
var TypedSymbolTypes = []SymbolType{
	SymbolCommonStock, SymbolDepositoryReceipt, SymbolETF, SymbolMutualFund, SymbolREIT,
	SymbolPreferredStock, SymbolETN, SymbolStructured, SymbolUIT,
}

func SymbolTypes() []SymbolType { return cloneOf(symbolTypes) }

func (s SymbolType) Valid() bool { return contains(symbolTypes, s) }

// Values returns a fresh copy of the wire subtype values.
func (s SymbolType) Values() []string { return cloneOf(subtypeValues[s]) }

// AssetType returns the broad type, if the subtype has one.
func (s SymbolType) AssetType() (AssetType, bool) {
	t, ok := subtypeAsset[s]
	return t, ok
}

func ParseSymbolType(s string) (SymbolType, error) { return parseEnum[SymbolType]("symbol type", s) }

type validEnum interface {
	~string
	Valid() bool
}

func parseEnum[T validEnum](kind, s string) (T, error) {
	v := T(s)
	if !v.Valid() {
		var zero T
		return zero, fmt.Errorf("unknown %s %q", kind, s)
	}
	return v, nil
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func cloneOf[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
