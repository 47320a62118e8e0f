package pricing

import "github.com/brenofinance/dashboard/internal/domain"

// cryptoIDs maps crypto symbols to CoinGecko coin ids. Only these symbols
// are priced live as crypto.
var cryptoIDs = map[string]string{
	"BTC": "bitcoin",
	"ETH": "ethereum",
	"SOL": "solana",
}

// staticPrices is the last-resort table used when neither a live source nor
// the cache can price a known symbol.
var staticPrices = map[string]float64{
	"BTC":  60000,
	"ETH":  3000,
	"SOL":  150,
	"AAPL": 190,
	"MSFT": 360,
	"AMZN": 170,
	"GOOG": 140,
	"NVDA": 900,
	"META": 450,
}

// DefaultPrice is used when nothing else can price a symbol.
const DefaultPrice = 100.0

// CatalogAsset is an instrument offered on the market list.
type CatalogAsset struct {
	Symbol string
	Name   string
	Type   domain.AssetType
}

var catalog = []CatalogAsset{
	{Symbol: "BTC", Name: "Bitcoin", Type: domain.AssetTypeCrypto},
	{Symbol: "ETH", Name: "Ethereum", Type: domain.AssetTypeCrypto},
	{Symbol: "SOL", Name: "Solana", Type: domain.AssetTypeCrypto},
	{Symbol: "AAPL", Name: "Apple", Type: domain.AssetTypeStock},
	{Symbol: "MSFT", Name: "Microsoft", Type: domain.AssetTypeStock},
	{Symbol: "AMZN", Name: "Amazon", Type: domain.AssetTypeStock},
	{Symbol: "GOOG", Name: "Alphabet", Type: domain.AssetTypeStock},
	{Symbol: "NVDA", Name: "NVIDIA", Type: domain.AssetTypeStock},
	{Symbol: "META", Name: "Meta", Type: domain.AssetTypeStock},
}

// Catalog returns the instruments offered on the market list, crypto first.
func Catalog() []CatalogAsset {
	out := make([]CatalogAsset, len(catalog))
	copy(out, catalog)
	return out
}

// CoinID returns the CoinGecko id for a crypto symbol.
func CoinID(symbol string) (string, bool) {
	id, ok := cryptoIDs[symbol]
	return id, ok
}

// StaticPrice returns the table price for symbol.
func StaticPrice(symbol string) (float64, bool) {
	p, ok := staticPrices[symbol]
	return p, ok
}
