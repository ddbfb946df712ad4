package emissions

import (
	"github.com/shopspring/decimal"
)

// DefaultOffsetPriceUSD is the fallback carbon offset price per tonne CO2e.
const DefaultOffsetPriceUSD = 15.0

// kgPerTonne converts kilograms to metric tonnes.
const kgPerTonne = 1000.0

// OffsetProject is one slice of the illustrative offset portfolio.
type OffsetProject struct {
	Project string  `json:"project"`
	Share   float64 `json:"share"`
}

// offsetMix is the fixed illustrative portfolio quoted with every estimate.
//
//nolint:gochecknoglobals // Fixed reference data, never mutated.
var offsetMix = []OffsetProject{
	{Project: "Reforestation", Share: 0.40},
	{Project: "Renewable Energy", Share: 0.35},
	{Project: "Cookstoves", Share: 0.25},
}

// OffsetQuote prices the offsetting of a given emission amount.
type OffsetQuote struct {
	// Tonnes is the emission amount in metric tonnes CO2e.
	Tonnes float64 `json:"tonnes"`

	// PricePerTonneUSD is the quoted offset price.
	PricePerTonneUSD decimal.Decimal `json:"price_per_tonne_usd"`

	// CostUSD is tonnes x price, rounded to cents.
	CostUSD decimal.Decimal `json:"cost_usd"`

	// Mix is the illustrative project portfolio the quote assumes.
	Mix []OffsetProject `json:"mix"`
}

// EstimateOffset quotes the cost of offsetting kg CO2e at the given price
// per tonne. Negative inputs are treated as zero; price <= 0 falls back to
// DefaultOffsetPriceUSD. Money math runs on decimals to keep cents exact.
func EstimateOffset(kg, pricePerTonneUSD float64) OffsetQuote {
	if kg < 0 {
		kg = 0
	}
	if pricePerTonneUSD <= 0 {
		pricePerTonneUSD = DefaultOffsetPriceUSD
	}

	tonnes := kg / kgPerTonne
	price := decimal.NewFromFloat(pricePerTonneUSD)
	cost := decimal.NewFromFloat(tonnes).Mul(price).Round(2)

	return OffsetQuote{
		Tonnes:           tonnes,
		PricePerTonneUSD: price,
		CostUSD:          cost,
		Mix:              offsetMix,
	}
}
