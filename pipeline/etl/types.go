package etl

import (
	"time"
)

// SourceRecord is one row of the joined extraction result: a player's daily
// casino activity enriched with user demographics, manufacturer/provider
// names and the day's EUR rate. Enrichment columns come from left joins and
// may be absent.
type SourceRecord struct {
	Date      time.Time
	Country   string
	Sex       string
	Birthdate *time.Time
	VIPStatus string
	GGR       float64
	Returns   float64

	EuroRate               *float64
	CasinoManufacturerName *string
	CasinoProviderName     *string
	CurrencyID             int
}
