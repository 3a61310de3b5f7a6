package models

import (
	"time"

	"github.com/uptrace/bun"
)

// GoldSummary is one analytics-ready row in the gold_summary table.
// The nine business columns form the natural key: reloading the same
// data only touches updated_at, it never duplicates or overwrites rows.
type GoldSummary struct {
	bun.BaseModel `bun:"table:gold_summary,alias:gs"`

	ID int64 `bun:"id,pk,autoincrement"`

	Date                   time.Time `bun:"date,notnull,unique:gold_summary_natural_key"`
	Country                string    `bun:"country,notnull,unique:gold_summary_natural_key"`
	Sex                    string    `bun:"sex,type:char(1),notnull,unique:gold_summary_natural_key"`
	AgeGroup               string    `bun:"agegroup,notnull,unique:gold_summary_natural_key"`
	VIPStatus              string    `bun:"vipstatus,notnull,unique:gold_summary_natural_key"`
	CasinoManufacturerName string    `bun:"casinomanufacturername,notnull,unique:gold_summary_natural_key"`
	CasinoProviderName     string    `bun:"casinoprovidername,notnull,unique:gold_summary_natural_key"`
	GGREur                 float64   `bun:"ggr_eur,notnull,unique:gold_summary_natural_key"`
	ReturnsEur             float64   `bun:"returns_eur,notnull,unique:gold_summary_natural_key"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// NaturalKeyColumns is the column list behind the uniqueness constraint,
// in table order. The loader builds its conflict target from this.
var NaturalKeyColumns = []string{
	"date", "country", "sex", "agegroup", "vipstatus",
	"casinomanufacturername", "casinoprovidername",
	"ggr_eur", "returns_eur",
}
