package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/panos-42/gaming-pipeline/pipeline/logger"
)

// Extractor reads per-player daily activity from the operational store with
// a single join query.
type Extractor struct {
	pool *pgxpool.Pool
}

func NewExtractor(pool *pgxpool.Pool) *Extractor {
	return &Extractor{pool: pool}
}

const extractQuery = `
WITH latest_manufacturers AS (
	SELECT casinomanufacturerid::int AS casinomanufacturerid, casinomanufacturername
	FROM casinomanufacturers
	WHERE latestflag::int = 1
)
SELECT
	cd.date::date AS date,
	u.country,
	upper(trim(u.sex)) AS sex,
	u.birthdate::date AS birthdate,
	trim(u.vipstatus) AS vipstatus,
	cd.ggr::numeric AS ggr,
	cd.returns::numeric AS returns,
	cr.eurorate::numeric AS eurorate,
	lm.casinomanufacturername,
	cp.casinoprovidername,
	cd.currencyid::int AS currencyid
FROM casinodaily cd
JOIN users u ON cd.userid = u.user_id -- userid references users.user_id, not a same-named column
LEFT JOIN latest_manufacturers lm ON cd.casinomanufacturerid::int = lm.casinomanufacturerid
LEFT JOIN casinoproviders cp ON cd.casinoproviderid::int = cp.casinoproviderid::int
LEFT JOIN currencyrates cr ON cd.date::date = cr.date::date
	AND cd.currencyid::int = cr.tocurrencyid::int
%s
ORDER BY cd.date`

// Extract returns every SourceRecord whose business date falls inside the
// filter window, sorted ascending by date. Rows without a published EUR rate
// or without manufacturer/provider enrichment are still returned.
func (e *Extractor) Extract(ctx context.Context, filter DateFilter) ([]SourceRecord, error) {
	clause, args := filter.Clause("cd.date::date")
	query := fmt.Sprintf(extractQuery, clause)

	start := time.Now()
	rows, err := e.pool.Query(ctx, query, args...)
	logger.LogQuery("extract daily activity", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("extract query failed: %w", err)
	}
	defer rows.Close()

	var records []SourceRecord
	for rows.Next() {
		var rec SourceRecord
		err := rows.Scan(
			&rec.Date,
			&rec.Country,
			&rec.Sex,
			&rec.Birthdate,
			&rec.VIPStatus,
			&rec.GGR,
			&rec.Returns,
			&rec.EuroRate,
			&rec.CasinoManufacturerName,
			&rec.CasinoProviderName,
			&rec.CurrencyID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan source record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("extract query failed: %w", err)
	}

	return records, nil
}
