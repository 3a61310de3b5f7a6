package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/panos-42/gaming-pipeline/pipeline/database/models"
	"github.com/panos-42/gaming-pipeline/pipeline/etl"
)

// ConflictPolicy decides what happens when an inserted row collides with an
// existing natural-key tuple. The pipeline's contract is ConflictTouch:
// business columns of the existing row are never overwritten, only
// updated_at is refreshed.
type ConflictPolicy int

const (
	ConflictTouch ConflictPolicy = iota
	ConflictSkip
)

func (p ConflictPolicy) String() string {
	switch p {
	case ConflictSkip:
		return "skip"
	default:
		return "touch"
	}
}

// conflictClause renders the ON clause for bun's insert builder.
func (p ConflictPolicy) conflictClause() string {
	target := strings.Join(models.NaturalKeyColumns, ", ")
	if p == ConflictSkip {
		return fmt.Sprintf("CONFLICT (%s) DO NOTHING", target)
	}
	return fmt.Sprintf("CONFLICT (%s) DO UPDATE", target)
}

const defaultBatchSize = 1000

type SummaryStats struct {
	TotalRecords    int64
	Countries       int64
	TotalGGREur     float64
	TotalReturnsEur float64
}

type GoldSummaryRepository interface {
	BulkUpsert(ctx context.Context, rows []*models.GoldSummary, policy ConflictPolicy) (int64, error)
	ExistsForDate(ctx context.Context, date time.Time) (bool, error)
	Summary(ctx context.Context, filter etl.DateFilter) (*SummaryStats, error)
}

type goldSummaryRepository struct {
	db        *bun.DB
	batchSize int
}

func NewGoldSummaryRepository(db *bun.DB, batchSize int) GoldSummaryRepository {
	if batchSize < 1 {
		batchSize = defaultBatchSize
	}
	return &goldSummaryRepository{
		db:        db,
		batchSize: batchSize,
	}
}

// BulkUpsert writes all rows in one transaction, inserting in page-sized
// groups. Either every row is durably applied or none are. An empty input
// is a no-op.
func (r *goldSummaryRepository) BulkUpsert(ctx context.Context, rows []*models.GoldSummary, policy ConflictPolicy) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	now := time.Now()
	for _, row := range rows {
		row.CreatedAt = now
		row.UpdatedAt = now
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin load transaction: %w", err)
	}
	defer tx.Rollback()

	var total int64
	for start := 0; start < len(rows); start += r.batchSize {
		end := min(start+r.batchSize, len(rows))
		batch := rows[start:end]

		q := tx.NewInsert().
			Model(&batch).
			On(policy.conflictClause())
		if policy == ConflictTouch {
			q = q.Set("updated_at = CURRENT_TIMESTAMP")
		}

		res, err := q.Exec(ctx)
		if err != nil {
			return 0, fmt.Errorf("bulk upsert failed: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		total += affected
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit load transaction: %w", err)
	}

	return total, nil
}

// ExistsForDate reports whether any gold rows were already loaded for the
// given business date.
func (r *goldSummaryRepository) ExistsForDate(ctx context.Context, date time.Time) (bool, error) {
	count, err := r.db.NewSelect().
		Model((*models.GoldSummary)(nil)).
		Where("date::date = ?::date", date).
		Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check existing data: %w", err)
	}
	return count > 0, nil
}

// Summary aggregates the loaded rows inside the filter window for the
// printed run report.
func (r *goldSummaryRepository) Summary(ctx context.Context, filter etl.DateFilter) (*SummaryStats, error) {
	q := r.db.NewSelect().
		Model((*models.GoldSummary)(nil)).
		ColumnExpr("count(*)").
		ColumnExpr("count(DISTINCT country)").
		ColumnExpr("coalesce(sum(ggr_eur), 0)").
		ColumnExpr("coalesce(sum(returns_eur), 0)")

	switch {
	case filter.Start != nil && filter.End != nil:
		q = q.Where("date::date >= ?::date AND date::date <= ?::date", *filter.Start, *filter.End)
	case filter.Start != nil:
		q = q.Where("date::date = ?::date", *filter.Start)
	}

	var stats SummaryStats
	err := q.Scan(ctx,
		&stats.TotalRecords,
		&stats.Countries,
		&stats.TotalGGREur,
		&stats.TotalReturnsEur,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query summary stats: %w", err)
	}

	return &stats, nil
}
