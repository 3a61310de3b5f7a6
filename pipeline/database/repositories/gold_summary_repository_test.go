package repositories

import (
	"context"
	"strings"
	"testing"
)

func TestConflictPolicy_Clause(t *testing.T) {
	const target = "CONFLICT (date, country, sex, agegroup, vipstatus, " +
		"casinomanufacturername, casinoprovidername, ggr_eur, returns_eur)"

	tests := []struct {
		name   string
		policy ConflictPolicy
		want   string
	}{
		{name: "touch updates only the timestamp", policy: ConflictTouch, want: target + " DO UPDATE"},
		{name: "skip ignores duplicates", policy: ConflictSkip, want: target + " DO NOTHING"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.conflictClause(); got != tt.want {
				t.Errorf("conflictClause() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConflictPolicy_TouchNeverAssignsBusinessColumns(t *testing.T) {
	// The DO UPDATE target carries no SET list of its own; the only
	// assignment the loader adds is updated_at. Guard against someone
	// folding EXCLUDED assignments into the clause itself.
	clause := ConflictTouch.conflictClause()
	if strings.Contains(clause, "EXCLUDED") || strings.Contains(clause, "SET") {
		t.Errorf("touch clause must not assign values: %q", clause)
	}
}

func TestBulkUpsert_EmptyInputIsNoOp(t *testing.T) {
	// No database handle needed: the empty batch must return before any
	// transaction is opened.
	repo := NewGoldSummaryRepository(nil, 0)

	n, err := repo.BulkUpsert(context.Background(), nil, ConflictTouch)
	if err != nil {
		t.Fatalf("BulkUpsert(empty) error = %v, want nil", err)
	}
	if n != 0 {
		t.Errorf("BulkUpsert(empty) = %d rows, want 0", n)
	}
}

func TestConflictPolicy_String(t *testing.T) {
	if ConflictTouch.String() != "touch" || ConflictSkip.String() != "skip" {
		t.Errorf("unexpected policy names: %q, %q", ConflictTouch, ConflictSkip)
	}
}
