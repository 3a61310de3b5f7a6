package etl

import (
	"reflect"
	"testing"
)

func TestDateFilter_Clause(t *testing.T) {
	tests := []struct {
		name       string
		filter     DateFilter
		wantClause string
		wantArgs   int
	}{
		{
			name:       "all dates has no clause",
			filter:     AllDates(),
			wantClause: "",
			wantArgs:   0,
		},
		{
			name:       "single date matches exactly",
			filter:     SingleDate(date("2025-03-10")),
			wantClause: "WHERE cd.date::date = $1::date",
			wantArgs:   1,
		},
		{
			name:       "range is inclusive on both ends",
			filter:     mustRange(t, "2025-03-01", "2025-03-10"),
			wantClause: "WHERE cd.date::date >= $1::date AND cd.date::date <= $2::date",
			wantArgs:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := tt.filter.Clause("cd.date::date")
			if clause != tt.wantClause {
				t.Errorf("Clause() = %q, want %q", clause, tt.wantClause)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("Clause() returned %d args, want %d", len(args), tt.wantArgs)
			}
		})
	}
}

func TestDateRange_Validation(t *testing.T) {
	if _, err := DateRange(date("2025-03-10"), date("2025-03-01")); err == nil {
		t.Error("DateRange() with start after end should fail")
	}

	f, err := DateRange(date("2025-03-10"), date("2025-03-10"))
	if err != nil {
		t.Fatalf("DateRange() with equal bounds should be valid, got %v", err)
	}
	_, args := f.Clause("date")
	if !reflect.DeepEqual(args, []any{date("2025-03-10"), date("2025-03-10")}) {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestDateFilter_String(t *testing.T) {
	tests := []struct {
		name   string
		filter DateFilter
		want   string
	}{
		{name: "all", filter: AllDates(), want: "all data"},
		{name: "single", filter: SingleDate(date("2025-03-10")), want: "date 2025-03-10"},
		{name: "range", filter: mustRange(t, "2025-03-01", "2025-03-10"), want: "date range 2025-03-01 to 2025-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func mustRange(t *testing.T, start, end string) DateFilter {
	t.Helper()
	f, err := DateRange(date(start), date(end))
	if err != nil {
		t.Fatalf("DateRange(%s, %s) error = %v", start, end, err)
	}
	return f
}
