package etl

import (
	"fmt"
	"time"
)

// DateFilter selects the business dates a run covers: everything, a single
// date, or an inclusive range.
type DateFilter struct {
	Start *time.Time
	End   *time.Time
}

func AllDates() DateFilter {
	return DateFilter{}
}

func SingleDate(date time.Time) DateFilter {
	return DateFilter{Start: &date}
}

func DateRange(start, end time.Time) (DateFilter, error) {
	if start.After(end) {
		return DateFilter{}, fmt.Errorf("start date %s is after end date %s",
			start.Format(dateLayout), end.Format(dateLayout))
	}
	return DateFilter{Start: &start, End: &end}, nil
}

const dateLayout = "2006-01-02"

// Clause renders the WHERE fragment for the given date column expression.
// Placeholders are numbered from $1; an unfiltered run yields no clause.
func (f DateFilter) Clause(col string) (string, []any) {
	switch {
	case f.Start != nil && f.End != nil:
		return fmt.Sprintf("WHERE %s >= $1::date AND %s <= $2::date", col, col),
			[]any{*f.Start, *f.End}
	case f.Start != nil:
		return fmt.Sprintf("WHERE %s = $1::date", col), []any{*f.Start}
	default:
		return "", nil
	}
}

func (f DateFilter) String() string {
	switch {
	case f.Start != nil && f.End != nil:
		return fmt.Sprintf("date range %s to %s",
			f.Start.Format(dateLayout), f.End.Format(dateLayout))
	case f.Start != nil:
		return fmt.Sprintf("date %s", f.Start.Format(dateLayout))
	default:
		return "all data"
	}
}
