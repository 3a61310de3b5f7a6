package pipeline

import (
	"fmt"
	"time"

	"github.com/panos-42/gaming-pipeline/pipeline/etl"
)

// ParseDateArgs turns the positional command-line arguments into a date
// filter: none → all data, one → that business date, two → the inclusive
// range. Anything else is a usage error.
func ParseDateArgs(args []string) (etl.DateFilter, error) {
	switch len(args) {
	case 0:
		return etl.AllDates(), nil
	case 1:
		date, err := parseDate(args[0])
		if err != nil {
			return etl.DateFilter{}, err
		}
		return etl.SingleDate(date), nil
	case 2:
		start, err := parseDate(args[0])
		if err != nil {
			return etl.DateFilter{}, err
		}
		end, err := parseDate(args[1])
		if err != nil {
			return etl.DateFilter{}, err
		}
		return etl.DateRange(start, end)
	default:
		return etl.DateFilter{}, fmt.Errorf("too many arguments: expected [start_date] [end_date]")
	}
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return date, nil
}
