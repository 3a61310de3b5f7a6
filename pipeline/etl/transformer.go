package etl

import (
	"fmt"
	"strings"
	"time"

	"github.com/panos-42/gaming-pipeline/pipeline/database/models"
)

// AgeGroupUnknown is assigned when the computed age falls outside every
// band (negative, or 999+). The source buckets leave those undefined.
const AgeGroupUnknown = "Unknown"

// UnknownName replaces absent manufacturer/provider names.
const UnknownName = "Unknown"

type ageBand struct {
	lo, hi float64 // left-closed, right-open
	label  string
}

var ageBands = []ageBand{
	{0, 18, "Under 18"},
	{18, 21, "18-20"},
	{21, 27, "21-26"},
	{27, 33, "27-32"},
	{33, 41, "33-40"},
	{41, 50, "41-50"},
	{50, 999, "50+"},
}

// vipStatusMap maps trimmed-uppercased raw values to display labels. The
// "BRONZ E" and "ELI T E" keys carry embedded spaces present in the source
// data; they must match those exact malformed values only.
var vipStatusMap = map[string]string{
	"NOT VIP":   "Not VIP",
	"POTENTIAL": "Potential",
	"BRONZ E":   "Bronze",
	"ELI T E":   "Elite",
}

// Age returns fractional years between birthdate and the business date,
// using the 365.25-day year approximation.
func Age(businessDate, birthdate time.Time) float64 {
	days := businessDate.Sub(birthdate).Hours() / 24
	return days / 365.25
}

// AgeGroup buckets an age into one of seven left-closed bands.
func AgeGroup(age float64) string {
	for _, b := range ageBands {
		if age >= b.lo && age < b.hi {
			return b.label
		}
	}
	return AgeGroupUnknown
}

// NormalizeVIPStatus trims and uppercases the raw value, then maps it
// through the fixed lookup table. Unmapped values pass through in their
// trimmed-uppercase form.
func NormalizeVIPStatus(raw string) string {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if label, ok := vipStatusMap[v]; ok {
		return label
	}
	return v
}

// Transform derives the gold rows from a batch of source records. An empty
// input yields an empty result, not an error. A record whose business date
// or birthdate is missing fails the whole batch.
func Transform(records []SourceRecord) ([]*models.GoldSummary, error) {
	out := make([]*models.GoldSummary, 0, len(records))

	for i, rec := range records {
		if rec.Date.IsZero() {
			return nil, fmt.Errorf("record %d: missing business date", i)
		}
		if rec.Birthdate == nil || rec.Birthdate.IsZero() {
			return nil, fmt.Errorf("record %d (%s): missing birthdate", i, rec.Date.Format(dateLayout))
		}

		var ggrEur, returnsEur float64
		if rec.EuroRate != nil {
			ggrEur = rec.GGR * *rec.EuroRate
			returnsEur = rec.Returns * *rec.EuroRate
		}

		out = append(out, &models.GoldSummary{
			Date:                   rec.Date,
			Country:                rec.Country,
			Sex:                    rec.Sex,
			AgeGroup:               AgeGroup(Age(rec.Date, *rec.Birthdate)),
			VIPStatus:              NormalizeVIPStatus(rec.VIPStatus),
			CasinoManufacturerName: orUnknown(rec.CasinoManufacturerName),
			CasinoProviderName:     orUnknown(rec.CasinoProviderName),
			GGREur:                 ggrEur,
			ReturnsEur:             returnsEur,
		})
	}

	return out, nil
}

func orUnknown(s *string) string {
	if s == nil || *s == "" {
		return UnknownName
	}
	return *s
}
