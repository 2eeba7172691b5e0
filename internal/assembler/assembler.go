// Package assembler merges registry address rows with their postal readings
// into output records.
package assembler

import (
	"jpaddress/internal/exceptions"
	"jpaddress/internal/geocode"
	"jpaddress/internal/kana"
	"jpaddress/internal/models"

	"github.com/rs/zerolog"
)

// PostalMatcher finds the postal rows for a registry place.
type PostalMatcher interface {
	MatchKana(prefecture, city, district string) (models.PostalKanaRecord, bool)
	MatchRome(prefecture, city, district string) (models.PostalRomeRecord, bool)
}

// Assembler builds output records for one prefecture at a time.
type Assembler struct {
	matcher PostalMatcher
	renames exceptions.RenameTable
	logger  zerolog.Logger
}

// NewAssembler creates an assembler using the given rename table.
func NewAssembler(matcher PostalMatcher, renames exceptions.RenameTable, logger zerolog.Logger) *Assembler {
	return &Assembler{
		matcher: matcher,
		renames: renames,
		logger:  logger,
	}
}

// Assemble converts every row of a prefecture and reports its match summary.
func (a *Assembler) Assemble(prefCode string, rows []models.AddressRecord) ([]models.OutputRecord, models.Summary) {
	records := make([]models.OutputRecord, 0, len(rows))
	summary := models.Summary{PrefCode: prefCode, NoHitCases: []string{}}
	seen := make(map[string]bool)
	missingPostal := make(map[string]bool)

	for _, row := range rows {
		city := a.renames.Apply(row.PrefectureName, row.CityName)

		kanaRec, kanaOK := a.matcher.MatchKana(row.PrefectureName, city, row.DistrictName)
		romeRec, romeOK := a.matcher.MatchRome(row.PrefectureName, city, row.DistrictName)

		if kanaOK && romeOK {
			summary.Hit++
		} else {
			summary.NoHit++
			key := row.PrefectureName + city
			if !seen[key] {
				seen[key] = true
				summary.NoHitCases = append(summary.NoHitCases, key)
			}
		}

		out := models.OutputRecord{
			PrefectureCode: row.PrefectureCode,
			PrefectureName: row.PrefectureName,
			CityCode:       row.CityCode,
			CityName:       city,
			DistrictCode:   row.DistrictCode,
			DistrictName:   row.DistrictName,
			Latitude:       row.Latitude,
			Longitude:      row.Longitude,
			GeoHash:        geocode.EncodePoint(row.Point),
		}
		if kanaOK {
			out.PrefectureKana = kana.ToFullWidthKana(kanaRec.PrefectureKana)
			out.CityKana = kana.ToFullWidthKana(kanaRec.CityKana)
			out.PostalCode = kanaRec.PostalCode
		} else {
			summary.MissingPostalCode++
			key := row.PrefectureName + city
			if !missingPostal[key] {
				missingPostal[key] = true
				a.logger.Warn().
					Str("pref_code", prefCode).
					Str("prefecture", row.PrefectureName).
					Str("city", city).
					Msg("no kana match, postal code left empty")
			}
		}
		if romeOK {
			out.PrefectureRome = romeRec.PrefectureRome
			out.CityRome = romeRec.CityRome
		}

		records = append(records, out)
	}

	return records, summary
}
