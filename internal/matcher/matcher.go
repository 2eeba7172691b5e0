// Package matcher locates the postal code rows that describe the same place
// as a registry address row.
package matcher

import (
	"strings"

	"jpaddress/internal/exceptions"
	"jpaddress/internal/models"
)

type placed interface {
	Place() models.PostalPlace
}

type cityKey struct {
	prefecture string
	city       string
}

// index groups candidates by (prefecture, city), keeping source order inside each group.
type index[T placed] map[cityKey][]T

func newIndex[T placed](records []T) index[T] {
	ix := make(index[T])
	for _, r := range records {
		p := r.Place()
		key := cityKey{prefecture: p.Prefecture, city: p.City}
		ix[key] = append(ix[key], r)
	}
	return ix
}

// find returns the first candidate whose district is a prefix of district,
// falling back to the first candidate of the city.
func (ix index[T]) find(prefecture, city, district string) (T, bool) {
	candidates := ix[cityKey{prefecture: prefecture, city: city}]
	for _, c := range candidates {
		if strings.HasPrefix(district, c.Place().District) {
			return c, true
		}
	}
	if len(candidates) > 0 {
		return candidates[0], true
	}

	var zero T
	return zero, false
}

// Matcher joins registry rows with the kana and romanized postal datasets.
// It is read-only after construction and safe for concurrent use.
type Matcher struct {
	divergences exceptions.DivergenceTable
	kana        index[models.PostalKanaRecord]
	rome        index[models.PostalRomeRecord]
}

// New indexes the reference datasets.
func New(kana []models.PostalKanaRecord, rome []models.PostalRomeRecord, divergences exceptions.DivergenceTable) *Matcher {
	return &Matcher{
		divergences: divergences,
		kana:        newIndex(kana),
		rome:        newIndex(rome),
	}
}

// MatchKana finds the kana row for a registry (prefecture, city, district).
// A divergence override reading is applied to the returned copy only.
func (m *Matcher) MatchKana(prefecture, city, district string) (models.PostalKanaRecord, bool) {
	d, diverged := m.divergences.Lookup(prefecture, city)
	if diverged {
		city = d.Postal
	}

	rec, ok := m.kana.find(prefecture, city, district)
	if ok && diverged && d.Kana != "" {
		rec.CityKana = d.Kana
	}
	return rec, ok
}

// MatchRome finds the romanized row for a registry (prefecture, city, district).
func (m *Matcher) MatchRome(prefecture, city, district string) (models.PostalRomeRecord, bool) {
	d, diverged := m.divergences.Lookup(prefecture, city)
	if diverged {
		city = d.Postal
	}

	rec, ok := m.rome.find(prefecture, city, district)
	if ok && diverged && d.Rome != "" {
		rec.CityRome = d.Rome
	}
	return rec, ok
}
