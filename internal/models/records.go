package models

import "github.com/paulmach/orb"

// AddressRecord is one parcel-level row of a prefecture's address-geometry archive.
// Latitude and Longitude keep the source text so they can be emitted verbatim.
type AddressRecord struct {
	PrefectureCode string
	PrefectureName string
	CityCode       string
	CityName       string
	DistrictCode   string
	DistrictName   string
	Latitude       string
	Longitude      string
	Point          orb.Point
}

// PostalPlace is the (prefecture, city, district) key shared by both postal datasets.
type PostalPlace struct {
	Prefecture string
	City       string
	District   string
}

// Place returns the place key. Records embedding PostalPlace get it promoted.
func (p PostalPlace) Place() PostalPlace {
	return p
}

// PostalKanaRecord is one row of the postal code dataset with katakana readings.
type PostalKanaRecord struct {
	PostalPlace
	LocalGovCode   string
	PostalCode     string
	PrefectureKana string
	CityKana       string
	DistrictKana   string
}

// PostalRomeRecord is one row of the postal code dataset with romanized names.
type PostalRomeRecord struct {
	PostalPlace
	PostalCode     string
	PrefectureRome string
	CityRome       string
	DistrictRome   string
}

// OutputRecord is one row of the unified dataset, in column order.
type OutputRecord struct {
	PrefectureCode string
	PrefectureName string
	PrefectureKana string
	PrefectureRome string
	CityCode       string
	CityName       string
	CityKana       string
	CityRome       string
	PostalCode     string
	DistrictCode   string
	DistrictName   string
	Latitude       string
	Longitude      string
	GeoHash        string
}

// Fields returns the record's values in output column order.
func (r OutputRecord) Fields() []string {
	return []string{
		r.PrefectureCode,
		r.PrefectureName,
		r.PrefectureKana,
		r.PrefectureRome,
		r.CityCode,
		r.CityName,
		r.CityKana,
		r.CityRome,
		r.PostalCode,
		r.DistrictCode,
		r.DistrictName,
		r.Latitude,
		r.Longitude,
		r.GeoHash,
	}
}

// Summary reports how many rows of one prefecture found both readings.
type Summary struct {
	PrefCode          string   `json:"prefCode"`
	Hit               int      `json:"hit"`
	NoHit             int      `json:"nohit"`
	NoHitCases        []string `json:"nohitCases"`
	MissingPostalCode int      `json:"missingPostalCode"`
}

// Total is the number of address rows the summary covers.
func (s Summary) Total() int {
	return s.Hit + s.NoHit
}
