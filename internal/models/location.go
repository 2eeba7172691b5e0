package models

// Location represents a single addressable point of the built dataset, containing its decomposed Japanese address components, readings and its precise geographic coordinates.
type Location struct {
	ID             int     `json:"id"`
	PrefectureCode string  `json:"prefecture_code"`
	Prefecture     string  `json:"prefecture"`
	PrefectureKana string  `json:"prefecture_kana"`
	PrefectureRome string  `json:"prefecture_rome"`
	CityCode       string  `json:"city_code"`
	City           string  `json:"city"`
	CityKana       string  `json:"city_kana"`
	CityRome       string  `json:"city_rome"`
	PostalCode     string  `json:"postal_code"`
	DistrictCode   string  `json:"district_code"`
	District       string  `json:"district"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	GeoHash        string  `json:"geohash"`
}
