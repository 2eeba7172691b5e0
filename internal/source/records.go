package source

import (
	"fmt"
	"strconv"

	"jpaddress/internal/kana"
	"jpaddress/internal/models"

	"github.com/paulmach/orb"
)

// Column names of the postal code dataset with kana readings (ken_all.csv).
const (
	ColLocalGovCode   = "全国地方公共団体コード"
	ColOldPostalCode  = "（旧）郵便番号"
	ColPostalCode     = "郵便番号"
	ColPrefectureKana = "都道府県名カナ"
	ColCityKana       = "市区町村名カナ"
	ColDistrictKana   = "町域名カナ"
	ColPrefecture     = "都道府県名"
	ColCity           = "市区町村名"
	ColDistrict       = "町域名"
	ColPrefectureRome = "都道府県名ローマ字"
	ColCityRome       = "市区町村名ローマ字"
	ColDistrictRome   = "町域名ローマ字"
)

// Column names of the address-geometry (ISJ) archives.
const (
	ColISJPrefectureCode = "都道府県コード"
	ColISJPrefecture     = "都道府県名"
	ColISJCityCode       = "市区町村コード"
	ColISJCity           = "市区町村名"
	ColISJDistrictCode   = "大字町丁目コード"
	ColISJDistrict       = "大字町丁目名"
	ColISJLatitude       = "緯度"
	ColISJLongitude      = "経度"
)

// KanaColumns is the fixed column layout of ken_all.csv.
var KanaColumns = []string{
	ColLocalGovCode,
	ColOldPostalCode,
	ColPostalCode,
	ColPrefectureKana,
	ColCityKana,
	ColDistrictKana,
	ColPrefecture,
	ColCity,
	ColDistrict,
	"hasMulti",
	"hasBanchiOnAza",
	"hasChomome",
	"hasAlias",
	"update",
	"updateReason",
}

// RomeColumns is the fixed column layout of ken_all_rome.csv.
var RomeColumns = []string{
	ColPostalCode,
	ColPrefecture,
	ColCity,
	ColDistrict,
	ColPrefectureRome,
	ColCityRome,
	ColDistrictRome,
}

var addressColumns = []string{
	ColISJPrefectureCode,
	ColISJPrefecture,
	ColISJCityCode,
	ColISJCity,
	ColISJDistrictCode,
	ColISJDistrict,
	ColISJLatitude,
	ColISJLongitude,
}

// KanaRecords converts ken_all.csv rows. City names are normalized.
func KanaRecords(rows []Row) []models.PostalKanaRecord {
	records := make([]models.PostalKanaRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, models.PostalKanaRecord{
			PostalPlace: models.PostalPlace{
				Prefecture: r[ColPrefecture],
				City:       kana.NormalizePostalField(r[ColCity]),
				District:   r[ColDistrict],
			},
			LocalGovCode:   r[ColLocalGovCode],
			PostalCode:     r[ColPostalCode],
			PrefectureKana: r[ColPrefectureKana],
			CityKana:       r[ColCityKana],
			DistrictKana:   r[ColDistrictKana],
		})
	}
	return records
}

// RomeRecords converts ken_all_rome.csv rows. City names are normalized.
func RomeRecords(rows []Row) []models.PostalRomeRecord {
	records := make([]models.PostalRomeRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, models.PostalRomeRecord{
			PostalPlace: models.PostalPlace{
				Prefecture: r[ColPrefecture],
				City:       kana.NormalizePostalField(r[ColCity]),
				District:   r[ColDistrict],
			},
			PostalCode:     r[ColPostalCode],
			PrefectureRome: r[ColPrefectureRome],
			CityRome:       r[ColCityRome],
			DistrictRome:   r[ColDistrictRome],
		})
	}
	return records
}

// AddressRecords converts address-geometry rows. Every row needs the
// registry columns and numeric coordinates.
func AddressRecords(rows []Row) ([]models.AddressRecord, error) {
	records := make([]models.AddressRecord, 0, len(rows))
	for i, r := range rows {
		for _, col := range addressColumns {
			if _, ok := r[col]; !ok {
				return nil, fmt.Errorf("source: row %d: missing column %s: %w", i+1, col, ErrParse)
			}
		}

		lat, err := strconv.ParseFloat(r[ColISJLatitude], 64)
		if err != nil {
			return nil, fmt.Errorf("source: row %d: invalid latitude %q: %w", i+1, r[ColISJLatitude], ErrParse)
		}
		lon, err := strconv.ParseFloat(r[ColISJLongitude], 64)
		if err != nil {
			return nil, fmt.Errorf("source: row %d: invalid longitude %q: %w", i+1, r[ColISJLongitude], ErrParse)
		}

		records = append(records, models.AddressRecord{
			PrefectureCode: r[ColISJPrefectureCode],
			PrefectureName: r[ColISJPrefecture],
			CityCode:       r[ColISJCityCode],
			CityName:       r[ColISJCity],
			DistrictCode:   r[ColISJDistrictCode],
			DistrictName:   r[ColISJDistrict],
			Latitude:       r[ColISJLatitude],
			Longitude:      r[ColISJLongitude],
			Point:          orb.Point{lon, lat},
		})
	}
	return records, nil
}
