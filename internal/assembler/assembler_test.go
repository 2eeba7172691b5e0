package assembler

import (
	"testing"

	"jpaddress/internal/exceptions"
	"jpaddress/internal/matcher"
	"jpaddress/internal/models"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostalMatcher is a mock implementation of the PostalMatcher interface
type MockPostalMatcher struct {
	mock.Mock
}

func (m *MockPostalMatcher) MatchKana(prefecture, city, district string) (models.PostalKanaRecord, bool) {
	args := m.Called(prefecture, city, district)
	return args.Get(0).(models.PostalKanaRecord), args.Bool(1)
}

func (m *MockPostalMatcher) MatchRome(prefecture, city, district string) (models.PostalRomeRecord, bool) {
	args := m.Called(prefecture, city, district)
	return args.Get(0).(models.PostalRomeRecord), args.Bool(1)
}

func addressRow(prefCode, pref, cityCode, city, districtCode, district string, lat, lon float64, rawLat, rawLon string) models.AddressRecord {
	return models.AddressRecord{
		PrefectureCode: prefCode,
		PrefectureName: pref,
		CityCode:       cityCode,
		CityName:       city,
		DistrictCode:   districtCode,
		DistrictName:   district,
		Latitude:       rawLat,
		Longitude:      rawLon,
		Point:          orb.Point{lon, lat},
	}
}

func TestAssembler_RenameAppliedBeforeMatching(t *testing.T) {
	// Setup
	mockMatcher := new(MockPostalMatcher)
	a := NewAssembler(mockMatcher, exceptions.Renames, zerolog.Nop())

	kanaRec := models.PostalKanaRecord{
		PostalPlace:    models.PostalPlace{Prefecture: "兵庫県", City: "丹波篠山市", District: "泉"},
		PostalCode:     "6692141",
		PrefectureKana: "ﾋｮｳｺﾞｹﾝ",
		CityKana:       "ﾀﾝﾊﾞｻｻﾔﾏｼ",
	}
	romeRec := models.PostalRomeRecord{
		PostalPlace:    models.PostalPlace{Prefecture: "兵庫県", City: "丹波篠山市", District: "泉"},
		PostalCode:     "6692141",
		PrefectureRome: "HYOGO KEN",
		CityRome:       "TAMBASASAYAMA SHI",
	}
	mockMatcher.On("MatchKana", "兵庫県", "丹波篠山市", "泉").Return(kanaRec, true)
	mockMatcher.On("MatchRome", "兵庫県", "丹波篠山市", "泉").Return(romeRec, true)

	rows := []models.AddressRecord{
		addressRow("28", "兵庫県", "28221", "篠山市", "282210001001", "泉", 35.0, 135.0, "35.000000", "135.000000"),
	}

	// Execute
	records, summary := a.Assemble("28", rows)

	// Assert
	require.Len(t, records, 1)
	assert.Equal(t, models.OutputRecord{
		PrefectureCode: "28",
		PrefectureName: "兵庫県",
		PrefectureKana: "ヒョウゴケン",
		PrefectureRome: "HYOGO KEN",
		CityCode:       "28221",
		CityName:       "丹波篠山市",
		CityKana:       "タンバササヤマシ",
		CityRome:       "TAMBASASAYAMA SHI",
		PostalCode:     "6692141",
		DistrictCode:   "282210001001",
		DistrictName:   "泉",
		Latitude:       "35.000000",
		Longitude:      "135.000000",
		GeoHash:        "xn0p0581b",
	}, records[0])
	assert.Equal(t, 1, summary.Hit)
	assert.Equal(t, 0, summary.NoHit)
	mockMatcher.AssertExpectations(t)
	mockMatcher.AssertNotCalled(t, "MatchKana", "兵庫県", "篠山市", "泉")
}

func TestAssembler_DivergenceOverride(t *testing.T) {
	kana := []models.PostalKanaRecord{{
		PostalPlace:    models.PostalPlace{Prefecture: "東京都", City: "八丈島八丈町", District: "以下に掲載がない場合"},
		PostalCode:     "1001400",
		PrefectureKana: "ﾄｳｷｮｳﾄ",
		CityKana:       "ﾊﾁｼﾞｮｳｼﾞﾏﾊﾁｼﾞｮｳﾏﾁ",
	}}
	rome := []models.PostalRomeRecord{{
		PostalPlace:    models.PostalPlace{Prefecture: "東京都", City: "八丈島八丈町", District: "以下に掲載がない場合"},
		PostalCode:     "1001400",
		PrefectureRome: "TOKYO TO",
		CityRome:       "HACHIJOJIMA HACHIJO MACHI",
	}}
	m := matcher.New(kana, rome, exceptions.Divergences)
	a := NewAssembler(m, exceptions.Renames, zerolog.Nop())

	rows := []models.AddressRecord{
		addressRow("13", "東京都", "13401", "八丈町", "134010001001", "三根", 33.11, 139.79, "33.110000", "139.790000"),
		addressRow("13", "東京都", "13401", "八丈町", "134010002001", "大賀郷", 33.10, 139.78, "33.100000", "139.780000"),
	}

	records, summary := a.Assemble("13", rows)

	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, "八丈町", r.CityName)
		assert.Equal(t, "ハチジョウマチ", r.CityKana)
		assert.Equal(t, "HACHIJO MACHI", r.CityRome)
		assert.Equal(t, "トウキョウト", r.PrefectureKana)
		assert.Equal(t, "1001400", r.PostalCode)
	}
	assert.Equal(t, 2, summary.Hit)
	assert.Equal(t, "ﾊﾁｼﾞｮｳｼﾞﾏﾊﾁｼﾞｮｳﾏﾁ", kana[0].CityKana)
}

func TestAssembler_MissesAreCountedAndEmpty(t *testing.T) {
	kana := []models.PostalKanaRecord{{
		PostalPlace:    models.PostalPlace{Prefecture: "北海道", City: "札幌市中央区", District: "北一条西"},
		PostalCode:     "0600001",
		PrefectureKana: "ﾎｯｶｲﾄﾞｳ",
		CityKana:       "ｻｯﾎﾟﾛｼﾁｭｳｵｳｸ",
	}}
	m := matcher.New(kana, nil, exceptions.Divergences)
	a := NewAssembler(m, exceptions.Renames, zerolog.Nop())

	rows := []models.AddressRecord{
		addressRow("01", "北海道", "01101", "札幌市中央区", "011010001001", "北一条西一丁目", 43.06, 141.35, "43.06", "141.35"),
		addressRow("01", "北海道", "01102", "札幌市北区", "011020001001", "北七条西", 43.07, 141.34, "43.07", "141.34"),
		addressRow("01", "北海道", "01102", "札幌市北区", "011020001002", "北八条西", 43.08, 141.34, "43.08", "141.34"),
	}

	records, summary := a.Assemble("01", rows)

	require.Len(t, records, 3)
	assert.Equal(t, len(rows), summary.Total())
	assert.Equal(t, 0, summary.Hit)
	assert.Equal(t, 3, summary.NoHit)
	assert.Equal(t, []string{"北海道札幌市中央区", "北海道札幌市北区"}, summary.NoHitCases)
	assert.Equal(t, 2, summary.MissingPostalCode)

	// kana found, rome missing
	assert.Equal(t, "0600001", records[0].PostalCode)
	assert.Equal(t, "サッポロシチュウオウク", records[0].CityKana)
	assert.Empty(t, records[0].CityRome)

	// nothing found
	assert.Empty(t, records[1].PostalCode)
	assert.Empty(t, records[1].PrefectureKana)
	assert.Empty(t, records[1].PrefectureRome)
	assert.Equal(t, "札幌市北区", records[1].CityName)
	assert.Len(t, records[1].GeoHash, 9)
}

func TestAssembler_EmptyPrefecture(t *testing.T) {
	a := NewAssembler(matcher.New(nil, nil, nil), nil, zerolog.Nop())

	records, summary := a.Assemble("47", nil)

	assert.Empty(t, records)
	assert.Equal(t, "47", summary.PrefCode)
	assert.Equal(t, 0, summary.Total())
	assert.NotNil(t, summary.NoHitCases)
}
