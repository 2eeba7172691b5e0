package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"jpaddress/internal/models"
	"jpaddress/internal/source"
	"jpaddress/internal/writer"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const template = "http://isj.test/{version}/{code}.zip"

// fakeFetcher serves rows by URL. Later prefectures answer faster so that
// concurrent completion order differs from prefecture order.
type fakeFetcher struct {
	mu     sync.Mutex
	rows   map[string][]source.Row
	delays map[string]time.Duration
	fail   map[string]error
	calls  []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string, columns []string) ([]source.Row, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	delay := f.delays[url]
	f.mu.Unlock()

	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if err := f.fail[url]; err != nil {
		return nil, err
	}
	rows, ok := f.rows[url]
	if !ok {
		return nil, fmt.Errorf("GET %s: status 404: %w", url, source.ErrNetwork)
	}
	return rows, nil
}

// MockSink is a mock implementation of the Sink interface
type MockSink struct {
	mock.Mock
}

func (m *MockSink) WriteFile(path string, records []models.OutputRecord) error {
	args := m.Called(path, records)
	return args.Error(0)
}

var prefectures = map[int][2]string{
	1:  {"北海道", "札幌市中央区"},
	13: {"東京都", "八丈町"},
	28: {"兵庫県", "篠山市"},
	47: {"沖縄県", "那覇市"},
}

func newFakeFetcher(first, last int) *fakeFetcher {
	f := &fakeFetcher{
		rows:   map[string][]source.Row{},
		delays: map[string]time.Duration{},
		fail:   map[string]error{},
	}

	var kana, rome []source.Row
	for n := first; n <= last; n++ {
		code := source.PrefectureCode(n)
		pref, city := fmt.Sprintf("県%s", code), fmt.Sprintf("市%s", code)
		if p, ok := prefectures[n]; ok {
			pref, city = p[0], p[1]
		}

		postalCity := city
		switch city {
		case "八丈町":
			postalCity = "八丈島　八丈町"
		case "篠山市":
			postalCity = "丹波篠山市"
		}
		postal := fmt.Sprintf("%s00000", code)
		if n%5 != 0 {
			kana = append(kana, source.Row{
				source.ColPostalCode:     postal,
				source.ColPrefecture:     pref,
				source.ColCity:           postalCity,
				source.ColDistrict:       "",
				source.ColPrefectureKana: "ｹﾝ",
				source.ColCityKana:       "ｼ",
			})
		}
		rome = append(rome, source.Row{
			source.ColPostalCode:     postal,
			source.ColPrefecture:     pref,
			source.ColCity:           postalCity,
			source.ColDistrict:       "",
			source.ColPrefectureRome: "KEN",
			source.ColCityRome:       "SHI",
		})

		var rows []source.Row
		for i := 0; i < 3; i++ {
			rows = append(rows, source.Row{
				source.ColISJPrefectureCode: code,
				source.ColISJPrefecture:     pref,
				source.ColISJCityCode:       code + "001",
				source.ColISJCity:           city,
				source.ColISJDistrictCode:   fmt.Sprintf("%s001000%d", code, i),
				source.ColISJDistrict:       fmt.Sprintf("字%d", i),
				source.ColISJLatitude:       fmt.Sprintf("%d.%06d", 24+n/3, i),
				source.ColISJLongitude:      fmt.Sprintf("%d.%06d", 123+n/4, i),
			})
		}
		url := source.AddressURL(template, "13.0b", code)
		f.rows[url] = rows
		f.delays[url] = time.Duration(last-n) * time.Millisecond
	}

	f.rows["http://postal.test/kana.zip"] = kana
	f.rows["http://postal.test/rome.zip"] = rome
	return f
}

func testOptions(concurrent bool, first, last int) Options {
	return Options{
		KanaURL:        "http://postal.test/kana.zip",
		RomeURL:        "http://postal.test/rome.zip",
		ISJURLTemplate: template,
		ISJVersion:     "13.0b",
		OutputPath:     "data/latest.csv",
		FirstPref:      first,
		LastPref:       last,
		Concurrent:     concurrent,
		Workers:        8,
	}
}

func render(records []models.OutputRecord) string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = writer.FormatRecord(r)
	}
	return strings.Join(lines, "\n")
}

func TestDriver_PrefectureCodes(t *testing.T) {
	d := NewDriver(nil, nil, Options{}, zerolog.Nop())

	codes := d.PrefectureCodes()

	require.Len(t, codes, 47)
	assert.Equal(t, "01", codes[0])
	assert.Equal(t, "09", codes[8])
	assert.Equal(t, "47", codes[46])
}

func TestDriver_Build_SequentialAndConcurrentMatch(t *testing.T) {
	sequential, err := NewDriver(newFakeFetcher(1, 47), nil, testOptions(false, 1, 47), zerolog.Nop()).Build(context.Background())
	require.NoError(t, err)

	concurrent, err := NewDriver(newFakeFetcher(1, 47), nil, testOptions(true, 1, 47), zerolog.Nop()).Build(context.Background())
	require.NoError(t, err)

	require.Len(t, sequential, 47*3)
	assert.Equal(t, render(sequential), render(concurrent))

	for i := 1; i < len(concurrent); i++ {
		assert.LessOrEqual(t, concurrent[i-1].PrefectureCode, concurrent[i].PrefectureCode)
	}
}

func TestDriver_Build_AppliesExceptions(t *testing.T) {
	records, err := NewDriver(newFakeFetcher(1, 47), nil, testOptions(true, 1, 47), zerolog.Nop()).Build(context.Background())
	require.NoError(t, err)

	var tokyo, hyogo, pref05 models.OutputRecord
	for _, r := range records {
		switch r.PrefectureCode {
		case "13":
			tokyo = r
		case "28":
			hyogo = r
		case "05":
			pref05 = r
		}
	}

	assert.Equal(t, "八丈町", tokyo.CityName)
	assert.Equal(t, "ハチジョウマチ", tokyo.CityKana)
	assert.Equal(t, "HACHIJO MACHI", tokyo.CityRome)
	assert.Equal(t, "丹波篠山市", hyogo.CityName)
	assert.Equal(t, "2800000", hyogo.PostalCode)
	assert.Equal(t, "シ", hyogo.CityKana)

	// every fifth prefecture has no kana rows
	assert.Empty(t, pref05.PostalCode)
	assert.Empty(t, pref05.CityKana)
	assert.Equal(t, "SHI", pref05.CityRome)
}

func TestDriver_Run_WritesOrderedOutput(t *testing.T) {
	// Setup
	fetcher := newFakeFetcher(11, 14)
	sink := new(MockSink)
	sink.On("WriteFile", "data/latest.csv", mock.MatchedBy(func(records []models.OutputRecord) bool {
		if len(records) != 12 {
			return false
		}
		return records[0].PrefectureCode == "11" && records[11].PrefectureCode == "14"
	})).Return(nil)

	d := NewDriver(fetcher, sink, testOptions(true, 11, 14), zerolog.Nop())

	// Execute
	err := d.Run(context.Background())

	// Assert
	require.NoError(t, err)
	sink.AssertExpectations(t)
	assert.Len(t, fetcher.calls, 6)
	assert.Equal(t, "http://postal.test/kana.zip", fetcher.calls[0])
	assert.Equal(t, "http://postal.test/rome.zip", fetcher.calls[1])
}

func TestDriver_Run_FailuresAreFatal(t *testing.T) {
	tests := []struct {
		name       string
		concurrent bool
		failURL    string
		expected   error
	}{
		{name: "kana dataset", failURL: "http://postal.test/kana.zip", expected: source.ErrArchive},
		{name: "rome dataset", failURL: "http://postal.test/rome.zip", expected: source.ErrDecode},
		{name: "prefecture sequential", failURL: source.AddressURL(template, "13.0b", "12"), expected: source.ErrParse},
		{name: "prefecture concurrent", concurrent: true, failURL: source.AddressURL(template, "13.0b", "12"), expected: source.ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			fetcher := newFakeFetcher(11, 14)
			fetcher.fail[tt.failURL] = fmt.Errorf("source: %s: %w", tt.failURL, tt.expected)
			sink := new(MockSink)

			d := NewDriver(fetcher, sink, testOptions(tt.concurrent, 11, 14), zerolog.Nop())

			// Execute
			err := d.Run(context.Background())

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)
			sink.AssertNotCalled(t, "WriteFile", mock.Anything, mock.Anything)
		})
	}
}

func TestDriver_Run_InvalidCoordinates(t *testing.T) {
	fetcher := newFakeFetcher(1, 1)
	url := source.AddressURL(template, "13.0b", "01")
	fetcher.rows[url][1][source.ColISJLongitude] = ""
	sink := new(MockSink)

	err := NewDriver(fetcher, sink, testOptions(false, 1, 1), zerolog.Nop()).Run(context.Background())

	assert.ErrorIs(t, err, source.ErrParse)
	sink.AssertNotCalled(t, "WriteFile", mock.Anything, mock.Anything)
}

func TestDriver_Run_SinkError(t *testing.T) {
	sink := new(MockSink)
	sink.On("WriteFile", mock.Anything, mock.Anything).Return(assert.AnError)

	err := NewDriver(newFakeFetcher(1, 2), sink, testOptions(false, 1, 2), zerolog.Nop()).Run(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
}
