// Package geocode annotates coordinates with geohash codes.
package geocode

import (
	"errors"
	"strings"

	"github.com/mmcloughlin/geohash"
	"github.com/paulmach/orb"
)

// Precision is the number of geohash characters emitted (a cell of roughly 4.8m x 4.8m).
const Precision = 9

// Encode returns the geohash of a latitude/longitude pair at Precision.
func Encode(lat, lon float64) string {
	return geohash.EncodeWithPrecision(lat, lon, Precision)
}

// EncodePoint returns the geohash of an orb point ([lon, lat]).
func EncodePoint(p orb.Point) string {
	return Encode(p.Lat(), p.Lon())
}

const alphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

// ErrInvalidGeoHash is returned by Decode for empty or malformed codes.
var ErrInvalidGeoHash = errors.New("geocode: invalid geohash")

// Decode returns the center of a geohash cell.
func Decode(hash string) (lat, lon float64, err error) {
	hash = strings.ToLower(hash)
	if hash == "" || len(hash) > 12 {
		return 0, 0, ErrInvalidGeoHash
	}
	for _, r := range hash {
		if !strings.ContainsRune(alphabet, r) {
			return 0, 0, ErrInvalidGeoHash
		}
	}

	lat, lon = geohash.Decode(hash)
	return lat, lon, nil
}
