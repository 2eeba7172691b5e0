package source

import (
	"fmt"
	"strings"
)

// Default download locations.
const (
	DefaultKanaURL     = "https://www.post.japanpost.jp/zipcode/dl/kogaki/zip/ken_all.zip"
	DefaultRomeURL     = "https://www.post.japanpost.jp/zipcode/dl/roman/ken_all_rome.zip"
	DefaultISJTemplate = "https://nlftp.mlit.go.jp/isj/dls/data/{version}/{code}000-{version}.zip"
	DefaultISJVersion  = "13.0b"
)

// AddressURL expands an address-geometry URL template for one prefecture.
func AddressURL(template, version, prefCode string) string {
	return strings.NewReplacer("{version}", version, "{code}", prefCode).Replace(template)
}

// PrefectureCode formats a prefecture number as its two-digit code.
func PrefectureCode(n int) string {
	return fmt.Sprintf("%02d", n)
}
