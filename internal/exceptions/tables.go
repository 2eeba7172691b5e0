// Package exceptions holds the curated municipality naming exceptions used
// when joining the address registry with the postal code datasets.
package exceptions

// Rename is a municipality that changed its name after the registry snapshot.
type Rename struct {
	Prefecture string
	Original   string
	Renamed    string
}

// Divergence is a municipality the postal datasets name differently from the
// registry. Kana and Rome, when set, replace the postal city reading.
type Divergence struct {
	Prefecture string
	Postal     string
	Registry   string
	Kana       string
	Rome       string
}

// RenameTable is looked up by (prefecture, original name).
type RenameTable []Rename

// DivergenceTable is looked up by (prefecture, registry name).
type DivergenceTable []Divergence

// Renames is the registry-side rename history.
var Renames = RenameTable{
	{Prefecture: "兵庫県", Original: "篠山市", Renamed: "丹波篠山市"},
	{Prefecture: "福岡県", Original: "筑紫郡那珂川町", Renamed: "那珂川市"},
}

// Divergences is the postal/registry naming divergence list.
var Divergences = DivergenceTable{
	{Prefecture: "青森県", Postal: "東津軽郡外ヶ浜町", Registry: "東津軽郡外ケ浜町"},
	{Prefecture: "茨城県", Postal: "龍ケ崎市", Registry: "龍ヶ崎市"},
	{Prefecture: "千葉県", Postal: "鎌ケ谷市", Registry: "鎌ヶ谷市"},
	{Prefecture: "千葉県", Postal: "袖ケ浦市", Registry: "袖ヶ浦市"},
	{Prefecture: "東京都", Postal: "三宅島三宅村", Registry: "三宅村",
		Kana: "ミヤケムラ", Rome: "MIYAKE MURA"},
	{Prefecture: "東京都", Postal: "八丈島八丈町", Registry: "八丈町",
		Kana: "ハチジョウマチ", Rome: "HACHIJO MACHI"},
	{Prefecture: "滋賀県", Postal: "犬上郡多賀町", Registry: "犬上郡大字多賀町",
		Kana: "イヌカミグンオオアザタガチョウ", Rome: "INUKAMI GUN OAZA TAGA CHO"},
	{Prefecture: "福岡県", Postal: "糟屋郡須惠町", Registry: "糟屋郡須恵町"},
}

// Apply returns the current name of city, or city itself when it was never renamed.
func (t RenameTable) Apply(prefecture, city string) string {
	for _, r := range t {
		if r.Prefecture == prefecture && r.Original == city {
			return r.Renamed
		}
	}
	return city
}

// Lookup finds the divergence entry for a registry-side city name.
func (t DivergenceTable) Lookup(prefecture, registryCity string) (Divergence, bool) {
	for _, d := range t {
		if d.Prefecture == prefecture && d.Registry == registryCity {
			return d, true
		}
	}
	return Divergence{}, false
}

// RenameCity applies the default rename table.
func RenameCity(prefecture, city string) string {
	return Renames.Apply(prefecture, city)
}

// LookupDivergence searches the default divergence table.
func LookupDivergence(prefecture, registryCity string) (Divergence, bool) {
	return Divergences.Lookup(prefecture, registryCity)
}
