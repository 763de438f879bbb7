// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

// Category is the icon category a weather code belongs to.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryClear
	CategoryCloudy
	CategoryCloudyFog
	CategoryFog
	CategoryPartiallyClearWithRain
	CategorySnowing
	CategoryThunderstorm
)

var categoryNames = map[Category]string{
	CategoryUnknown:                "unknown",
	CategoryClear:                  "clear",
	CategoryCloudy:                 "cloudy",
	CategoryCloudyFog:              "cloudy-fog",
	CategoryFog:                    "fog",
	CategoryPartiallyClearWithRain: "partially-clear-with-rain",
	CategorySnowing:                "snowing",
	CategoryThunderstorm:           "thunderstorm",
}

type codeRange struct {
	from, to int
	category Category
}

// codeRanges partitions the CWA weather phenomenon codes. Ranges must not overlap. Code 40
// is not assigned by the provider.
var codeRanges = []codeRange{
	{1, 1, CategoryClear},
	{2, 7, CategoryCloudy},
	{8, 14, CategoryPartiallyClearWithRain},
	{15, 18, CategoryThunderstorm},
	{19, 20, CategoryPartiallyClearWithRain},
	{21, 22, CategoryThunderstorm},
	{23, 23, CategorySnowing},
	{24, 24, CategoryFog},
	{25, 28, CategoryCloudyFog},
	{29, 32, CategoryPartiallyClearWithRain},
	{33, 36, CategoryThunderstorm},
	{37, 37, CategorySnowing},
	{38, 39, CategoryPartiallyClearWithRain},
	{41, 41, CategoryThunderstorm},
	{42, 42, CategorySnowing},
}

// Classify maps a weather code to its Category. Codes not covered by the table yield
// CategoryUnknown.
func Classify(code int) Category {
	for _, r := range codeRanges {
		if code >= r.from && code <= r.to {
			return r.category
		}
	}
	return CategoryUnknown
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[CategoryUnknown]
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
