// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import "github.com/wneessen/weathercard/internal/weather"

// MoonPhaseIcon is a map where moon phase names are keys and their corresponding emoji representations are values.
var MoonPhaseIcon = map[string]string{
	"New Moon":        "🌑",
	"Waxing Crescent": "🌒",
	"First Quarter":   "🌓",
	"Waxing Gibbous":  "🌔",
	"Full Moon":       "🌕",
	"Waning Gibbous":  "🌖",
	"Third Quarter":   "🌗",
	"Waning Crescent": "🌘",
}

// CategoryLabel maps weather categories to the labels shown on the card
var CategoryLabel = map[weather.Category]string{
	weather.CategoryUnknown:                "未知",
	weather.CategoryClear:                  "晴天",
	weather.CategoryCloudy:                 "多雲",
	weather.CategoryCloudyFog:              "多雲有霧",
	weather.CategoryFog:                    "有霧",
	weather.CategoryPartiallyClearWithRain: "晴時多雲偶陣雨",
	weather.CategorySnowing:                "下雪",
	weather.CategoryThunderstorm:           "雷雨",
}
