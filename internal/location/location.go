// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package location holds the static table of supported locations and the stations they
// are resolved to.
package location

import (
	"errors"
	"fmt"
)

// ErrUnknownLocation is returned when a display name or station is not in the table.
var ErrUnknownLocation = errors.New("unknown location")

// Station is a reference station used for sunrise and sunset calculation.
type Station struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// Location maps a user-facing city name to the identifiers of the observation and the
// forecast endpoint.
type Location struct {
	// DisplayName is the name shown in the location picker
	DisplayName string
	// ObservationName is the observation station location name
	ObservationName string
	// ForecastCity is the city name used by the forecast endpoint
	ForecastCity string
	// SunriseStation is the reference station for the day/night moment
	SunriseStation string
}

var stations = map[string]Station{
	"宜蘭縣": {Name: "宜蘭縣", Latitude: 24.7640, Longitude: 121.7560},
	"嘉義市": {Name: "嘉義市", Latitude: 23.4960, Longitude: 120.4330},
	"屏東縣": {Name: "屏東縣", Latitude: 22.6570, Longitude: 120.4860},
	"雲林縣": {Name: "雲林縣", Latitude: 23.7070, Longitude: 120.5430},
	"臺東縣": {Name: "臺東縣", Latitude: 22.7520, Longitude: 121.1540},
	"臺北市": {Name: "臺北市", Latitude: 25.0380, Longitude: 121.5150},
	"金門縣": {Name: "金門縣", Latitude: 24.4090, Longitude: 118.2890},
	"桃園市": {Name: "桃園市", Latitude: 24.9920, Longitude: 121.3230},
	"彰化縣": {Name: "彰化縣", Latitude: 24.0750, Longitude: 120.5440},
	"嘉義縣": {Name: "嘉義縣", Latitude: 23.4580, Longitude: 120.2930},
	"高雄市": {Name: "高雄市", Latitude: 22.5660, Longitude: 120.3160},
	"基隆市": {Name: "基隆市", Latitude: 25.1330, Longitude: 121.7400},
	"臺南市": {Name: "臺南市", Latitude: 22.9930, Longitude: 120.2050},
	"南投縣": {Name: "南投縣", Latitude: 23.8810, Longitude: 120.9080},
	"臺中市": {Name: "臺中市", Latitude: 24.1460, Longitude: 120.6840},
	"新竹縣": {Name: "新竹縣", Latitude: 24.8290, Longitude: 121.0060},
	"花蓮縣": {Name: "花蓮縣", Latitude: 23.9750, Longitude: 121.6130},
	"連江縣": {Name: "連江縣", Latitude: 26.1690, Longitude: 119.9230},
	"澎湖縣": {Name: "澎湖縣", Latitude: 23.5650, Longitude: 119.5630},
	"苗栗縣": {Name: "苗栗縣", Latitude: 24.5650, Longitude: 120.8200},
	"新北市": {Name: "新北市", Latitude: 24.9960, Longitude: 121.4530},
	"新竹市": {Name: "新竹市", Latitude: 24.8010, Longitude: 120.9710},
}

// Ordered as presented in the location picker.
var locations = []Location{
	{DisplayName: "宜蘭縣", ObservationName: "宜蘭", ForecastCity: "宜蘭縣", SunriseStation: "宜蘭縣"},
	{DisplayName: "嘉義市", ObservationName: "嘉義", ForecastCity: "嘉義市", SunriseStation: "嘉義市"},
	{DisplayName: "屏東縣", ObservationName: "恆春", ForecastCity: "屏東縣", SunriseStation: "屏東縣"},
	{DisplayName: "雲林縣", ObservationName: "古坑", ForecastCity: "雲林縣", SunriseStation: "雲林縣"},
	{DisplayName: "臺東縣", ObservationName: "臺東", ForecastCity: "臺東縣", SunriseStation: "臺東縣"},
	{DisplayName: "臺北市", ObservationName: "臺北", ForecastCity: "臺北市", SunriseStation: "臺北市"},
	{DisplayName: "金門縣", ObservationName: "金門", ForecastCity: "金門縣", SunriseStation: "金門縣"},
	{DisplayName: "桃園市", ObservationName: "桃園", ForecastCity: "桃園市", SunriseStation: "桃園市"},
	{DisplayName: "彰化縣", ObservationName: "彰師大", ForecastCity: "彰化縣", SunriseStation: "彰化縣"},
	{DisplayName: "嘉義縣", ObservationName: "阿里山", ForecastCity: "嘉義縣", SunriseStation: "嘉義縣"},
	{DisplayName: "高雄市", ObservationName: "高雄", ForecastCity: "高雄市", SunriseStation: "高雄市"},
	{DisplayName: "基隆市", ObservationName: "基隆", ForecastCity: "基隆市", SunriseStation: "基隆市"},
	{DisplayName: "臺南市", ObservationName: "南區中心", ForecastCity: "臺南市", SunriseStation: "臺南市"},
	{DisplayName: "南投縣", ObservationName: "日月潭", ForecastCity: "南投縣", SunriseStation: "南投縣"},
	{DisplayName: "臺中市", ObservationName: "臺中", ForecastCity: "臺中市", SunriseStation: "臺中市"},
	{DisplayName: "新竹縣", ObservationName: "新竹", ForecastCity: "新竹縣", SunriseStation: "新竹縣"},
	{DisplayName: "花蓮縣", ObservationName: "花蓮", ForecastCity: "花蓮縣", SunriseStation: "花蓮縣"},
	{DisplayName: "連江縣", ObservationName: "馬祖", ForecastCity: "連江縣", SunriseStation: "連江縣"},
	{DisplayName: "澎湖縣", ObservationName: "澎湖", ForecastCity: "澎湖縣", SunriseStation: "澎湖縣"},
	{DisplayName: "苗栗縣", ObservationName: "後龍", ForecastCity: "苗栗縣", SunriseStation: "苗栗縣"},
	{DisplayName: "新北市", ObservationName: "板橋", ForecastCity: "新北市", SunriseStation: "新北市"},
	{DisplayName: "新竹市", ObservationName: "新竹市東區", ForecastCity: "新竹市", SunriseStation: "新竹市"},
}

// Lookup returns the location for the given display name.
func Lookup(displayName string) (Location, error) {
	for _, loc := range locations {
		if loc.DisplayName == displayName {
			return loc, nil
		}
	}
	return Location{}, fmt.Errorf("%w: %s", ErrUnknownLocation, displayName)
}

// LookupStation returns the reference station with the given name.
func LookupStation(name string) (Station, error) {
	station, ok := stations[name]
	if !ok {
		return Station{}, fmt.Errorf("%w: station %s", ErrUnknownLocation, name)
	}
	return station, nil
}

// All returns a copy of the location table.
func All() []Location {
	list := make([]Location, len(locations))
	copy(list, locations)
	return list
}

// Names returns the display names of all locations.
func Names() []string {
	names := make([]string, 0, len(locations))
	for _, loc := range locations {
		names = append(names, loc.DisplayName)
	}
	return names
}
