// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package moment determines whether it is day or night at a reference station.
package moment

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nathan-osman/go-sunrise"

	"github.com/wneessen/weathercard/internal/location"
)

// Period is either Day or Night.
type Period int

const (
	Day Period = iota
	Night
)

// zone is the local time zone of all stations in the location table.
var zone = time.FixedZone("CST", 8*60*60)

func (p Period) String() string {
	if p == Day {
		return "day"
	}
	return "night"
}

// MarshalText implements encoding.TextMarshaler.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Theme returns the name of the card theme for the period.
func (p Period) Theme() string {
	if p == Day {
		return "light"
	}
	return "dark"
}

// Moment is the result of a day/night lookup.
type Moment struct {
	Period  Period
	Station string
	Sunrise time.Time
	Sunset  time.Time
}

// Resolver looks up moments against a clock.
type Resolver struct {
	clock clockwork.Clock
}

// New returns a Resolver. A nil clock selects the wall clock.
func New(clock clockwork.Clock) *Resolver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Resolver{clock: clock}
}

// Of returns the current moment at the reference station with the given name.
func (r *Resolver) Of(stationName string) (Moment, error) {
	station, err := location.LookupStation(stationName)
	if err != nil {
		return Moment{}, fmt.Errorf("failed to look up reference station: %w", err)
	}
	return At(station, r.clock.Now()), nil
}

// At returns the moment at the station for the given point in time.
func At(station location.Station, now time.Time) Moment {
	local := now.In(zone)
	rise, set := sunrise.SunriseSunset(station.Latitude, station.Longitude, local.Year(), local.Month(), local.Day())

	moment := Moment{
		Period:  Night,
		Station: station.Name,
		Sunrise: rise.In(zone),
		Sunset:  set.In(zone),
	}
	// Zero times mean the sun does not rise or set on that day
	if !rise.IsZero() && !set.IsZero() && now.After(rise) && now.Before(set) {
		moment.Period = Day
	}
	return moment
}
