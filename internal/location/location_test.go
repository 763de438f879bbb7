// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package location

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	t.Run("known display name resolves both endpoint identifiers", func(t *testing.T) {
		loc, err := Lookup("臺北市")
		if err != nil {
			t.Fatalf("failed to look up location: %s", err)
		}
		if loc.ObservationName != "臺北" {
			t.Errorf("expected observation name to be %q, got %q", "臺北", loc.ObservationName)
		}
		if loc.ForecastCity != "臺北市" {
			t.Errorf("expected forecast city to be %q, got %q", "臺北市", loc.ForecastCity)
		}
		if loc.SunriseStation != "臺北市" {
			t.Errorf("expected sunrise station to be %q, got %q", "臺北市", loc.SunriseStation)
		}
	})
	t.Run("unknown display name fails", func(t *testing.T) {
		_, err := Lookup("Atlantis")
		if !errors.Is(err, ErrUnknownLocation) {
			t.Errorf("expected error to be %s, got %v", ErrUnknownLocation, err)
		}
	})
}

func TestLookupStation(t *testing.T) {
	t.Run("every location references a known station", func(t *testing.T) {
		for _, loc := range All() {
			if _, err := LookupStation(loc.SunriseStation); err != nil {
				t.Errorf("location %q references unknown station: %s", loc.DisplayName, err)
			}
		}
	})
	t.Run("unknown station fails", func(t *testing.T) {
		_, err := LookupStation("nowhere")
		if !errors.Is(err, ErrUnknownLocation) {
			t.Errorf("expected error to be %s, got %v", ErrUnknownLocation, err)
		}
	})
}

func TestAll(t *testing.T) {
	list := All()
	if len(list) != len(Names()) {
		t.Fatalf("expected %d locations, got %d", len(Names()), len(list))
	}
	list[0].DisplayName = "mutated"
	if All()[0].DisplayName == "mutated" {
		t.Error("expected All to return a copy of the location table")
	}
}
