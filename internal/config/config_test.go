// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	const (
		expectLogLevel              = slog.LevelInfo
		expectLocation              = "臺北市"
		expectBaseURL               = "https://opendata.cwa.gov.tw/api/v1/rest/datastore"
		expectIntervalWeatherUpdate = time.Minute * 15
		expectListen                = ":8080"
	)
	t.Run("new config with all defaults set", func(t *testing.T) {
		conf, err := New()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if conf.LogLevel != expectLogLevel {
			t.Errorf("expected log level to be: %s, got %s", expectLogLevel, conf.LogLevel)
		}
		if conf.Location != expectLocation {
			t.Errorf("expected location to be: %s, got %s", expectLocation, conf.Location)
		}
		if conf.CWA.BaseURL != expectBaseURL {
			t.Errorf("expected base URL to be: %s, got %s", expectBaseURL, conf.CWA.BaseURL)
		}
		if conf.Intervals.WeatherUpdate != expectIntervalWeatherUpdate {
			t.Errorf("expected weather update interval to be: %s, got %s", expectIntervalWeatherUpdate,
				conf.Intervals.WeatherUpdate)
		}
		if conf.Server.Listen != expectListen {
			t.Errorf("expected listen address to be: %s, got %s", expectListen, conf.Server.Listen)
		}
		if conf.Templates.Card != DefaultCardTpl {
			t.Errorf("expected card template to be the default, got %q", conf.Templates.Card)
		}
		if conf.Output.Print {
			t.Error("expected card printing to be disabled by default")
		}
	})
	t.Run("card printing is enabled from env", func(t *testing.T) {
		t.Setenv("WEATHERCARD_OUTPUT_PRINT", "true")
		conf, err := New()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if !conf.Output.Print {
			t.Error("expected card printing to be enabled")
		}
	})
	t.Run("api key is read from env", func(t *testing.T) {
		t.Setenv("WEATHERCARD_CWA_APIKEY", "CWA-TEST")
		conf, err := New()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if conf.CWA.APIKey != "CWA-TEST" {
			t.Errorf("expected api key to be: %s, got %s", "CWA-TEST", conf.CWA.APIKey)
		}
	})
	t.Run("new config with invalid values from env", func(t *testing.T) {
		t.Setenv("WEATHERCARD_LOGLEVEL", "invalid")
		_, err := New()
		if err == nil {
			t.Error("expected config to fail, but didn't")
		}
	})
	t.Run("config validate location", func(t *testing.T) {
		t.Setenv("WEATHERCARD_LOCATION", "Atlantis")
		_, err := New()
		if err == nil {
			t.Error("expected config to fail, but didn't")
		}
	})
	t.Run("config validate weather update interval", func(t *testing.T) {
		t.Setenv("WEATHERCARD_INTERVALS_WEATHER_UPDATE", "10s")
		_, err := New()
		if err == nil {
			t.Error("expected config to fail, but didn't")
		}
	})
	t.Run("config validate base URL", func(t *testing.T) {
		t.Setenv("WEATHERCARD_CWA_BASE_URL", "not a url")
		_, err := New()
		if err == nil {
			t.Error("expected config to fail, but didn't")
		}
	})
}

func TestNewFromFile(t *testing.T) {
	t.Run("reading config from valid file succeeds", func(t *testing.T) {
		conf, err := NewFromFile("../../etc", "config.toml")
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if conf.Location != "臺北市" {
			t.Errorf("expected location to be: %s, got %s", "臺北市", conf.Location)
		}
		if conf.Intervals.WeatherUpdate != time.Minute*15 {
			t.Errorf("expected weather update interval to be: %s, got %s", time.Minute*15,
				conf.Intervals.WeatherUpdate)
		}
		if conf.Server.ShutdownTimeout != time.Second*5 {
			t.Errorf("expected shutdown timeout to be: %s, got %s", time.Second*5, conf.Server.ShutdownTimeout)
		}
	})
	t.Run("reading config from non-existent file fails", func(t *testing.T) {
		_, err := NewFromFile("../../etc", "non-existent.toml")
		if err == nil {
			t.Error("expected config to fail, but didn't")
		}
	})
	t.Run("reading invalid config file fails", func(t *testing.T) {
		_, err := NewFromFile("../../testdata", "invalid.toml")
		if err == nil {
			t.Error("expected config to fail, but didn't")
		}
	})
}
