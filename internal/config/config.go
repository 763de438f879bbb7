// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/kkyr/fig"

	"github.com/wneessen/weathercard/internal/location"
)

const (
	configEnv      = "WEATHERCARD"
	DefaultCardTpl = "{{.Location}}\n{{.Description}}\n{{.Temperature}}°C  {{.CategoryLabel}}\n" +
		"Wind: {{floatFormat .WindSpeed 1}} m/s\nRain: {{floatFormat .RainPossibility 0}}%\n" +
		"{{.Comfortability}}\nObserved: {{timeFormat .ObservationTime \"15:04\"}}{{if .IsLoading}} …{{end}}"
)

// Config represents the application's configuration structure.
type Config struct {
	LogLevel slog.Level `fig:"loglevel" default:"0"`
	// Display name as listed in the location table
	Location string `fig:"location" default:"臺北市"`

	CWA struct {
		APIKey  string `fig:"apikey"`
		BaseURL string `fig:"base_url" default:"https://opendata.cwa.gov.tw/api/v1/rest/datastore"`
	} `fig:"cwa"`

	Intervals struct {
		WeatherUpdate time.Duration `fig:"weather_update" default:"15m"`
	} `fig:"intervals"`

	Server struct {
		Listen          string        `fig:"listen" default:":8080"`
		ShutdownTimeout time.Duration `fig:"shutdown_timeout" default:"5s"`
	} `fig:"server"`

	Templates struct {
		Card string `fig:"card"`
	} `fig:"templates"`

	// Print the rendered card to stdout whenever new weather data is published
	Output struct {
		Print bool `fig:"print"`
	} `fig:"output"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	if _, err := location.Lookup(c.Location); err != nil {
		return fmt.Errorf("invalid location: %w", err)
	}
	if c.CWA.BaseURL == "" {
		return errors.New("cwa base URL must not be empty")
	}
	if _, err := url.ParseRequestURI(c.CWA.BaseURL); err != nil {
		return fmt.Errorf("invalid cwa base URL: %w", err)
	}
	if c.Intervals.WeatherUpdate < time.Minute {
		return fmt.Errorf("invalid weather update interval: %s", c.Intervals.WeatherUpdate)
	}
	if c.Server.Listen == "" {
		return errors.New("server listen address must not be empty")
	}
	if c.Templates.Card == "" {
		c.Templates.Card = DefaultCardTpl
	}

	return nil
}
