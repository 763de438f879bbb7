// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package cwa implements a weather source for the open data API of the Central Weather
// Administration of Taiwan.
package cwa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wneessen/weathercard/internal/http"
	"github.com/wneessen/weathercard/internal/logger"
	"github.com/wneessen/weathercard/internal/weather"
)

const (
	name = "cwa"

	DefaultBaseURL     = "https://opendata.cwa.gov.tw/api/v1/rest/datastore"
	observationDataset = "O-A0003-001"
	forecastDataset    = "F-C0032-001"

	elementWindSpeed   = "WDSD"
	elementTemperature = "TEMP"
	elementWeather     = "Wx"
	elementRain        = "PoP"
	elementComfort     = "CI"
)

// taipei is used for observation times that carry no UTC offset.
var taipei = time.FixedZone("CST", 8*60*60)

var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

type CWA struct {
	baseURL string
	log     *logger.Logger
	http    *http.Client
}

// value is an element or parameter value. The API sends these as strings, some dataset
// versions use plain numbers.
type value string

type observationResponse struct {
	Success string `json:"success"`
	Records struct {
		Location []struct {
			LocationName string `json:"locationName"`
			Time         struct {
				ObsTime string `json:"obsTime"`
			} `json:"time"`
			WeatherElement []struct {
				ElementName  string `json:"elementName"`
				ElementValue value  `json:"elementValue"`
			} `json:"weatherElement"`
		} `json:"location"`
	} `json:"records"`
}

type parameter struct {
	ParameterName  value `json:"parameterName"`
	ParameterValue value `json:"parameterValue"`
}

type forecastResponse struct {
	Success string `json:"success"`
	Records struct {
		Location []struct {
			LocationName   string `json:"locationName"`
			WeatherElement []struct {
				ElementName string `json:"elementName"`
				Time        []struct {
					StartTime string    `json:"startTime"`
					EndTime   string    `json:"endTime"`
					Parameter parameter `json:"parameter"`
				} `json:"time"`
			} `json:"weatherElement"`
		} `json:"location"`
	} `json:"records"`
}

// New returns a CWA weather source. An empty baseURL selects DefaultBaseURL.
func New(http *http.Client, log *logger.Logger, baseURL string) (*CWA, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &CWA{baseURL: strings.TrimSuffix(baseURL, "/"), http: http, log: log}, nil
}

func (c *CWA) Name() string {
	return name
}

// CurrentObservation fetches the latest observation of the station with the given location
// name.
func (c *CWA) CurrentObservation(ctx context.Context, locationName, credential string) (weather.Observation, error) {
	res := new(observationResponse)
	obs := weather.Observation{}
	if err := c.get(ctx, observationDataset, locationName, credential, res); err != nil {
		return obs, err
	}

	if len(res.Records.Location) == 0 {
		return obs, c.formatError("no location in observation response", nil)
	}
	loc := res.Records.Location[0]

	values := make(map[string]value)
	for _, element := range loc.WeatherElement {
		switch element.ElementName {
		case elementWindSpeed, elementTemperature:
			values[element.ElementName] = element.ElementValue
		}
	}

	var err error
	if obs.WindSpeed, err = c.floatElement(values, elementWindSpeed); err != nil {
		return obs, err
	}
	if obs.Temperature, err = c.floatElement(values, elementTemperature); err != nil {
		return obs, err
	}
	if obs.ObservationTime, err = parseTime(loc.Time.ObsTime); err != nil {
		return obs, c.formatError("invalid observation time", err)
	}
	obs.Location = loc.LocationName

	return obs, nil
}

// Forecast fetches the forecast of the given city and extracts the first time bucket of
// the weather phenomenon, precipitation probability and comfort index elements.
func (c *CWA) Forecast(ctx context.Context, cityName, credential string) (weather.Forecast, error) {
	res := new(forecastResponse)
	fcast := weather.Forecast{}
	if err := c.get(ctx, forecastDataset, cityName, credential, res); err != nil {
		return fcast, err
	}

	if len(res.Records.Location) == 0 {
		return fcast, c.formatError("no location in forecast response", nil)
	}
	loc := res.Records.Location[0]

	params := make(map[string]parameter)
	for _, element := range loc.WeatherElement {
		switch element.ElementName {
		case elementWeather, elementRain, elementComfort:
			if len(element.Time) == 0 {
				return fcast, c.formatError(fmt.Sprintf("no time bucket for element %s", element.ElementName), nil)
			}
			params[element.ElementName] = element.Time[0].Parameter
		}
	}
	for _, key := range []string{elementWeather, elementRain, elementComfort} {
		if _, ok := params[key]; !ok {
			return fcast, c.formatError(fmt.Sprintf("missing element %s", key), nil)
		}
	}

	code, err := strconv.Atoi(strings.TrimSpace(string(params[elementWeather].ParameterValue)))
	if err != nil {
		return fcast, c.formatError("invalid weather code", err)
	}
	rain, err := strconv.ParseFloat(strings.TrimSpace(string(params[elementRain].ParameterName)), 64)
	if err != nil {
		return fcast, c.formatError("invalid precipitation probability", err)
	}

	fcast.WeatherCode = code
	fcast.Description = string(params[elementWeather].ParameterName)
	fcast.RainPossibility = rain
	fcast.Comfortability = string(params[elementComfort].ParameterName)

	return fcast, nil
}

// get performs the request against the given dataset and maps failures onto the weather
// error types.
func (c *CWA) get(ctx context.Context, dataset, locationName, credential string, target any) error {
	query := url.Values{}
	query.Set("Authorization", credential)
	query.Set("locationName", locationName)

	c.log.Debug("requesting CWA dataset", slog.String("dataset", dataset), slog.String("location", locationName))
	code, err := c.http.Get(ctx, c.baseURL+"/"+dataset, target, query, nil)
	if err != nil {
		if errors.Is(err, http.ErrInvalidJSON) {
			return c.formatError("invalid JSON in "+dataset+" response", err)
		}
		return &weather.NetworkError{Source: name, Err: err}
	}
	if code < 200 || code > 299 {
		return &weather.StatusError{Source: name, StatusCode: code}
	}
	return nil
}

func (c *CWA) floatElement(values map[string]value, key string) (float64, error) {
	raw, ok := values[key]
	if !ok {
		return 0, c.formatError(fmt.Sprintf("missing element %s", key), nil)
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		return 0, c.formatError(fmt.Sprintf("invalid value for element %s", key), err)
	}
	return val, nil
}

func (c *CWA) formatError(reason string, err error) error {
	return &weather.DataFormatError{Source: name, Reason: reason, Err: err}
}

func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("empty time")
	}
	var err error
	for _, layout := range timeLayouts {
		var parsed time.Time
		parsed, err = time.ParseInLocation(layout, raw, taipei)
		if err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, err
}

func (v *value) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("empty value")
	}
	if string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return fmt.Errorf("invalid string value: %w", err)
		}
		*v = value(str)
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err != nil {
		return fmt.Errorf("invalid value format: %s", string(b))
	}
	*v = value(b)
	return nil
}
