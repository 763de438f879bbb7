// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"time"
)

// Source is implemented by each weather API backend. It performs exactly one outbound request
// per call.
type Source interface {
	Name() string
	CurrentObservation(ctx context.Context, locationName, credential string) (Observation, error)
	Forecast(ctx context.Context, cityName, credential string) (Forecast, error)
}

// Observation is a single real-time reading of an observation station.
type Observation struct {
	Location        string
	WindSpeed       float64
	Temperature     float64
	ObservationTime time.Time
}

// Forecast holds the first time bucket of a city forecast.
type Forecast struct {
	WeatherCode     int
	Description     string
	RainPossibility float64
	Comfortability  string
}

// ViewModel is the merged record of an Observation and a Forecast.
type ViewModel struct {
	Location        string    `json:"location"`
	Description     string    `json:"description"`
	WindSpeed       float64   `json:"windSpeed"`
	Temperature     float64   `json:"temperature"`
	RainPossibility float64   `json:"rainPossibility"`
	ObservationTime time.Time `json:"observationTime"`
	Comfortability  string    `json:"comfortability"`
	WeatherCode     int       `json:"weatherCode"`
	IsLoading       bool      `json:"isLoading"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewViewModel returns the placeholder model used before the first successful refresh.
func NewViewModel() ViewModel {
	return ViewModel{IsLoading: true}
}

// Merge combines an observation and a forecast into a fresh, fully loaded ViewModel.
func Merge(obs Observation, fcast Forecast, at time.Time) ViewModel {
	return ViewModel{
		Location:        obs.Location,
		Description:     fcast.Description,
		WindSpeed:       obs.WindSpeed,
		Temperature:     obs.Temperature,
		RainPossibility: fcast.RainPossibility,
		ObservationTime: obs.ObservationTime,
		Comfortability:  fcast.Comfortability,
		WeatherCode:     fcast.WeatherCode,
		IsLoading:       false,
		UpdatedAt:       at,
	}
}

// Category returns the icon category of the model's weather code.
func (v ViewModel) Category() Category {
	return Classify(v.WeatherCode)
}
