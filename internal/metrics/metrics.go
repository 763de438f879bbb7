// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package metrics provides the Prometheus collectors of the weather refresh.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wneessen/weathercard/internal/weather"
)

const namespace = "weathercard"

type Metrics struct {
	registry *prometheus.Registry

	refreshes       *prometheus.CounterVec
	refreshDuration prometheus.Histogram
	lastSuccess     prometheus.Gauge
}

// New creates the collectors and registers them with a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Total weather refreshes by result.",
		}, []string{"result"}),
		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Duration of weather refreshes.",
			Buckets:   prometheus.DefBuckets,
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_successful_refresh_timestamp_seconds",
			Help:      "Unix time of the last successful weather refresh.",
		}),
	}
	m.registry.MustRegister(m.refreshes, m.refreshDuration, m.lastSuccess)
	return m
}

// ObserveRefresh records a refresh outcome. It satisfies weather.Observer.
func (m *Metrics) ObserveRefresh(err error, duration time.Duration) {
	m.refreshDuration.Observe(duration.Seconds())
	if err != nil {
		m.refreshes.WithLabelValues(weather.ErrorKind(err)).Inc()
		return
	}
	m.refreshes.WithLabelValues("success").Inc()
	m.lastSuccess.SetToCurrentTime()
}

// Handler returns the exposition handler for the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
