// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package httpapi exposes the weather view model to the dashboard frontend.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/wneessen/weathercard/internal/location"
	"github.com/wneessen/weathercard/internal/logger"
	"github.com/wneessen/weathercard/internal/moment"
	"github.com/wneessen/weathercard/internal/weather"
)

const maxBodySize = 1 << 12

// Backend is the state the API serves.
type Backend interface {
	Current() weather.ViewModel
	Refresh(ctx context.Context) (weather.ViewModel, error)
	Location() location.Location
	SetLocation(ctx context.Context, displayName string) (location.Location, error)
	Moment() (moment.Moment, error)
	RenderCard(w io.Writer) error
}

type Server struct {
	backend  Backend
	logger   *logger.Logger
	metrics  http.Handler
	validate *validator.Validate
}

type weatherResponse struct {
	weather.ViewModel
	DisplayName string           `json:"displayName"`
	Category    weather.Category `json:"category"`
	Moment      moment.Period    `json:"moment"`
	Theme       string           `json:"theme"`
}

type locationRequest struct {
	Name string `json:"name" validate:"required,max=32"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// NewServer returns an API server. metrics may be nil.
func NewServer(backend Backend, log *logger.Logger, metrics http.Handler) *Server {
	return &Server{
		backend:  backend,
		logger:   log,
		metrics:  metrics,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Router returns the complete handler including middleware, health and metrics routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	r.Route("/api", s.RegisterRoutes)

	return r
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/weather", s.handleWeather)
	r.Post("/weather/refresh", s.handleRefresh)
	r.Get("/weather/card", s.handleCard)
	r.Get("/locations", s.handleLocations)
	r.Get("/location", s.handleGetLocation)
	r.Put("/location", s.handleSetLocation)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) weatherResponse(vm weather.ViewModel) (weatherResponse, error) {
	mom, err := s.backend.Moment()
	if err != nil {
		return weatherResponse{}, err
	}
	return weatherResponse{
		ViewModel:   vm,
		DisplayName: s.backend.Location().DisplayName,
		Category:    vm.Category(),
		Moment:      mom.Period,
		Theme:       mom.Period.Theme(),
	}, nil
}

func (s *Server) handleWeather(w http.ResponseWriter, _ *http.Request) {
	res, err := s.weatherResponse(s.backend.Current())
	if err != nil {
		s.logger.Error("failed to determine moment", logger.Err(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to determine moment"})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	vm, err := s.backend.Refresh(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Kind: weather.ErrorKind(err)})
		return
	}
	res, err := s.weatherResponse(vm)
	if err != nil {
		s.logger.Error("failed to determine moment", logger.Err(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to determine moment"})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := s.backend.RenderCard(w); err != nil {
		s.logger.Error("failed to render card", logger.Err(err))
		http.Error(w, "failed to render card", http.StatusInternalServerError)
	}
}

func (s *Server) handleLocations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, location.Names())
}

func (s *Server) handleGetLocation(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"name": s.backend.Location().DisplayName})
}

func (s *Server) handleSetLocation(w http.ResponseWriter, r *http.Request) {
	req := new(locationRequest)
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "location name is required"})
		return
	}

	loc, err := s.backend.SetLocation(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, location.ErrUnknownLocation) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown location"})
			return
		}
		s.logger.Error("failed to switch location", logger.Err(err), slog.String("location", req.Name))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to switch location"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"name": loc.DisplayName})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("handled request", slog.String("method", r.Method), slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()), slog.Duration("duration", time.Since(start)))
	})
}
