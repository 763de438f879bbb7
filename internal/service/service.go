// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	stdhttp "net/http"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	"github.com/wneessen/weathercard/internal/config"
	"github.com/wneessen/weathercard/internal/http"
	"github.com/wneessen/weathercard/internal/httpapi"
	"github.com/wneessen/weathercard/internal/location"
	"github.com/wneessen/weathercard/internal/logger"
	"github.com/wneessen/weathercard/internal/metrics"
	"github.com/wneessen/weathercard/internal/moment"
	"github.com/wneessen/weathercard/internal/presenter"
	"github.com/wneessen/weathercard/internal/weather"
	"github.com/wneessen/weathercard/internal/weather/provider/cwa"
)

const (
	FetchTimeout      = time.Second * 30
	readHeaderTimeout = time.Second * 10
	subscriberBuffer  = 8
)

var ErrNoLocation = errors.New("no location selected")

type Service struct {
	config    *config.Config
	logger    *logger.Logger
	source    weather.Source
	metrics   *metrics.Metrics
	moments   *moment.Resolver
	presenter *presenter.Presenter
	scheduler gocron.Scheduler
	clock     clockwork.Clock
	output    io.Writer

	lock     sync.RWMutex
	baseCtx  context.Context
	location location.Location
	manager  *weather.Manager
	unsub    func()

	printLock sync.Mutex
}

type Option func(*options)

type options struct {
	client *http.Client
	clock  clockwork.Clock
	output io.Writer
}

// WithHTTPClient sets the HTTP client used by the weather source.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithClock sets the clock used by the scheduler, the managers and the moment resolver.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithOutput sets the writer the card is printed to on every update. Without it, cards
// are only served through the HTTP API.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

func New(conf *config.Config, log *logger.Logger, opts ...Option) (*Service, error) {
	if conf == nil {
		return nil, errors.New("config is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	if conf.CWA.APIKey == "" {
		return nil, errors.New("cwa provider requires an API key")
	}

	o := &options{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(o)
	}
	if o.client == nil {
		o.client = http.New(log)
	}

	source, err := cwa.New(o.client, log, conf.CWA.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create cwa weather source: %w", err)
	}
	pres, err := presenter.New(conf.Templates.Card)
	if err != nil {
		return nil, err
	}
	scheduler, err := gocron.NewScheduler(gocron.WithClock(o.clock))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Service{
		config:    conf,
		logger:    log,
		source:    source,
		metrics:   metrics.New(),
		moments:   moment.New(o.clock),
		presenter: pres,
		scheduler: scheduler,
		clock:     o.clock,
		output:    o.output,
	}, nil
}

// Run selects the configured location, starts the refresh schedule and the HTTP server and
// blocks until the context is canceled or the server fails.
func (s *Service) Run(ctx context.Context) error {
	s.lock.Lock()
	s.baseCtx = ctx
	s.lock.Unlock()

	if _, err := s.SetLocation(ctx, s.config.Location); err != nil {
		return err
	}
	if err := s.createScheduledJob(ctx, s.config.Intervals.WeatherUpdate, s.refreshWeather,
		"weather_update_job"); err != nil {
		return err
	}
	s.scheduler.Start()

	api := httpapi.NewServer(s, s.logger, s.metrics.Handler())
	server := &stdhttp.Server{
		Addr:              s.config.Server.Listen,
		Handler:           api.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("starting http server", slog.String("listen", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			runErr = fmt.Errorf("http server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("failed to shut down http server: %w", err))
	}
	if err := s.scheduler.Shutdown(); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("failed to shut down scheduler: %w", err))
	}
	s.lock.Lock()
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
	s.lock.Unlock()

	return runErr
}

func (s *Service) createScheduledJob(ctx context.Context, interval time.Duration, task func(context.Context),
	jobName string,
) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(jobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return nil
}

// refreshWeather is the scheduled refresh of the active location.
func (s *Service) refreshWeather(ctx context.Context) {
	ctxFetch, cancelFetch := context.WithTimeout(ctx, FetchTimeout)
	defer cancelFetch()

	if _, err := s.Refresh(ctxFetch); err != nil {
		s.logger.Error("scheduled weather refresh failed", logger.Err(err),
			slog.String("kind", weather.ErrorKind(err)))
	}
}

// SetLocation replaces the active manager with one for the location with the given display
// name. The new manager starts its first refresh right away.
func (s *Service) SetLocation(ctx context.Context, displayName string) (location.Location, error) {
	loc, err := location.Lookup(displayName)
	if err != nil {
		return loc, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	// Request contexts end with the request, the manager has to outlive it
	base := s.baseCtx
	if base == nil {
		base = context.WithoutCancel(ctx)
	}
	params := weather.Params{
		ObservationName: loc.ObservationName,
		ForecastCity:    loc.ForecastCity,
		Credential:      s.config.CWA.APIKey,
	}
	manager, err := weather.NewManager(base, s.source, params, s.logger,
		weather.WithObserver(s.metrics.ObserveRefresh), weather.WithClock(s.clock))
	if err != nil {
		return loc, fmt.Errorf("failed to create weather manager: %w", err)
	}

	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
	if s.output != nil {
		updates, unsub := manager.Subscribe(subscriberBuffer)
		s.unsub = unsub
		go s.printUpdates(updates)
	}
	s.location = loc
	s.manager = manager
	s.logger.Info("location selected", slog.String("location", loc.DisplayName),
		slog.String("station", loc.ObservationName), slog.String("city", loc.ForecastCity))

	return loc, nil
}

func (s *Service) Location() location.Location {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.location
}

func (s *Service) activeManager() *weather.Manager {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.manager
}

// Current returns the model of the active location, or the loading placeholder if no
// location has been selected yet.
func (s *Service) Current() weather.ViewModel {
	manager := s.activeManager()
	if manager == nil {
		return weather.NewViewModel()
	}
	return manager.Current()
}

// Refresh refreshes the active location and returns the resulting model.
func (s *Service) Refresh(ctx context.Context) (weather.ViewModel, error) {
	manager := s.activeManager()
	if manager == nil {
		return weather.NewViewModel(), ErrNoLocation
	}
	if err := manager.Refresh(ctx); err != nil {
		return manager.Current(), err
	}
	return manager.Current(), nil
}

func (s *Service) Moment() (moment.Moment, error) {
	loc := s.Location()
	if loc.SunriseStation == "" {
		return moment.Moment{}, ErrNoLocation
	}
	return s.moments.Of(loc.SunriseStation)
}

// RenderCard renders the card of the current model to w.
func (s *Service) RenderCard(w io.Writer) error {
	return s.renderCard(w, s.Current())
}

func (s *Service) renderCard(w io.Writer, vm weather.ViewModel) error {
	mom, err := s.Moment()
	if err != nil {
		return err
	}
	return s.presenter.Render(w, s.presenter.BuildContext(vm, mom, s.clock.Now()))
}

// printUpdates prints the card for every loaded model received on updates until the channel
// is closed. Models that only reset the loading flag after a failed refresh are skipped.
func (s *Service) printUpdates(updates <-chan weather.ViewModel) {
	var last time.Time
	for vm := range updates {
		if vm.IsLoading || vm.UpdatedAt.Equal(last) {
			continue
		}
		last = vm.UpdatedAt
		s.printCard(vm)
	}
}

func (s *Service) printCard(vm weather.ViewModel) {
	buf := bytes.NewBuffer(nil)
	if err := s.renderCard(buf, vm); err != nil {
		s.logger.Error("failed to render card", logger.Err(err))
		return
	}
	buf.WriteString("\n")

	s.printLock.Lock()
	defer s.printLock.Unlock()
	if _, err := s.output.Write(buf.Bytes()); err != nil {
		s.logger.Error("failed to print card", logger.Err(err))
	}
}
