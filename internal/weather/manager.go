// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/wneessen/weathercard/internal/logger"
)

const refreshKey = "refresh"

// DefaultRefreshTimeout bounds a single refresh, independent of the callers waiting for it.
const DefaultRefreshTimeout = time.Second * 30

// Params identifies what a Manager fetches.
type Params struct {
	ObservationName string
	ForecastCity    string
	Credential      string
}

// Observer is notified after every refresh with its outcome and duration.
type Observer func(err error, duration time.Duration)

// Option configures a Manager.
type Option func(*Manager)

// WithObserver registers fn to be called after every refresh.
func WithObserver(fn Observer) Option {
	return func(m *Manager) {
		m.observer = fn
	}
}

// WithClock sets the clock used to timestamp merged models.
func WithClock(clock clockwork.Clock) Option {
	return func(m *Manager) {
		m.clock = clock
	}
}

// WithRefreshTimeout sets the upper bound of a single refresh.
func WithRefreshTimeout(timeout time.Duration) Option {
	return func(m *Manager) {
		if timeout > 0 {
			m.timeout = timeout
		}
	}
}

// Manager owns the ViewModel and is its only writer. Readers get value snapshots.
type Manager struct {
	source   Source
	params   Params
	logger   *logger.Logger
	clock    clockwork.Clock
	observer Observer
	timeout  time.Duration

	group   singleflight.Group
	current atomic.Pointer[ViewModel]

	mu          sync.Mutex
	subscribers map[chan ViewModel]struct{}
}

// NewManager creates a Manager for the given params and starts the first refresh in the
// background. Errors of that refresh are logged.
func NewManager(ctx context.Context, source Source, params Params, log *logger.Logger, opts ...Option) (*Manager, error) {
	if source == nil {
		return nil, errors.New("weather source is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}

	m := &Manager{
		source:      source,
		params:      params,
		logger:      log,
		clock:       clockwork.NewRealClock(),
		timeout:     DefaultRefreshTimeout,
		subscribers: make(map[chan ViewModel]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	initial := NewViewModel()
	m.current.Store(&initial)

	go func() {
		if err := m.Refresh(ctx); err != nil {
			m.logger.Error("initial weather refresh failed", logger.Err(err),
				slog.String("location", params.ObservationName), slog.String("city", params.ForecastCity))
		}
	}()

	return m, nil
}

// Params returns the parameters the manager was created with.
func (m *Manager) Params() Params {
	return m.params
}

// Current returns the last published ViewModel.
func (m *Manager) Current() ViewModel {
	return *m.current.Load()
}

// Refresh fetches the observation and the forecast concurrently and publishes the merged
// model once both succeeded. If either fails, the error is returned, the data fields stay
// untouched and the loading flag is reset. Calls overlapping an in-flight refresh wait for
// it and share its result. The shared refresh is not canceled with any single caller's
// context, a canceled caller only stops waiting for it.
func (m *Manager) Refresh(ctx context.Context) error {
	res := m.group.DoChan(refreshKey, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
		defer cancel()
		return nil, m.refresh(fetchCtx)
	})
	select {
	case r := <-res:
		return r.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) refresh(ctx context.Context) error {
	start := m.clock.Now()
	m.update(func(vm *ViewModel) { vm.IsLoading = true })

	var (
		obs   Observation
		fcast Forecast
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		obs, err = m.source.CurrentObservation(groupCtx, m.params.ObservationName, m.params.Credential)
		if err != nil {
			return fmt.Errorf("failed to fetch current observation: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		fcast, err = m.source.Forecast(groupCtx, m.params.ForecastCity, m.params.Credential)
		if err != nil {
			return fmt.Errorf("failed to fetch weather forecast: %w", err)
		}
		return nil
	})

	err := group.Wait()
	if err != nil {
		m.update(func(vm *ViewModel) { vm.IsLoading = false })
	} else {
		merged := Merge(obs, fcast, m.clock.Now())
		m.update(func(vm *ViewModel) { *vm = merged })
		m.logger.Debug("weather data refreshed", slog.String("source", m.source.Name()),
			slog.String("location", merged.Location), slog.Int("weather_code", merged.WeatherCode))
	}

	if m.observer != nil {
		m.observer(err, m.clock.Since(start))
	}
	return err
}

// update is the single write point of the model. It copies the current snapshot, applies fn
// and publishes the result to all subscribers.
func (m *Manager) update(fn func(*ViewModel)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := *m.current.Load()
	fn(&next)
	m.current.Store(&next)

	for ch := range m.subscribers {
		select {
		case ch <- next:
		default:
		}
	}
}

// Subscribe returns a channel that receives every published ViewModel, starting with the
// current one, and a function to unsubscribe. Slow subscribers miss updates.
func (m *Manager) Subscribe(size int) (<-chan ViewModel, func()) {
	if size < 1 {
		size = 1
	}
	ch := make(chan ViewModel, size)

	m.mu.Lock()
	m.subscribers[ch] = struct{}{}
	ch <- *m.current.Load()
	m.mu.Unlock()

	var once sync.Once
	unsub := func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subscribers, ch)
			m.mu.Unlock()
			close(ch)
		})
	}
	return ch, unsub
}
