// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package http

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"runtime"
	"time"

	"github.com/wneessen/weathercard/internal/logger"
)

// DefaultTimeout caps a single CWA request including reading the body.
const DefaultTimeout = time.Second * 10

// version is set at build time.
var version = "dev"

// UserAgent identifies weathercard towards the open data API.
var UserAgent = fmt.Sprintf("Mozilla/5.0 (%s; %s) weathercard/%s (+https://github.com/wneessen/weathercard/)",
	runtime.GOOS, runtime.GOARCH, version)

var (
	ErrNonPointerTarget = errors.New("target must be a non-nil pointer")
	ErrInvalidJSON      = errors.New("failed to decode JSON")
)

// Client performs the JSON requests of the weather sources and logs what it cannot
// return as an error.
type Client struct {
	*http.Client
	logger *logger.Logger
}

// New returns a Client that honors the proxy environment and requires TLS 1.2.
func New(logger *logger.Logger) *Client {
	transport := &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
	}
	return &Client{
		Client: &http.Client{Timeout: DefaultTimeout, Transport: transport},
		logger: logger,
	}
}

// Get performs a HTTP GET request for the given URL and JSON-unmarshals the response into
// target. Responses with a non-2xx status code are drained but not decoded, the status code
// is returned with a nil error and it is up to the caller to judge it.
func (h *Client) Get(ctx context.Context, endpoint string, target any, query url.Values, headers map[string]string) (int, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return 0, ErrNonPointerTarget
	}

	// Prepare URL and query parameters
	reqURL, err := url.Parse(endpoint)
	if err != nil {
		return 0, fmt.Errorf("failed to parse URL: %w", err)
	}
	if len(query) > 0 {
		reqURL.RawQuery = query.Encode()
	}

	// Prepare HTTP request
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed create new HTTP request with context: %w", err)
	}
	request.Header.Set("User-Agent", UserAgent)
	request.Header.Set("Accept", "application/json")
	for k, v := range headers {
		request.Header.Set(k, v)
	}

	// Execute HTTP request
	response, err := h.Do(request)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to perform HTTP request: %w", err)
	}
	if response == nil {
		return 0, errors.New("nil response received")
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			h.logger.Error("failed to close HTTP request body", logger.Err(err))
		}
	}(response.Body)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, 1<<16))
		return response.StatusCode, nil
	}

	// Unmarshal the JSON API response into target
	if err = json.NewDecoder(response.Body).Decode(target); err != nil {
		return response.StatusCode, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	return response.StatusCode, nil
}
