// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package testhelper

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"testing"
)

// TestOnlineAPIURL is an API endpoint that is only contacted in integration tests
const TestOnlineAPIURL = "https://opendata.cwa.gov.tw/api/v1/rest/datastore/O-A0003-001"

// MockRoundTripper is a http.RoundTripper that calls Fn for every request
type MockRoundTripper struct {
	Fn func(*http.Request) (*http.Response, error)
}

func (m MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.Fn(req)
}

// PerformIntegrationTests skips the calling test unless PERFORM_INTEGRATION_TESTS is set
func PerformIntegrationTests(t *testing.T) {
	t.Helper()
	if val := os.Getenv("PERFORM_INTEGRATION_TESTS"); val == "" {
		t.Skip("skipping integration tests")
	}
}

// JSONResponse returns a http.Response with the given status code and body
func JSONResponse(code int, body []byte) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header:     header,
	}
}

// FileResponse returns a http.Response with status 200 and the content of the given file
func FileResponse(t *testing.T, file string) *http.Response {
	t.Helper()
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read response file %q: %s", file, err)
	}
	return JSONResponse(http.StatusOK, data)
}

// CWAKey returns the CWA API key for online tests or skips the calling test
func CWAKey(t *testing.T) string {
	t.Helper()
	key := os.Getenv("WEATHERCARD_CWA_APIKEY")
	if key == "" {
		t.Skip("no CWA API key set in WEATHERCARD_CWA_APIKEY")
	}
	return key
}
