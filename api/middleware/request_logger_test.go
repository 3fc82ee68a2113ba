// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/metrics"
)

type mockLogger struct {
	infos []any
	warns []any
}

func (m *mockLogger) With(_ ...any) log.Logger                     { return m }
func (m *mockLogger) New(_ ...any) log.Logger                      { return m }
func (m *mockLogger) Log(_ slog.Level, _ string, _ ...any)         {}
func (m *mockLogger) Trace(_ string, _ ...any)                     {}
func (m *mockLogger) Debug(_ string, _ ...any)                     {}
func (m *mockLogger) Error(_ string, _ ...any)                     {}
func (m *mockLogger) Crit(_ string, _ ...any)                      {}
func (m *mockLogger) Enabled(_ context.Context, _ slog.Level) bool { return true }
func (m *mockLogger) Handler() slog.Handler                        { return nil }
func (m *mockLogger) Info(_ string, ctx ...any)                    { m.infos = append(m.infos, ctx...) }
func (m *mockLogger) Warn(_ string, ctx ...any)                    { m.warns = append(m.warns, ctx...) }

func TestRequestLogger(t *testing.T) {
	ok := func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Write(body)
	}
	slow := func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(20 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}
	fail := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}

	tests := []struct {
		name      string
		handler   http.HandlerFunc
		enabled   bool
		threshold time.Duration
		infos     bool
		warns     bool
	}{
		{"enabled", ok, true, 0, true, false},
		{"disabled", ok, false, 0, false, false},
		{"slow request", slow, false, time.Millisecond, true, false},
		{"fast request under threshold", ok, false, time.Minute, false, false},
		{"server error", fail, false, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &mockLogger{}
			var enabled atomic.Bool
			enabled.Store(tt.enabled)

			handler := RequestLogger(logger, &enabled, tt.threshold)(tt.handler)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/accounts/x/stake", strings.NewReader(`{"amount":"1"}`)))

			assert.Equal(t, tt.infos, len(logger.infos) > 0)
			assert.Equal(t, tt.warns, len(logger.warns) > 0)
			if tt.infos {
				assert.Contains(t, logger.infos, "/accounts/x/stake")
			}
		})
	}
}

func TestRequestLoggerKeepsBody(t *testing.T) {
	var enabled atomic.Bool
	enabled.Store(true)
	logger := &mockLogger{}

	handler := RequestLogger(logger, &enabled, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Write(body)
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("payload")))

	assert.Equal(t, "payload", rr.Body.String())
	assert.Contains(t, logger.infos, "payload")
}

func TestMetricsNamedRoutesOnly(t *testing.T) {
	metrics.InitializePrometheusMetrics()

	router := mux.NewRouter()
	router.Path("/named").Name("GET /named").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	router.Path("/anonymous").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {})
	router.Use(Metrics)

	for _, path := range []string{"/named", "/anonymous"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	}

	rr := httptest.NewRecorder()
	metrics.HTTPHandler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	out := rr.Body.String()
	assert.Contains(t, out, `name="GET /named"`)
	assert.Contains(t, out, `code="418"`)
	assert.NotContains(t, out, "/anonymous")
}
