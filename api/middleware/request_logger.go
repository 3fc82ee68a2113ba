// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"bytes"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/vechain/rewardpool/log"
)

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs every request while enabled is set, and any request slower than
// slowThreshold or answered with a 5xx regardless of it. A zero threshold disables the
// slow request log.
func RequestLogger(logger log.Logger, enabled *atomic.Bool, slowThreshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body []byte
			if enabled.Load() && r.Body != nil {
				var err error
				if body, err = io.ReadAll(r.Body); err != nil {
					logger.Warn("unexpected body read error", "err", err)
					http.Error(w, "unreadable body", http.StatusBadRequest)
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
			}

			rec := &statusRecorder{w, http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)
			duration := time.Since(start)

			slow := slowThreshold > 0 && duration > slowThreshold
			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Warn("API request failed",
					"method", r.Method,
					"uri", r.URL.String(),
					"status", rec.status,
					"durationMs", duration.Milliseconds(),
				)
			case enabled.Load() || slow:
				logger.Info("API request",
					"method", r.Method,
					"uri", r.URL.String(),
					"status", rec.status,
					"durationMs", duration.Milliseconds(),
					"body", string(body),
				)
			}
		})
	}
}
