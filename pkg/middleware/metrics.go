package middleware

import (
	"net/http"
	"time"

	"github.com/vfg2006/cohort-roas-api/pkg/metrics"
)

// Metrics registra contagem e duração por padrão de rota, não pela URL concreta
func Metrics(recorder *metrics.Recorder, route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if recorder == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := newLoggingResponseWriter(w)

			next.ServeHTTP(lrw, r)

			recorder.ObserveRequest(route, r.Method, lrw.statusCode, time.Since(start))
		})
	}
}
