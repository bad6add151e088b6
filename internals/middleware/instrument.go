/*
 * Copyright (c) 2024. HomeAssistantVersionControl.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var constLabels = map[string]string{"app": "version-control"}

var (
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "http_duration_seconds",
		Help:        "Duration of HTTP requests.",
		ConstLabels: constLabels,
	}, []string{"path", "method", "status"})
)

var responseCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:        "http_response_total",
		Help:        "How many HTTP requests processed, partitioned by status code, method and HTTP path.",
		ConstLabels: constLabels,
	},
	[]string{"path", "method", "status"})

var requestCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:        "http_requests_total",
		Help:        "How many HTTP requests processed, partitioned by status code, method and HTTP path.",
		ConstLabels: constLabels,
	},
	[]string{"path", "method"})

var currentRequestGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name:        "http_requests_current",
	Help:        "no of request being served currently",
	ConstLabels: constLabels,
}, []string{"path", "method"})

var RestoreCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:        "file_restore_total",
		Help:        "no of file restores attempted, partitioned by outcome",
		ConstLabels: constLabels,
	},
	[]string{"outcome"})

var GitOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "git_operation_duration_seconds",
	Help: "Duration of git operation request",
}, []string{"method", "status"})

var PanicCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:        "panic",
		Help:        "panic in the app",
		ConstLabels: constLabels,
	},
	[]string{})

// statusDelegator records the code written by downstream handlers.
type statusDelegator struct {
	http.ResponseWriter
	status int
}

func (d *statusDelegator) WriteHeader(code int) {
	d.status = code
	d.ResponseWriter.WriteHeader(code)
}

func (d *statusDelegator) Status() int {
	return d.status
}

// PrometheusMiddleware implements mux.MiddlewareFunc.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()
		route := mux.CurrentRoute(r)
		path, _ := route.GetPathTemplate()
		method := r.Method
		requestCounter.WithLabelValues(path, method).Inc()
		g := currentRequestGauge.WithLabelValues(path, method)
		g.Inc()
		defer g.Dec()
		d := &statusDelegator{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(d, r)
		httpDuration.WithLabelValues(path, method, strconv.Itoa(d.Status())).Observe(time.Since(start).Seconds())
		responseCounter.WithLabelValues(path, method, strconv.Itoa(d.Status())).Inc()
	})
}
