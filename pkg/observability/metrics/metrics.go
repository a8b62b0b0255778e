/*
 * Copyright 2024 The Sealgate Authors
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

// Package metrics implements prometheus metrics and exposes the metrics
// HTTP listener
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricNamespace  = "sealgate"
	authnSubsystem   = "authn"
	sealerSubsystem  = "sealer"
	buildSubsystem   = "build"
	pipelineSubsystem = "pipeline"
)

// Default histogram buckets used by sealgate
var defaultBuckets = []float64{0.005, 0.025, 0.1, 0.5, 1, 5, 10}

// BuildInfo is a Gauge representing the binary build information of the
// running server instance
var BuildInfo *prometheus.GaugeVec

// AuthnAttempts is a Counter of login pipeline executions by outcome
var AuthnAttempts *prometheus.CounterVec

// AuthnShortcuts is a Counter of recovered-session dispositions on first visit
var AuthnShortcuts *prometheus.CounterVec

// SealOperations is a Counter of token wrap/unwrap operations by result
var SealOperations *prometheus.CounterVec

// SubmoduleRuns is a Counter of submodule executions by name and result
var SubmoduleRuns *prometheus.CounterVec

// PipelineRequestDuration is a Histogram of time required in seconds to run
// the login pipeline for a request
var PipelineRequestDuration prometheus.Histogram

func init() {

	BuildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: buildSubsystem,
			Name:      "info",
			Help:      "Sealgate build information of the running instance",
		},
		[]string{"goversion", "revision", "version"},
	)

	AuthnAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: authnSubsystem,
			Name:      "attempts_total",
			Help:      "Count of login pipeline executions by outcome",
		},
		[]string{"outcome"},
	)

	AuthnShortcuts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: authnSubsystem,
			Name:      "session_recoveries_total",
			Help:      "Count of recovered-session dispositions on first visit",
		},
		[]string{"disposition"},
	)

	SealOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: sealerSubsystem,
			Name:      "operations_total",
			Help:      "Count of token wrap and unwrap operations by result",
		},
		[]string{"operation", "result"},
	)

	SubmoduleRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: pipelineSubsystem,
			Name:      "submodule_runs_total",
			Help:      "Count of submodule executions by name and result",
		},
		[]string{"name", "result"},
	)

	PipelineRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Subsystem: pipelineSubsystem,
			Name:      "request_duration_seconds",
			Help:      "Time required in seconds to run the login pipeline",
			Buckets:   defaultBuckets,
		},
	)

	prometheus.MustRegister(BuildInfo, AuthnAttempts, AuthnShortcuts,
		SealOperations, SubmoduleRuns, PipelineRequestDuration)
}

// Handler returns the HTTP handler for the prometheus metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}

// ListenAndServe starts the metrics listener on the configured address and
// port, blocking until the server exits
func ListenAndServe(address string, port int) error {
	s := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", address, port),
		Handler:           Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.ListenAndServe()
}
