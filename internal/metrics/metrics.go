// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics holds the Prometheus instruments shared across Agora.
// All collectors are registered with the default registry, so mounting
// promhttp.Handler() on /metrics is enough to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agora_http_requests_total",
			Help: "HTTP requests by method, route pattern, and status code.",
		}, []string{"method", "route", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agora_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"})

	StoreErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agora_store_errors_total",
			Help: "Failed data-access operations by entity and operation.",
		}, []string{"entity", "op"})

	PermissionDeniedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agora_permission_denied_total",
			Help: "Requests rejected by a route guard, by guard name.",
		}, []string{"guard"})

	RateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "agora_rate_limited_total",
			Help: "Requests rejected by the per-IP rate limiter.",
		})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		StoreErrorsTotal,
		PermissionDeniedTotal,
		RateLimitedTotal,
	)
}
