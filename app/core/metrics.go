package core

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/verso-cms/verso/pkg/metrics"
)

type Metrics struct {
	apiResponseTime *prometheus.HistogramVec
	apiErrorCounter *prometheus.CounterVec
}

func NewMetrics(ns, system string) *Metrics {
	// setup metric
	metrics.SetupMetricsManager(ns, system, prometheus.DefaultRegisterer.(*prometheus.Registry))

	m := &Metrics{
		apiResponseTime: metrics.NewHistogramVec("api_response_time", []string{"api"}),
		apiErrorCounter: metrics.NewCounterVec("api_error", []string{"method", "api", "status"}),
	}

	return m
}

func (m *Metrics) ApiErrorInc(method, api string, status int) {
	m.apiErrorCounter.WithLabelValues(method, api, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ApiResponseTimer(api string) *prometheus.Timer {
	return prometheus.NewTimer(m.apiResponseTime.WithLabelValues(api))
}
