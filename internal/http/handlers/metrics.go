package handlers

import (
	"bytes"
	"log"
	"time"

	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/valyala/fasthttp"
)

var (
	loginsTotal            *prometheus.CounterVec
	stationsSubmittedTotal *prometheus.CounterVec
	stationsApprovedTotal  *prometheus.CounterVec
)

// InitPrometheusMetrics registers the process metrics. Call once at
// startup, before the first request.
func InitPrometheusMetrics() {
	loginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stationmap",
			Name:      "logins_total",
			Help:      "Total number of admin login attempts.",
		},
		[]string{"result"},
	)
	stationsSubmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stationmap",
			Name:      "stations_submitted_total",
			Help:      "Total number of station submissions.",
		},
		[]string{"kind", "source"},
	)
	stationsApprovedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stationmap",
			Name:      "stations_approved_total",
			Help:      "Total number of station approvals.",
		},
		[]string{"kind"},
	)
	prometheus.MustRegister(loginsTotal, stationsSubmittedTotal, stationsApprovedTotal)
}

// MetricsHandler exposes the registry in Prometheus text format. Admin
// only; the counts say how busy moderation is, which is nobody else's
// business. By default only the application's own families are
// returned; ?all=1 includes the Go runtime and process collectors.
func MetricsHandler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}

		metricFamilies, err := prometheus.DefaultGatherer.Gather()
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			ctx.SetBodyString("failed to gather metrics")
			return
		}

		if len(ctx.QueryArgs().Peek("all")) == 0 {
			filtered := make([]*dto.MetricFamily, 0, len(metricFamilies))
			for _, mf := range metricFamilies {
				if strings.HasPrefix(mf.GetName(), "stationmap_") {
					filtered = append(filtered, mf)
				}
			}
			metricFamilies = filtered
		}

		var buf bytes.Buffer
		encoder := expfmt.NewEncoder(&buf, expfmt.FmtText)
		for _, mf := range metricFamilies {
			if err := encoder.Encode(mf); err != nil {
				ctx.SetStatusCode(fasthttp.StatusInternalServerError)
				ctx.SetBodyString("failed to encode metrics")
				return
			}
		}

		ctx.SetContentType(string(expfmt.FmtText))
		ctx.Response.Header.Set("Cache-Control", "no-store")
		ctx.SetBody(buf.Bytes())
	}
}

// RequestLogger logs method, path, status and duration for every
// request.
func RequestLogger(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		log.Printf("%s %s -> %d (%s) ip=%s", ctx.Method(), ctx.Path(), ctx.Response.StatusCode(), time.Since(start), ctx.RemoteAddr())
	}
}
