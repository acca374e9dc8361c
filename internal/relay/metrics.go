package relay

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nao1215/gistrelay/pkg/gist"
)

// metrics はリレーのPrometheusメトリクス。
// サーバーごとにレジストリを持つため、テストで複数生成しても衝突しない。
type metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	upstreamCalls   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	relayedBytes    prometheus.Counter
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gistrelay_requests_total",
			Help: "Total number of relay requests by status code and outcome",
		}, []string{"code", "outcome"}),
		upstreamCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gistrelay_upstream_requests_total",
			Help: "Total number of upstream calls by call type and result",
		}, []string{"call", "result"}),
		upstreamLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gistrelay_upstream_request_duration_seconds",
			Help:    "Latency of upstream calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"call"}),
		relayedBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "gistrelay_relayed_bytes_total",
			Help: "Total number of file content bytes relayed to clients",
		}),
	}
}

// observeRequest はリレーリクエストの結果を記録する。
func (m *metrics) observeRequest(code int, outcome string) {
	m.requests.WithLabelValues(strconv.Itoa(code), outcome).Inc()
}

// observeUpstream は上流呼び出しの結果と所要時間を記録する。
func (m *metrics) observeUpstream(call string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.upstreamCalls.WithLabelValues(call, result).Inc()
	m.upstreamLatency.WithLabelValues(call).Observe(time.Since(start).Seconds())
}

// instrumentedDirectory は上流呼び出しごとにメトリクスを記録するGistDirectory。
type instrumentedDirectory struct {
	next    GistDirectory
	metrics *metrics
}

func (d instrumentedDirectory) ListGists(ctx context.Context, username string) ([]gist.GistSummary, error) {
	start := time.Now()
	gists, err := d.next.ListGists(ctx, username)
	d.metrics.observeUpstream("list", start, err)
	return gists, err
}

func (d instrumentedDirectory) FetchRaw(ctx context.Context, rawURL string) ([]byte, error) {
	start := time.Now()
	body, err := d.next.FetchRaw(ctx, rawURL)
	d.metrics.observeUpstream("raw", start, err)
	return body, err
}
