// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ミドルウェアやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
	RecordArticleCreated()
	RecordInteraction(interactionType string)
	RecordSessionCreated()
	RecordSessionJoin()
	RecordSessionLeave()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus      *prometheus.CounterVec
	requestLatency  prometheus.Histogram
	articlesCreated prometheus.Counter
	interactions    *prometheus.CounterVec
	sessionsCreated prometheus.Counter
	sessionJoins    prometheus.Counter
	sessionLeaves   prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "senseilink_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "senseilink_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		articlesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "senseilink_articles_created_total",
			Help: "作成された記事の合計数",
		}),
		interactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "senseilink_interactions_total",
			Help: "種別ごとのインタラクションの合計数",
		}, []string{"type"}),
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "senseilink_sessions_created_total",
			Help: "作成された交流セッションの合計数",
		}),
		sessionJoins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "senseilink_session_joins_total",
			Help: "交流セッションへの参加の合計数",
		}),
		sessionLeaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "senseilink_session_leaves_total",
			Help: "交流セッションからの退出の合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestLatency,
		c.articlesCreated,
		c.interactions,
		c.sessionsCreated,
		c.sessionJoins,
		c.sessionLeaves,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// RecordArticleCreated は記事作成を記録する。
func (c *Collector) RecordArticleCreated() {
	c.articlesCreated.Inc()
}

// RecordInteraction はインタラクションを種別付きで記録する。
func (c *Collector) RecordInteraction(interactionType string) {
	c.interactions.WithLabelValues(interactionType).Inc()
}

// RecordSessionCreated は交流セッション作成を記録する。
func (c *Collector) RecordSessionCreated() {
	c.sessionsCreated.Inc()
}

// RecordSessionJoin は交流セッション参加を記録する。
func (c *Collector) RecordSessionJoin() {
	c.sessionJoins.Inc()
}

// RecordSessionLeave は交流セッション退出を記録する。
func (c *Collector) RecordSessionLeave() {
	c.sessionLeaves.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
