// Package observe はアプリケーションのメトリクス (OpenTelemetry) を提供する。
// 本番では Prometheus エクスポータ経由で /metrics から取得する。
// テストでは ManualReader を持つ MeterProvider を NewMetrics に渡す。
package observe

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "go_5_superlingo"

// Metrics はメトリクス計器の集合。nil でも各メソッドは何もしない
type Metrics struct {
	LessonsCompleted metric.Int64Counter
	XPAwarded        metric.Int64Counter
	TutorReplies     metric.Int64Counter
	SpeechChecks     metric.Int64Counter
	UpstreamErrors   metric.Int64Counter
}

func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(meterName)
	m := &Metrics{}
	var err error

	if m.LessonsCompleted, err = meter.Int64Counter("superlingo.lessons.completed",
		metric.WithDescription("Lesson completion requests, by whether a new record was created")); err != nil {
		return nil, err
	}
	if m.XPAwarded, err = meter.Int64Counter("superlingo.xp.awarded",
		metric.WithDescription("Experience points awarded")); err != nil {
		return nil, err
	}
	if m.TutorReplies, err = meter.Int64Counter("superlingo.tutor.replies",
		metric.WithDescription("Tutor chat replies, by outcome")); err != nil {
		return nil, err
	}
	if m.SpeechChecks, err = meter.Int64Counter("superlingo.speech.checks",
		metric.WithDescription("Pronunciation checks, by result")); err != nil {
		return nil, err
	}
	if m.UpstreamErrors, err = meter.Int64Counter("superlingo.upstream.errors",
		metric.WithDescription("Failed calls to AI services, by service")); err != nil {
		return nil, err
	}
	return m, nil
}

// NewNoopMetrics は何も記録しない計器 (メトリクス無効時やテスト用)
func NewNoopMetrics() *Metrics {
	m, _ := NewMetrics(noop.NewMeterProvider())
	return m
}

func (m *Metrics) RecordLessonCompletion(ctx context.Context, created bool, xp int) {
	if m == nil {
		return
	}
	m.LessonsCompleted.Add(ctx, 1, metric.WithAttributes(attribute.Bool("created", created)))
	if xp > 0 {
		m.XPAwarded.Add(ctx, int64(xp))
	}
}

func (m *Metrics) RecordTutorReply(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.TutorReplies.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *Metrics) RecordSpeechCheck(ctx context.Context, correct bool) {
	if m == nil {
		return
	}
	m.SpeechChecks.Add(ctx, 1, metric.WithAttributes(attribute.Bool("correct", correct)))
}

func (m *Metrics) RecordUpstreamError(ctx context.Context, service string) {
	if m == nil {
		return
	}
	m.UpstreamErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("service", service)))
}

// Provider は Prometheus エクスポータ付きの MeterProvider
type Provider struct {
	MeterProvider *sdkmetric.MeterProvider
}

// NewPrometheusProvider はデフォルトの Prometheus レジストリへ書き出す MeterProvider を作る
func NewPrometheusProvider() (*Provider, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, err
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	return &Provider{MeterProvider: mp}, nil
}

func (p *Provider) Shutdown(ctx context.Context) error {
	return p.MeterProvider.Shutdown(ctx)
}

// Handler は /metrics 用のハンドラ
func Handler() http.Handler {
	return promhttp.Handler()
}
