package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	passDuration     prom.Histogram
	images           *prom.CounterVec
	renders          *prom.CounterVec
	captionsAttached prom.Gauge
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		passDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "imgcaptions",
			Name:      "extraction_pass_duration_seconds",
			Help:      "Duration of full-document image extraction passes",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}),
		images: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "imgcaptions",
			Name:      "images_total",
			Help:      "Embeds seen by the extractor by kind and result",
		}, []string{"kind", "result"}),
		renders: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "imgcaptions",
			Name:      "renders_total",
			Help:      "Document renders by mode and result",
		}, []string{"mode", "result"}),
		captionsAttached: prom.NewGauge(prom.GaugeOpts{
			Namespace: "imgcaptions",
			Name:      "captions_attached",
			Help:      "Captions attached by the most recent render",
		}),
	}
	reg.MustRegister(pr.passDuration, pr.images, pr.renders, pr.captionsAttached)
	return pr
}

func (p *PrometheusRecorder) ObservePass(d time.Duration) {
	if p == nil {
		return
	}
	p.passDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncImage(kind string, result ResultLabel) {
	if p == nil {
		return
	}
	p.images.WithLabelValues(kind, string(result)).Inc()
}

func (p *PrometheusRecorder) IncRender(mode string, result ResultLabel) {
	if p == nil {
		return
	}
	p.renders.WithLabelValues(mode, string(result)).Inc()
}

func (p *PrometheusRecorder) SetCaptionsAttached(n int) {
	if p == nil {
		return
	}
	p.captionsAttached.Set(float64(n))
}
