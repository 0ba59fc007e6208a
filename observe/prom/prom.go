// Package prom provides a Prometheus-backed observer for the future library.
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer implements future.Observer on top of Prometheus collectors.
type Observer struct {
	futuresCreated  prometheus.Counter
	futuresResolved *prometheus.CounterVec
	resolveDur      prometheus.Histogram
	awaitsStarted   prometheus.Counter
	awaitWait       prometheus.Histogram
}

// New returns an observer registered on reg. Pass prometheus.DefaultRegisterer
// to use the process-global registry.
func New(reg prometheus.Registerer) *Observer {
	o := &Observer{
		futuresCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "future_created_total",
			Help: "Futures constructed.",
		}),
		futuresResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "future_resolved_total",
			Help: "Futures settled, by outcome.",
		}, []string{"outcome"}),
		resolveDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "future_resolve_duration_seconds",
			Help:    "Time from construction to settlement.",
			Buckets: prometheus.DefBuckets,
		}),
		awaitsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "future_awaits_started_total",
			Help: "Blocking awaits entered (fast-path awaits are not counted).",
		}),
		awaitWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "future_await_wait_seconds",
			Help:    "Time spent blocked in Await.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(o.futuresCreated, o.futuresResolved, o.resolveDur, o.awaitsStarted, o.awaitWait)
	}
	return o
}

func (o *Observer) FutureCreated() { o.futuresCreated.Inc() }

func (o *Observer) FutureResolved(dur time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	o.futuresResolved.WithLabelValues(outcome).Inc()
	o.resolveDur.Observe(dur.Seconds())
}

func (o *Observer) AwaitStarted() { o.awaitsStarted.Inc() }

func (o *Observer) AwaitFinished(wait time.Duration, _ error) {
	o.awaitWait.Observe(wait.Seconds())
}
