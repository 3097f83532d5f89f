package perf

import (
	"expvar"
	"net/http"

	"github.com/encodeous/metric"
)

var (
	TrialLatency    = metric.NewHistogram("1m1s")
	TrialsPerSecond = metric.NewCounter("10s1s")
)

func init() {
	http.Handle("/debug/metrics", metric.Handler(metric.Exposed))
	expvar.Publish("ppm:TrialLatency (µs)", TrialLatency)
	expvar.Publish("ppm:Trials/s", TrialsPerSecond)
}
