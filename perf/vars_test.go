package perf

import (
	"expvar"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVars_RecordAndExpose(t *testing.T) {
	TrialLatency.Add(42)
	TrialsPerSecond.Add(1)

	// expvar vars must render; an empty string would break /debug/vars.
	assert.NotEmpty(t, TrialLatency.String())
	assert.NotEmpty(t, TrialsPerSecond.String())
	assert.NotNil(t, expvar.Get("ppm:TrialLatency (µs)"))
	assert.NotNil(t, expvar.Get("ppm:Trials/s"))
}
