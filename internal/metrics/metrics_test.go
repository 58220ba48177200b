package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInitIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Init()
		Init()
	})
}

func TestProgramOpsCounts(t *testing.T) {
	before := testutil.ToFloat64(ProgramOps.WithLabelValues("create", "ok"))
	ProgramOps.WithLabelValues("create", Result(nil)).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ProgramOps.WithLabelValues("create", "ok")))
	assert.Equal(t, "error", Result(errors.New("x")))
}
