package metrics_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/metrics"
)

func TestObserve_CountsSuccessAndFailureKinds(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())

	m.Observe(metrics.OpCreate, nil)
	m.Observe(metrics.OpCreate, apperror.NewConflictError(apperror.ErrDuplicateCode, "MWH.001"))
	m.Observe(metrics.OpArchive, errors.New("db down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues(metrics.OpCreate, "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues(metrics.OpCreate, "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues(metrics.OpCreate, "duplicate_code")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues(metrics.OpArchive, "internal")))
}

func TestObserveConflict(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())

	m.ObserveConflict(metrics.OpReplace)
	m.ObserveConflict(metrics.OpReplace)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Conflicts.WithLabelValues(metrics.OpReplace)))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.Observe(metrics.OpCreate, nil)
		m.ObserveConflict(metrics.OpCreate)
	})
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "concurrent_modification",
		metrics.KindLabel(apperror.NewConflictError(apperror.ErrConcurrentModification, "x")))
	assert.Equal(t, "stock_exceeds_capacity",
		metrics.KindLabel(apperror.NewValidationError(apperror.ErrStockExceedsCapacity, "x")))
	assert.Equal(t, "internal", metrics.KindLabel(apperror.NewInternalError("x", errors.New("y"))))
}
