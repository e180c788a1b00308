package observability

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics{}

	// Should not panic
	m.Counter("test", 1)
	m.Gauge("test", 1.0)
	m.Histogram("test", 1.0)
	m.Timing("test", time.Second)
}

func TestInMemoryMetrics(t *testing.T) {
	t.Run("Counter", func(t *testing.T) {
		m := NewInMemoryMetrics()

		m.Counter(MetricTasksPlaced, 1)
		m.Counter(MetricTasksPlaced, 2)

		assert.Equal(t, int64(3), m.GetCounter(MetricTasksPlaced))
	})

	t.Run("Counter tags are order independent", func(t *testing.T) {
		m := NewInMemoryMetrics()

		m.Counter("placed", 1, T("category", "work"), T("outcome", "ok"))
		m.Counter("placed", 1, T("outcome", "ok"), T("category", "work"))
		m.Counter("placed", 1, T("category", "fun"), T("outcome", "ok"))

		assert.Equal(t, int64(2), m.GetCounter("placed", T("category", "work"), T("outcome", "ok")))
		assert.Equal(t, int64(1), m.GetCounter("placed", T("outcome", "ok"), T("category", "fun")))
		assert.Len(t, m.Counters(), 2)
	})

	t.Run("Gauge", func(t *testing.T) {
		m := NewInMemoryMetrics()

		m.Gauge(MetricPlanUtilization, 25.5)
		m.Gauge(MetricPlanUtilization, 30.0)

		assert.Equal(t, 30.0, m.GetGauge(MetricPlanUtilization))
	})

	t.Run("Histogram", func(t *testing.T) {
		m := NewInMemoryMetrics()

		m.Histogram(MetricSlotsProposed, 2)
		m.Histogram(MetricSlotsProposed, 8)

		assert.Equal(t, []float64{2, 8}, m.GetHistogram(MetricSlotsProposed))
	})

	t.Run("Timing", func(t *testing.T) {
		m := NewInMemoryMetrics()

		m.Timing("plan", 100*time.Millisecond)

		assert.Equal(t, []time.Duration{100 * time.Millisecond}, m.GetTimings("plan"))
	})

	t.Run("Reset", func(t *testing.T) {
		m := NewInMemoryMetrics()
		m.Counter("c", 1)
		m.Gauge("g", 1)

		m.Reset()

		assert.Zero(t, m.GetCounter("c"))
		assert.Zero(t, m.GetGauge("g"))
	})
}

func TestTimer_Stop(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		m := NewInMemoryMetrics()

		StartTimer("plan").WithMetrics(m).WithTags(T("mode", "batch")).Stop(context.Background(), nil)

		tags := []Tag{T("mode", "batch"), T(OperationKey, "plan")}
		assert.Equal(t, int64(1), m.GetCounter(MetricOperationTotal, tags...))
		assert.Zero(t, m.GetCounter(MetricOperationErrors, tags...))
		assert.Len(t, m.GetTimings(MetricOperationDuration, tags...), 1)
	})

	t.Run("failure is logged and counted", func(t *testing.T) {
		m := NewInMemoryMetrics()
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelInfo, Output: &buf})

		StartTimer("plan").WithMetrics(m).WithLogger(logger).Stop(context.Background(), errors.New("boom"))

		assert.Equal(t, int64(1), m.GetCounter(MetricOperationErrors, T(OperationKey, "plan")))
		assert.Contains(t, buf.String(), "operation failed")
		assert.Contains(t, buf.String(), "boom")
	})
}
