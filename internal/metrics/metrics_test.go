package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordLoad(t *testing.T) {
	reg := prometheus.NewRegistry()
	observer, err := NewObserver("test", reg)
	require.NoError(t, err)

	observer.RecordLoad("success", 3, 20*time.Millisecond)
	observer.RecordLoad("transport", 0, time.Second)
	observer.RecordLoad("success", 5, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(observer.loads.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(observer.loads.WithLabelValues("transport")))
	assert.Equal(t, 5.0, testutil.ToFloat64(observer.items))
}

func TestNewObserverReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewObserver("test", reg)
	require.NoError(t, err)
	second, err := NewObserver("test", reg)
	require.NoError(t, err)

	second.RecordLoad("parse", 0, time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(first.loads.WithLabelValues("parse")))
}

func TestNilObserverIsNoop(t *testing.T) {
	var observer *Observer
	assert.NotPanics(t, func() {
		observer.RecordLoad("success", 1, time.Millisecond)
	})
}
