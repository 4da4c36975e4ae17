package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	r := NewWith(prometheus.NewRegistry())

	r.RecordScan("stock", "ok")
	r.RecordScan("stock", "ok")
	r.RecordScan("crypto", "upstream_error")
	r.RecordRows("stock", 150)
	r.RecordRows("stock", 20)
	r.RecordError("validation")
	r.RecordLatency("scan", 0.25)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.scansTotal.WithLabelValues("stock", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.scansTotal.WithLabelValues("crypto", "upstream_error")))
	assert.Equal(t, 170.0, testutil.ToFloat64(r.rowsTotal.WithLabelValues("stock")))
	assert.Equal(t, 20.0, testutil.ToFloat64(r.lastRows.WithLabelValues("stock")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("validation")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.latency))
}
