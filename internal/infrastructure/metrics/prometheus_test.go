package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerMetrics_Counters(t *testing.T) {
	m := NewLedgerMetrics()
	m.MovementRecorded("IN", 10)
	m.MovementRecorded("IN", 5)
	m.MovementRecorded("OUT", 3)
	m.MovementRejected("insufficient_stock")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.movements.WithLabelValues("IN")))
	assert.Equal(t, 15.0, testutil.ToFloat64(m.quantities.WithLabelValues("IN")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.quantities.WithLabelValues("OUT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejections.WithLabelValues("insufficient_stock")))
}

func TestLedgerMetrics_Handler(t *testing.T) {
	m := NewLedgerMetrics()
	m.MovementRecorded("OUT", 2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `stock_ledger_movements_total{direction="OUT"} 1`)
}
