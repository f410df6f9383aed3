package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()
	m.ObserveTransition("NEW", "WAITING_FOR_TECHNICIAN")
	m.ObserveTransition("NEW", "WAITING_FOR_TECHNICIAN")
	m.ObserveWithdrawal(3)
	m.ObserveReceipt(5)
	m.ObservePartOrderDelivered()
	m.ObservePromotion()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("NEW", "WAITING_FOR_TECHNICIAN")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.withdrawn))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.received))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.delivered))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.promotions))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveWithdrawal(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "spare_parts_withdrawn_total 1"))
}
