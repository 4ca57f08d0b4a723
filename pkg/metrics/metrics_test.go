package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	require.NotNil(t, m)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
	assert.NotNil(t, m.OrdersTotal)
	assert.NotNil(t, m.TicketsSoldTotal)
	assert.NotNil(t, m.CacheRequestsTotal)
	assert.NotNil(t, m.OrderEventsTotal)
}

func TestNewWithRegistry_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewWithRegistry(reg)

	assert.Panics(t, func() { NewWithRegistry(reg) })
}

func TestOrdersTotal(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.OrdersTotal.WithLabelValues("created").Inc()
	m.OrdersTotal.WithLabelValues("created").Inc()
	m.OrdersTotal.WithLabelValues("seat_taken").Inc()
	m.TicketsSoldTotal.Add(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OrdersTotal.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersTotal.WithLabelValues("seat_taken")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.TicketsSoldTotal))

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "orders_total" {
			found = true
			assert.Len(t, f.GetMetric(), 2)
		}
	}
	assert.True(t, found, "orders_total metric not found")
}
