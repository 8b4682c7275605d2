package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors shared by the shop binaries.
type Metrics struct {
	CartOperations         *prometheus.CounterVec
	OrdersPlaced           prometheus.Counter
	OrderRevenue           prometheus.Counter
	SamplesSubmitted       prometheus.Counter
	SampleStatusChanges    *prometheus.CounterVec
	ActiveSessions         prometheus.Gauge
	NotificationsDelivered *prometheus.CounterVec
}

// New registers all collectors on reg. Pass prometheus.DefaultRegisterer in
// binaries and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CartOperations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_cart_operations_total",
			Help: "Cart and favorites mutations by operation",
		}, []string{"op"}),
		OrdersPlaced: f.NewCounter(prometheus.CounterOpts{
			Name: "shop_orders_placed_total",
			Help: "Orders created by checkout",
		}),
		OrderRevenue: f.NewCounter(prometheus.CounterOpts{
			Name: "shop_order_revenue_total",
			Help: "Sum of order totals at checkout",
		}),
		SamplesSubmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "shop_samples_submitted_total",
			Help: "Honey samples submitted by farmers",
		}),
		SampleStatusChanges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_sample_status_changes_total",
			Help: "Sample status updates by target status",
		}, []string{"status"}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "shop_active_sessions",
			Help: "Shop sessions currently held in memory",
		}),
		NotificationsDelivered: f.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_notifications_delivered_total",
			Help: "Notifications written to user inboxes by type",
		}, []string{"type"}),
	}
}
