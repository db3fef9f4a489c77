package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the booking domain metrics
type Metrics struct {
	SlotsGenerated   prometheus.Counter
	SlotQueries      *prometheus.CounterVec
	BookingsTotal    *prometheus.CounterVec
	BookingConflicts prometheus.Counter
	BookingLatency   prometheus.Histogram
	Notifications    *prometheus.CounterVec
}

// NewMetrics creates the metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SlotsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "slots_generated_total",
			Help:      "Total number of time slots generated on demand",
		}),
		SlotQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "slot_queries_total",
			Help:      "Availability queries by outcome (existing, generated, closed)",
		}, []string{"outcome"}),
		BookingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "appointments_total",
			Help:      "Appointment booking attempts by result",
		}, []string{"result"}),
		BookingConflicts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "conflicts_total",
			Help:      "Bookings rejected because the slot was already taken",
		}),
		BookingLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "duration_seconds",
			Help:      "Time spent creating and confirming an appointment",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notification",
			Name:      "sent_total",
			Help:      "Confirmation notices by result",
		}, []string{"result"}),
	}
}
