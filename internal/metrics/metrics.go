package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the reservation service. A nil
// *Metrics is valid and records nothing, so wiring stays optional.
type Metrics struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	reservationsTotal prometheus.Counter
	slotFullTotal     prometheus.Counter
	storageErrors     prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wellness_http_requests_total",
			Help: "Total number of HTTP requests by path and status.",
		}, []string{"path", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wellness_http_request_duration_seconds",
			Help:    "Duration of HTTP request handling.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),

		reservationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wellness_reservations_total",
			Help: "Total number of committed reservations.",
		}),

		slotFullTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wellness_reservations_slot_full_total",
			Help: "Total number of reservations rejected because the slot was full.",
		}),

		storageErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wellness_reservation_storage_errors_total",
			Help: "Total number of reservation attempts that failed on storage errors.",
		}),
	}
}

func (m *Metrics) ObserveRequest(path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path).Observe(elapsed.Seconds())
}

func (m *Metrics) ReservationCommitted() {
	if m == nil {
		return
	}
	m.reservationsTotal.Inc()
}

func (m *Metrics) SlotFull() {
	if m == nil {
		return
	}
	m.slotFullTotal.Inc()
}

func (m *Metrics) StorageError() {
	if m == nil {
		return
	}
	m.storageErrors.Inc()
}
