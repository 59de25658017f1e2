package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitclub_http_requests_total",
			Help: "Total number of HTTP requests served by the ops server",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitclub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	StorageWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitclub_storage_writes_total",
			Help: "Total number of collection document rewrites",
		},
		[]string{"collection", "status"},
	)

	StorageLoadFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitclub_storage_load_failures_total",
			Help: "Collections that could not be loaded and started empty",
		},
		[]string{"collection"},
	)

	CollectionSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fitclub_collection_size",
			Help: "Number of entities held in each collection",
		},
		[]string{"collection"},
	)

	MembersCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitclub_members_created_total",
			Help: "Total number of members registered",
		},
		[]string{"membership_type"},
	)

	CheckInsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitclub_attendance_checkins_total",
			Help: "Total number of check-in attempts",
		},
		[]string{"result"},
	)

	CheckOutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitclub_attendance_checkouts_total",
			Help: "Total number of completed check-outs",
		},
	)

	AppointmentTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitclub_appointment_transitions_total",
			Help: "Appointment status transitions by outcome",
		},
		[]string{"transition", "result"},
	)

	SubscriptionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitclub_subscriptions_created_total",
			Help: "Total number of subscriptions created",
		},
		[]string{"plan_type"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordStorageWrite(collection string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	StorageWritesTotal.WithLabelValues(collection, status).Inc()
}

func RecordLoadFailure(collection string) {
	StorageLoadFailuresTotal.WithLabelValues(collection).Inc()
}

func SetCollectionSize(collection string, n int) {
	CollectionSize.WithLabelValues(collection).Set(float64(n))
}

func RecordMemberCreated(membershipType string) {
	MembersCreatedTotal.WithLabelValues(membershipType).Inc()
}

func RecordCheckIn(result string) {
	CheckInsTotal.WithLabelValues(result).Inc()
}

func RecordCheckOut() {
	CheckOutsTotal.Inc()
}

func RecordAppointmentTransition(transition string, err error) {
	result := "ok"
	if err != nil {
		result = "rejected"
	}
	AppointmentTransitionsTotal.WithLabelValues(transition, result).Inc()
}

func RecordSubscription(planType string) {
	SubscriptionsCreatedTotal.WithLabelValues(planType).Inc()
}
