package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymgoers_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymgoers_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	AuthRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymgoers_auth_rejections_total",
			Help: "Requests rejected by the auth gateway, by reason",
		},
		[]string{"reason"},
	)
	Registrations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gymgoers_registrations_total",
			Help: "Users registered",
		},
	)
	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymgoers_logins_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)
	WorkoutsLogged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gymgoers_workouts_logged_total",
			Help: "Workouts added",
		},
	)
	GymGroupsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gymgoers_gym_groups_created_total",
			Help: "Gym groups created",
		},
	)
)

var registerOnce sync.Once

// Register adds every collector to the default registry. Safe to call more
// than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequests,
			HTTPDuration,
			AuthRejections,
			Registrations,
			Logins,
			WorkoutsLogged,
			GymGroupsCreated,
		)
	})
}
