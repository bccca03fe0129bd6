package utils

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)

	// handler is the endpoint, type is the error class
	ErrorCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_errors_total",
			Help: "Total app errors",
		},
		[]string{"handler", "type"},
	)

	MealsLogged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutritrack_meals_logged_total",
			Help: "Meal log entries added, by input method",
		},
		[]string{"input_method"},
	)

	FridgeItemsRemoved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nutritrack_fridge_items_removed_total",
			Help: "Fridge items marked as used",
		},
	)

	OnboardingCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nutritrack_onboarding_completed_total",
			Help: "Completed onboarding flows",
		},
	)

	RemindersSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutritrack_reminders_sent_total",
			Help: "Reminders dispatched by the worker pool",
		},
		[]string{"kind"},
	)
)

var registerOnce sync.Once

func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ReqCount,
			ReqDuration,
			ErrorCount,
			MealsLogged,
			FridgeItemsRemoved,
			OnboardingCompleted,
			RemindersSent,
		)
	})
}
