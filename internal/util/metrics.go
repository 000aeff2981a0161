package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders persisted",
	})

	OrdersRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Total number of rejected order submissions",
	}, []string{"reason"})

	OrderStatusUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_status_updates_total",
		Help: "Total number of order status updates",
	})

	SlotConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slot_conflicts_total",
		Help: "Total number of bookings that lost the race for a time slot",
	})

	SlotsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slots_added_total",
		Help: "Total number of availability slots added",
	})

	SlotsRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slots_removed_total",
		Help: "Total number of availability slots removed",
	})

	PaymentIntentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_intents_created_total",
		Help: "Total number of payment intents created",
	})

	PaymentIntentsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_intents_failed_total",
		Help: "Total number of failed payment intent operations",
	}, []string{"reason"})

	NotificationsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_sent_total",
		Help: "Total number of notification emails sent",
	}, []string{"type"})

	NotificationsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_failed_total",
		Help: "Total number of notification emails that failed to send",
	}, []string{"type"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
