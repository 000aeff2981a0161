package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Zheero0/freezye/internal/availability"
	"github.com/Zheero0/freezye/internal/gateway"
	"github.com/Zheero0/freezye/internal/models"
	"github.com/Zheero0/freezye/internal/pricing"
	"github.com/Zheero0/freezye/internal/service"
	"github.com/Zheero0/freezye/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	bookings      *service.BookingService
	payments      *service.PaymentService
	notifications *service.NotificationService
	slots         *availability.Manager
}

// NewHandler creates a new HTTP handler
func NewHandler(
	bookings *service.BookingService,
	payments *service.PaymentService,
	notifications *service.NotificationService,
	slots *availability.Manager,
) *Handler {
	return &Handler{
		bookings:      bookings,
		payments:      payments,
		notifications: notifications,
		slots:         slots,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/orders", h.createOrder)
		v1.GET("/orders", h.listOrders)
		v1.GET("/orders/:id", h.getOrder)
		v1.PATCH("/orders/:id/status", h.updateOrderStatus)

		v1.POST("/payment-intents", h.createPaymentIntent)
		v1.POST("/notifications", h.sendNotification)

		v1.GET("/availability", h.availableDates)
		v1.GET("/availability/:date", h.listSlots)
		v1.POST("/availability/:date/slots", h.addSlot)
		v1.DELETE("/availability/:date/slots/:time", h.removeSlot)
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// createOrder handles order submission from the booking wizard.
func (h *Handler) createOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	order, err := h.bookings.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Validation failed",
				"fields": verr.Fields,
			})
		case errors.Is(err, pricing.ErrUnknownService):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Service not found",
				"fields": gin.H{"serviceId": "unknown service"},
			})
		case errors.Is(err, service.ErrPaymentNotConfirmed):
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error": "Payment has not been confirmed",
			})
		case errors.Is(err, availability.ErrSlotUnavailable):
			// The slot may have been lost either before or after the order
			// write; either way the customer should pick another time.
			c.JSON(http.StatusConflict, gin.H{
				"error": "This time is no longer available, please pick another",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to create order",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"orderId": order.ID})
}

func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.bookings.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Order not found",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.bookings.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list orders",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	order, err := h.bookings.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Validation failed",
				"fields": verr.Fields,
			})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Order not found",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

type createIntentRequest struct {
	AmountMinorUnits int64 `json:"amountMinorUnits" binding:"required"`
}

func (h *Handler) createPaymentIntent(c *gin.Context) {
	var req createIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	intent, err := h.payments.CreateIntent(c.Request.Context(), req.AmountMinorUnits)
	if err != nil {
		if errors.Is(err, gateway.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create payment intent",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"intentId":     intent.ID,
		"clientSecret": intent.ClientSecret,
	})
}

type notificationRequest struct {
	Type      string       `json:"type" binding:"required"`
	Order     models.Order `json:"order" binding:"required"`
	NewStatus string       `json:"newStatus,omitempty"`
}

// sendNotification re-sends order emails on demand. Failures are reported
// with a 500 but are non-fatal to the caller's own flow.
func (h *Handler) sendNotification(c *gin.Context) {
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	var err error
	switch req.Type {
	case "confirmation":
		err = h.notifications.NotifyConfirmation(c.Request.Context(), &req.Order)
	case "statusUpdate":
		if req.NewStatus == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "newStatus is required for statusUpdate"})
			return
		}
		err = h.notifications.NotifyStatusChange(c.Request.Context(), &req.Order, req.NewStatus)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be confirmation or statusUpdate"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) availableDates(c *gin.Context) {
	dates, err := h.slots.AvailableDates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list available dates",
			"details": err.Error(),
		})
		return
	}
	if dates == nil {
		dates = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

func (h *Handler) listSlots(c *gin.Context) {
	slots, err := h.slots.ListSlots(c.Request.Context(), c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if slots == nil {
		slots = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"date": c.Param("date"), "slots": slots})
}

type addSlotRequest struct {
	Time string `json:"time" binding:"required"`
}

func (h *Handler) addSlot(c *gin.Context) {
	var req addSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.slots.AddSlot(c.Request.Context(), c.Param("date"), req.Time); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) removeSlot(c *gin.Context) {
	err := h.slots.RemoveSlot(c.Request.Context(), c.Param("date"), c.Param("time"))
	if err != nil {
		if errors.Is(err, availability.ErrSlotUnavailable) {
			c.JSON(http.StatusConflict, gin.H{"error": "Slot is not available"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
