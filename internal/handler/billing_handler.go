package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erphive/attendance-planner/internal/domain"
	"github.com/erphive/attendance-planner/internal/service/billing"
)

type BillingHandler struct {
	billingService *billing.Service
}

func NewBillingHandler(billingService *billing.Service) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
	}
}

type checkoutRequest struct {
	Plan string `json:"plan" binding:"required"`
}

func (h *BillingHandler) HandleCheckout(c *gin.Context) {
	ctx := c.Request.Context()
	studentID := c.Param("student_id")

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	resp, err := h.billingService.Checkout(ctx, studentID, req.Plan)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPaymentNotConfigured):
			respondError(c, http.StatusServiceUnavailable, "payment_disabled", "payment gateway is not configured")
		case errors.Is(err, domain.ErrUnknownPlan):
			respondError(c, http.StatusBadRequest, "validation_error", "unknown plan")
		default:
			slog.ErrorContext(ctx, "checkout failed",
				slog.String("student_id", studentID),
				slog.String("plan", req.Plan),
				slog.String("error", err.Error()),
			)
			respondError(c, http.StatusInternalServerError, "processing_error", "failed to create checkout session")
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandlePaymentNotification receives the gateway's transaction callbacks.
// The route carries no student auth; the signature check is the only
// authentication.
func (h *BillingHandler) HandlePaymentNotification(c *gin.Context) {
	ctx := c.Request.Context()

	var notif billing.Notification
	if err := c.ShouldBindJSON(&notif); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	result, err := h.billingService.HandleNotification(ctx, &notif)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSignature):
			respondError(c, http.StatusUnauthorized, "invalid_signature", "notification signature mismatch")
		case errors.Is(err, domain.ErrPaymentNotConfigured):
			respondError(c, http.StatusServiceUnavailable, "payment_disabled", "payment gateway is not configured")
		default:
			slog.ErrorContext(ctx, "payment notification processing failed",
				slog.String("order_id", notif.OrderID),
				slog.String("error", err.Error()),
			)
			// Non-2xx keeps the gateway retrying until the write succeeds.
			respondError(c, http.StatusInternalServerError, "processing_error", "failed to process notification")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
