package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abdelrahman464/blackbox/internal/adapter/payment"
	"github.com/abdelrahman464/blackbox/internal/observability"
	"github.com/abdelrahman464/blackbox/internal/server/http/dto"
)

// WebhookHandler receives signed payment provider deliveries.
type WebhookHandler struct {
	facade WebhookFacade
	logger *slog.Logger
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade WebhookFacade, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{facade: facade, logger: logger}
}

// HandleCheckout handles POST /webhook-checkout. Signature failures are the
// only rejection: once the delivery is authenticated it is acknowledged with
// 200 regardless of the reconciliation outcome, so the provider never
// retry-storms on business failures.
func (h *WebhookHandler) HandleCheckout(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "unreadable payload"})
		return
	}

	event, err := h.facade.VerifyPaymentEvent(payload, c.GetHeader(payment.SignatureHeader))
	if err != nil {
		observability.WebhookSignatureRejected.Inc()
		h.logger.Warn("webhook rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid signature"})
		return
	}

	if err := h.facade.ReconcilePayment(c.Request.Context(), event); err != nil {
		// Swallowed into the ack on purpose; the retry worker owns recovery.
		h.logger.Error("payment reconciliation error",
			slog.String("event_id", event.ID),
			slog.String("error", err.Error()),
		)
	}

	c.JSON(http.StatusOK, dto.WebhookAck{Received: true})
}
