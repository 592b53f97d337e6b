package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"afrieats_backend/internal/models"
	"afrieats_backend/internal/payments"
)

// CreatePaymentIntent opens a Stripe payment intent for client-side
// confirmation.
func (h *Handlers) CreatePaymentIntent(c *gin.Context) {
	var req struct {
		Amount          int64                  `json:"amount" binding:"required"`
		Currency        string                 `json:"currency"`
		CustomerDetails models.CustomerDetails `json:"customer_details" binding:"required"`
		PaymentMethodID string                 `json:"payment_method_id"`
		IOSSafari       bool                   `json:"ios_safari"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &payments.ValidationError{Reason: "invalid request: " + err.Error()})
		return
	}

	record, err := h.Cards.CreateIntent(c.Request.Context(), payments.CreateIntentRequest{
		AmountMinorUnits: req.Amount,
		Currency:         req.Currency,
		Customer:         req.CustomerDetails,
		IOSSafari:        req.IOSSafari,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{
		"client_secret":     record.ClientSecret,
		"payment_intent_id": record.ProviderID,
	}
	if record.CustomerID != "" {
		resp["customer_id"] = record.CustomerID
	}
	c.JSON(http.StatusOK, resp)
}

// PaymentStatus is always a live provider lookup, never a cache read.
func (h *Handlers) PaymentStatus(c *gin.Context) {
	var req struct {
		PaymentIntentID string `json:"payment_intent_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &payments.ValidationError{Reason: "payment_intent_id is required"})
		return
	}

	record, err := h.Cards.RetrieveStatus(c.Request.Context(), req.PaymentIntentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          record.Status,
		"amount_received": record.AmountReceived,
		"metadata":        record.Metadata,
	})
}

// DoCheckout prices the session cart and drives the selected payment
// method end to end.
func (h *Handlers) DoCheckout(c *gin.Context) {
	sessionID := c.GetHeader("X-Session-ID")
	if sessionID == "" {
		respondError(c, &payments.ValidationError{Reason: "X-Session-ID header is required"})
		return
	}

	var req struct {
		PaymentMethod   string                 `json:"payment_method" binding:"required"`
		Currency        string                 `json:"currency"`
		CustomerDetails models.CustomerDetails `json:"customer_details" binding:"required"`
		IOSSafari       bool                   `json:"ios_safari"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &payments.ValidationError{Reason: "invalid request: " + err.Error()})
		return
	}

	result, err := h.Checkout.Checkout(c.Request.Context(), sessionID, payments.CheckoutRequest{
		PaymentMethod: req.PaymentMethod,
		Customer:      req.CustomerDetails,
		Currency:      req.Currency,
		IOSSafari:     req.IOSSafari,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// OrderSummary feeds the confirmation view.
func (h *Handlers) OrderSummary(c *gin.Context) {
	summary, err := h.Checkout.OrderSummary(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
