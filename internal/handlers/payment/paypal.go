package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"afrieats_backend/internal/models"
	"afrieats_backend/internal/payments"
)

// CreatePayPalOrder builds a capture-on-approval order and returns the
// approval links the client redirects through.
func (h *Handlers) CreatePayPalOrder(c *gin.Context) {
	var req struct {
		Amount          string                 `json:"amount" binding:"required"`
		Currency        string                 `json:"currency"`
		CustomerDetails models.CustomerDetails `json:"customer_details" binding:"required"`
		SafariPayment   bool                   `json:"safari_payment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &payments.ValidationError{Reason: "invalid request: " + err.Error()})
		return
	}

	record, err := h.Wallet.CreateOrder(c.Request.Context(), payments.CreateOrderRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Customer: req.CustomerDetails,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     record.OrderID,
		"status": record.Status,
		"links":  record.ApprovalLinks,
	})
}

// CapturePayPalOrder finalizes an approved order. Retried captures are
// deduplicated by PayPal using the order id, not by us.
func (h *Handlers) CapturePayPalOrder(c *gin.Context) {
	var req struct {
		OrderID       string `json:"orderID" binding:"required"`
		SafariPayment bool   `json:"safari_payment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &payments.ValidationError{Reason: "orderID is required"})
		return
	}

	record, err := h.Wallet.CaptureOrder(c.Request.Context(), req.OrderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     record.OrderID,
		"status": record.Status,
		"payer": gin.H{
			"name":  record.PayerName,
			"email": record.PayerEmail,
		},
		"payment": gin.H{
			"capture_id": record.CaptureID,
			"amount":     record.Amount,
			"currency":   record.Currency,
		},
		"safari_payment": req.SafariPayment,
	})
}
