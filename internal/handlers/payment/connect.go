package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"afrieats_backend/internal/models"
	"afrieats_backend/internal/payments"
)

// OnboardSeller opens a connected account and returns the hosted
// onboarding redirect link.
func (h *Handlers) OnboardSeller(c *gin.Context) {
	var req struct {
		Email        string `json:"email" binding:"required"`
		BusinessName string `json:"businessName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &payments.ValidationError{Reason: "email and businessName are required"})
		return
	}

	url, err := h.Connect.Onboard(c.Request.Context(), req.Email, req.BusinessName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// CreateSplitPayment opens a destination-charge intent for a seller's
// product, with the platform fee taken atomically.
func (h *Handlers) CreateSplitPayment(c *gin.Context) {
	var req struct {
		ProductID       string                 `json:"product_id" binding:"required"`
		Amount          int64                  `json:"amount" binding:"required"`
		Currency        string                 `json:"currency"`
		CustomerDetails models.CustomerDetails `json:"customer_details" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &payments.ValidationError{Reason: "invalid request: " + err.Error()})
		return
	}

	record, err := h.Connect.CreateSplitIntent(c.Request.Context(), req.ProductID, req.Amount, req.Currency, req.CustomerDetails)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client_secret":     record.ClientSecret,
		"payment_intent_id": record.ProviderID,
	})
}
