package payment

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"afrieats_backend/internal/payments"
)

const maxWebhookBodyBytes = int64(65536)

// StripeWebhook consumes the raw signed payload. Signature or parse
// failures answer 400 so Stripe's dashboard flags them; everything the
// receiver swallows internally still acknowledges with received: true.
func (h *Handlers) StripeWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		log.Println("❌ Could not read webhook body:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read body"})
		return
	}

	if err := h.Stripe.Handle(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		var sig *payments.SignatureError
		if errors.As(err, &sig) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// PayPalWebhook consumes the raw payload plus the provider signature
// headers; verification happens remotely at PayPal. Failed
// verification answers 401, processing failures 500.
func (h *Handlers) PayPalWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		log.Println("❌ Could not read webhook body:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read body"})
		return
	}

	// The remote verification call re-reads the request body.
	c.Request.Body = io.NopCloser(bytes.NewReader(payload))

	if err := h.PayPal.Handle(c.Request.Context(), c.Request, payload); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
