package payment

import (
	"github.com/gin-gonic/gin"

	"afrieats_backend/internal/payments"
	"afrieats_backend/internal/webhooks"
)

// Handlers bundles the payment flow entry points for route wiring.
type Handlers struct {
	Cards    *payments.CardService
	Wallet   *payments.WalletService
	Checkout *payments.Orchestrator
	Connect  *payments.ConnectRouter
	Stripe   *webhooks.StripeReceiver
	PayPal   *webhooks.PayPalReceiver
}

// respondError writes the typed-error contract: the message verbatim
// plus a stable type tag, with the status the taxonomy dictates.
func respondError(c *gin.Context, err error) {
	c.JSON(payments.HTTPStatus(err), gin.H{
		"error": err.Error(),
		"type":  payments.ErrorType(err),
	})
}
