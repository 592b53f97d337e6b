package webhooks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"afrieats_backend/internal/kvstore"
	"afrieats_backend/internal/notify"
	"afrieats_backend/internal/orders"
	"afrieats_backend/internal/payments"
)

// WebhookVerifier asks the wallet provider whether an event signature
// is genuine. Production uses the PayPal gateway's remote verification
// call.
type WebhookVerifier interface {
	VerifyWebhook(ctx context.Context, req *http.Request, webhookID string) (bool, error)
}

// PayPalReceiver consumes PAYMENT.CAPTURE.* events.
type PayPalReceiver struct {
	verifier   WebhookVerifier
	webhookID  string
	orders     *orders.Log
	dispatcher notify.Dispatcher
}

func NewPayPalReceiver(verifier WebhookVerifier, webhookID string, orderLog *orders.Log, dispatcher notify.Dispatcher) *PayPalReceiver {
	return &PayPalReceiver{verifier: verifier, webhookID: webhookID, orders: orderLog, dispatcher: dispatcher}
}

type paypalEvent struct {
	ID        string          `json:"id"`
	EventType string          `json:"event_type"`
	Resource  json.RawMessage `json:"resource"`
}

type captureResource struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount *struct {
		CurrencyCode string `json:"currency_code"`
		Value        string `json:"value"`
	} `json:"amount"`
	SupplementaryData struct {
		RelatedIDs struct {
			OrderID string `json:"order_id"`
		} `json:"related_ids"`
	} `json:"supplementary_data"`
}

// Handle verifies the event remotely, then dispatches on its type. A
// nil return acknowledges the event; unknown types are logged and
// acknowledged so PayPal does not retry them.
func (r *PayPalReceiver) Handle(ctx context.Context, req *http.Request, body []byte) error {
	if r.webhookID == "" {
		return &payments.ConfigurationError{Reason: "PAYPAL_WEBHOOK_ID is not configured"}
	}

	verified, err := r.verifier.VerifyWebhook(ctx, req, r.webhookID)
	if err != nil {
		return err
	}
	if !verified {
		log.Println("❌ PayPal webhook signature verification failed")
		return &payments.SignatureError{Reason: "webhook signature verification failed"}
	}

	var event paypalEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode webhook event: %w", err)
	}

	log.Printf("📥 PayPal event received: %s", event.EventType)

	var capture captureResource
	if len(event.Resource) > 0 {
		if err := json.Unmarshal(event.Resource, &capture); err != nil {
			return fmt.Errorf("decode capture resource: %w", err)
		}
	}

	orderID := capture.SupplementaryData.RelatedIDs.OrderID
	if orderID == "" {
		orderID = capture.ID
	}

	switch event.EventType {
	case "PAYMENT.CAPTURE.COMPLETED":
		r.captureCompleted(ctx, orderID)
	case "PAYMENT.CAPTURE.DENIED":
		r.updateStatus(ctx, orderID, "failed")
	case "PAYMENT.CAPTURE.REFUNDED":
		r.updateStatus(ctx, orderID, "refunded")
	case "PAYMENT.CAPTURE.PENDING":
		log.Printf("⏳ Capture pending for order %s", orderID)
	default:
		log.Printf("ℹ️ Ignoring PayPal event: %s", event.EventType)
	}
	return nil
}

func (r *PayPalReceiver) captureCompleted(ctx context.Context, orderID string) {
	r.updateStatus(ctx, orderID, "paid")

	summary, err := r.orders.Get(ctx, orderID)
	if err != nil || summary.Email == "" {
		log.Printf("⚠️ No customer email for order %s, skipping receipt", orderID)
		return
	}
	lines, err := r.orders.Lines(ctx, orderID)
	if err != nil && err != kvstore.ErrNotFound {
		log.Printf("⚠️ Could not load cart snapshot for %s: %v", orderID, err)
	}
	if err := r.dispatcher.SendReceipt(summary.Email, *summary, lines); err != nil {
		log.Printf("❌ Confirmation email failed for %s: %v", orderID, err)
	}
}

func (r *PayPalReceiver) updateStatus(ctx context.Context, orderID, status string) {
	if err := r.orders.UpdateStatus(ctx, orderID, status); err != nil {
		log.Printf("⚠️ Could not move order %s to %s: %v", orderID, status, err)
		return
	}
	log.Printf("✅ Order %s → %s", orderID, status)
}
