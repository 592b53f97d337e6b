package webhooks

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/webhook"

	"afrieats_backend/internal/kvstore"
	"afrieats_backend/internal/models"
	"afrieats_backend/internal/notify"
	"afrieats_backend/internal/orders"
	"afrieats_backend/internal/payments"
	"afrieats_backend/internal/sellers"
)

// StripeReceiver consumes Stripe's asynchronous payment and account
// events. Every payload is signature-checked before parsing.
type StripeReceiver struct {
	secret     string
	sellers    *sellers.Store
	orders     *orders.Log
	dispatcher notify.Dispatcher
}

func NewStripeReceiver(secret string, sellerStore *sellers.Store, orderLog *orders.Log, dispatcher notify.Dispatcher) *StripeReceiver {
	return &StripeReceiver{secret: secret, sellers: sellerStore, orders: orderLog, dispatcher: dispatcher}
}

// Handle verifies and processes one event. A nil return means the
// webhook should be acknowledged; unknown event types are acknowledged
// too, so Stripe never retries them.
func (r *StripeReceiver) Handle(ctx context.Context, payload []byte, sigHeader string) error {
	if r.secret == "" {
		return &payments.ConfigurationError{Reason: "STRIPE_WEBHOOK_SECRET is not configured"}
	}

	event, err := webhook.ConstructEvent(payload, sigHeader, r.secret)
	if err != nil {
		log.Printf("❌ Invalid Stripe signature: %v", err)
		return &payments.SignatureError{Reason: "invalid webhook signature"}
	}

	log.Printf("📥 Stripe event received: %s", event.Type)

	switch event.Type {
	case "account.updated":
		r.handleAccountUpdated(ctx, event)
	case "payment_intent.succeeded":
		r.handleIntentSucceeded(ctx, event)
	default:
		log.Printf("ℹ️ Ignoring Stripe event: %s", event.Type)
	}
	return nil
}

// handleAccountUpdated flips the seller to active once Stripe reports
// charges_enabled. A failed directory write is logged and swallowed so
// the webhook still acknowledges; Stripe will send account.updated
// again anyway.
func (r *StripeReceiver) handleAccountUpdated(ctx context.Context, event stripe.Event) {
	var acct stripe.Account
	if err := json.Unmarshal(event.Data.Raw, &acct); err != nil {
		log.Printf("❌ Could not decode account event: %v", err)
		return
	}

	if !acct.ChargesEnabled {
		log.Printf("ℹ️ Account %s updated, charges not enabled yet", acct.ID)
		return
	}

	changed, err := r.sellers.ActivateByAccount(ctx, acct.ID)
	if err != nil {
		log.Printf("⚠️ Could not activate seller for account %s: %v", acct.ID, err)
		return
	}
	if changed {
		log.Printf("✅ Seller account %s is now active", acct.ID)
	}
}

// handleIntentSucceeded records the settled order and notifies both
// the customer and the kitchen. The sends are independent: one failing
// email never blocks the other. A SetNX marker keeps at-least-once
// deliveries from sending everything twice.
func (r *StripeReceiver) handleIntentSucceeded(ctx context.Context, event stripe.Event) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		log.Printf("❌ Could not decode payment intent: %v", err)
		return
	}

	first, err := r.orders.MarkIntentHandled(ctx, pi.ID)
	if err != nil {
		log.Printf("⚠️ Dedupe check failed for %s, processing anyway: %v", pi.ID, err)
	} else if !first {
		log.Printf("🔁 Intent %s already handled, skipping", pi.ID)
		return
	}

	email := pi.Metadata["customer_email"]
	summary := models.OrderSummary{
		OrderID:   pi.ID,
		Amount:    pi.AmountReceived,
		Currency:  string(pi.Currency),
		Status:    "paid",
		Email:     email,
		Timestamp: time.Now(),
	}
	if summary.Amount == 0 {
		summary.Amount = pi.Amount
	}
	if err := r.orders.Save(ctx, summary); err != nil {
		log.Printf("⚠️ Could not store paid order %s: %v", pi.ID, err)
	}

	lines, err := r.orders.Lines(ctx, pi.ID)
	if err != nil && err != kvstore.ErrNotFound {
		log.Printf("⚠️ Could not load cart snapshot for %s: %v", pi.ID, err)
	}

	if email != "" {
		if err := r.dispatcher.SendReceipt(email, summary, lines); err != nil {
			log.Printf("❌ Confirmation email failed for %s: %v", pi.ID, err)
		}
	} else {
		log.Printf("⚠️ No customer email on intent %s, skipping receipt", pi.ID)
	}

	if err := r.dispatcher.SendKitchenAlert(summary, lines); err != nil {
		log.Printf("❌ Kitchen alert failed for %s: %v", pi.ID, err)
	}
}
