package payments

import (
	"context"
	"log"
	"time"

	"afrieats_backend/internal/cart"
	"afrieats_backend/internal/models"
	"afrieats_backend/internal/orders"
)

// Payment methods the orchestrator can drive.
const (
	MethodCard   = "card"
	MethodPayPal = "paypal"
)

// Orchestrator runs a checkout end to end: price the session cart,
// validate, hand off to the chosen gateway adapter, record the order
// summary for the confirmation view, clear the cart.
type Orchestrator struct {
	cards  *CardService
	wallet *WalletService
	carts  *cart.Store
	orders *orders.Log
}

func NewOrchestrator(cards *CardService, wallet *WalletService, carts *cart.Store, log *orders.Log) *Orchestrator {
	return &Orchestrator{cards: cards, wallet: wallet, carts: carts, orders: log}
}

// CheckoutRequest is one checkout attempt for a session cart.
type CheckoutRequest struct {
	PaymentMethod string
	Customer      models.CustomerDetails
	Currency      string
	IOSSafari     bool
}

// CheckoutResult is what the confirmation view needs. Card checkouts
// fill ClientSecret/PaymentIntentID, wallet checkouts fill PayPalOrder.
type CheckoutResult struct {
	OrderID          string                    `json:"order_id"`
	AmountMinorUnits int64                     `json:"amount"`
	ClientSecret     string                    `json:"client_secret,omitempty"`
	PaymentIntentID  string                    `json:"payment_intent_id,omitempty"`
	CustomerID       string                    `json:"customer_id,omitempty"`
	PayPalOrder      *models.PayPalOrderRecord `json:"paypal_order,omitempty"`
}

// Checkout prices the cart and delegates to the matching adapter. The
// adapters do the amount/customer validation, so a rejected checkout
// never reaches a provider. Provider failures come back verbatim; the
// orchestrator never retries.
func (o *Orchestrator) Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (*CheckoutResult, error) {
	basket := o.carts.Get(ctx, sessionID)
	if len(basket.Lines) == 0 {
		return nil, &ValidationError{Reason: "cart is empty"}
	}

	amount := MinorUnits(basket.TotalPrice())
	result := &CheckoutResult{AmountMinorUnits: amount}
	currency := req.Currency

	switch req.PaymentMethod {
	case MethodCard:
		if currency == "" {
			currency = o.cards.currency
		}
		intent, err := o.cards.CreateIntent(ctx, CreateIntentRequest{
			AmountMinorUnits: amount,
			Currency:         currency,
			Customer:         req.Customer,
			IOSSafari:        req.IOSSafari,
			Metadata:         map[string]string{"session_id": sessionID},
		})
		if err != nil {
			return nil, err
		}
		result.OrderID = intent.ProviderID
		result.ClientSecret = intent.ClientSecret
		result.PaymentIntentID = intent.ProviderID
		result.CustomerID = intent.CustomerID

	case MethodPayPal:
		if currency == "" {
			currency = o.wallet.currency
		}
		order, err := o.wallet.CreateOrder(ctx, CreateOrderRequest{
			Amount:   formatMinorUnits(amount),
			Currency: currency,
			Customer: req.Customer,
		})
		if err != nil {
			return nil, err
		}
		result.OrderID = order.OrderID
		result.PayPalOrder = order

	default:
		return nil, &ValidationError{Reason: "unknown payment method: " + req.PaymentMethod}
	}

	summary := models.OrderSummary{
		OrderID:   result.OrderID,
		Amount:    amount,
		Currency:  currency,
		Status:    "pending",
		Email:     req.Customer.Email,
		Timestamp: time.Now(),
	}
	if err := o.orders.Save(ctx, summary); err != nil {
		log.Printf("⚠️ Could not store order summary %s: %v", result.OrderID, err)
	}
	// The snapshot lives next to the summary. Stripe metadata values
	// cap out at 500 characters, too small for a real cart, so the
	// webhook reads the lines back from here instead.
	if err := o.orders.SaveLines(ctx, result.OrderID, basket.Lines); err != nil {
		log.Printf("⚠️ Could not store cart snapshot for %s: %v", result.OrderID, err)
	}

	if err := o.carts.Clear(ctx, sessionID); err != nil {
		log.Printf("⚠️ Could not clear cart for %s: %v", sessionID, err)
	} else {
		log.Printf("🧹 Cart cleared for %s after checkout %s", sessionID, result.OrderID)
	}

	return result, nil
}

// OrderSummary reads back the record for the confirmation view.
func (o *Orchestrator) OrderSummary(ctx context.Context, orderID string) (*models.OrderSummary, error) {
	summary, err := o.orders.Get(ctx, orderID)
	if err != nil {
		return nil, &NotFoundError{Resource: "order " + orderID}
	}
	return summary, nil
}
