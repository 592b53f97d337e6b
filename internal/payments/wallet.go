package payments

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"afrieats_backend/internal/models"
)

// WalletOrderParams is one order-create call against the redirect
// provider.
type WalletOrderParams struct {
	Amount         string
	Currency       string
	Customer       models.CustomerDetails
	IdempotencyKey string
}

// WalletGateway is the thin surface over the redirect payment
// provider. The production implementation talks to PayPal; tests use a
// fake.
type WalletGateway interface {
	GetAccessToken(ctx context.Context) (string, error)
	CreateOrder(ctx context.Context, params WalletOrderParams) (*models.PayPalOrderRecord, error)
	CaptureOrder(ctx context.Context, orderID, idempotencyKey string) (*models.PayPalOrderRecord, error)
	VerifyWebhook(ctx context.Context, req *http.Request, webhookID string) (bool, error)
}

// WalletService is the wallet/redirect payment adapter.
type WalletService struct {
	gateway  WalletGateway
	currency string
}

func NewWalletService(gateway WalletGateway) *WalletService {
	return &WalletService{gateway: gateway, currency: "GBP"}
}

// CreateOrderRequest carries one wallet payment attempt. Amount is a
// decimal string ("31.98"), the format the provider itself uses.
type CreateOrderRequest struct {
	Amount   string
	Currency string
	Customer models.CustomerDetails
}

// CreateOrder validates the charge, then submits a capture-on-approval
// order with a fresh idempotency key. Creating the order does not move
// funds; only CaptureOrder does.
func (s *WalletService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.PayPalOrderRecord, error) {
	minorUnits, err := parseDecimalAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if err := validateCharge(minorUnits, req.Customer); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = s.currency
	}

	record, err := s.gateway.CreateOrder(ctx, WalletOrderParams{
		Amount:         formatMinorUnits(minorUnits),
		Currency:       currency,
		Customer:       req.Customer,
		IdempotencyKey: newIdempotencyKey(),
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🅿️ PayPal order created: %s (%s %s) for %s", record.OrderID, currency, record.Amount, req.Customer.Email)
	return record, nil
}

// CaptureOrder finalizes the fund transfer for an approved order. The
// idempotency key is fresh per call, so retried captures must be
// deduplicated by the caller using the order id.
func (s *WalletService) CaptureOrder(ctx context.Context, orderID string) (*models.PayPalOrderRecord, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, &ValidationError{Reason: "orderID is required"}
	}

	record, err := s.gateway.CaptureOrder(ctx, orderID, newIdempotencyKey())
	if err != nil {
		return nil, err
	}

	log.Printf("💰 PayPal capture %s for order %s: %s", record.CaptureID, record.OrderID, record.Status)
	return record, nil
}

// newIdempotencyKey is time+random, deliberately not derived from the
// order content.
func newIdempotencyKey() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// splitName separates a full name into the given/family parts the
// provider's payer object wants. A single word becomes the given name.
func splitName(full string) (given, family string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
	}
}
