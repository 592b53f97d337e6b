package payments

import (
	"context"
	"log"

	"afrieats_backend/internal/models"
)

// CardIntentParams is everything the card provider needs to open a
// payment intent.
type CardIntentParams struct {
	AmountMinorUnits int64
	Currency         string
	CustomerID       string
	Metadata         map[string]string
	// Destination routes the settled funds to a seller's connected
	// account; FeeMinorUnits is the platform's cut, taken atomically.
	Destination   string
	FeeMinorUnits int64
}

// CardGateway is the thin surface over the card provider. The
// production implementation talks to Stripe; tests use a fake.
type CardGateway interface {
	FindCustomer(ctx context.Context, email string) (string, error)
	CreateCustomer(ctx context.Context, details models.CustomerDetails) (string, error)
	CreateIntent(ctx context.Context, params CardIntentParams) (*models.PaymentIntentRecord, error)
	RetrieveIntent(ctx context.Context, intentID string) (*models.PaymentIntentRecord, error)
	CreateAccount(ctx context.Context, email, businessName string) (string, error)
	CreateAccountLink(ctx context.Context, accountID string) (string, error)
}

// CardService is the card payment adapter: validates, attaches a
// provider customer when it can, and opens the intent.
type CardService struct {
	gateway  CardGateway
	currency string
}

func NewCardService(gateway CardGateway) *CardService {
	return &CardService{gateway: gateway, currency: "gbp"}
}

// CreateIntentRequest carries one card payment attempt.
type CreateIntentRequest struct {
	AmountMinorUnits int64
	Currency         string
	Customer         models.CustomerDetails
	// IOSSafari marks payments confirmed inside iOS Safari, which
	// needs an alternate return navigation on the client.
	IOSSafari bool
	Metadata  map[string]string
}

// CreateIntent validates the charge, then opens a payment intent with
// automatic payment-method detection. A provider customer is looked up
// by email and reused, or created; if creation fails the intent still
// goes through without an attached customer.
func (s *CardService) CreateIntent(ctx context.Context, req CreateIntentRequest) (*models.PaymentIntentRecord, error) {
	if err := validateCharge(req.AmountMinorUnits, req.Customer); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = s.currency
	}

	customerID := s.ensureCustomer(ctx, req.Customer)

	metadata := map[string]string{
		"customer_name":  req.Customer.Name,
		"customer_email": req.Customer.Email,
	}
	if req.IOSSafari {
		metadata["ios_safari"] = "true"
	}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	record, err := s.gateway.CreateIntent(ctx, CardIntentParams{
		AmountMinorUnits: req.AmountMinorUnits,
		Currency:         currency,
		CustomerID:       customerID,
		Metadata:         metadata,
	})
	if err != nil {
		return nil, err
	}

	record.CustomerID = customerID
	log.Printf("💳 PaymentIntent created: %s (%s %d) for %s", record.ProviderID, currency, req.AmountMinorUnits, req.Customer.Email)
	return record, nil
}

// RetrieveStatus is always a live provider call; nothing is cached.
func (s *CardService) RetrieveStatus(ctx context.Context, intentID string) (*models.PaymentIntentRecord, error) {
	if intentID == "" {
		return nil, &ValidationError{Reason: "payment_intent_id is required"}
	}
	return s.gateway.RetrieveIntent(ctx, intentID)
}

// ensureCustomer reuses the provider customer matching the email, or
// creates one. Failures here are non-fatal: the payment proceeds
// without an attached customer.
func (s *CardService) ensureCustomer(ctx context.Context, details models.CustomerDetails) string {
	customerID, err := s.gateway.FindCustomer(ctx, details.Email)
	if err != nil {
		log.Printf("⚠️ Customer lookup failed for %s: %v", details.Email, err)
	}
	if customerID != "" {
		return customerID
	}

	customerID, err = s.gateway.CreateCustomer(ctx, details)
	if err != nil {
		log.Printf("⚠️ Customer creation failed for %s, continuing without: %v", details.Email, err)
		return ""
	}
	return customerID
}
