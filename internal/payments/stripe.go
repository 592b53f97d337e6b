package payments

import (
	"context"
	"errors"
	"os"

	"afrieats_backend/internal/models"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/account"
	"github.com/stripe/stripe-go/v83/accountlink"
	"github.com/stripe/stripe-go/v83/customer"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// StripeGateway is the production CardGateway. The API key is the
// package-global stripe.Key, set once at startup from
// STRIPE_SECRET_KEY.
type StripeGateway struct{}

func NewStripeGateway() *StripeGateway {
	return &StripeGateway{}
}

func (g *StripeGateway) ready() error {
	if stripe.Key == "" {
		return &ConfigurationError{Reason: "STRIPE_SECRET_KEY is not configured"}
	}
	return nil
}

// wrapStripeErr passes Stripe's own message and status through.
func wrapStripeErr(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &ProviderError{Message: stripeErr.Msg, StatusCode: stripeErr.HTTPStatusCode}
	}
	return &ProviderError{Message: err.Error()}
}

func (g *StripeGateway) FindCustomer(ctx context.Context, email string) (string, error) {
	if err := g.ready(); err != nil {
		return "", err
	}

	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	iter := customer.List(params)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", wrapStripeErr(err)
	}
	return "", nil
}

func (g *StripeGateway) CreateCustomer(ctx context.Context, details models.CustomerDetails) (string, error) {
	if err := g.ready(); err != nil {
		return "", err
	}

	params := &stripe.CustomerParams{
		Name:  stripe.String(details.Name),
		Email: stripe.String(details.Email),
	}
	params.Context = ctx
	if details.Phone != "" {
		params.Phone = stripe.String(details.Phone)
	}

	cust, err := customer.New(params)
	if err != nil {
		return "", wrapStripeErr(err)
	}
	return cust.ID, nil
}

func (g *StripeGateway) CreateIntent(ctx context.Context, p CardIntentParams) (*models.PaymentIntentRecord, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(p.AmountMinorUnits),
		Currency: stripe.String(p.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: p.Metadata,
	}
	params.Context = ctx
	if p.CustomerID != "" {
		params.Customer = stripe.String(p.CustomerID)
	}
	if p.Destination != "" {
		params.TransferData = &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(p.Destination),
		}
		params.ApplicationFeeAmount = stripe.Int64(p.FeeMinorUnits)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, wrapStripeErr(err)
	}

	return &models.PaymentIntentRecord{
		ProviderID:       intent.ID,
		ClientSecret:     intent.ClientSecret,
		AmountMinorUnits: intent.Amount,
		Currency:         string(intent.Currency),
		Status:           string(intent.Status),
		Metadata:         intent.Metadata,
	}, nil
}

func (g *StripeGateway) RetrieveIntent(ctx context.Context, intentID string) (*models.PaymentIntentRecord, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := paymentintent.Get(intentID, params)
	if err != nil {
		return nil, wrapStripeErr(err)
	}

	return &models.PaymentIntentRecord{
		ProviderID:       intent.ID,
		ClientSecret:     intent.ClientSecret,
		AmountMinorUnits: intent.Amount,
		AmountReceived:   intent.AmountReceived,
		Currency:         string(intent.Currency),
		Status:           string(intent.Status),
		Metadata:         intent.Metadata,
	}, nil
}

// CreateAccount opens an Express connected account for a seller.
func (g *StripeGateway) CreateAccount(ctx context.Context, email, businessName string) (string, error) {
	if err := g.ready(); err != nil {
		return "", err
	}

	params := &stripe.AccountParams{
		Type:  stripe.String(string(stripe.AccountTypeExpress)),
		Email: stripe.String(email),
		BusinessProfile: &stripe.AccountBusinessProfileParams{
			Name: stripe.String(businessName),
		},
		Capabilities: &stripe.AccountCapabilitiesParams{
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{
				Requested: stripe.Bool(true),
			},
			Transfers: &stripe.AccountCapabilitiesTransfersParams{
				Requested: stripe.Bool(true),
			},
		},
	}
	params.Context = ctx

	acct, err := account.New(params)
	if err != nil {
		return "", wrapStripeErr(err)
	}
	return acct.ID, nil
}

// CreateAccountLink returns the hosted onboarding URL for an account.
func (g *StripeGateway) CreateAccountLink(ctx context.Context, accountID string) (string, error) {
	if err := g.ready(); err != nil {
		return "", err
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(baseURL + "/connect/refresh"),
		ReturnURL:  stripe.String(baseURL + "/connect/return"),
		Type:       stripe.String("account_onboarding"),
	}
	params.Context = ctx

	link, err := accountlink.New(params)
	if err != nil {
		return "", wrapStripeErr(err)
	}
	return link.URL, nil
}
