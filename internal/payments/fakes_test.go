package payments

import (
	"context"
	"net/http"

	"afrieats_backend/internal/models"
)

// fakeCardGateway records every provider call so tests can assert a
// rejected request never reached the provider.
type fakeCardGateway struct {
	calls int

	findID  string
	findErr error

	createID  string
	createErr error

	intentErr  error
	lastIntent CardIntentParams
}

func (f *fakeCardGateway) FindCustomer(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.findID, f.findErr
}

func (f *fakeCardGateway) CreateCustomer(_ context.Context, _ models.CustomerDetails) (string, error) {
	f.calls++
	return f.createID, f.createErr
}

func (f *fakeCardGateway) CreateIntent(_ context.Context, params CardIntentParams) (*models.PaymentIntentRecord, error) {
	f.calls++
	f.lastIntent = params
	if f.intentErr != nil {
		return nil, f.intentErr
	}
	return &models.PaymentIntentRecord{
		ProviderID:       "pi_test_1",
		ClientSecret:     "pi_test_1_secret_abc",
		AmountMinorUnits: params.AmountMinorUnits,
		Currency:         params.Currency,
		Status:           "requires_payment_method",
		Metadata:         params.Metadata,
	}, nil
}

func (f *fakeCardGateway) RetrieveIntent(_ context.Context, intentID string) (*models.PaymentIntentRecord, error) {
	f.calls++
	return &models.PaymentIntentRecord{ProviderID: intentID, Status: "succeeded", AmountReceived: 3198}, nil
}

func (f *fakeCardGateway) CreateAccount(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return "acct_test_1", nil
}

func (f *fakeCardGateway) CreateAccountLink(_ context.Context, accountID string) (string, error) {
	f.calls++
	return "https://connect.example/onboard/" + accountID, nil
}

type fakeWalletGateway struct {
	calls int

	createErr  error
	lastParams WalletOrderParams

	captureErr  error
	captureKeys []string
}

func (f *fakeWalletGateway) GetAccessToken(_ context.Context) (string, error) {
	f.calls++
	return "token", nil
}

func (f *fakeWalletGateway) CreateOrder(_ context.Context, params WalletOrderParams) (*models.PayPalOrderRecord, error) {
	f.calls++
	f.lastParams = params
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.PayPalOrderRecord{
		OrderID:  "PP-ORDER-1",
		Status:   "CREATED",
		Amount:   params.Amount,
		Currency: params.Currency,
		ApprovalLinks: []models.ApprovalLink{
			{Href: "https://paypal.example/approve/PP-ORDER-1", Rel: "approve"},
		},
	}, nil
}

func (f *fakeWalletGateway) CaptureOrder(_ context.Context, orderID, idempotencyKey string) (*models.PayPalOrderRecord, error) {
	f.calls++
	f.captureKeys = append(f.captureKeys, idempotencyKey)
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	return &models.PayPalOrderRecord{
		OrderID:   orderID,
		Status:    "COMPLETED",
		CaptureID: "CAP-1",
		Amount:    "31.98",
		Currency:  "GBP",
	}, nil
}

func (f *fakeWalletGateway) VerifyWebhook(_ context.Context, _ *http.Request, _ string) (bool, error) {
	f.calls++
	return true, nil
}
