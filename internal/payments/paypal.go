package payments

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/plutov/paypal/v4"

	"afrieats_backend/internal/models"
)

// PayPalGateway is the production WalletGateway. The client is built
// lazily so that missing credentials surface as a ConfigurationError
// on the request instead of killing startup.
type PayPalGateway struct {
	mu     sync.Mutex
	client *paypal.Client
}

func NewPayPalGateway() *PayPalGateway {
	return &PayPalGateway{}
}

func (g *PayPalGateway) paypalClient() (*paypal.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}

	clientID := os.Getenv("PAYPAL_CLIENT_ID")
	secret := os.Getenv("PAYPAL_CLIENT_SECRET")
	if clientID == "" || secret == "" {
		return nil, &ConfigurationError{Reason: "PAYPAL_CLIENT_ID / PAYPAL_CLIENT_SECRET are not configured"}
	}

	apiBase := os.Getenv("PAYPAL_API_BASE")
	if apiBase == "" {
		apiBase = paypal.APIBaseSandBox
	}

	client, err := paypal.NewClient(clientID, secret, apiBase)
	if err != nil {
		return nil, &ConfigurationError{Reason: "PayPal client init failed: " + err.Error()}
	}
	g.client = client
	return client, nil
}

// wrapPayPalErr passes PayPal's message and status through.
func wrapPayPalErr(err error) error {
	var payErr *paypal.ErrorResponse
	if errors.As(err, &payErr) {
		status := 0
		if payErr.Response != nil {
			status = payErr.Response.StatusCode
		}
		msg := payErr.Message
		if msg == "" {
			msg = payErr.Name
		}
		return &ProviderError{Message: msg, StatusCode: status}
	}
	return &ProviderError{Message: err.Error()}
}

// GetAccessToken exchanges the configured credentials for a bearer
// token.
func (g *PayPalGateway) GetAccessToken(ctx context.Context) (string, error) {
	client, err := g.paypalClient()
	if err != nil {
		return "", err
	}

	token, err := client.GetAccessToken(ctx)
	if err != nil {
		return "", wrapPayPalErr(err)
	}
	return token.Token, nil
}

// purchaseUnits builds the order's single purchase unit. The buyer's
// name rides on the shipping detail split into given/family parts;
// the orders API has no payer object of its own anymore.
func purchaseUnits(params WalletOrderParams) []paypal.PurchaseUnitRequest {
	given, family := splitName(params.Customer.Name)
	return []paypal.PurchaseUnitRequest{{
		Amount: &paypal.PurchaseUnitAmount{
			Currency: params.Currency,
			Value:    params.Amount,
		},
		Description: "Food order",
		Shipping: &paypal.ShippingDetail{
			Name: &paypal.Name{
				FullName:  params.Customer.Name,
				GivenName: given,
				Surname:   family,
			},
		},
	}}
}

func paypalPaymentSource() *paypal.PaymentSource {
	return &paypal.PaymentSource{
		Paypal: &paypal.PaymentSourcePaypal{
			ExperienceContext: paypal.PaymentSourcePaypalExperienceContext{
				BrandName:  "AfriEats",
				UserAction: "PAY_NOW",
			},
		},
	}
}

func (g *PayPalGateway) CreateOrder(ctx context.Context, params WalletOrderParams) (*models.PayPalOrderRecord, error) {
	client, err := g.paypalClient()
	if err != nil {
		return nil, err
	}
	if _, err := client.GetAccessToken(ctx); err != nil {
		return nil, wrapPayPalErr(err)
	}

	order, err := client.CreateOrderWithPaypalRequestID(ctx, paypal.OrderIntentCapture, purchaseUnits(params), paypalPaymentSource(), nil, params.IdempotencyKey)
	if err != nil {
		return nil, wrapPayPalErr(err)
	}

	record := &models.PayPalOrderRecord{
		OrderID:  order.ID,
		Status:   order.Status,
		Amount:   params.Amount,
		Currency: params.Currency,
	}
	for _, link := range order.Links {
		record.ApprovalLinks = append(record.ApprovalLinks, models.ApprovalLink{
			Href:   link.Href,
			Rel:    link.Rel,
			Method: link.Method,
		})
	}
	return record, nil
}

// CaptureOrder submits the empty-body capture request; this is the
// point where the payment is actually taken.
func (g *PayPalGateway) CaptureOrder(ctx context.Context, orderID, idempotencyKey string) (*models.PayPalOrderRecord, error) {
	client, err := g.paypalClient()
	if err != nil {
		return nil, err
	}
	if _, err := client.GetAccessToken(ctx); err != nil {
		return nil, wrapPayPalErr(err)
	}

	resp, err := client.CaptureOrderWithPaypalRequestId(ctx, orderID, paypal.CaptureOrderRequest{}, idempotencyKey, nil)
	if err != nil {
		return nil, wrapPayPalErr(err)
	}

	record := &models.PayPalOrderRecord{
		OrderID: resp.ID,
		Status:  resp.Status,
	}
	if resp.Payer != nil {
		record.PayerEmail = resp.Payer.EmailAddress
		if resp.Payer.Name != nil {
			record.PayerName = resp.Payer.Name.GivenName + " " + resp.Payer.Name.Surname
		}
	}
	for _, unit := range resp.PurchaseUnits {
		if unit.Payments == nil {
			continue
		}
		for _, capture := range unit.Payments.Captures {
			record.CaptureID = capture.ID
			if capture.Amount != nil {
				record.Amount = capture.Amount.Value
				record.Currency = capture.Amount.Currency
			}
		}
	}
	return record, nil
}

// VerifyWebhook asks PayPal itself whether the event signature is
// genuine.
func (g *PayPalGateway) VerifyWebhook(ctx context.Context, req *http.Request, webhookID string) (bool, error) {
	client, err := g.paypalClient()
	if err != nil {
		return false, err
	}
	if _, err := client.GetAccessToken(ctx); err != nil {
		return false, wrapPayPalErr(err)
	}

	resp, err := client.VerifyWebhookSignature(ctx, req, webhookID)
	if err != nil {
		return false, wrapPayPalErr(err)
	}
	return resp.VerificationStatus == "SUCCESS", nil
}
