package payments

import (
	"context"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/google/uuid"

	"afrieats_backend/internal/models"
	"afrieats_backend/internal/sellers"
)

// DefaultPlatformFeePercent is the platform's cut of a connected-seller
// payment when PLATFORM_FEE_PERCENT is not set.
const DefaultPlatformFeePercent = 10.0

// ConnectRouter drives the variant flow where a payment settles split
// between the platform and a seller's connected account.
type ConnectRouter struct {
	gateway    CardGateway
	sellers    *sellers.Store
	feePercent float64
}

func NewConnectRouter(gateway CardGateway, sellerStore *sellers.Store) *ConnectRouter {
	feePercent := DefaultPlatformFeePercent
	if env := os.Getenv("PLATFORM_FEE_PERCENT"); env != "" {
		if parsed, err := strconv.ParseFloat(env, 64); err == nil && parsed >= 0 {
			feePercent = parsed
		}
	}
	return &ConnectRouter{gateway: gateway, sellers: sellerStore, feePercent: feePercent}
}

// PlatformFee is the fixed-percentage cut, rounded to the nearest
// minor unit.
func (r *ConnectRouter) PlatformFee(amountMinorUnits int64) int64 {
	return int64(math.Round(float64(amountMinorUnits) * r.feePercent / 100))
}

// CreateSplitIntent resolves the product's owning seller and opens a
// destination-charge intent: funds land on the seller's connected
// account minus the application fee, atomically at the provider. A
// seller without a connected account means no payment is attempted.
func (r *ConnectRouter) CreateSplitIntent(ctx context.Context, productID string, amountMinorUnits int64, currency string, customer models.CustomerDetails) (*models.PaymentIntentRecord, error) {
	if err := validateCharge(amountMinorUnits, customer); err != nil {
		return nil, err
	}

	seller, err := r.sellers.SellerForProduct(ctx, productID)
	if err != nil {
		return nil, &NotFoundError{Resource: "seller for product " + productID}
	}
	if seller.StripeAccountID == "" {
		return nil, &NotFoundError{Resource: "connected account for seller " + seller.SellerID}
	}

	if currency == "" {
		currency = "gbp"
	}
	fee := r.PlatformFee(amountMinorUnits)

	record, err := r.gateway.CreateIntent(ctx, CardIntentParams{
		AmountMinorUnits: amountMinorUnits,
		Currency:         currency,
		Metadata: map[string]string{
			"seller_id":      seller.SellerID,
			"product_id":     productID,
			"customer_email": customer.Email,
		},
		Destination:   seller.StripeAccountID,
		FeeMinorUnits: fee,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("💳 Split intent %s: %d to %s, fee %d", record.ProviderID, amountMinorUnits, seller.StripeAccountID, fee)
	return record, nil
}

// Onboard opens a connected account for a new seller and returns the
// hosted onboarding link. The seller stays pending until a webhook
// reports charges_enabled.
func (r *ConnectRouter) Onboard(ctx context.Context, email, businessName string) (string, error) {
	if email == "" || businessName == "" {
		return "", &ValidationError{Reason: "email and businessName are required"}
	}

	accountID, err := r.gateway.CreateAccount(ctx, email, businessName)
	if err != nil {
		return "", err
	}

	rec := models.ConnectedAccountRecord{
		SellerID:         uuid.NewString(),
		BusinessName:     businessName,
		Email:            email,
		StripeAccountID:  accountID,
		OnboardingStatus: models.OnboardingPending,
	}
	if err := r.sellers.Save(ctx, rec); err != nil {
		return "", err
	}

	url, err := r.gateway.CreateAccountLink(ctx, accountID)
	if err != nil {
		return "", err
	}

	log.Printf("🏪 Seller %s onboarding started (%s)", rec.SellerID, accountID)
	return url, nil
}
