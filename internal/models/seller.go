package models

// Onboarding states for a connected seller account.
const (
	OnboardingPending = "pending"
	OnboardingActive  = "active"
)

// ConnectedAccountRecord ties a seller to their Stripe connected
// account. OnboardingStatus flips to active only when Stripe reports
// charges_enabled via webhook.
type ConnectedAccountRecord struct {
	SellerID         string `json:"seller_id"`
	BusinessName     string `json:"business_name,omitempty"`
	Email            string `json:"email,omitempty"`
	StripeAccountID  string `json:"stripe_account_id"`
	OnboardingStatus string `json:"onboarding_status"`
}
