package models

import "time"

// PaymentIntentRecord is the non-authoritative copy of a Stripe
// payment intent. Stripe owns the real record.
type PaymentIntentRecord struct {
	ProviderID       string            `json:"payment_intent_id"`
	ClientSecret     string            `json:"client_secret"`
	CustomerID       string            `json:"customer_id,omitempty"`
	AmountMinorUnits int64             `json:"amount"`
	AmountReceived   int64             `json:"amount_received,omitempty"`
	Currency         string            `json:"currency"`
	Status           string            `json:"status"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// ApprovalLink is one HATEOAS link returned by the wallet provider.
type ApprovalLink struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method,omitempty"`
}

// PayPalOrderRecord mirrors a PayPal order. Status moves
// CREATED → APPROVED → COMPLETED | DENIED | REFUNDED | PENDING;
// only a capture actually takes the money.
type PayPalOrderRecord struct {
	OrderID       string         `json:"id"`
	Status        string         `json:"status"`
	CaptureID     string         `json:"capture_id,omitempty"`
	Amount        string         `json:"amount"`
	Currency      string         `json:"currency"`
	ApprovalLinks []ApprovalLink `json:"links,omitempty"`
	PayerName     string         `json:"payer_name,omitempty"`
	PayerEmail    string         `json:"payer_email,omitempty"`
}

// OrderSummary is what the confirmation view reads back after a
// checkout. Webhook capture events update Status afterwards.
type OrderSummary struct {
	OrderID   string    `json:"order_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	Email     string    `json:"email,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
