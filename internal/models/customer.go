package models

// CustomerDetails identifies the buyer. Only name and email are
// required before a payment is attempted.
type CustomerDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}
