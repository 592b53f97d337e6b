package payments

import (
	"fmt"
	"strconv"
	"strings"

	"afrieats_backend/internal/models"
)

// MinimumAmountMinorUnits is the smallest chargeable amount (30 pence),
// enforced identically by the card and wallet paths before any
// provider call.
const MinimumAmountMinorUnits int64 = 30

// validateCharge runs the shared pre-flight checks. Both payment paths
// fail with the exact same error shapes so clients see one behavior.
func validateCharge(amountMinorUnits int64, customer models.CustomerDetails) error {
	if amountMinorUnits < MinimumAmountMinorUnits {
		return &ValidationError{Reason: fmt.Sprintf("amount must be at least %d minor units (£0.30)", MinimumAmountMinorUnits)}
	}
	if strings.TrimSpace(customer.Name) == "" || strings.TrimSpace(customer.Email) == "" {
		return &ValidationError{Reason: "customer name and email are required"}
	}
	return nil
}

// parseDecimalAmount converts a decimal currency string ("31.98") to
// integer minor units. The wallet endpoint accepts decimal strings;
// everything internal is integer-safe.
func parseDecimalAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	// A sign would survive the whole/fraction split ("-0.50" parses
	// as whole 0, fraction 50) and charge a positive amount.
	if strings.HasPrefix(amount, "-") || strings.HasPrefix(amount, "+") {
		return 0, &ValidationError{Reason: "invalid amount: " + amount}
	}
	whole, frac, _ := strings.Cut(amount, ".")
	if whole == "" {
		whole = "0"
	}
	switch len(frac) {
	case 0:
		frac = "00"
	case 1:
		frac += "0"
	case 2:
	default:
		return 0, &ValidationError{Reason: "amount has more than two decimal places"}
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 {
		return 0, &ValidationError{Reason: "invalid amount: " + amount}
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, &ValidationError{Reason: "invalid amount: " + amount}
	}
	return units*100 + cents, nil
}

// formatMinorUnits renders integer minor units as the decimal string
// the wallet provider expects ("3198" → "31.98").
func formatMinorUnits(amount int64) string {
	return fmt.Sprintf("%d.%02d", amount/100, amount%100)
}

// MinorUnits converts a display price (15.99) to integer minor units,
// rounding to the nearest penny.
func MinorUnits(price float64) int64 {
	return int64(price*100 + 0.5)
}
