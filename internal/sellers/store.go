package sellers

import (
	"context"
	"encoding/json"
	"log"

	"afrieats_backend/internal/kvstore"
	"afrieats_backend/internal/models"
)

// Store is the directory of connected sellers: who they are, which
// Stripe account receives their cut, whether onboarding finished, and
// which menu items they own.
type Store struct {
	kv kvstore.Store
}

func NewStore(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

func sellerKey(sellerID string) string   { return "seller:" + sellerID }
func accountKey(accountID string) string { return "seller:account:" + accountID }
func productKey(productID string) string { return "seller:product:" + productID }

func (s *Store) Save(ctx context.Context, rec models.ConnectedAccountRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, sellerKey(rec.SellerID), string(data), 0); err != nil {
		return err
	}
	// Reverse index so webhooks can find the seller from the account id.
	return s.kv.Set(ctx, accountKey(rec.StripeAccountID), rec.SellerID, 0)
}

func (s *Store) Get(ctx context.Context, sellerID string) (*models.ConnectedAccountRecord, error) {
	data, err := s.kv.Get(ctx, sellerKey(sellerID))
	if err != nil {
		return nil, err
	}
	var rec models.ConnectedAccountRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetByAccount resolves a seller from their Stripe account id.
func (s *Store) GetByAccount(ctx context.Context, accountID string) (*models.ConnectedAccountRecord, error) {
	sellerID, err := s.kv.Get(ctx, accountKey(accountID))
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, sellerID)
}

// AssignProduct records which seller owns a menu item.
func (s *Store) AssignProduct(ctx context.Context, productID, sellerID string) error {
	return s.kv.Set(ctx, productKey(productID), sellerID, 0)
}

// SellerForProduct resolves a menu item's owning seller.
func (s *Store) SellerForProduct(ctx context.Context, productID string) (*models.ConnectedAccountRecord, error) {
	sellerID, err := s.kv.Get(ctx, productKey(productID))
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, sellerID)
}

// ActivateByAccount flips the seller behind a Stripe account id to
// active. Safe to repeat: an already-active seller is left untouched,
// so duplicate webhook deliveries write at most once.
func (s *Store) ActivateByAccount(ctx context.Context, accountID string) (bool, error) {
	rec, err := s.GetByAccount(ctx, accountID)
	if err != nil {
		return false, err
	}
	if rec.OnboardingStatus == models.OnboardingActive {
		log.Printf("🔁 Seller %s already active, skipping", rec.SellerID)
		return false, nil
	}
	rec.OnboardingStatus = models.OnboardingActive
	return true, s.Save(ctx, *rec)
}
