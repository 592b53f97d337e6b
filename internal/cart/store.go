package cart

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"afrieats_backend/internal/kvstore"
	"afrieats_backend/internal/models"
)

const snapshotTTL = 7 * 24 * time.Hour

// Store keeps one cart per client session. Every mutation rewrites the
// full line list in the backing key-value store; a corrupt or
// non-array snapshot is discarded silently and the session starts
// empty again.
type Store struct {
	kv kvstore.Store
}

func NewStore(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

func cartKey(sessionID string) string  { return "cart:" + sessionID }
func notesKey(sessionID string) string { return "cart:" + sessionID + ":note" }

// Get rehydrates the session cart. Missing or unreadable snapshots
// yield an empty cart, never an error.
func (s *Store) Get(ctx context.Context, sessionID string) models.Cart {
	cart := models.Cart{}

	data, err := s.kv.Get(ctx, cartKey(sessionID))
	if err == nil {
		var lines []models.CartLine
		if err := json.Unmarshal([]byte(data), &lines); err != nil {
			log.Printf("⚠️ Discarding corrupt cart snapshot for %s: %v", sessionID, err)
		} else {
			cart.Lines = lines
		}
	}

	if note, err := s.kv.Get(ctx, notesKey(sessionID)); err == nil {
		cart.SpecialInstructions = note
	}
	return cart
}

// AddItem merges by (item id, variant label): an existing line gains
// one unit, otherwise a new line with quantity 1 is appended.
func (s *Store) AddItem(ctx context.Context, sessionID string, line models.CartLine) (models.Cart, error) {
	cart := s.Get(ctx, sessionID)

	merged := false
	for i, l := range cart.Lines {
		if l.ItemID == line.ItemID && l.Variant.Label == line.Variant.Label {
			cart.Lines[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		line.Quantity = 1
		cart.Lines = append(cart.Lines, line)
	}

	return cart, s.save(ctx, sessionID, cart)
}

// UpdateQuantity sets the quantity of the matching line. Anything
// below 1 removes the line instead; a zero-quantity line is never
// persisted.
func (s *Store) UpdateQuantity(ctx context.Context, sessionID, itemID, variantLabel string, quantity int) (models.Cart, error) {
	if quantity < 1 {
		return s.RemoveItem(ctx, sessionID, itemID, variantLabel)
	}

	cart := s.Get(ctx, sessionID)
	for i, l := range cart.Lines {
		if l.ItemID == itemID && l.Variant.Label == variantLabel {
			cart.Lines[i].Quantity = quantity
			break
		}
	}
	return cart, s.save(ctx, sessionID, cart)
}

// RemoveItem deletes the matching line. Removing an absent line is a
// no-op, not an error.
func (s *Store) RemoveItem(ctx context.Context, sessionID, itemID, variantLabel string) (models.Cart, error) {
	cart := s.Get(ctx, sessionID)

	kept := cart.Lines[:0]
	for _, l := range cart.Lines {
		if l.ItemID == itemID && l.Variant.Label == variantLabel {
			continue
		}
		kept = append(kept, l)
	}
	cart.Lines = kept

	return cart, s.save(ctx, sessionID, cart)
}

// SetInstructions stores the free-text kitchen note for the session.
func (s *Store) SetInstructions(ctx context.Context, sessionID, note string) error {
	return s.kv.Set(ctx, notesKey(sessionID), note, snapshotTTL)
}

// Clear empties the cart and erases the persisted snapshot.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.kv.Delete(ctx, cartKey(sessionID)); err != nil {
		return err
	}
	return s.kv.Delete(ctx, notesKey(sessionID))
}

func (s *Store) save(ctx context.Context, sessionID string, cart models.Cart) error {
	if len(cart.Lines) == 0 {
		return s.kv.Delete(ctx, cartKey(sessionID))
	}
	data, err := json.Marshal(cart.Lines)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, cartKey(sessionID), string(data), snapshotTTL)
}
