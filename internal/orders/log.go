package orders

import (
	"context"
	"encoding/json"
	"time"

	"afrieats_backend/internal/kvstore"
	"afrieats_backend/internal/models"
)

const summaryTTL = 30 * 24 * time.Hour

// Log keeps the order summaries the confirmation view reads back.
// These are derived copies; the payment provider stays authoritative.
type Log struct {
	kv kvstore.Store
}

func NewLog(kv kvstore.Store) *Log {
	return &Log{kv: kv}
}

func summaryKey(orderID string) string { return "order:" + orderID }
func linesKey(orderID string) string   { return "order:" + orderID + ":lines" }

func (l *Log) Save(ctx context.Context, summary models.OrderSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return l.kv.Set(ctx, summaryKey(summary.OrderID), string(data), summaryTTL)
}

func (l *Log) Get(ctx context.Context, orderID string) (*models.OrderSummary, error) {
	data, err := l.kv.Get(ctx, summaryKey(orderID))
	if err != nil {
		return nil, err
	}
	var summary models.OrderSummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// UpdateStatus moves an order to a new status. A summary that was
// never written locally (payment settled on another node, say) is
// created from what the event carries.
func (l *Log) UpdateStatus(ctx context.Context, orderID, status string) error {
	summary, err := l.Get(ctx, orderID)
	if err == kvstore.ErrNotFound {
		summary = &models.OrderSummary{OrderID: orderID, Timestamp: time.Now()}
	} else if err != nil {
		return err
	}
	summary.Status = status
	return l.Save(ctx, *summary)
}

// SaveLines keeps the cart snapshot behind an order so webhook
// handlers can rebuild the receipt later. Provider metadata cannot
// hold it: Stripe caps metadata values at 500 characters, which a few
// cart lines already exceed.
func (l *Log) SaveLines(ctx context.Context, orderID string, lines []models.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return l.kv.Set(ctx, linesKey(orderID), string(data), summaryTTL)
}

// Lines reads back the cart snapshot for an order. ErrNotFound means
// the order was opened without one (direct intent creation, another
// node).
func (l *Log) Lines(ctx context.Context, orderID string) ([]models.CartLine, error) {
	data, err := l.kv.Get(ctx, linesKey(orderID))
	if err != nil {
		return nil, err
	}
	var lines []models.CartLine
	if err := json.Unmarshal([]byte(data), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// MarkIntentHandled claims a payment intent for processing exactly
// once. The provider redelivers webhooks at least once; the first
// caller wins, repeats are told to stand down.
func (l *Log) MarkIntentHandled(ctx context.Context, intentID string) (bool, error) {
	return l.kv.SetNX(ctx, "order:intent:"+intentID, "handled", summaryTTL)
}
