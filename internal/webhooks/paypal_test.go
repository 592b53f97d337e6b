package webhooks

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"afrieats_backend/internal/kvstore"
	"afrieats_backend/internal/models"
	"afrieats_backend/internal/orders"
	"afrieats_backend/internal/payments"
)

type fakeVerifier struct {
	verified bool
	err      error
	calls    int
}

func (f *fakeVerifier) VerifyWebhook(_ context.Context, _ *http.Request, _ string) (bool, error) {
	f.calls++
	return f.verified, f.err
}

func paypalRequest(body []byte) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/paypal", bytes.NewReader(body))
	req.Header.Set("Paypal-Transmission-Id", "tx-1")
	return req
}

func newPayPalFixture(t *testing.T, verified bool) (*PayPalReceiver, *orders.Log, *fakeDispatcher) {
	t.Helper()
	orderLog := orders.NewLog(kvstore.NewMemory())
	dispatcher := &fakeDispatcher{}
	receiver := NewPayPalReceiver(&fakeVerifier{verified: verified}, "wh-id-1", orderLog, dispatcher)
	return receiver, orderLog, dispatcher
}

func seedPayPalOrder(t *testing.T, orderLog *orders.Log) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, orderLog.Save(ctx, models.OrderSummary{
		OrderID:   "PP-ORDER-1",
		Amount:    3198,
		Currency:  "GBP",
		Status:    "pending",
		Email:     "ada@example.com",
		Timestamp: time.Now(),
	}))
	require.NoError(t, orderLog.SaveLines(ctx, "PP-ORDER-1", []models.CartLine{{
		ItemID:   "jollof",
		Name:     "Jollof Rice",
		Quantity: 2,
		Variant:  models.Variant{Label: "Large", Price: 15.99},
	}}))
}

func captureEventJSON(eventType string) []byte {
	return []byte(`{
		"id": "WH-EVT-1",
		"event_type": "` + eventType + `",
		"resource": {
			"id": "CAP-1",
			"status": "COMPLETED",
			"amount": {"currency_code": "GBP", "value": "31.98"},
			"supplementary_data": {"related_ids": {"order_id": "PP-ORDER-1"}}
		}
	}`)
}

func TestPayPalUnverifiedSignatureRejected(t *testing.T) {
	receiver, orderLog, dispatcher := newPayPalFixture(t, false)
	seedPayPalOrder(t, orderLog)

	body := captureEventJSON("PAYMENT.CAPTURE.COMPLETED")
	err := receiver.Handle(context.Background(), paypalRequest(body), body)

	var sig *payments.SignatureError
	require.ErrorAs(t, err, &sig)
	assert.Empty(t, dispatcher.receiptEmails)

	summary, getErr := orderLog.Get(context.Background(), "PP-ORDER-1")
	require.NoError(t, getErr)
	assert.Equal(t, "pending", summary.Status, "no processing after a failed verification")
}

func TestPayPalCaptureCompletedMarksPaidAndNotifies(t *testing.T) {
	receiver, orderLog, dispatcher := newPayPalFixture(t, true)
	seedPayPalOrder(t, orderLog)

	body := captureEventJSON("PAYMENT.CAPTURE.COMPLETED")
	require.NoError(t, receiver.Handle(context.Background(), paypalRequest(body), body))

	summary, err := orderLog.Get(context.Background(), "PP-ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, "paid", summary.Status)
	assert.Equal(t, []string{"ada@example.com"}, dispatcher.receiptEmails)
	require.Len(t, dispatcher.receiptLines, 1)
	assert.Equal(t, "jollof", dispatcher.receiptLines[0].ItemID)
}

func TestPayPalCaptureDeniedMarksFailed(t *testing.T) {
	receiver, orderLog, dispatcher := newPayPalFixture(t, true)
	seedPayPalOrder(t, orderLog)

	body := captureEventJSON("PAYMENT.CAPTURE.DENIED")
	require.NoError(t, receiver.Handle(context.Background(), paypalRequest(body), body))

	summary, err := orderLog.Get(context.Background(), "PP-ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, "failed", summary.Status)
	assert.Empty(t, dispatcher.receiptEmails)
}

func TestPayPalCaptureRefundedMarksRefunded(t *testing.T) {
	receiver, orderLog, _ := newPayPalFixture(t, true)
	seedPayPalOrder(t, orderLog)

	body := captureEventJSON("PAYMENT.CAPTURE.REFUNDED")
	require.NoError(t, receiver.Handle(context.Background(), paypalRequest(body), body))

	summary, err := orderLog.Get(context.Background(), "PP-ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, "refunded", summary.Status)
}

func TestPayPalUnknownEventAcknowledged(t *testing.T) {
	receiver, _, dispatcher := newPayPalFixture(t, true)

	body := captureEventJSON("CHECKOUT.ORDER.APPROVED")
	assert.NoError(t, receiver.Handle(context.Background(), paypalRequest(body), body))
	assert.Empty(t, dispatcher.receiptEmails)
}

func TestPayPalMissingWebhookIDIsConfigurationError(t *testing.T) {
	verifier := &fakeVerifier{verified: true}
	receiver := NewPayPalReceiver(verifier, "", orders.NewLog(kvstore.NewMemory()), &fakeDispatcher{})

	body := captureEventJSON("PAYMENT.CAPTURE.COMPLETED")
	err := receiver.Handle(context.Background(), paypalRequest(body), body)

	var cfg *payments.ConfigurationError
	require.ErrorAs(t, err, &cfg)
	assert.Zero(t, verifier.calls)
}
