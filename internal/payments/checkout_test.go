package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"afrieats_backend/internal/cart"
	"afrieats_backend/internal/kvstore"
	"afrieats_backend/internal/models"
	"afrieats_backend/internal/orders"
)

func validCustomer() models.CustomerDetails {
	return models.CustomerDetails{Name: "Ada Obi", Email: "ada@example.com"}
}

func TestCardMinimumAmountRejectedBeforeProviderCall(t *testing.T) {
	gw := &fakeCardGateway{}
	svc := NewCardService(gw)

	_, err := svc.CreateIntent(context.Background(), CreateIntentRequest{
		AmountMinorUnits: 29,
		Customer:         validCustomer(),
	})

	var val *ValidationError
	require.ErrorAs(t, err, &val)
	assert.Zero(t, gw.calls, "provider must not be contacted")
}

func TestWalletMinimumAmountRejectedBeforeProviderCall(t *testing.T) {
	gw := &fakeWalletGateway{}
	svc := NewWalletService(gw)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		Amount:   "0.29",
		Customer: validCustomer(),
	})

	var val *ValidationError
	require.ErrorAs(t, err, &val)
	assert.Zero(t, gw.calls, "provider must not be contacted")
}

func TestMissingCustomerRejectedIdenticallyOnBothPaths(t *testing.T) {
	cardGw := &fakeCardGateway{}
	walletGw := &fakeWalletGateway{}

	noEmail := models.CustomerDetails{Name: "Ada Obi"}

	_, cardErr := NewCardService(cardGw).CreateIntent(context.Background(), CreateIntentRequest{
		AmountMinorUnits: 3198,
		Customer:         noEmail,
	})
	_, walletErr := NewWalletService(walletGw).CreateOrder(context.Background(), CreateOrderRequest{
		Amount:   "31.98",
		Customer: noEmail,
	})

	var cardVal, walletVal *ValidationError
	require.ErrorAs(t, cardErr, &cardVal)
	require.ErrorAs(t, walletErr, &walletVal)
	assert.Equal(t, cardVal.Reason, walletVal.Reason, "both paths reject with the same shape")
	assert.Zero(t, cardGw.calls)
	assert.Zero(t, walletGw.calls)
}

func TestCustomerLookupFailureIsNonFatal(t *testing.T) {
	gw := &fakeCardGateway{
		findErr:   &ProviderError{Message: "search unavailable"},
		createErr: &ProviderError{Message: "customers unavailable"},
	}
	svc := NewCardService(gw)

	record, err := svc.CreateIntent(context.Background(), CreateIntentRequest{
		AmountMinorUnits: 3198,
		Customer:         validCustomer(),
	})

	require.NoError(t, err, "intent still goes through without a customer")
	assert.NotEmpty(t, record.ClientSecret)
	assert.Empty(t, record.CustomerID)
}

func TestExistingCustomerIsReused(t *testing.T) {
	gw := &fakeCardGateway{findID: "cus_existing"}
	svc := NewCardService(gw)

	record, err := svc.CreateIntent(context.Background(), CreateIntentRequest{
		AmountMinorUnits: 3198,
		Customer:         validCustomer(),
	})

	require.NoError(t, err)
	assert.Equal(t, "cus_existing", record.CustomerID)
	assert.Equal(t, "cus_existing", gw.lastIntent.CustomerID)
}

func TestIOSSafariFlagLandsInMetadata(t *testing.T) {
	gw := &fakeCardGateway{}
	svc := NewCardService(gw)

	_, err := svc.CreateIntent(context.Background(), CreateIntentRequest{
		AmountMinorUnits: 3198,
		Customer:         validCustomer(),
		IOSSafari:        true,
	})

	require.NoError(t, err)
	assert.Equal(t, "true", gw.lastIntent.Metadata["ios_safari"])
}

func TestProviderErrorPassesThroughVerbatim(t *testing.T) {
	gw := &fakeCardGateway{intentErr: &ProviderError{Message: "Your card was declined.", StatusCode: 402}}
	svc := NewCardService(gw)

	_, err := svc.CreateIntent(context.Background(), CreateIntentRequest{
		AmountMinorUnits: 3198,
		Customer:         validCustomer(),
	})

	var prov *ProviderError
	require.ErrorAs(t, err, &prov)
	assert.Equal(t, "Your card was declined.", prov.Message)
	assert.Equal(t, 402, HTTPStatus(err))
}

func newCheckoutFixture(t *testing.T) (*Orchestrator, *cart.Store, *orders.Log, *fakeCardGateway, *fakeWalletGateway) {
	t.Helper()
	kv := kvstore.NewMemory()
	carts := cart.NewStore(kv)
	orderLog := orders.NewLog(kv)
	cardGw := &fakeCardGateway{}
	walletGw := &fakeWalletGateway{}
	orch := NewOrchestrator(NewCardService(cardGw), NewWalletService(walletGw), carts, orderLog)
	return orch, carts, orderLog, cardGw, walletGw
}

func seedJollofCart(t *testing.T, carts *cart.Store) {
	t.Helper()
	line := models.CartLine{
		ItemID:  "jollof",
		Name:    "Jollof Rice",
		Variant: models.Variant{Label: "Large", Price: 15.99},
	}
	ctx := context.Background()
	_, err := carts.AddItem(ctx, "sess1", line)
	require.NoError(t, err)
	basket, err := carts.AddItem(ctx, "sess1", line)
	require.NoError(t, err)
	require.InDelta(t, 31.98, basket.TotalPrice(), 0.001)
}

func TestCheckoutCardEndToEnd(t *testing.T) {
	orch, carts, orderLog, cardGw, _ := newCheckoutFixture(t)
	seedJollofCart(t, carts)
	ctx := context.Background()

	result, err := orch.Checkout(ctx, "sess1", CheckoutRequest{
		PaymentMethod: MethodCard,
		Customer:      validCustomer(),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3198), result.AmountMinorUnits)
	assert.NotEmpty(t, result.ClientSecret)
	assert.Equal(t, int64(3198), cardGw.lastIntent.AmountMinorUnits)

	// Cart is cleared, summary is readable.
	assert.Empty(t, carts.Get(ctx, "sess1").Lines)
	summary, err := orderLog.Get(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "pending", summary.Status)
	assert.Equal(t, "ada@example.com", summary.Email)
	assert.Equal(t, "gbp", summary.Currency, "the adapter default, not an empty string")
}

func TestCheckoutWalletEndToEnd(t *testing.T) {
	orch, carts, orderLog, _, walletGw := newCheckoutFixture(t)
	seedJollofCart(t, carts)
	ctx := context.Background()

	result, err := orch.Checkout(ctx, "sess1", CheckoutRequest{
		PaymentMethod: MethodPayPal,
		Customer:      validCustomer(),
	})

	require.NoError(t, err)
	require.NotNil(t, result.PayPalOrder)
	assert.Equal(t, "31.98", walletGw.lastParams.Amount)
	assert.Equal(t, "GBP", walletGw.lastParams.Currency)
	assert.NotEmpty(t, walletGw.lastParams.IdempotencyKey)
	assert.Empty(t, carts.Get(ctx, "sess1").Lines)

	summary, err := orderLog.Get(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "GBP", summary.Currency)
}

func TestCheckoutStoresSnapshotForWebhooks(t *testing.T) {
	orch, carts, orderLog, cardGw, _ := newCheckoutFixture(t)
	seedJollofCart(t, carts)
	ctx := context.Background()

	result, err := orch.Checkout(ctx, "sess1", CheckoutRequest{
		PaymentMethod: MethodCard,
		Customer:      validCustomer(),
	})

	require.NoError(t, err)
	lines, err := orderLog.Lines(ctx, result.OrderID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "jollof", lines[0].ItemID)
	assert.Equal(t, 2, lines[0].Quantity)

	// The intent metadata carries only the session pointer; the line
	// list lives in the order log.
	assert.Equal(t, "sess1", cardGw.lastIntent.Metadata["session_id"])
	assert.NotContains(t, cardGw.lastIntent.Metadata, "cart")
}

func TestCheckoutLargeCartStaysWithinMetadataLimits(t *testing.T) {
	orch, carts, orderLog, cardGw, _ := newCheckoutFixture(t)
	ctx := context.Background()

	dishes := []string{"jollof", "egusi", "suya", "moimoi", "puffpuff", "chinchin"}
	for _, dish := range dishes {
		_, err := carts.AddItem(ctx, "sess1", models.CartLine{
			ItemID:  dish,
			Name:    "Dish " + dish,
			Variant: models.Variant{Label: "Large", Price: 9.99, PortionInfo: "Serves 2"},
		})
		require.NoError(t, err)
	}

	result, err := orch.Checkout(ctx, "sess1", CheckoutRequest{
		PaymentMethod: MethodCard,
		Customer:      validCustomer(),
	})

	require.NoError(t, err)
	for key, value := range cardGw.lastIntent.Metadata {
		assert.LessOrEqual(t, len(value), 500, "metadata value %q exceeds Stripe's limit", key)
	}

	lines, err := orderLog.Lines(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Len(t, lines, len(dishes))
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	orch, _, _, cardGw, _ := newCheckoutFixture(t)

	_, err := orch.Checkout(context.Background(), "sess1", CheckoutRequest{
		PaymentMethod: MethodCard,
		Customer:      validCustomer(),
	})

	var val *ValidationError
	require.ErrorAs(t, err, &val)
	assert.Zero(t, cardGw.calls)
}

func TestCheckoutUnknownMethodRejected(t *testing.T) {
	orch, carts, _, cardGw, walletGw := newCheckoutFixture(t)
	seedJollofCart(t, carts)
	ctx := context.Background()

	_, err := orch.Checkout(ctx, "sess1", CheckoutRequest{
		PaymentMethod: "cash",
		Customer:      validCustomer(),
	})

	var val *ValidationError
	require.ErrorAs(t, err, &val)
	assert.Zero(t, cardGw.calls)
	assert.Zero(t, walletGw.calls)
	// A failed checkout keeps the cart.
	assert.NotEmpty(t, carts.Get(ctx, "sess1").Lines)
}

func TestCheckoutProviderFailureKeepsCart(t *testing.T) {
	orch, carts, _, cardGw, _ := newCheckoutFixture(t)
	cardGw.intentErr = &ProviderError{Message: "rate limited", StatusCode: 429}
	seedJollofCart(t, carts)
	ctx := context.Background()

	_, err := orch.Checkout(ctx, "sess1", CheckoutRequest{
		PaymentMethod: MethodCard,
		Customer:      validCustomer(),
	})

	require.Error(t, err)
	assert.NotEmpty(t, carts.Get(ctx, "sess1").Lines)
}
