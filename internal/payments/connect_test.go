package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"afrieats_backend/internal/kvstore"
	"afrieats_backend/internal/models"
	"afrieats_backend/internal/sellers"
)

func newConnectFixture(t *testing.T) (*ConnectRouter, *sellers.Store, *fakeCardGateway) {
	t.Helper()
	store := sellers.NewStore(kvstore.NewMemory())
	gw := &fakeCardGateway{}
	return NewConnectRouter(gw, store), store, gw
}

func TestPlatformFeeIsFixedPercentage(t *testing.T) {
	router, _, _ := newConnectFixture(t)

	assert.Equal(t, int64(320), router.PlatformFee(3198))
	assert.Equal(t, int64(10), router.PlatformFee(100))
	assert.Equal(t, int64(3), router.PlatformFee(30))
}

func TestSplitIntentWithoutSellerAttemptsNoPayment(t *testing.T) {
	router, _, gw := newConnectFixture(t)

	_, err := router.CreateSplitIntent(context.Background(), "jollof", 3198, "gbp", validCustomer())

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Zero(t, gw.calls, "no payment may be attempted without a connected account")
}

func TestSplitIntentRoutesToSellerWithFee(t *testing.T) {
	router, store, gw := newConnectFixture(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, models.ConnectedAccountRecord{
		SellerID:         "seller-1",
		StripeAccountID:  "acct_seller1",
		OnboardingStatus: models.OnboardingActive,
	}))
	require.NoError(t, store.AssignProduct(ctx, "jollof", "seller-1"))

	record, err := router.CreateSplitIntent(ctx, "jollof", 3198, "gbp", validCustomer())

	require.NoError(t, err)
	assert.NotEmpty(t, record.ClientSecret)
	assert.Equal(t, "acct_seller1", gw.lastIntent.Destination)
	assert.Equal(t, int64(320), gw.lastIntent.FeeMinorUnits)
	assert.Equal(t, int64(3198), gw.lastIntent.AmountMinorUnits)
}

func TestSplitIntentValidatesBeforeLookup(t *testing.T) {
	router, _, gw := newConnectFixture(t)

	_, err := router.CreateSplitIntent(context.Background(), "jollof", 29, "gbp", validCustomer())

	var val *ValidationError
	require.ErrorAs(t, err, &val)
	assert.Zero(t, gw.calls)
}

func TestOnboardSavesPendingSeller(t *testing.T) {
	router, store, _ := newConnectFixture(t)
	ctx := context.Background()

	url, err := router.Onboard(ctx, "mama@put.example", "Mama Put Kitchen")

	require.NoError(t, err)
	assert.Contains(t, url, "acct_test_1")

	rec, err := store.Get(ctx, sellerIDByAccount(t, store, "acct_test_1"))
	require.NoError(t, err)
	assert.Equal(t, models.OnboardingPending, rec.OnboardingStatus)
	assert.Equal(t, "Mama Put Kitchen", rec.BusinessName)
}

func sellerIDByAccount(t *testing.T, store *sellers.Store, accountID string) string {
	t.Helper()
	rec, err := store.GetByAccount(context.Background(), accountID)
	require.NoError(t, err)
	return rec.SellerID
}
