package repository_test

import (
	"context"
	"testing"
	"time"

	"funnel-billing/internal/model"
	"funnel-billing/internal/repository"
	"funnel-billing/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestPaymentRepository_CreateIfAbsent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewPaymentRepository(db)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, "txn_1")
	require.NoError(t, err)
	assert.False(t, exists)

	first := &model.Payment{
		TransactionID: "txn_1",
		Amount:        decimal.RequireFromString("19.99"),
		Currency:      "USD",
		Status:        "captured",
		PaymentType:   model.PaymentPlanPurchase,
		BuyerID:       "user-1",
	}
	created, err := repo.CreateIfAbsent(ctx, nil, first)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, first.ID)

	second := &model.Payment{
		TransactionID: "txn_1",
		Amount:        decimal.RequireFromString("19.99"),
		Currency:      "USD",
		Status:        "captured",
		PaymentType:   model.PaymentPlanPurchase,
		BuyerID:       "user-1",
	}
	created, err = repo.CreateIfAbsent(ctx, nil, second)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, db.Model(&model.Payment{}).Where("transaction_id = ?", "txn_1").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	stored, err := repo.GetByTransactionID(ctx, "txn_1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.True(t, stored.Amount.Equal(decimal.RequireFromString("19.99")))
}

func TestSubscriptionRepository_RawDataKeepsInsertionOrder(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewSubscriptionRepository(db)
	ctx := context.Background()

	sub := &model.Subscription{
		ExternalID: "sub_ext_1",
		UserID:     "user-1",
		StartsAt:   time.Now(),
		Status:     model.SubscriptionActive,
		ItemType:   model.ItemPlan,
	}
	require.NoError(t, repo.Create(ctx, sub))

	for _, payload := range []string{`{"n":1}`, `{"n":2}`, `{"n":3}`} {
		require.NoError(t, repo.AppendRawData(ctx, nil, &model.SubscriptionEvent{
			SubscriptionID: sub.ID,
			Payload:        datatypes.JSON(payload),
		}))
	}

	events, err := repo.ListRawData(ctx, sub.ID)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.JSONEq(t, `{"n":1}`, string(events[0].Payload))
	assert.JSONEq(t, `{"n":3}`, string(events[2].Payload))
}

func TestSubscriptionRepository_Renew(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewSubscriptionRepository(db)
	ctx := context.Background()

	sub := &model.Subscription{
		ExternalID: "sub_ext_2",
		UserID:     "user-1",
		StartsAt:   time.Now(),
		Status:     model.SubscriptionExpired,
		ItemType:   model.ItemPlan,
	}
	require.NoError(t, repo.Create(ctx, sub))

	endsAt := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Renew(ctx, nil, sub.ID, endsAt))

	got, err := repo.GetByExternalID(ctx, "sub_ext_2")
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionActive, got.Status)
	require.NotNil(t, got.EndsAt)
	assert.True(t, got.EndsAt.Equal(endsAt))

	err = repo.Renew(ctx, nil, "missing", endsAt)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.GetByExternalID(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAddOnRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewAddOnRepository(db)
	ctx := context.Background()

	subID := "sub-1"
	addOn := &model.AddOn{
		OwnerID:        "ws-1",
		UserID:         "user-1",
		SubscriptionID: &subID,
		Type:           model.AddonFunnel,
		Quantity:       2,
		PricePerUnit:   decimal.RequireFromString("5.00"),
		Status:         model.AddOnExpired,
		StartDate:      time.Now().AddDate(0, -1, 0),
	}
	require.NoError(t, repo.Create(ctx, addOn))
	require.NoError(t, repo.Create(ctx, &model.AddOn{
		OwnerID:      "ws-1",
		UserID:       "user-1",
		Type:         model.AddonPage,
		Quantity:     1,
		PricePerUnit: decimal.RequireFromString("2.00"),
		Status:       model.AddOnActive,
		StartDate:    time.Now(),
	}))

	found, err := repo.GetBySubscriptionID(ctx, subID)
	require.NoError(t, err)
	assert.Equal(t, addOn.ID, found.ID)

	endDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Renew(ctx, nil, addOn.ID, endDate))

	owned, err := repo.ListByOwner(ctx, "ws-1")
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	renewed, err := repo.GetBySubscriptionID(ctx, subID)
	require.NoError(t, err)
	assert.Equal(t, model.AddOnActive, renewed.Status)
	require.NotNil(t, renewed.EndDate)
	assert.True(t, renewed.EndDate.Equal(endDate))
}

func TestUserRepository_ExtendPlanExpiry(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	user := &model.User{Email: "owner@example.com", PlanType: model.PlanPro}
	require.NoError(t, repo.Create(ctx, user))

	at := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.ExtendPlanExpiry(ctx, nil, user.ID, at))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TrialEndsAt)
	assert.True(t, got.TrialEndsAt.Equal(at))

	assert.ErrorIs(t, repo.ExtendPlanExpiry(ctx, nil, "nobody", at), gorm.ErrRecordNotFound)
}

func TestWorkspaceRepository_HasAccess(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewWorkspaceRepository(db)
	ctx := context.Background()

	ws := &model.Workspace{OwnerID: "owner-1", Name: "Acme"}
	require.NoError(t, repo.Create(ctx, ws))
	require.NoError(t, repo.AddMember(ctx, ws.ID, "member-1"))

	stored, err := repo.GetByID(ctx, ws.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", stored.OwnerID)

	for user, want := range map[string]bool{"owner-1": true, "member-1": true, "stranger": false} {
		ok, err := repo.HasAccess(ctx, stored, user)
		require.NoError(t, err)
		assert.Equal(t, want, ok, user)
	}

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
