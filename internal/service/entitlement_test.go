package service_test

import (
	"context"
	"testing"
	"time"

	"funnel-billing/internal/entitlement"
	"funnel-billing/internal/model"
	"funnel-billing/internal/repository"
	"funnel-billing/internal/service"
	"funnel-billing/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntitlementService_Summary(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	addOnRepo := repository.NewAddOnRepository(db)
	svc := service.NewEntitlementService(userRepo, repository.NewWorkspaceRepository(db), addOnRepo)

	user := &model.User{Email: "owner@example.com", PlanType: model.PlanPro}
	require.NoError(t, userRepo.Create(ctx, user))

	future := time.Now().Add(72 * time.Hour)
	past := time.Now().Add(-72 * time.Hour)
	for _, a := range []*model.AddOn{
		{Type: model.AddonMember, Quantity: 3, Status: model.AddOnActive},
		{Type: model.AddonMember, Quantity: 1, Status: model.AddOnCancelled, EndDate: &future},
		{Type: model.AddonMember, Quantity: 5, Status: model.AddOnCancelled, EndDate: &past},
		{Type: model.AddonMember, Quantity: 7, Status: model.AddOnExpired},
		{Type: model.AddonFunnel, Quantity: 2, Status: model.AddOnActive},
	} {
		a.OwnerID = user.ID
		a.UserID = user.ID
		a.PricePerUnit = decimal.RequireFromString("5")
		a.StartDate = past
		require.NoError(t, addOnRepo.Create(ctx, a))
	}

	got, err := svc.Summary(ctx, user.ID, "", entitlement.WorkspaceMembers, 5)
	require.NoError(t, err)
	assert.Equal(t, entitlement.WorkspaceMembers, got.Dimension)
	assert.Equal(t, 2, got.BaseAllocation)
	assert.Equal(t, 4, got.ExtraFromAddOns)
	assert.Equal(t, 6, got.TotalAllocation)
	assert.Equal(t, 1, got.RemainingSlots)
	assert.True(t, got.CanCreateMore)

	got, err = svc.Summary(ctx, user.ID, user.ID, entitlement.WorkspaceMembers, 6)
	require.NoError(t, err)
	assert.False(t, got.CanCreateMore)
	assert.Equal(t, 0, got.RemainingSlots)
}

func TestEntitlementService_Errors(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	svc := service.NewEntitlementService(userRepo, repository.NewWorkspaceRepository(db), repository.NewAddOnRepository(db))

	_, err := svc.Summary(ctx, "missing", "", entitlement.WorkspaceFunnels, 0)
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	user := &model.User{Email: "owner@example.com"}
	require.NoError(t, userRepo.Create(ctx, user))

	_, err = svc.Summary(ctx, user.ID, "", entitlement.Dimension("widgets"), 0)
	assert.ErrorIs(t, err, service.ErrUnknownDimension)
}

func TestEntitlementService_Summaries(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	svc := service.NewEntitlementService(userRepo, repository.NewWorkspaceRepository(db), repository.NewAddOnRepository(db))

	user := &model.User{Email: "owner@example.com", PlanType: model.PlanBusiness}
	require.NoError(t, userRepo.Create(ctx, user))

	all, err := svc.Summaries(ctx, user.ID, "")
	require.NoError(t, err)
	require.Len(t, all, len(entitlement.All()))

	byDim := map[entitlement.Dimension]int{}
	for _, s := range all {
		byDim[s.Dimension] = s.TotalAllocation
		assert.Equal(t, 0, s.CurrentUsage)
	}
	assert.Equal(t, 10000, byDim[entitlement.UserWorkspaces])
	assert.Equal(t, 35, byDim[entitlement.FunnelPages])
	assert.Equal(t, 0, byDim[entitlement.WorkspaceCustomDomains])
}

func TestEntitlementService_WorkspaceOwner(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	workspaceRepo := repository.NewWorkspaceRepository(db)
	addOnRepo := repository.NewAddOnRepository(db)
	svc := service.NewEntitlementService(userRepo, workspaceRepo, addOnRepo)

	owner := &model.User{Email: "owner@example.com", PlanType: model.PlanPro}
	member := &model.User{Email: "member@example.com", PlanType: model.PlanBasic}
	stranger := &model.User{Email: "stranger@example.com", PlanType: model.PlanBasic}
	for _, u := range []*model.User{owner, member, stranger} {
		require.NoError(t, userRepo.Create(ctx, u))
	}

	ws := &model.Workspace{OwnerID: owner.ID, Name: "Acme"}
	require.NoError(t, workspaceRepo.Create(ctx, ws))
	require.NoError(t, workspaceRepo.AddMember(ctx, ws.ID, member.ID))

	require.NoError(t, addOnRepo.Create(ctx, &model.AddOn{
		OwnerID:      ws.ID,
		UserID:       owner.ID,
		Type:         model.AddonCustomDomain,
		Quantity:     3,
		PricePerUnit: decimal.RequireFromString("4"),
		Status:       model.AddOnActive,
		StartDate:    time.Now(),
	}))

	// PRO owner: base 1 + 3 add-on domains, for the owner and any member.
	for _, caller := range []*model.User{owner, member} {
		got, err := svc.Summary(ctx, caller.ID, ws.ID, entitlement.WorkspaceCustomDomains, 0)
		require.NoError(t, err, caller.Email)
		assert.Equal(t, 1, got.BaseAllocation, caller.Email)
		assert.Equal(t, 4, got.TotalAllocation, caller.Email)
	}

	_, err := svc.Summary(ctx, stranger.ID, ws.ID, entitlement.WorkspaceCustomDomains, 0)
	assert.ErrorIs(t, err, service.ErrOwnerForbidden)

	_, err = svc.Summaries(ctx, stranger.ID, ws.ID)
	assert.ErrorIs(t, err, service.ErrOwnerForbidden)

	_, err = svc.Summary(ctx, owner.ID, "missing-workspace", entitlement.WorkspaceCustomDomains, 0)
	assert.ErrorIs(t, err, service.ErrOwnerNotFound)
}
