package service

import (
	"context"
	"errors"
	"fmt"

	"funnel-billing/internal/entitlement"
	"funnel-billing/internal/model"
	"funnel-billing/internal/repository"

	"gorm.io/gorm"
)

// DimensionSummary pairs a summary with the dimension it describes.
type DimensionSummary struct {
	Dimension entitlement.Dimension `json:"dimension"`
	entitlement.Summary
}

type EntitlementService interface {
	Summary(ctx context.Context, userID, ownerID string, dimension entitlement.Dimension, usage int) (*DimensionSummary, error)
	Summaries(ctx context.Context, userID, ownerID string) ([]*DimensionSummary, error)
}

type entitlementServiceImpl struct {
	userRepo      repository.UserRepository
	workspaceRepo repository.WorkspaceRepository
	addOnRepo     repository.AddOnRepository
}

func NewEntitlementService(
	userRepo repository.UserRepository,
	workspaceRepo repository.WorkspaceRepository,
	addOnRepo repository.AddOnRepository,
) EntitlementService {
	return &entitlementServiceImpl{
		userRepo:      userRepo,
		workspaceRepo: workspaceRepo,
		addOnRepo:     addOnRepo,
	}
}

func (s *entitlementServiceImpl) Summary(ctx context.Context, userID, ownerID string, dimension entitlement.Dimension, usage int) (*DimensionSummary, error) {
	calc, ok := entitlement.Lookup(dimension)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDimension, dimension)
	}

	in, err := s.input(ctx, userID, ownerID)
	if err != nil {
		return nil, err
	}
	return &DimensionSummary{Dimension: calc.Dimension, Summary: calc.Summary(max(0, usage), in)}, nil
}

func (s *entitlementServiceImpl) Summaries(ctx context.Context, userID, ownerID string) ([]*DimensionSummary, error) {
	in, err := s.input(ctx, userID, ownerID)
	if err != nil {
		return nil, err
	}

	calcs := entitlement.All()
	out := make([]*DimensionSummary, 0, len(calcs))
	for _, calc := range calcs {
		out = append(out, &DimensionSummary{Dimension: calc.Dimension, Summary: calc.Summary(0, in)})
	}
	return out, nil
}

// input loads the owner's tier and add-ons. An empty owner means the caller.
// A workspace owner is sized by its owning user's tier, whoever asks, and
// only the owner or a member may ask.
func (s *entitlementServiceImpl) input(ctx context.Context, userID, ownerID string) (entitlement.Input, error) {
	caller, err := s.getUser(ctx, userID)
	if err != nil {
		return entitlement.Input{}, err
	}

	tier := caller.PlanType
	if ownerID == "" {
		ownerID = caller.ID
	}
	if ownerID != caller.ID {
		owner, err := s.workspaceOwner(ctx, caller.ID, ownerID)
		if err != nil {
			return entitlement.Input{}, err
		}
		tier = owner.PlanType
	}

	addOns, err := s.addOnRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return entitlement.Input{}, fmt.Errorf("list addons: %w", err)
	}
	return entitlement.Input{Tier: tier, AddOns: addOns}, nil
}

func (s *entitlementServiceImpl) workspaceOwner(ctx context.Context, callerID, workspaceID string) (*model.User, error) {
	workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrOwnerNotFound, workspaceID)
	}
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}

	ok, err := s.workspaceRepo.HasAccess(ctx, workspace, callerID)
	if err != nil {
		return nil, fmt.Errorf("check workspace access: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOwnerForbidden, workspaceID)
	}

	owner, err := s.userRepo.GetByID(ctx, workspace.OwnerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: workspace %s has no owner", ErrOwnerNotFound, workspaceID)
	}
	if err != nil {
		return nil, fmt.Errorf("get workspace owner: %w", err)
	}
	return owner, nil
}

func (s *entitlementServiceImpl) getUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
