package repository

import (
	"context"
	"funnel-billing/internal/model"

	"gorm.io/gorm"
)

type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *model.Workspace) error
	GetByID(ctx context.Context, workspaceID string) (*model.Workspace, error)
	AddMember(ctx context.Context, workspaceID, userID string) error
	// HasAccess reports whether the user owns or belongs to the workspace.
	HasAccess(ctx context.Context, workspace *model.Workspace, userID string) (bool, error)
}

type workspaceRepoImpl struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &workspaceRepoImpl{
		db: db,
	}
}

func (r *workspaceRepoImpl) Create(ctx context.Context, workspace *model.Workspace) error {
	return r.db.WithContext(ctx).Create(workspace).Error
}

func (r *workspaceRepoImpl) GetByID(ctx context.Context, workspaceID string) (*model.Workspace, error) {
	var workspace model.Workspace
	err := r.db.WithContext(ctx).
		Where("id = ?", workspaceID).
		First(&workspace).Error
	if err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (r *workspaceRepoImpl) AddMember(ctx context.Context, workspaceID, userID string) error {
	return r.db.WithContext(ctx).Create(&model.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      userID,
	}).Error
}

func (r *workspaceRepoImpl) HasAccess(ctx context.Context, workspace *model.Workspace, userID string) (bool, error) {
	if workspace.OwnerID == userID {
		return true, nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&model.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspace.ID, userID).
		Count(&count).Error
	return count > 0, err
}
