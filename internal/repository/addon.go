package repository

import (
	"context"
	"funnel-billing/internal/model"
	"time"

	"gorm.io/gorm"
)

type AddOnRepository interface {
	Create(ctx context.Context, addOn *model.AddOn) error
	GetBySubscriptionID(ctx context.Context, subscriptionID string) (*model.AddOn, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.AddOn, error)
	// Renew syncs the add-on end date and reactivates it.
	Renew(ctx context.Context, tx *gorm.DB, addOnID string, endDate time.Time) error
}

type addOnRepoImpl struct {
	db *gorm.DB
}

func NewAddOnRepository(db *gorm.DB) AddOnRepository {
	return &addOnRepoImpl{
		db: db,
	}
}

func (r *addOnRepoImpl) Create(ctx context.Context, addOn *model.AddOn) error {
	return r.db.WithContext(ctx).Create(addOn).Error
}

func (r *addOnRepoImpl) GetBySubscriptionID(ctx context.Context, subscriptionID string) (*model.AddOn, error) {
	var addOn model.AddOn
	err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		First(&addOn).Error

	if err != nil {
		return nil, err
	}

	return &addOn, nil
}

func (r *addOnRepoImpl) ListByOwner(ctx context.Context, ownerID string) ([]*model.AddOn, error) {
	var addOns []*model.AddOn
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Find(&addOns).
		Error

	if err != nil {
		return nil, err
	}

	return addOns, nil
}

func (r *addOnRepoImpl) Renew(ctx context.Context, tx *gorm.DB, addOnID string, endDate time.Time) error {
	result := conn(r.db, tx).WithContext(ctx).
		Model(&model.AddOn{}).
		Where("id = ?", addOnID).
		Updates(map[string]interface{}{
			"end_date":   endDate,
			"status":     model.AddOnActive,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
