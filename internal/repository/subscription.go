package repository

import (
	"context"
	"funnel-billing/internal/model"
	"time"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *model.Subscription) error
	GetByExternalID(ctx context.Context, externalID string) (*model.Subscription, error)
	// Renew sets the paid-through date and reactivates the subscription.
	Renew(ctx context.Context, tx *gorm.DB, subscriptionID string, endsAt time.Time) error
	SetGatewaySubscriberID(ctx context.Context, subscriptionID, subscriberID string) error

	AppendRawData(ctx context.Context, tx *gorm.DB, event *model.SubscriptionEvent) error
	ListRawData(ctx context.Context, subscriptionID string) ([]*model.SubscriptionEvent, error)
}

type subscriptionRepoImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepoImpl{
		db: db,
	}
}

func (r *subscriptionRepoImpl) Create(ctx context.Context, sub *model.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *subscriptionRepoImpl) GetByExternalID(ctx context.Context, externalID string) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&sub).
		Error

	if err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *subscriptionRepoImpl) Renew(ctx context.Context, tx *gorm.DB, subscriptionID string, endsAt time.Time) error {
	result := conn(r.db, tx).WithContext(ctx).
		Model(&model.Subscription{}).
		Where("id = ?", subscriptionID).
		Updates(map[string]interface{}{
			"ends_at":    endsAt,
			"status":     model.SubscriptionActive,
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

func (r *subscriptionRepoImpl) SetGatewaySubscriberID(ctx context.Context, subscriptionID, subscriberID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("id = ?", subscriptionID).
		Update("gateway_subscriber_id", subscriberID).
		Error
}

func (r *subscriptionRepoImpl) AppendRawData(ctx context.Context, tx *gorm.DB, event *model.SubscriptionEvent) error {
	return conn(r.db, tx).WithContext(ctx).Create(event).Error
}

func (r *subscriptionRepoImpl) ListRawData(ctx context.Context, subscriptionID string) ([]*model.SubscriptionEvent, error) {
	var events []*model.SubscriptionEvent
	err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("id ASC").
		Find(&events).
		Error

	if err != nil {
		return nil, err
	}

	return events, nil
}
