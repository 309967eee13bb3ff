package repository

import (
	"context"
	"funnel-billing/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository interface {
	Exists(ctx context.Context, transactionID string) (bool, error)
	// CreateIfAbsent inserts the payment unless one with the same
	// transaction id exists. created is false when the row was already there.
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, payment *model.Payment) (created bool, err error)
	GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error)
}

type paymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepositoryImpl{db: db}
}

func (r *paymentRepositoryImpl) Exists(ctx context.Context, transactionID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("transaction_id = ?", transactionID).
		Count(&count).Error

	return count > 0, err
}

func (r *paymentRepositoryImpl) CreateIfAbsent(ctx context.Context, tx *gorm.DB, payment *model.Payment) (bool, error) {
	result := conn(r.db, tx).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_id"}},
		DoNothing: true,
	}).Create(payment)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *paymentRepositoryImpl) GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		First(&payment).Error
	if err != nil {
		return nil, err
	}

	return &payment, nil
}
