package service

import (
	"context"
	"errors"
	"fmt"

	"funnel-billing/internal/dto"
	"funnel-billing/internal/metrics"
	"funnel-billing/internal/model"

	"gorm.io/gorm"
)

// renewAddon extends an add-on subscription and the add-on it backs. The
// owner's plan expiry is left alone.
func (s *renewalServiceImpl) renewAddon(ctx context.Context, event *renewalEvent) (*renewalOutcome, error) {
	sub, err := s.findSubscription(ctx, event.SubscriptionID)
	if err != nil {
		return nil, err
	}

	addOn, err := s.addOnRepo.GetBySubscriptionID(ctx, sub.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w %s", ErrAddonNotFound, event.SubscriptionID)
	}
	if err != nil {
		return nil, fmt.Errorf("get addon for subscription %s: %w", event.SubscriptionID, err)
	}

	nextDate, err := ParseNextPaymentDate(event.NextPaymentDate)
	if err != nil {
		return nil, err
	}

	addOnType := addOn.Type
	addOnID := addOn.ID
	payment := &model.Payment{
		TransactionID: event.TransactionID,
		Amount:        event.Amount,
		Currency:      event.Currency,
		Status:        event.Status,
		AddOnType:     &addOnType,
		PaymentType:   model.PaymentAddonPurchase,
		BuyerID:       sub.UserID,
		AddonID:       &addOnID,
		RawData:       event.Raw,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := s.paymentRepo.CreateIfAbsent(ctx, tx, payment)
		if err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		if !created {
			return ErrDuplicatePayment
		}

		if err := s.subscriptionRepo.AppendRawData(ctx, tx, &model.SubscriptionEvent{
			SubscriptionID: sub.ID,
			TransactionID:  event.TransactionID,
			Payload:        event.Raw,
		}); err != nil {
			return fmt.Errorf("append raw data: %w", err)
		}

		if err := s.subscriptionRepo.Renew(ctx, tx, sub.ID, nextDate); err != nil {
			return fmt.Errorf("renew subscription: %w", err)
		}
		if err := s.addOnRepo.Renew(ctx, tx, addOn.ID, nextDate); err != nil {
			return fmt.Errorf("renew addon: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveRenewal(metrics.KindAddon)

	s.notifyRenewal(ctx, event, sub.UserID, string(addOn.Type), nextDate)

	return &renewalOutcome{
		data: dto.RenewalData{
			UserID:         sub.UserID,
			PaymentID:      payment.ID,
			SubscriptionID: sub.ID,
			AddonID:        addOn.ID,
		},
		subscription: sub,
		message:      "Addon subscription renewed successfully",
	}, nil
}
