package service

import (
	"context"
	"errors"
	"fmt"

	"funnel-billing/internal/dto"
	"funnel-billing/internal/metrics"
	"funnel-billing/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// renewPlan extends a plan subscription and, for plan purchases, the
// owner's plan expiry. Renewals never create affiliate commission.
func (s *renewalServiceImpl) renewPlan(ctx context.Context, event *renewalEvent) (*renewalOutcome, error) {
	sub, err := s.findSubscription(ctx, event.SubscriptionID)
	if err != nil {
		return nil, err
	}

	nextDate, err := ParseNextPaymentDate(event.NextPaymentDate)
	if err != nil {
		return nil, err
	}

	payment := &model.Payment{
		TransactionID: event.TransactionID,
		Amount:        event.Amount,
		Currency:      event.Currency,
		Status:        event.Status,
		ItemType:      sub.SubscriptionType,
		PaymentType:   model.PaymentPlanPurchase,
		BuyerID:       sub.UserID,
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

		if event.PaymentType == model.PaymentPlanPurchase {
			err := s.userRepo.ExtendPlanExpiry(ctx, tx, sub.UserID, nextDate)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrUserNotFound, sub.UserID)
			}
			if err != nil {
				return fmt.Errorf("extend plan expiry: %w", err)
			}
		} else {
			log.Warn().
				Str("transaction_id", event.TransactionID).
				Str("payment_type", string(event.PaymentType)).
				Msg("not a plan purchase, plan expiry left unchanged")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveRenewal(metrics.KindPlan)

	itemName := event.PlanType
	if sub.SubscriptionType != nil {
		itemName = string(*sub.SubscriptionType)
	}
	s.notifyRenewal(ctx, event, sub.UserID, itemName, nextDate)

	return &renewalOutcome{
		data: dto.RenewalData{
			UserID:         sub.UserID,
			PaymentID:      payment.ID,
			SubscriptionID: sub.ID,
		},
		subscription: sub,
		message:      "Plan subscription renewed successfully",
	}, nil
}
