package service

import (
	"context"
	"time"

	"funnel-billing/internal/client"
	"funnel-billing/internal/notification"

	"github.com/rs/zerolog/log"
)

// notifyRenewal sends the renewal confirmation to the subscription owner.
// The renewal is already committed, so failures are only logged.
func (s *renewalServiceImpl) notifyRenewal(ctx context.Context, event *renewalEvent, userID, itemName string, validTill time.Time) {
	if s.mailClient == nil {
		return
	}

	to := s.recipient(ctx, event, userID)
	if to == "" {
		log.Warn().
			Str("transaction_id", event.TransactionID).
			Str("user_id", userID).
			Msg("no recipient for renewal email")
		return
	}

	subject, html, text, err := notification.RenderRenewal(notification.RenewalData{
		ItemName:  itemName,
		Amount:    event.Amount.StringFixed(2),
		Currency:  event.Currency,
		ValidTill: validTill,
	})
	if err != nil {
		log.Error().Err(err).Str("transaction_id", event.TransactionID).Msg("render renewal email")
		return
	}

	err = s.mailClient.Send(ctx, &client.Email{
		To:      to,
		From:    s.cfg.MailFrom,
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		log.Error().Err(err).
			Str("transaction_id", event.TransactionID).
			Str("to", to).
			Msg("send renewal email")
	}
}

// recipient prefers the stored account address over the one echoed back
// in the payload.
func (s *renewalServiceImpl) recipient(ctx context.Context, event *renewalEvent, userID string) string {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil && user.Email != "" {
		return user.Email
	}
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("load renewal recipient, using payload email")
	}
	return event.Email
}
