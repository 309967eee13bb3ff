package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"funnel-billing/internal/client"
	"funnel-billing/internal/dto"
	"funnel-billing/internal/lock"
	"funnel-billing/internal/metrics"
	"funnel-billing/internal/model"
	"funnel-billing/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type RenewalService interface {
	// HandleWebhook processes one gateway delivery. Ignorable deliveries
	// return a result with Ignored set; an error means the delivery failed
	// and the gateway should retry it.
	HandleWebhook(ctx context.Context, body []byte) (*dto.WebhookResult, error)
}

type RenewalConfig struct {
	MailFrom      string
	LookupTimeout time.Duration
}

type renewalServiceImpl struct {
	db               *gorm.DB
	subscriptionRepo repository.SubscriptionRepository
	addOnRepo        repository.AddOnRepository
	paymentRepo      repository.PaymentRepository
	userRepo         repository.UserRepository
	mailClient       client.MailClient
	subscriberLookup client.SubscriberLookup
	locker           lock.Locker
	metrics          *metrics.Metrics
	cfg              RenewalConfig
}

// renewalOutcome is what a processor hands back to HandleWebhook.
type renewalOutcome struct {
	data         dto.RenewalData
	subscription *model.Subscription
	message      string
}

func NewRenewalService(
	db *gorm.DB,
	subscriptionRepo repository.SubscriptionRepository,
	addOnRepo repository.AddOnRepository,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	mailClient client.MailClient,
	subscriberLookup client.SubscriberLookup,
	locker lock.Locker,
	m *metrics.Metrics,
	cfg RenewalConfig,
) RenewalService {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = 5 * time.Second
	}
	return &renewalServiceImpl{
		db:               db,
		subscriptionRepo: subscriptionRepo,
		addOnRepo:        addOnRepo,
		paymentRepo:      paymentRepo,
		userRepo:         userRepo,
		mailClient:       mailClient,
		subscriberLookup: subscriberLookup,
		locker:           locker,
		metrics:          m,
		cfg:              cfg,
	}
}

func (s *renewalServiceImpl) HandleWebhook(ctx context.Context, body []byte) (*dto.WebhookResult, error) {
	result, err := s.handleWebhook(ctx, body)
	switch {
	case err != nil:
		s.metrics.ObserveWebhook(metrics.OutcomeFailed)
	case result.Ignored:
		s.metrics.ObserveWebhook(metrics.OutcomeIgnored)
	default:
		s.metrics.ObserveWebhook(metrics.OutcomeProcessed)
	}
	return result, err
}

func (s *renewalServiceImpl) handleWebhook(ctx context.Context, body []byte) (*dto.WebhookResult, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return s.ignore("", ReasonInvalidPayload), nil
	}

	var payload model.RenewalWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Warn().Err(err).Msg("decode renewal webhook payload")
		return s.ignore("", ReasonInvalidPayload), nil
	}

	if model.ParseEventType(payload.EventType) != model.EventSubscriptionRenewed {
		return s.ignore(string(payload.ID), fmt.Sprintf(reasonUnhandledEvent, payload.EventType)), nil
	}
	if model.ParseChargeStatus(payload.Status) != model.ChargeCaptured {
		return s.ignore(string(payload.ID), fmt.Sprintf(reasonNotCaptured, payload.Status)), nil
	}

	event := newRenewalEvent(&payload, body)
	if event.TransactionID == "" {
		return s.ignore("", ReasonMissingTxnID), nil
	}

	processed, err := s.paymentRepo.Exists(ctx, event.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("check payment exists: %w", err)
	}
	if processed {
		return s.ignore(event.TransactionID, ReasonAlreadyProcessed), nil
	}

	if err := validateRenewalEvent(event); err != nil {
		log.Error().Err(err).Str("transaction_id", event.TransactionID).Msg("captured renewal failed validation")
		return nil, fmt.Errorf("%w: %w", ErrInvalidRenewalPayload, err)
	}

	unlock, err := s.locker.Lock(ctx, "subscription:"+event.SubscriptionID)
	if err != nil {
		return nil, fmt.Errorf("lock subscription %s: %w", event.SubscriptionID, err)
	}
	defer unlock()

	var outcome *renewalOutcome
	if event.isAddon() {
		outcome, err = s.renewAddon(ctx, event)
	} else {
		outcome, err = s.renewPlan(ctx, event)
	}
	if errors.Is(err, ErrDuplicatePayment) {
		return s.ignore(event.TransactionID, ReasonAlreadyProcessed), nil
	}
	if err != nil {
		log.Error().Err(err).
			Str("transaction_id", event.TransactionID).
			Str("subscription_id", event.SubscriptionID).
			Msg("renewal processing failed")
		return nil, err
	}

	s.syncGatewaySubscriber(ctx, outcome.subscription)

	log.Info().
		Str("transaction_id", event.TransactionID).
		Str("subscription_id", event.SubscriptionID).
		Str("payment_id", outcome.data.PaymentID).
		Msg(outcome.message)

	data := outcome.data
	return &dto.WebhookResult{
		Received: true,
		Message:  outcome.message,
		Data:     &data,
	}, nil
}

func (s *renewalServiceImpl) ignore(transactionID, reason string) *dto.WebhookResult {
	log.Info().
		Str("transaction_id", transactionID).
		Str("reason", reason).
		Msg("renewal webhook ignored")
	return dto.Ignored(reason)
}

func (s *renewalServiceImpl) findSubscription(ctx context.Context, externalID string) (*model.Subscription, error) {
	if externalID == "" {
		return nil, fmt.Errorf("%w: missing subscription_id", ErrSubscriptionNotFound)
	}
	sub, err := s.subscriptionRepo.GetByExternalID(ctx, externalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrSubscriptionNotFound, externalID)
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription %s: %w", externalID, err)
	}
	return sub, nil
}

// syncGatewaySubscriber stores the gateway's subscriber id for later
// reconciliation. Failures are logged and never fail the delivery.
func (s *renewalServiceImpl) syncGatewaySubscriber(ctx context.Context, sub *model.Subscription) {
	if s.subscriberLookup == nil || sub == nil || sub.GatewaySubscriberID != "" {
		return
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.cfg.LookupTimeout)
	defer cancel()

	subscriberID, err := s.subscriberLookup.LookupSubscriber(lookupCtx, sub.ExternalID)
	if err != nil {
		log.Warn().Err(err).Str("subscription_id", sub.ExternalID).Msg("gateway subscriber lookup failed")
		return
	}
	if err := s.subscriptionRepo.SetGatewaySubscriberID(ctx, sub.ID, subscriberID); err != nil {
		log.Warn().Err(err).Str("subscription_id", sub.ExternalID).Msg("persist gateway subscriber id failed")
	}
}
