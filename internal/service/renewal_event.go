package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"funnel-billing/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// renewalEvent is the normalized form of a renewal webhook, built only after
// the event type, charge status and transaction id checks passed. Funds were
// captured by then, so only fields that make the event unusable are checked;
// anything else missing degrades the renewal instead of dropping it.
type renewalEvent struct {
	TransactionID   string            `validate:"required"`
	SubscriptionID  string            `validate:"-"` // empty resolves to ErrSubscriptionNotFound
	Amount          decimal.Decimal   `validate:"-"`
	Currency        string            `validate:"omitempty,alpha,len=3"`
	Status          string            `validate:"required"`
	NextPaymentDate string            `validate:"-"` // parsed by the processors, failures are fatal
	Email           string            `validate:"-"` // fallback recipient only
	PlanType        string            `validate:"-"`
	AddonType       string            `validate:"-"`
	PaymentType     model.PaymentType `validate:"-"` // unknown skips the plan expiry update
	Raw             datatypes.JSON    `validate:"required"`
}

func (e *renewalEvent) isAddon() bool {
	return e.AddonType != ""
}

func newRenewalEvent(payload *model.RenewalWebhookPayload, raw []byte) *renewalEvent {
	details := payload.CustomData.Details
	return &renewalEvent{
		TransactionID:   strings.TrimSpace(string(payload.ID)),
		SubscriptionID:  strings.TrimSpace(string(payload.SubscriptionID)),
		Amount:          payload.Amount,
		Currency:        strings.ToUpper(strings.TrimSpace(payload.AmountCurrency)),
		Status:          strings.ToLower(strings.TrimSpace(payload.Status)),
		NextPaymentDate: payload.NextPaymentDate,
		Email:           strings.TrimSpace(details.Email),
		PlanType:        strings.TrimSpace(details.PlanType),
		AddonType:       strings.TrimSpace(details.AddonType),
		PaymentType:     model.ParsePaymentType(details.PaymentType),
		Raw:             datatypes.JSON(raw),
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRenewalEvent returns a short, gateway-readable description of the
// first problems found.
func validateRenewalEvent(e *renewalEvent) error {
	err := validate.Struct(e)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, ", "))
}

var nextPaymentDatePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// ParseNextPaymentDate reads a DD/MM/YYYY date as midnight UTC. Dates that
// do not exist on the calendar, such as 31/02/2025, are rejected.
func ParseNextPaymentDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: missing next_payment_date", ErrInvalidNextPaymentDate)
	}
	if !nextPaymentDatePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q is not DD/MM/YYYY", ErrInvalidNextPaymentDate, s)
	}

	t, err := time.ParseInLocation("02/01/2006", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidNextPaymentDate, s, err)
	}
	return t, nil
}
