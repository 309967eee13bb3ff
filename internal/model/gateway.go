package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// FlexString accepts a JSON string or number. Gateways are not consistent
// about quoting identifiers.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("identifier must be a string or number: %s", b)
	}
	*f = FlexString(n.String())
	return nil
}

type RenewalDetails struct {
	Email       string     `json:"email"`
	PlanType    string     `json:"planType"`
	AddonType   string     `json:"addonType"`
	PaymentType string     `json:"paymentType"`
	UserID      FlexString `json:"userId"`
}

type CustomData struct {
	Details RenewalDetails `json:"details"`
}

// RenewalWebhookPayload is the gateway's recurring-charge notification as
// delivered on the wire. Fields are loosely typed here and validated by the
// renewal service before use.
type RenewalWebhookPayload struct {
	ID              FlexString      `json:"id"`
	EventType       string          `json:"event_type"`
	Status          string          `json:"status"`
	Amount          decimal.Decimal `json:"amount"`
	AmountCurrency  string          `json:"amount_currency"`
	SubscriptionID  FlexString      `json:"subscription_id"`
	NextPaymentDate string          `json:"next_payment_date"`
	CustomData      CustomData      `json:"custom_data"`
}
