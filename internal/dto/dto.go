package dto

// WebhookResult is returned to the gateway for every delivery that was not
// a processing failure.
type WebhookResult struct {
	Received bool         `json:"received"`
	Ignored  bool         `json:"ignored,omitempty"`
	Reason   string       `json:"reason,omitempty"`
	Message  string       `json:"message,omitempty"`
	Data     *RenewalData `json:"data,omitempty"`
}

type RenewalData struct {
	UserID         string `json:"userId"`
	PaymentID      string `json:"paymentId"`
	SubscriptionID string `json:"subscriptionId"`
	AddonID        string `json:"addonId,omitempty"`
}

func Ignored(reason string) *WebhookResult {
	return &WebhookResult{Received: true, Ignored: true, Reason: reason}
}

type EntitlementQuery struct {
	Dimension string `param:"dimension"`
	OwnerID   string `query:"owner_id"`
	Usage     int    `query:"usage"`
}
