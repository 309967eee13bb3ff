package client

import (
	"context"
	"fmt"
	"funnel-billing/internal/config"

	"github.com/braintree-go/braintree-go"
)

type braintreeLookupImpl struct {
	gateway *braintree.Braintree
}

// NewBraintreeLookup resolves subscribers through the Braintree SDK. The
// subscriber reference is the vaulted payment method token that backs the
// Braintree subscription.
func NewBraintreeLookup(cfg *config.Braintree) SubscriberLookup {
	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	gateway := braintree.New(
		env,
		cfg.MerchantID,
		cfg.PublicKey,
		cfg.PrivateKey,
	)

	return &braintreeLookupImpl{
		gateway: gateway,
	}
}

func (c *braintreeLookupImpl) LookupSubscriber(ctx context.Context, subscriptionID string) (string, error) {
	sub, err := c.gateway.Subscription().Find(ctx, subscriptionID)
	if err != nil {
		return "", fmt.Errorf("find braintree subscription: %w", err)
	}
	if sub == nil || sub.PaymentMethodToken == "" {
		return "", ErrSubscriberNotFound
	}

	return sub.PaymentMethodToken, nil
}
