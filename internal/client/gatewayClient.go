package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"funnel-billing/internal/config"
	"io"
	"net/http"
	"net/url"
	"time"
)

var ErrSubscriberNotFound = errors.New("gateway subscriber not found")

// SubscriberLookup resolves the gateway's own subscriber identifier for a
// subscription, kept for later reconciliation.
type SubscriberLookup interface {
	LookupSubscriber(ctx context.Context, subscriptionID string) (string, error)
}

// NewSubscriberLookup builds the lookup for the configured gateway provider.
func NewSubscriberLookup(gatewayCfg *config.Gateway, braintreeCfg *config.Braintree) (SubscriberLookup, error) {
	switch gatewayCfg.Provider {
	case "braintree":
		return NewBraintreeLookup(braintreeCfg), nil
	case "http", "":
		return NewGatewayClient(gatewayCfg), nil
	default:
		return nil, fmt.Errorf("unsupported gateway provider %q", gatewayCfg.Provider)
	}
}

type gatewayClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	apiKey     string
}

type gatewaySubscriptionResult struct {
	ID           string `json:"id"`
	SubscriberID string `json:"subscriber_id"`
	Status       string `json:"status"`
}

func NewGatewayClient(cfg *config.Gateway) SubscriberLookup {
	return &gatewayClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL: cfg.BaseApiURL,
		apiKey:     cfg.APIKey,
	}
}

func (c *gatewayClientImpl) LookupSubscriber(ctx context.Context, subscriptionID string) (string, error) {
	if c.baseApiURL == "" {
		return "", fmt.Errorf("gateway base api url not configured")
	}

	endpoint := fmt.Sprintf("%s/v1/subscriptions/%s", c.baseApiURL, url.PathEscape(subscriptionID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create lookup request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrSubscriberNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gateway error %d: %s", resp.StatusCode, string(b))
	}

	var result gatewaySubscriptionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode gateway response: %w", err)
	}
	if result.SubscriberID == "" {
		return "", ErrSubscriberNotFound
	}

	return result.SubscriberID, nil
}
