package service

import "errors"

var (
	ErrSubscriptionNotFound   = errors.New("subscription not found")
	ErrAddonNotFound          = errors.New("no addon found for subscription")
	ErrInvalidNextPaymentDate = errors.New("invalid next payment date")
	ErrInvalidRenewalPayload  = errors.New("invalid renewal payload")
	// ErrDuplicatePayment means another delivery already stored this
	// transaction; the caller treats it as an ignorable duplicate.
	ErrDuplicatePayment = errors.New("payment already processed")

	ErrUnknownDimension = errors.New("unknown entitlement dimension")
	ErrUserNotFound     = errors.New("user not found")
	ErrOwnerNotFound    = errors.New("owner not found")
	ErrOwnerForbidden   = errors.New("caller has no access to owner")
)

// Reasons reported back to the gateway for ignored deliveries.
const (
	ReasonInvalidPayload   = "Invalid payload format"
	ReasonMissingTxnID     = "Missing transaction ID"
	ReasonAlreadyProcessed = "Payment already processed"
	reasonUnhandledEvent   = "Unhandled event type: %s"
	reasonNotCaptured      = "Payment not captured (status: %s)"
)
