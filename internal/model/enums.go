package model

import "strings"

// PlanTier is the base plan a user is subscribed to.
type PlanTier string

const (
	PlanBasic    PlanTier = "BASIC"
	PlanPro      PlanTier = "PRO"
	PlanBusiness PlanTier = "BUSINESS"
)

// AddonType is the resource dimension an add-on augments.
type AddonType string

const (
	AddonWorkspace    AddonType = "WORKSPACE"
	AddonMember       AddonType = "MEMBER"
	AddonFunnel       AddonType = "FUNNEL"
	AddonPage         AddonType = "PAGE"
	AddonSubdomain    AddonType = "SUBDOMAIN"
	AddonCustomDomain AddonType = "CUSTOM_DOMAIN"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionExpired   SubscriptionStatus = "EXPIRED"
)

type AddOnStatus string

const (
	AddOnActive    AddOnStatus = "ACTIVE"
	AddOnCancelled AddOnStatus = "CANCELLED"
	AddOnExpired   AddOnStatus = "EXPIRED"
	AddOnInactive  AddOnStatus = "INACTIVE"
)

// ItemType tells whether a subscription bills a plan or an add-on.
type ItemType string

const (
	ItemPlan  ItemType = "PLAN"
	ItemAddon ItemType = "ADDON"
)

type PaymentType string

const (
	PaymentPlanPurchase  PaymentType = "PLAN_PURCHASE"
	PaymentAddonPurchase PaymentType = "ADDON_PURCHASE"
	PaymentTypeUnknown   PaymentType = ""
)

// ParsePaymentType maps a payload value onto the closed set, returning
// PaymentTypeUnknown for anything else.
func ParsePaymentType(s string) PaymentType {
	switch PaymentType(strings.ToUpper(strings.TrimSpace(s))) {
	case PaymentPlanPurchase:
		return PaymentPlanPurchase
	case PaymentAddonPurchase:
		return PaymentAddonPurchase
	default:
		return PaymentTypeUnknown
	}
}

// EventType is the gateway event name, normalized.
type EventType string

const (
	EventSubscriptionRenewed EventType = "subscription.renewed"
	EventUnknown             EventType = ""
)

func ParseEventType(s string) EventType {
	switch EventType(strings.ToLower(strings.TrimSpace(s))) {
	case EventSubscriptionRenewed:
		return EventSubscriptionRenewed
	default:
		return EventUnknown
	}
}

// ChargeStatus is the gateway charge status, normalized.
type ChargeStatus string

const (
	ChargeCaptured ChargeStatus = "captured"
	ChargeUnknown  ChargeStatus = ""
)

func ParseChargeStatus(s string) ChargeStatus {
	switch ChargeStatus(strings.ToLower(strings.TrimSpace(s))) {
	case ChargeCaptured:
		return ChargeCaptured
	default:
		return ChargeUnknown
	}
}
