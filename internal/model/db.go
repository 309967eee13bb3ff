package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID             string          `gorm:"primaryKey;size:36;not null"`
	Email          string          `gorm:"size:255;uniqueIndex;not null"`
	Name           string          `gorm:"size:128"`
	Language       string          `gorm:"size:8;default:en"`
	PlanType       PlanTier        `gorm:"size:32;not null;default:BASIC"`
	TrialEndsAt    *time.Time      // plan expiry marker
	PendingBalance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"` // affiliate earnings
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Subscription struct {
	ID                  string             `gorm:"primaryKey;size:36;not null"`
	ExternalID          string             `gorm:"size:128;uniqueIndex;not null"` // gateway subscription id
	UserID              string             `gorm:"size:36;index;not null"`
	StartsAt            time.Time          `gorm:"not null"`
	EndsAt              *time.Time
	Status              SubscriptionStatus `gorm:"size:16;index;not null"`
	IntervalUnit        string             `gorm:"size:16;not null;default:MONTH"`
	IntervalCount       int                `gorm:"not null;default:1"`
	ItemType            ItemType           `gorm:"size:16;not null"`
	SubscriptionType    *PlanTier          `gorm:"size:32"` // set for PLAN only
	AddonType           *AddonType         `gorm:"size:32"` // set for ADDON only
	GatewaySubscriberID string             `gorm:"size:128"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// SubscriptionEvent is one entry of a subscription's raw webhook history.
// Rows are insert-only; ID order is insertion order.
type SubscriptionEvent struct {
	ID             uint           `gorm:"primaryKey"`
	SubscriptionID string         `gorm:"size:36;index;not null"`
	TransactionID  string         `gorm:"size:128"`
	Payload        datatypes.JSON `gorm:"not null"`
	CreatedAt      time.Time
}

type AddOn struct {
	ID             string          `gorm:"primaryKey;size:36;not null"`
	OwnerID        string          `gorm:"size:36;index;not null"` // user or workspace
	UserID         string          `gorm:"size:36;index;not null"` // purchaser
	SubscriptionID *string         `gorm:"size:36;index"`
	Type           AddonType       `gorm:"size:32;index;not null"`
	Quantity       int             `gorm:"not null"`
	PricePerUnit   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status         AddOnStatus     `gorm:"size:16;index;not null"`
	BillingCycle   string          `gorm:"size:16;not null;default:MONTHLY"`
	StartDate      time.Time       `gorm:"not null"`
	EndDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Payment struct {
	ID               string           `gorm:"primaryKey;size:36;not null"`
	TransactionID    string           `gorm:"size:128;uniqueIndex;not null"`
	Amount           decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Currency         string           `gorm:"size:8;not null"`
	Status           string           `gorm:"size:32;not null"`
	ItemType         *PlanTier        `gorm:"size:32"` // plan purchases only
	AddOnType        *AddonType       `gorm:"size:32"` // add-on purchases only
	PaymentType      PaymentType      `gorm:"size:32;not null"`
	BuyerID          string           `gorm:"size:36;index;not null"`
	AddonID          *string          `gorm:"size:36"`
	AffiliateLinkID  *string          `gorm:"size:36"`
	CommissionAmount *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CommissionStatus *string          `gorm:"size:16"`
	RawData          datatypes.JSON
	CreatedAt        time.Time
}

// Workspace groups resources owned by one user. Add-ons with a workspace
// OwnerID stack onto the owning user's plan tier.
type Workspace struct {
	ID        string `gorm:"primaryKey;size:36;not null"`
	OwnerID   string `gorm:"size:36;index;not null"`
	Name      string `gorm:"size:128;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type WorkspaceMember struct {
	WorkspaceID string `gorm:"primaryKey;size:36"`
	UserID      string `gorm:"primaryKey;size:36;index"`
	CreatedAt   time.Time
}

type AffiliateLink struct {
	ID             string          `gorm:"primaryKey;size:36;not null"`
	OwnerID        string          `gorm:"size:36;index;not null"`
	Code           string          `gorm:"size:64;uniqueIndex;not null"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(5,4);not null"`
	CreatedAt      time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (a *AddOn) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (w *Workspace) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

func (l *AffiliateLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// EntitlementStatus and ExpiresAt let the entitlement package judge
// whether a subscription or add-on still grants access.

func (s *Subscription) EntitlementStatus() string { return string(s.Status) }
func (s *Subscription) ExpiresAt() *time.Time { return s.EndsAt }

func (a *AddOn) EntitlementStatus() string { return string(a.Status) }
func (a *AddOn) ExpiresAt() *time.Time { return a.EndDate }

// AllModels lists every table for AutoMigrate.
func AllModels() []any {
	return []any{
		&User{},
		&Subscription{},
		&SubscriptionEvent{},
		&AddOn{},
		&Payment{},
		&AffiliateLink{},
		&Workspace{},
		&WorkspaceMember{},
	}
}
