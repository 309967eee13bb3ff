package entitlement

import (
	"funnel-billing/internal/model"
)

// Dimension names a limited resource.
type Dimension string

const (
	UserWorkspaces         Dimension = "user_workspaces"
	WorkspaceMembers       Dimension = "workspace_members"
	WorkspaceFunnels       Dimension = "workspace_funnels"
	FunnelPages            Dimension = "funnel_pages"
	WorkspaceSubdomains    Dimension = "workspace_subdomains"
	WorkspaceCustomDomains Dimension = "workspace_custom_domains"
)

// Input is what a caller supplies to size an allocation: the owner's plan
// tier and whatever add-ons it holds, of any type or status.
type Input struct {
	Tier   model.PlanTier
	AddOns []*model.AddOn
}

// Summary is the full allocation view for one owner and dimension.
type Summary struct {
	BaseAllocation  int  `json:"baseAllocation"`
	ExtraFromAddOns int  `json:"extraFromAddOns"`
	TotalAllocation int  `json:"totalAllocation"`
	CurrentUsage    int  `json:"currentUsage"`
	RemainingSlots  int  `json:"remainingSlots"`
	CanCreateMore   bool `json:"canCreateMore"`
}

// Calculator sizes one dimension: a base allocation per tier plus UnitValue
// units for every add-on quantity of AddonType that is still valid.
type Calculator struct {
	Dimension Dimension
	AddonType model.AddonType
	Base      map[model.PlanTier]int
	UnitValue int
}

// BaseAllocation returns the tier's base quantity. Unknown tiers get the
// BASIC allocation.
func (c *Calculator) BaseAllocation(tier model.PlanTier) int {
	if n, ok := c.Base[tier]; ok {
		return n
	}
	return c.Base[model.PlanBasic]
}

// ExtraFromAddOns sums quantity*UnitValue over matching, valid add-ons.
func (c *Calculator) ExtraFromAddOns(addOns []*model.AddOn) int {
	extra := 0
	for _, a := range addOns {
		if a == nil || a.Type != c.AddonType {
			continue
		}
		if !IsValid(a) {
			continue
		}
		extra += a.Quantity * c.UnitValue
	}
	return extra
}

func (c *Calculator) TotalAllocation(in Input) int {
	return c.BaseAllocation(in.Tier) + c.ExtraFromAddOns(in.AddOns)
}

// CanCreate reports whether one more unit fits. Usage equal to the
// allocation blocks creation.
func (c *Calculator) CanCreate(currentUsage int, in Input) bool {
	return currentUsage < c.TotalAllocation(in)
}

func (c *Calculator) RemainingSlots(currentUsage int, in Input) int {
	return max(0, c.TotalAllocation(in)-currentUsage)
}

func (c *Calculator) Summary(currentUsage int, in Input) Summary {
	base := c.BaseAllocation(in.Tier)
	extra := c.ExtraFromAddOns(in.AddOns)
	total := base + extra
	return Summary{
		BaseAllocation:  base,
		ExtraFromAddOns: extra,
		TotalAllocation: total,
		CurrentUsage:    currentUsage,
		RemainingSlots:  max(0, total-currentUsage),
		CanCreateMore:   currentUsage < total,
	}
}
