package entitlement

import (
	"funnel-billing/internal/model"
)

func tiers(basic, pro, business int) map[model.PlanTier]int {
	return map[model.PlanTier]int{
		model.PlanBasic:    basic,
		model.PlanPro:      pro,
		model.PlanBusiness: business,
	}
}

var (
	Workspaces = &Calculator{
		Dimension: UserWorkspaces,
		AddonType: model.AddonWorkspace,
		Base:      tiers(1, 1, 10000),
		UnitValue: 1,
	}
	Members = &Calculator{
		Dimension: WorkspaceMembers,
		AddonType: model.AddonMember,
		Base:      tiers(1, 2, 1),
		UnitValue: 1,
	}
	Funnels = &Calculator{
		Dimension: WorkspaceFunnels,
		AddonType: model.AddonFunnel,
		Base:      tiers(1, 1, 1),
		UnitValue: 1,
	}
	Pages = &Calculator{
		Dimension: FunnelPages,
		AddonType: model.AddonPage,
		Base:      tiers(35, 35, 35),
		UnitValue: 5,
	}
	Subdomains = &Calculator{
		Dimension: WorkspaceSubdomains,
		AddonType: model.AddonSubdomain,
		Base:      tiers(1, 1, 1),
		UnitValue: 1,
	}
	CustomDomains = &Calculator{
		Dimension: WorkspaceCustomDomains,
		AddonType: model.AddonCustomDomain,
		Base:      tiers(0, 1, 0),
		UnitValue: 1,
	}
)

// All lists the calculators in a stable order.
func All() []*Calculator {
	return []*Calculator{Workspaces, Members, Funnels, Pages, Subdomains, CustomDomains}
}

// Lookup finds the calculator for a dimension name.
func Lookup(d Dimension) (*Calculator, bool) {
	for _, c := range All() {
		if c.Dimension == d {
			return c, true
		}
	}
	return nil, false
}
