// Package catalog holds the static pricing tiers for the product. Tiers are
// compiled in and never mutated after process start.
package catalog

import (
	"github.com/shopspring/decimal"
)

// BillingCycle selects which of a tier's Stripe price references applies.
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

// Valid reports whether the cycle is one of the known billing cycles.
func (c BillingCycle) Valid() bool {
	return c == CycleMonthly || c == CycleYearly
}

// Feature describes a single line on the pricing page.
type Feature struct {
	Name     string `json:"name"`
	Included bool   `json:"included"`
	Limit    string `json:"limit,omitempty"`
}

// Tier is one subscription tier. PatientLimit of 0 means unlimited.
type Tier struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	// Prices are in major currency units (dollars).
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	YearlyPrice  decimal.Decimal `json:"yearly_price"`
	Features     []Feature       `json:"features"`

	StripeProductID      string `json:"stripe_product_id"`
	StripeMonthlyPriceID string `json:"stripe_monthly_price_id"`
	StripeYearlyPriceID  string `json:"stripe_yearly_price_id"`

	PatientLimit       int    `json:"patient_limit"`
	SupportTier        string `json:"support_tier"`
	AnalyticsTier      string `json:"analytics_tier"`
	APIAccess          bool   `json:"api_access"`
	CustomIntegrations bool   `json:"custom_integrations"`
	WhiteLabel         bool   `json:"white_label"`
}

// PriceRef returns the Stripe price reference for the given billing cycle,
// or "" when the tier has no price for that cycle.
func (t *Tier) PriceRef(cycle BillingCycle) string {
	switch cycle {
	case CycleMonthly:
		return t.StripeMonthlyPriceID
	case CycleYearly:
		return t.StripeYearlyPriceID
	}
	return ""
}

// MinorUnits returns the tier's price for the cycle in minor currency units
// (cents), as charged by the gateway.
func (t *Tier) MinorUnits(cycle BillingCycle) int64 {
	switch cycle {
	case CycleMonthly:
		return t.MonthlyPrice.Mul(decimal.NewFromInt(100)).IntPart()
	case CycleYearly:
		return t.YearlyPrice.Mul(decimal.NewFromInt(100)).IntPart()
	}
	return 0
}

// Catalog is the read-only tier registry.
type Catalog struct {
	tiers []*Tier
}

// tierDefaults is the authoritative tier list. Price references point at the
// recurring prices configured in the Stripe dashboard.
var tierDefaults = []*Tier{
	{
		ID:           "starter",
		Name:         "Starter",
		Description:  "For solo practitioners getting started with digital patient management",
		MonthlyPrice: decimal.NewFromInt(49),
		YearlyPrice:  decimal.NewFromInt(490),
		Features: []Feature{
			{Name: "Patient records", Included: true, Limit: "up to 250 patients"},
			{Name: "Appointment scheduling", Included: true},
			{Name: "Basic reporting", Included: true},
			{Name: "Custom integrations", Included: false},
			{Name: "White-label portal", Included: false},
		},
		StripeProductID:      "prod_starter_carebridge",
		StripeMonthlyPriceID: "price_starter_monthly",
		StripeYearlyPriceID:  "price_starter_yearly",
		PatientLimit:         250,
		SupportTier:          "email",
		AnalyticsTier:        "basic",
	},
	{
		ID:           "professional",
		Name:         "Professional",
		Description:  "For growing practices that need analytics and API access",
		MonthlyPrice: decimal.NewFromInt(149),
		YearlyPrice:  decimal.NewFromInt(1490),
		Features: []Feature{
			{Name: "Patient records", Included: true, Limit: "up to 2,500 patients"},
			{Name: "Appointment scheduling", Included: true},
			{Name: "Advanced analytics", Included: true},
			{Name: "API access", Included: true},
			{Name: "Custom integrations", Included: false},
			{Name: "White-label portal", Included: false},
		},
		StripeProductID:      "prod_professional_carebridge",
		StripeMonthlyPriceID: "price_professional_monthly",
		StripeYearlyPriceID:  "price_professional_yearly",
		PatientLimit:         2500,
		SupportTier:          "priority",
		AnalyticsTier:        "advanced",
		APIAccess:            true,
	},
	{
		ID:           "enterprise",
		Name:         "Enterprise",
		Description:  "For clinics and hospital groups with compliance and integration needs",
		MonthlyPrice: decimal.NewFromInt(399),
		YearlyPrice:  decimal.NewFromInt(3990),
		Features: []Feature{
			{Name: "Patient records", Included: true, Limit: "unlimited"},
			{Name: "Appointment scheduling", Included: true},
			{Name: "Advanced analytics", Included: true},
			{Name: "API access", Included: true},
			{Name: "Custom integrations", Included: true},
			{Name: "White-label portal", Included: true},
		},
		StripeProductID:      "prod_enterprise_carebridge",
		StripeMonthlyPriceID: "price_enterprise_monthly",
		StripeYearlyPriceID:  "price_enterprise_yearly",
		PatientLimit:         0,
		SupportTier:          "dedicated",
		AnalyticsTier:        "advanced",
		APIAccess:            true,
		CustomIntegrations:   true,
		WhiteLabel:           true,
	},
}

// New returns the catalog backed by the compiled-in tier list.
func New() *Catalog {
	return &Catalog{tiers: tierDefaults}
}

// Tiers returns all tiers in display order.
func (c *Catalog) Tiers() []*Tier {
	return c.tiers
}

// ByID looks up a tier by its identifier.
func (c *Catalog) ByID(id string) (*Tier, bool) {
	for _, t := range c.tiers {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// ByPriceID reverse-looks-up a tier from a Stripe price reference. Price
// references are assumed unique across tiers and cycles.
func (c *Catalog) ByPriceID(priceID string) (*Tier, bool) {
	if priceID == "" {
		return nil, false
	}
	for _, t := range c.tiers {
		if t.StripeMonthlyPriceID == priceID || t.StripeYearlyPriceID == priceID {
			return t, true
		}
	}
	return nil, false
}
