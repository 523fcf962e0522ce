package request

import (
	"github.com/salonkita/salonkita-api/internal/domain/billing"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
)

// UpdateSettingsRequest replaces the tenant settings document wholesale.
// The pricing rule set is validated as a unit before anything is stored.
type UpdateSettingsRequest struct {
	LogoURL           string                 `json:"logo_url" binding:"omitempty,url"`
	Address           string                 `json:"address" binding:"omitempty,max=500"`
	Phone             string                 `json:"phone" binding:"omitempty,max=50"`
	InvoiceFooter     string                 `json:"invoice_footer" binding:"omitempty,max=500"`
	Currency          string                 `json:"currency" binding:"omitempty,len=3"`
	Timezone          string                 `json:"timezone" binding:"omitempty,max=100"`
	InvoicePrefix     string                 `json:"invoice_prefix" binding:"omitempty,max=20"`
	TransactionPrefix string                 `json:"transaction_prefix" binding:"omitempty,max=20"`
	InvoiceGraceDays  int                    `json:"invoice_grace_days" binding:"min=0"`
	Pricing           billing.PricingRuleSet `json:"pricing"`
}

// ToSettings converts the request into the settings document, filling
// defaults for omitted localization and numbering fields
func (r *UpdateSettingsRequest) ToSettings() entity.TenantSettings {
	settings := entity.TenantSettings{
		LogoURL:           r.LogoURL,
		Address:           r.Address,
		Phone:             r.Phone,
		InvoiceFooter:     r.InvoiceFooter,
		Currency:          r.Currency,
		Timezone:          r.Timezone,
		InvoicePrefix:     r.InvoicePrefix,
		TransactionPrefix: r.TransactionPrefix,
		InvoiceGraceDays:  r.InvoiceGraceDays,
		Pricing:           r.Pricing,
	}

	defaults := entity.DefaultTenantSettings()
	if settings.Currency == "" {
		settings.Currency = defaults.Currency
	}
	if settings.Timezone == "" {
		settings.Timezone = defaults.Timezone
	}
	if settings.InvoicePrefix == "" {
		settings.InvoicePrefix = defaults.InvoicePrefix
	}
	if settings.TransactionPrefix == "" {
		settings.TransactionPrefix = defaults.TransactionPrefix
	}
	return settings
}
