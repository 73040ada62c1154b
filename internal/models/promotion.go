package models

// Promotion is a percentage discount code. Code is stored uppercased and
// matched case-insensitively. ValidFrom/ValidTo are inclusive ISO dates
// (YYYY-MM-DD), so plain string comparison orders them correctly.
type Promotion struct {
	ID          string  `json:"id"`
	Code        string  `json:"code"`
	Discount    float64 `json:"discount"`
	ValidFrom   string  `json:"validFrom"`
	ValidTo     string  `json:"validTo"`
	Active      bool    `json:"active"`
	MaxUses     int     `json:"maxUses,omitempty"`
	CurrentUses int     `json:"currentUses,omitempty"`
}

// IsValidOn reports whether the promotion can be applied on the given ISO
// date: active, within the validity window, and under the usage limit.
func (p *Promotion) IsValidOn(date string) bool {
	if !p.Active || date < p.ValidFrom || date > p.ValidTo {
		return false
	}
	if p.MaxUses > 0 && p.CurrentUses >= p.MaxUses {
		return false
	}
	return true
}
