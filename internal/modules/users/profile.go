package users

import (
	"fmt"
	"strings"

	"github.com/brenofinance/dashboard/internal/domain"
)

// ProfileUpdate is the body of PUT /me. AvatarURL is optional; omitting it
// clears the stored avatar.
type ProfileUpdate struct {
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Currency  domain.Currency `json:"currency"`
	Locale    string          `json:"locale"`
	AvatarURL *string         `json:"avatarUrl,omitempty"`
}

// Validate checks field lengths and the currency.
func (p ProfileUpdate) Validate() error {
	if len(strings.TrimSpace(p.Name)) < 2 {
		return fmt.Errorf("name must be at least 2 characters")
	}
	if len(strings.TrimSpace(p.Email)) < 3 {
		return fmt.Errorf("email must be at least 3 characters")
	}
	if !p.Currency.IsSupported() {
		return fmt.Errorf("unsupported currency %q", p.Currency)
	}
	if len(strings.TrimSpace(p.Locale)) < 2 {
		return fmt.Errorf("locale must be at least 2 characters")
	}
	return nil
}

// Apply copies the update onto user.
func (p ProfileUpdate) Apply(user *domain.User) {
	user.Name = p.Name
	user.Email = p.Email
	user.Currency = p.Currency
	user.Locale = p.Locale
	user.AvatarURL = p.AvatarURL
}
