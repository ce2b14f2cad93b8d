package domain

import (
	"fmt"
	"net/mail"
	"strings"
)

// organization-wide outreach settings
type OrgSettings struct {
	FromName    string `json:"from_name"`
	FromEmail   string `json:"from_email"`
	CompanyName string `json:"company_name"`
	Website     string `json:"website,omitempty"`
	BrandVoice  string `json:"brand_voice,omitempty"`
}

func (s OrgSettings) IsZero() bool {
	return s == OrgSettings{}
}

func (s OrgSettings) Validate() error {
	var missing []string
	if strings.TrimSpace(s.FromName) == "" {
		missing = append(missing, "from_name")
	}
	if strings.TrimSpace(s.FromEmail) == "" {
		missing = append(missing, "from_email")
	}
	if strings.TrimSpace(s.CompanyName) == "" {
		missing = append(missing, "company_name")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidSettings, strings.Join(missing, ", "))
	}
	// bare address only; display-name forms like "Bob <bob@example.com>" are rejected
	addr, err := mail.ParseAddress(s.FromEmail)
	if err != nil || addr.Address != strings.TrimSpace(s.FromEmail) {
		return fmt.Errorf("%w: from_email %q is not an address", ErrInvalidSettings, s.FromEmail)
	}
	return nil
}
