package domain

import "strings"

// Placeholder is stored for every optional field that was left blank.
const Placeholder = "-"

type Retailer struct {
	Name     string
	Address  string
	Address2 string
	Mobile   string
}

// Snapshot copies the retailer with blank optional fields set to Placeholder.
func (r Retailer) Snapshot() Retailer {
	return Retailer{
		Name:     strings.TrimSpace(r.Name),
		Address:  OrPlaceholder(r.Address),
		Address2: OrPlaceholder(r.Address2),
		Mobile:   OrPlaceholder(r.Mobile),
	}
}

func OrPlaceholder(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return Placeholder
	}
	return s
}
