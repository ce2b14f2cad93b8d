package domain

import "fmt"

// SortKey names a sortable prospect column.
type SortKey string

const (
	SortByName         SortKey = "name"
	SortByCompany      SortKey = "company"
	SortByTitle        SortKey = "title"
	SortByEmail        SortKey = "email"
	SortByLocation     SortKey = "location"
	SortByIndustry     SortKey = "industry"
	SortByCompanySize  SortKey = "companySize"
	SortByStatus       SortKey = "status"
	SortByLeadScore    SortKey = "leadScore"
	SortByLastActivity SortKey = "lastActivity"
	SortByCreatedAt    SortKey = "createdAt"
	SortByUpdatedAt    SortKey = "updatedAt"
)

func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(s)
	switch k {
	case SortByName, SortByCompany, SortByTitle, SortByEmail, SortByLocation, SortByIndustry,
		SortByCompanySize, SortByStatus, SortByLeadScore, SortByLastActivity, SortByCreatedAt, SortByUpdatedAt:
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

type SortDirection string

const (
	Ascending  SortDirection = "ascending"
	Descending SortDirection = "descending"
)

func ParseSortDirection(s string) (SortDirection, error) {
	switch s {
	case "", "asc", string(Ascending):
		return Ascending, nil
	case "desc", string(Descending):
		return Descending, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// SortState is the table's sort configuration. The zero value is unsorted.
type SortState struct {
	Key       SortKey       `json:"key,omitempty"`
	Direction SortDirection `json:"direction,omitempty"`
}

func (s SortState) Sorted() bool {
	return s.Key != ""
}

// Request returns the state after the user asks to sort by key: the same key
// flips direction, any other key (or unsorted) starts ascending.
func (s SortState) Request(key SortKey) SortState {
	if s.Key == key && s.Direction == Ascending {
		return SortState{Key: key, Direction: Descending}
	}
	return SortState{Key: key, Direction: Ascending}
}

// Indicator is the arrow drawn next to the active column header.
func (s SortState) Indicator(key SortKey) string {
	if s.Key != key {
		return ""
	}
	if s.Direction == Descending {
		return " ▼"
	}
	return " ▲"
}
