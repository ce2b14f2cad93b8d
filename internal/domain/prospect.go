package domain

import (
	"fmt"
	"time"
)

// ProspectStatus is the position of a prospect in the outreach pipeline.
type ProspectStatus string

const (
	StatusNew       ProspectStatus = "new"
	StatusContacted ProspectStatus = "contacted"
	StatusResponded ProspectStatus = "responded"
	StatusQualified ProspectStatus = "qualified"
	StatusConverted ProspectStatus = "converted"
	StatusRejected  ProspectStatus = "rejected"
)

var allStatuses = []ProspectStatus{
	StatusNew,
	StatusContacted,
	StatusResponded,
	StatusQualified,
	StatusConverted,
	StatusRejected,
}

// AllStatuses returns the statuses in pipeline order. The result is a fresh slice.
func AllStatuses() []ProspectStatus {
	out := make([]ProspectStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseProspectStatus accepts only the canonical lower-case values.
func ParseProspectStatus(s string) (ProspectStatus, error) {
	st := ProspectStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

func (s ProspectStatus) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusResponded, StatusQualified, StatusConverted, StatusRejected:
		return true
	}
	return false
}

// Label is the human readable column title used by the pipeline view.
func (s ProspectStatus) Label() string {
	switch s {
	case StatusNew:
		return "New Leads"
	case StatusContacted:
		return "Contacted"
	case StatusResponded:
		return "Responded"
	case StatusQualified:
		return "Qualified"
	case StatusConverted:
		return "Converted"
	case StatusRejected:
		return "Rejected"
	}
	return string(s)
}

// IsContacted reports whether outreach has happened at all.
func (s ProspectStatus) IsContacted() bool {
	return s != StatusNew
}

// HasResponded is true for every status reached only after a reply.
func (s ProspectStatus) HasResponded() bool {
	return s == StatusResponded || s == StatusQualified || s == StatusConverted
}

// represents a sales lead as served by the prospects API
type Prospect struct {
	ID                string         `json:"id" yaml:"id"`
	Name              string         `json:"name" yaml:"name"`
	Company           string         `json:"company" yaml:"company"`
	Title             string         `json:"title" yaml:"title"`
	Email             string         `json:"email" yaml:"email"`
	Phone             string         `json:"phone,omitempty" yaml:"phone"`
	Location          string         `json:"location" yaml:"location"`
	Industry          string         `json:"industry" yaml:"industry"`
	CompanySize       string         `json:"companySize" yaml:"company_size"`
	LeadScore         int            `json:"leadScore" yaml:"lead_score"`
	Status            ProspectStatus `json:"status" yaml:"status"`
	LastActivity      time.Time      `json:"lastActivity" yaml:"last_activity"`
	ProfileURL        string         `json:"profileUrl,omitempty" yaml:"profile_url"`
	ConnectionLevel   string         `json:"connectionLevel,omitempty" yaml:"connection_level"`
	MutualConnections int            `json:"mutualConnections" yaml:"mutual_connections"`
	Tags              []string       `json:"tags" yaml:"tags"`
	CreatedAt         time.Time      `json:"createdAt" yaml:"created_at"`
	UpdatedAt         time.Time      `json:"updatedAt" yaml:"updated_at"`
}

// HasTag reports whether the prospect carries tag (exact match).
func (p Prospect) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Option lists offered by the filter panel.
var (
	CompanySizes = []string{"1-10", "11-50", "51-200", "201-1000", "1001-5000", "5000+"}
	Industries   = []string{
		"Technology",
		"Healthcare",
		"Finance",
		"Manufacturing",
		"Retail",
		"Education",
		"Real Estate",
		"Marketing",
	}
)
