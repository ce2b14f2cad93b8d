package domain

import (
	"fmt"
	"strings"
)

const (
	MinLeadScore = 0
	MaxLeadScore = 100
)

// ScoreRange is a closed lead-score interval [Min, Max].
type ScoreRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FullScoreRange covers every valid lead score.
func FullScoreRange() ScoreRange {
	return ScoreRange{Min: MinLeadScore, Max: MaxLeadScore}
}

func (r ScoreRange) Validate() error {
	if r.Min < MinLeadScore || r.Max > MaxLeadScore {
		return fmt.Errorf("%w: [%d, %d] outside [%d, %d]", ErrInvalidScoreRange, r.Min, r.Max, MinLeadScore, MaxLeadScore)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: min %d greater than max %d", ErrInvalidScoreRange, r.Min, r.Max)
	}
	return nil
}

func (r ScoreRange) Contains(score int) bool {
	return score >= r.Min && score <= r.Max
}

// represents the active prospect filter criteria
type FilterOptions struct {
	Search      string           `json:"search"`
	Industry    []string         `json:"industry"`
	CompanySize []string         `json:"companySize"`
	LeadScore   *ScoreRange      `json:"leadScore,omitempty"`
	Status      []ProspectStatus `json:"status"`
	Location    []string         `json:"location"`
	Tags        []string         `json:"tags"`
}

// DefaultFilters is the state the filter panel starts in and returns to on clear.
func DefaultFilters() FilterOptions {
	full := FullScoreRange()
	return FilterOptions{
		Search:      "",
		Industry:    []string{},
		CompanySize: []string{},
		LeadScore:   &full,
		Status:      []ProspectStatus{},
		Location:    []string{},
		Tags:        []string{},
	}
}

func (f FilterOptions) Validate() error {
	if f.LeadScore != nil {
		if err := f.LeadScore.Validate(); err != nil {
			return err
		}
	}
	for _, s := range f.Status {
		if !s.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidStatus, s)
		}
	}
	return nil
}

// Clone returns a deep copy so snapshots handed to fetches cannot be mutated later.
func (f FilterOptions) Clone() FilterOptions {
	out := FilterOptions{
		Search:      f.Search,
		Industry:    cloneStrings(f.Industry),
		CompanySize: cloneStrings(f.CompanySize),
		Location:    cloneStrings(f.Location),
		Tags:        cloneStrings(f.Tags),
	}
	if f.Status != nil {
		out.Status = append([]ProspectStatus{}, f.Status...)
	}
	if f.LeadScore != nil {
		r := *f.LeadScore
		out.LeadScore = &r
	}
	return out
}

// FilterPatch is a partial FilterOptions; nil fields are left untouched by Merge.
type FilterPatch struct {
	Search      *string
	Industry    *[]string
	CompanySize *[]string
	LeadScore   *ScoreRange
	Status      *[]ProspectStatus
	Location    *[]string
	Tags        *[]string
}

// Merge applies the patch over f (shallow, later keys overwrite) and returns the result.
func (f FilterOptions) Merge(p FilterPatch) FilterOptions {
	out := f.Clone()
	if p.Search != nil {
		out.Search = *p.Search
	}
	if p.Industry != nil {
		out.Industry = cloneStrings(*p.Industry)
	}
	if p.CompanySize != nil {
		out.CompanySize = cloneStrings(*p.CompanySize)
	}
	if p.LeadScore != nil {
		r := *p.LeadScore
		out.LeadScore = &r
	}
	if p.Status != nil {
		out.Status = append([]ProspectStatus{}, (*p.Status)...)
	}
	if p.Location != nil {
		out.Location = cloneStrings(*p.Location)
	}
	if p.Tags != nil {
		out.Tags = cloneStrings(*p.Tags)
	}
	return out
}

// AsPatch returns a patch that replaces every field with f's value. A nil
// LeadScore leaves the range untouched.
func (f FilterOptions) AsPatch() FilterPatch {
	return FilterPatch{
		Search:      &f.Search,
		Industry:    &f.Industry,
		CompanySize: &f.CompanySize,
		LeadScore:   f.LeadScore,
		Status:      &f.Status,
		Location:    &f.Location,
		Tags:        &f.Tags,
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

// Matches reports whether p satisfies every non-empty criterion. Set-valued
// criteria match when the prospect's value is any of the listed values; tags
// match when the prospect carries at least one listed tag.
func (f FilterOptions) Matches(p Prospect) bool {
	if q := strings.TrimSpace(f.Search); q != "" {
		q = strings.ToLower(q)
		haystack := strings.ToLower(strings.Join([]string{p.Name, p.Company, p.Title, p.Email}, " "))
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	if len(f.Industry) > 0 && !containsString(f.Industry, p.Industry) {
		return false
	}
	if len(f.CompanySize) > 0 && !containsString(f.CompanySize, p.CompanySize) {
		return false
	}
	if len(f.Location) > 0 && !containsString(f.Location, p.Location) {
		return false
	}
	if len(f.Status) > 0 {
		found := false
		for _, s := range f.Status {
			if s == p.Status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(f.Tags) > 0 {
		found := false
		for _, t := range f.Tags {
			if p.HasTag(t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.LeadScore != nil && !f.LeadScore.Contains(p.LeadScore) {
		return false
	}
	return true
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
