package usecase

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"prospectdash/internal/domain"
)

// Query parameter names shared by the API client and the server.
const (
	ParamSearch       = "search"
	ParamIndustry     = "industry"
	ParamStatus       = "status"
	ParamCompanySize  = "companySize"
	ParamLocation     = "location"
	ParamTags         = "tags"
	ParamLeadScoreMin = "leadScoreMin"
	ParamLeadScoreMax = "leadScoreMax"
)

// BuildProspectQuery encodes filters for GET /prospects. Empty fields are left
// out entirely, set-valued fields are comma joined and the lead-score range is
// sent as two bounds.
func BuildProspectQuery(f domain.FilterOptions) url.Values {
	q := url.Values{}

	if f.Search != "" {
		q.Set(ParamSearch, f.Search)
	}
	setList(q, ParamIndustry, f.Industry)
	if len(f.Status) > 0 {
		statuses := make([]string, len(f.Status))
		for i, s := range f.Status {
			statuses[i] = string(s)
		}
		setList(q, ParamStatus, statuses)
	}
	setList(q, ParamCompanySize, f.CompanySize)
	setList(q, ParamLocation, f.Location)
	setList(q, ParamTags, f.Tags)

	if f.LeadScore != nil {
		q.Set(ParamLeadScoreMin, strconv.Itoa(f.LeadScore.Min))
		q.Set(ParamLeadScoreMax, strconv.Itoa(f.LeadScore.Max))
	}

	return q
}

func setList(q url.Values, key string, values []string) {
	if len(values) > 0 {
		q.Set(key, strings.Join(values, ","))
	}
}

// ParseProspectQuery is the inverse of BuildProspectQuery. A single bound is
// completed with the other end of the full range.
func ParseProspectQuery(q url.Values) (domain.FilterOptions, error) {
	f := domain.FilterOptions{
		Search:      strings.TrimSpace(q.Get(ParamSearch)),
		Industry:    splitList(q.Get(ParamIndustry)),
		CompanySize: splitList(q.Get(ParamCompanySize)),
		Location:    splitList(q.Get(ParamLocation)),
		Tags:        splitList(q.Get(ParamTags)),
	}

	for _, s := range splitList(q.Get(ParamStatus)) {
		st, err := domain.ParseProspectStatus(s)
		if err != nil {
			return domain.FilterOptions{}, err
		}
		f.Status = append(f.Status, st)
	}

	minStr, maxStr := q.Get(ParamLeadScoreMin), q.Get(ParamLeadScoreMax)
	if minStr != "" || maxStr != "" {
		r := domain.FullScoreRange()
		var err error
		if minStr != "" {
			if r.Min, err = strconv.Atoi(minStr); err != nil {
				return domain.FilterOptions{}, fmt.Errorf("%w: %s=%q is not a number", domain.ErrInvalidScoreRange, ParamLeadScoreMin, minStr)
			}
		}
		if maxStr != "" {
			if r.Max, err = strconv.Atoi(maxStr); err != nil {
				return domain.FilterOptions{}, fmt.Errorf("%w: %s=%q is not a number", domain.ErrInvalidScoreRange, ParamLeadScoreMax, maxStr)
			}
		}
		if err := r.Validate(); err != nil {
			return domain.FilterOptions{}, err
		}
		f.LeadScore = &r
	}

	return f, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
