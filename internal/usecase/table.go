package usecase

import (
	"cmp"
	"slices"

	"prospectdash/internal/domain"
)

// SortProspects returns a sorted copy of prospects. The input slice is not
// modified. An unsorted state returns the copy in input order.
func SortProspects(prospects []domain.Prospect, state domain.SortState) []domain.Prospect {
	out := slices.Clone(prospects)
	if out == nil {
		out = []domain.Prospect{}
	}
	if !state.Sorted() {
		return out
	}

	compare := compareBy(state.Key)
	slices.SortStableFunc(out, func(a, b domain.Prospect) int {
		c := compare(a, b)
		if state.Direction == domain.Descending {
			return -c
		}
		return c
	})

	return out
}

func compareBy(key domain.SortKey) func(a, b domain.Prospect) int {
	switch key {
	case domain.SortByName:
		return func(a, b domain.Prospect) int { return cmp.Compare(a.Name, b.Name) }
	case domain.SortByCompany:
		return func(a, b domain.Prospect) int { return cmp.Compare(a.Company, b.Company) }
	case domain.SortByTitle:
		return func(a, b domain.Prospect) int { return cmp.Compare(a.Title, b.Title) }
	case domain.SortByEmail:
		return func(a, b domain.Prospect) int { return cmp.Compare(a.Email, b.Email) }
	case domain.SortByLocation:
		return func(a, b domain.Prospect) int { return cmp.Compare(a.Location, b.Location) }
	case domain.SortByIndustry:
		return func(a, b domain.Prospect) int { return cmp.Compare(a.Industry, b.Industry) }
	case domain.SortByCompanySize:
		return func(a, b domain.Prospect) int { return cmp.Compare(a.CompanySize, b.CompanySize) }
	case domain.SortByStatus:
		return func(a, b domain.Prospect) int { return cmp.Compare(a.Status, b.Status) }
	case domain.SortByLeadScore:
		return func(a, b domain.Prospect) int { return cmp.Compare(a.LeadScore, b.LeadScore) }
	case domain.SortByLastActivity:
		return func(a, b domain.Prospect) int { return a.LastActivity.Compare(b.LastActivity) }
	case domain.SortByCreatedAt:
		return func(a, b domain.Prospect) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case domain.SortByUpdatedAt:
		return func(a, b domain.Prospect) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	}
	return func(a, b domain.Prospect) int { return 0 }
}
