package usecase

import (
	"net/url"
	"testing"

	"prospectdash/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProspectQuery_OmitsEmptyFields(t *testing.T) {
	q := BuildProspectQuery(domain.FilterOptions{Search: "", Industry: []string{"Tech"}})

	assert.Equal(t, url.Values{"industry": {"Tech"}}, q)
}

func TestBuildProspectQuery_AllFields(t *testing.T) {
	f := domain.FilterOptions{
		Search:      "ada",
		Industry:    []string{"Technology", "Finance"},
		CompanySize: []string{"11-50"},
		LeadScore:   &domain.ScoreRange{Min: 40, Max: 90},
		Status:      []domain.ProspectStatus{domain.StatusNew, domain.StatusQualified},
		Location:    []string{"Berlin"},
		Tags:        []string{"vip", "warm"},
	}

	q := BuildProspectQuery(f)

	assert.Equal(t, "ada", q.Get("search"))
	assert.Equal(t, "Technology,Finance", q.Get("industry"))
	assert.Equal(t, "11-50", q.Get("companySize"))
	assert.Equal(t, "new,qualified", q.Get("status"))
	assert.Equal(t, "Berlin", q.Get("location"))
	assert.Equal(t, "vip,warm", q.Get("tags"))
	assert.Equal(t, "40", q.Get("leadScoreMin"))
	assert.Equal(t, "90", q.Get("leadScoreMax"))
	assert.Len(t, q, 8)
}

func TestBuildProspectQuery_DefaultsSendOnlyTheRange(t *testing.T) {
	q := BuildProspectQuery(domain.DefaultFilters())

	assert.Equal(t, url.Values{"leadScoreMin": {"0"}, "leadScoreMax": {"100"}}, q)
}

func TestParseProspectQuery(t *testing.T) {
	q := url.Values{
		"search":       {" ada "},
		"industry":     {"Technology, Finance"},
		"status":       {"contacted"},
		"leadScoreMin": {"10"},
	}

	f, err := ParseProspectQuery(q)
	require.NoError(t, err)

	assert.Equal(t, "ada", f.Search)
	assert.Equal(t, []string{"Technology", "Finance"}, f.Industry)
	assert.Equal(t, []domain.ProspectStatus{domain.StatusContacted}, f.Status)
	require.NotNil(t, f.LeadScore)
	assert.Equal(t, domain.ScoreRange{Min: 10, Max: 100}, *f.LeadScore)
	assert.Nil(t, f.Tags)
}

func TestParseProspectQuery_Errors(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		target error
	}{
		{"inverted range", url.Values{"leadScoreMin": {"80"}, "leadScoreMax": {"20"}}, domain.ErrInvalidScoreRange},
		{"above max", url.Values{"leadScoreMax": {"101"}}, domain.ErrInvalidScoreRange},
		{"not a number", url.Values{"leadScoreMin": {"ten"}}, domain.ErrInvalidScoreRange},
		{"unknown status", url.Values{"status": {"Proposal"}}, domain.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProspectQuery(tt.values)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestParseProspectQuery_InvertsBuild(t *testing.T) {
	f := domain.FilterOptions{
		Search:    "lee",
		Status:    []domain.ProspectStatus{domain.StatusConverted},
		LeadScore: &domain.ScoreRange{Min: 5, Max: 6},
		Tags:      []string{"a", "b"},
	}

	got, err := ParseProspectQuery(BuildProspectQuery(f))
	require.NoError(t, err)
	assert.Equal(t, f, got)
}
