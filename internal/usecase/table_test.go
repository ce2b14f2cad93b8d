package usecase

import (
	"testing"
	"time"

	"prospectdash/internal/domain"

	"github.com/stretchr/testify/assert"
)

func tableFixture() []domain.Prospect {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Prospect{
		{ID: "1", Name: "Carol", LeadScore: 70, LastActivity: base.Add(48 * time.Hour)},
		{ID: "2", Name: "alice", LeadScore: 9, LastActivity: base},
		{ID: "3", Name: "Bob", LeadScore: 85, LastActivity: base.Add(24 * time.Hour)},
		{ID: "4", Name: "Bob", LeadScore: 70, LastActivity: base.Add(72 * time.Hour)},
	}
}

func ids(prospects []domain.Prospect) []string {
	out := make([]string, len(prospects))
	for i, p := range prospects {
		out[i] = p.ID
	}
	return out
}

func TestSortProspects(t *testing.T) {
	tests := []struct {
		name  string
		state domain.SortState
		want  []string
	}{
		{"unsorted keeps order", domain.SortState{}, []string{"1", "2", "3", "4"}},
		// lexical: upper case sorts before lower case
		{"name ascending", domain.SortState{Key: domain.SortByName, Direction: domain.Ascending}, []string{"3", "4", "1", "2"}},
		{"name descending", domain.SortState{Key: domain.SortByName, Direction: domain.Descending}, []string{"2", "1", "3", "4"}},
		{"score numeric", domain.SortState{Key: domain.SortByLeadScore, Direction: domain.Ascending}, []string{"2", "1", "4", "3"}},
		{"score descending stable ties", domain.SortState{Key: domain.SortByLeadScore, Direction: domain.Descending}, []string{"3", "1", "4", "2"}},
		{"activity chronological", domain.SortState{Key: domain.SortByLastActivity, Direction: domain.Ascending}, []string{"2", "3", "1", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(SortProspects(tableFixture(), tt.state)))
		})
	}
}

func TestSortProspects_DoesNotMutateInput(t *testing.T) {
	in := tableFixture()
	before := ids(in)

	out := SortProspects(in, domain.SortState{Key: domain.SortByLeadScore, Direction: domain.Ascending})

	assert.Equal(t, before, ids(in))
	assert.NotEqual(t, before, ids(out))
}

func TestSortProspects_Idempotent(t *testing.T) {
	state := domain.SortState{Key: domain.SortByName, Direction: domain.Ascending}
	once := SortProspects(tableFixture(), state)
	assert.Equal(t, once, SortProspects(once, state))
}

func TestSortProspects_DirectionReversesTotalOrder(t *testing.T) {
	in := []domain.Prospect{{ID: "x", LeadScore: 3}, {ID: "y", LeadScore: 1}, {ID: "z", LeadScore: 2}}

	asc := SortProspects(in, domain.SortState{Key: domain.SortByLeadScore, Direction: domain.Ascending})
	desc := SortProspects(asc, domain.SortState{Key: domain.SortByLeadScore, Direction: domain.Descending})

	assert.Equal(t, []string{"y", "z", "x"}, ids(asc))
	assert.Equal(t, []string{"x", "z", "y"}, ids(desc))
}

func TestSortProspects_Empty(t *testing.T) {
	out := SortProspects(nil, domain.SortState{Key: domain.SortByName, Direction: domain.Ascending})
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestSortStateRequest(t *testing.T) {
	var s domain.SortState

	s = s.Request(domain.SortByName)
	assert.Equal(t, domain.SortState{Key: domain.SortByName, Direction: domain.Ascending}, s)

	s = s.Request(domain.SortByName)
	assert.Equal(t, domain.Descending, s.Direction)

	s = s.Request(domain.SortByName)
	assert.Equal(t, domain.Ascending, s.Direction)

	s = s.Request(domain.SortByName).Request(domain.SortByCompany)
	assert.Equal(t, domain.SortState{Key: domain.SortByCompany, Direction: domain.Ascending}, s)

	assert.Equal(t, " ▲", s.Indicator(domain.SortByCompany))
	assert.Empty(t, s.Indicator(domain.SortByName))
}
