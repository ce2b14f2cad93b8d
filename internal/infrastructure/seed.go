package infrastructure

import (
	"context"
	"fmt"
	"os"
	"time"

	"prospectdash/internal/domain"

	"gopkg.in/yaml.v3"
)

// Seed is the initial content of the prospect and campaign stores. Seed files
// are YAML; JSON files parse too since JSON is valid YAML.
type Seed struct {
	Prospects []domain.Prospect `yaml:"prospects"`
	Campaigns []domain.Campaign `yaml:"campaigns"`
}

// LoadSeed reads a seed file from path.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	for i, p := range seed.Prospects {
		if p.ID == "" {
			return nil, fmt.Errorf("seed prospect %d has no id", i)
		}
		if p.LeadScore < domain.MinLeadScore || p.LeadScore > domain.MaxLeadScore {
			return nil, fmt.Errorf("seed prospect %s: lead score %d outside [%d, %d]", p.ID, p.LeadScore, domain.MinLeadScore, domain.MaxLeadScore)
		}
	}

	return &seed, nil
}

// Apply writes the seed into the repositories.
func (s *Seed) Apply(ctx context.Context, prospects domain.ProspectRepository, campaigns domain.CampaignRepository) error {
	if len(s.Prospects) > 0 {
		if err := prospects.Store(ctx, s.Prospects); err != nil {
			return fmt.Errorf("failed to seed prospects: %w", err)
		}
	}
	if len(s.Campaigns) > 0 {
		if err := campaigns.Store(ctx, s.Campaigns); err != nil {
			return fmt.Errorf("failed to seed campaigns: %w", err)
		}
	}
	return nil
}

// DefaultSeed is the demo data served when no seed file is configured. Dates
// are laid out backwards from now.
func DefaultSeed(now time.Time) *Seed {
	now = now.UTC().Truncate(time.Hour)
	day := func(n int) time.Time { return now.AddDate(0, 0, -n) }

	prospect := func(id, name, company, title, industry, size, location string, score int, status domain.ProspectStatus, activity int, tags ...string) domain.Prospect {
		return domain.Prospect{
			ID:              id,
			Name:            name,
			Company:         company,
			Title:           title,
			Email:           fmt.Sprintf("%s@%s.example", id, company),
			Location:        location,
			Industry:        industry,
			CompanySize:     size,
			LeadScore:       score,
			Status:          status,
			LastActivity:    day(activity),
			ConnectionLevel: "2nd",
			Tags:            tags,
			CreatedAt:       day(activity + 30),
			UpdatedAt:       day(activity),
		}
	}

	series := func(days int, sent, opens, clicks, responses int) []domain.TimeseriesPoint {
		out := make([]domain.TimeseriesPoint, 0, days)
		for i := days - 1; i >= 0; i-- {
			out = append(out, domain.TimeseriesPoint{
				Date:      domain.DateString(day(i).Format("2006-01-02")),
				Sent:      sent + i%3,
				Opens:     opens + i%2,
				Clicks:    clicks,
				Responses: responses + i%2,
			})
		}
		return out
	}

	return &Seed{
		Prospects: []domain.Prospect{
			prospect("p1", "Jane Doe", "Acme", "VP Sales", "Technology", "201-1000", "San Francisco", 82, domain.StatusNew, 1, "enterprise"),
			prospect("p2", "John Smith", "Globex", "CFO", "Finance", "1001-5000", "New York", 74, domain.StatusQualified, 3, "warm"),
			prospect("p3", "Janet Roe", "Initech", "Head of IT", "Technology", "51-200", "Austin", 61, domain.StatusContacted, 5),
			prospect("p4", "Priya Natarajan", "Hooli", "Director of Marketing", "Marketing", "5000+", "Seattle", 90, domain.StatusConverted, 2, "vip", "enterprise"),
			prospect("p5", "Marco Bianchi", "Vandelay", "Operations Lead", "Manufacturing", "201-1000", "Chicago", 38, domain.StatusRejected, 12),
			prospect("p6", "Lena Fischer", "Umbrella", "Chief Medical Officer", "Healthcare", "1001-5000", "Boston", 67, domain.StatusResponded, 4, "warm"),
			prospect("p7", "Tomás Alvarez", "Stark", "Procurement Manager", "Manufacturing", "5000+", "Denver", 55, domain.StatusContacted, 8),
			prospect("p8", "Aiko Tanaka", "Wonka", "Founder", "Retail", "11-50", "Portland", 47, domain.StatusNew, 0, "startup"),
			prospect("p9", "Samuel Okafor", "Cyberdyne", "CTO", "Technology", "51-200", "San Jose", 88, domain.StatusQualified, 6, "vip"),
			prospect("p10", "Grace Lee", "Soylent", "Dean of Admissions", "Education", "201-1000", "Philadelphia", 29, domain.StatusNew, 15),
		},
		Campaigns: []domain.Campaign{
			{
				ID: "c1", Name: "Q3 Outreach", Channel: "Email", Status: domain.CampaignActive,
				Sent: 1200, Opens: 640, Clicks: 210, Responses: 55,
				Timeseries: series(14, 80, 40, 14, 3),
				CreatedAt:  day(30),
			},
			{
				ID: "c2", Name: "LinkedIn Connect", Channel: "LinkedIn", Status: domain.CampaignActive,
				Sent: 300, Opens: 180, Clicks: 60, Responses: 22,
				Timeseries: series(10, 25, 15, 5, 2),
				CreatedAt:  day(20),
			},
			{
				ID: "c3", Name: "Webinar Follow-up", Channel: "Email", Status: domain.CampaignCompleted,
				Sent: 450, Opens: 200, Clicks: 75, Responses: 18,
				CreatedAt: day(60),
			},
		},
	}
}
