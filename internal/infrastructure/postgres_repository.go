package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"prospectdash/internal/domain"
	"prospectdash/pkg/logger"

	"github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS prospects (
	id                 TEXT PRIMARY KEY,
	name               TEXT NOT NULL,
	company            TEXT NOT NULL DEFAULT '',
	title              TEXT NOT NULL DEFAULT '',
	email              TEXT NOT NULL DEFAULT '',
	phone              TEXT NOT NULL DEFAULT '',
	location           TEXT NOT NULL DEFAULT '',
	industry           TEXT NOT NULL DEFAULT '',
	company_size       TEXT NOT NULL DEFAULT '',
	lead_score         INTEGER NOT NULL DEFAULT 0,
	status             TEXT NOT NULL DEFAULT 'new',
	last_activity      TIMESTAMPTZ NOT NULL DEFAULT now(),
	profile_url        TEXT NOT NULL DEFAULT '',
	connection_level   TEXT NOT NULL DEFAULT '',
	mutual_connections INTEGER NOT NULL DEFAULT 0,
	tags               TEXT[] NOT NULL DEFAULT '{}',
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS campaigns (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	channel    TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL DEFAULT '',
	sent       INTEGER NOT NULL DEFAULT 0,
	opens      INTEGER NOT NULL DEFAULT 0,
	clicks     INTEGER NOT NULL DEFAULT 0,
	responses  INTEGER NOT NULL DEFAULT 0,
	timeseries JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

const prospectColumns = `id, name, company, title, email, phone, location, industry, company_size,
	lead_score, status, last_activity, profile_url, connection_level, mutual_connections,
	tags, created_at, updated_at`

// OpenPostgres opens and pings a lib/pq connection pool.
func OpenPostgres(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates the tables when missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// implements domain.ProspectRepository on postgres
type PostgresProspectRepository struct {
	db     *sql.DB
	logger *logger.Logger
	now    func() time.Time
}

func NewPostgresProspectRepository(db *sql.DB, logger *logger.Logger) *PostgresProspectRepository {
	return &PostgresProspectRepository{db: db, logger: logger, now: time.Now}
}

func (r *PostgresProspectRepository) Store(ctx context.Context, prospects []domain.Prospect) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO prospects (`+prospectColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, company = EXCLUDED.company, title = EXCLUDED.title,
			email = EXCLUDED.email, phone = EXCLUDED.phone, location = EXCLUDED.location,
			industry = EXCLUDED.industry, company_size = EXCLUDED.company_size,
			lead_score = EXCLUDED.lead_score, status = EXCLUDED.status,
			last_activity = EXCLUDED.last_activity, profile_url = EXCLUDED.profile_url,
			connection_level = EXCLUDED.connection_level,
			mutual_connections = EXCLUDED.mutual_connections, tags = EXCLUDED.tags,
			updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare prospect insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range prospects {
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		if _, err := stmt.ExecContext(ctx,
			p.ID, p.Name, p.Company, p.Title, p.Email, p.Phone, p.Location, p.Industry, p.CompanySize,
			p.LeadScore, string(p.Status), p.LastActivity, p.ProfileURL, p.ConnectionLevel, p.MutualConnections,
			pq.Array(tags), p.CreatedAt, p.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to store prospect %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit prospects: %w", err)
	}

	r.logger.WithContext(ctx).WithField("count", len(prospects)).Info("Stored prospects in postgres")
	return nil
}

// search is a literal substring match, so LIKE metacharacters are escaped
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// prospectWhere translates filter into a WHERE clause with positional args.
func prospectWhere(filter domain.FilterOptions) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if q := strings.TrimSpace(filter.Search); q != "" {
		add(`(name ILIKE $%[1]d ESCAPE '\' OR company ILIKE $%[1]d ESCAPE '\' OR title ILIKE $%[1]d ESCAPE '\' OR email ILIKE $%[1]d ESCAPE '\')`,
			"%"+likeEscaper.Replace(q)+"%")
	}
	if len(filter.Industry) > 0 {
		add("industry = ANY($%d)", pq.Array(filter.Industry))
	}
	if len(filter.CompanySize) > 0 {
		add("company_size = ANY($%d)", pq.Array(filter.CompanySize))
	}
	if len(filter.Location) > 0 {
		add("location = ANY($%d)", pq.Array(filter.Location))
	}
	if len(filter.Status) > 0 {
		statuses := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			statuses[i] = string(s)
		}
		add("status = ANY($%d)", pq.Array(statuses))
	}
	if len(filter.Tags) > 0 {
		add("tags && $%d", pq.Array(filter.Tags))
	}
	if filter.LeadScore != nil {
		add("lead_score >= $%d", filter.LeadScore.Min)
		add("lead_score <= $%d", filter.LeadScore.Max)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *PostgresProspectRepository) List(ctx context.Context, filter domain.FilterOptions) ([]domain.Prospect, error) {
	where, args := prospectWhere(filter)

	rows, err := r.db.QueryContext(ctx, "SELECT "+prospectColumns+" FROM prospects"+where+" ORDER BY created_at, id", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query prospects: %w", err)
	}
	defer rows.Close()

	result := []domain.Prospect{}
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prospects: %w", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProspect(row rowScanner) (domain.Prospect, error) {
	var p domain.Prospect
	var status string
	if err := row.Scan(
		&p.ID, &p.Name, &p.Company, &p.Title, &p.Email, &p.Phone, &p.Location, &p.Industry, &p.CompanySize,
		&p.LeadScore, &status, &p.LastActivity, &p.ProfileURL, &p.ConnectionLevel, &p.MutualConnections,
		pq.Array(&p.Tags), &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return domain.Prospect{}, fmt.Errorf("failed to scan prospect: %w", err)
	}
	p.Status = domain.ProspectStatus(status)
	return p, nil
}

func (r *PostgresProspectRepository) Get(ctx context.Context, id string) (*domain.Prospect, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+prospectColumns+" FROM prospects WHERE id = $1", id)
	p, err := scanProspect(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProspectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresProspectRepository) UpdateStatus(ctx context.Context, id string, status domain.ProspectStatus) error {
	now := r.now().UTC()
	res, err := r.db.ExecContext(ctx,
		"UPDATE prospects SET status = $1, updated_at = $2, last_activity = $2 WHERE id = $3",
		string(status), now, id)
	if err != nil {
		return fmt.Errorf("failed to update prospect status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update prospect status: %w", err)
	}
	if n == 0 {
		return domain.ErrProspectNotFound
	}
	return nil
}

// implements domain.CampaignRepository on postgres; timeseries live in a JSONB column
type PostgresCampaignRepository struct {
	db     *sql.DB
	logger *logger.Logger
}

func NewPostgresCampaignRepository(db *sql.DB, logger *logger.Logger) *PostgresCampaignRepository {
	return &PostgresCampaignRepository{db: db, logger: logger}
}

func (r *PostgresCampaignRepository) Store(ctx context.Context, campaigns []domain.Campaign) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range campaigns {
		series := c.Timeseries
		if series == nil {
			series = []domain.TimeseriesPoint{}
		}
		payload, err := json.Marshal(series)
		if err != nil {
			return fmt.Errorf("failed to encode timeseries for campaign %s: %w", c.ID, err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO campaigns (id, name, channel, status, sent, opens, clicks, responses, timeseries, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name, channel = EXCLUDED.channel, status = EXCLUDED.status,
				sent = EXCLUDED.sent, opens = EXCLUDED.opens, clicks = EXCLUDED.clicks,
				responses = EXCLUDED.responses, timeseries = EXCLUDED.timeseries`,
			c.ID, c.Name, c.Channel, string(c.Status), c.Sent, c.Opens, c.Clicks, c.Responses, payload, c.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to store campaign %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit campaigns: %w", err)
	}

	r.logger.WithContext(ctx).WithField("count", len(campaigns)).Info("Stored campaigns in postgres")
	return nil
}

func (r *PostgresCampaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, channel, status, sent, opens, clicks, responses, timeseries, created_at
		FROM campaigns ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer rows.Close()

	result := []domain.Campaign{}
	for rows.Next() {
		var c domain.Campaign
		var status string
		var series []byte
		if err := rows.Scan(&c.ID, &c.Name, &c.Channel, &status, &c.Sent, &c.Opens, &c.Clicks, &c.Responses, &series, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		c.Status = domain.CampaignStatus(status)
		if len(series) > 0 {
			if err := json.Unmarshal(series, &c.Timeseries); err != nil {
				return nil, fmt.Errorf("failed to decode timeseries for campaign %s: %w", c.ID, err)
			}
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read campaigns: %w", err)
	}

	return result, nil
}
