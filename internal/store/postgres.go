package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine"
)

// PostgresStore backs Store with a pgx connection pool. Skill lists are
// stored as JSONB so filtered reads stay a single query.
type PostgresStore struct {
	pool *pgxpool.Pool
}

const pgSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	id              TEXT PRIMARY KEY,
	skills          JSONB NOT NULL DEFAULT '[]',
	preferred_track TEXT NOT NULL DEFAULT '',
	experience      TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS jobs (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	company    TEXT NOT NULL DEFAULT '',
	location   TEXT NOT NULL DEFAULT '',
	track      TEXT NOT NULL DEFAULT '',
	experience TEXT NOT NULL DEFAULT '',
	skills     JSONB NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS resources (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	provider    TEXT NOT NULL DEFAULT '',
	url         TEXT NOT NULL DEFAULT '',
	skills      JSONB NOT NULL DEFAULT '[]',
	cost        TEXT NOT NULL DEFAULT '',
	level       TEXT NOT NULL DEFAULT '',
	rating      DOUBLE PRECISION NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT ''
);
`

// ConnectPostgres creates a pgx pool and ensures the schema exists.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, errors.New("database URL is required")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() { s.pool.Close() }

func (s *PostgresStore) FindProfile(ctx context.Context, id string) (engine.Profile, error) {
	engine.IncrStoreQueries()
	var p engine.Profile
	var skills []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, skills, preferred_track, experience FROM profiles WHERE id = $1`, id,
	).Scan(&p.ID, &skills, &p.PreferredTrack, &p.Experience)
	if errors.Is(err, pgx.ErrNoRows) {
		return engine.Profile{}, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	if err != nil {
		engine.IncrStoreErrors()
		return engine.Profile{}, fmt.Errorf("%w: find profile: %w", engine.ErrUpstream, err)
	}
	if err := json.Unmarshal(skills, &p.Skills); err != nil {
		return engine.Profile{}, fmt.Errorf("decode profile skills: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) FindJobs(ctx context.Context, f JobFilter) ([]engine.JobPosting, error) {
	engine.IncrStoreQueries()
	query := `SELECT id, title, company, location, track, experience, skills FROM jobs`
	args := []any{}
	switch {
	case f.ID != "":
		query += ` WHERE id = $1`
		args = append(args, f.ID)
	case f.Track != "":
		query += ` WHERE track ILIKE '%' || $1 || '%'`
		args = append(args, f.Track)
	}
	query += ` ORDER BY id`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		engine.IncrStoreErrors()
		return nil, fmt.Errorf("%w: find jobs: %w", engine.ErrUpstream, err)
	}
	defer rows.Close()

	var jobs []engine.JobPosting
	for rows.Next() {
		var j engine.JobPosting
		var skills []byte
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Track, &j.Experience, &skills); err != nil {
			engine.IncrStoreErrors()
			return nil, fmt.Errorf("%w: scan job: %w", engine.ErrUpstream, err)
		}
		if err := json.Unmarshal(skills, &j.Skills); err != nil {
			return nil, fmt.Errorf("decode job skills: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (s *PostgresStore) FindResources(ctx context.Context, f ResourceFilter) ([]engine.LearningResource, error) {
	engine.IncrStoreQueries()
	query := `SELECT id, title, provider, url, skills, cost, level, rating, description FROM resources`
	args := []any{}
	if f.Skill != "" {
		query += ` WHERE EXISTS (
			SELECT 1 FROM jsonb_array_elements_text(skills) AS s
			WHERE s ILIKE '%' || $1 || '%'
		)`
		args = append(args, f.Skill)
	}
	query += ` ORDER BY id`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		engine.IncrStoreErrors()
		return nil, fmt.Errorf("%w: find resources: %w", engine.ErrUpstream, err)
	}
	defer rows.Close()

	var resources []engine.LearningResource
	for rows.Next() {
		var r engine.LearningResource
		var skills []byte
		var cost string
		if err := rows.Scan(&r.ID, &r.Title, &r.Provider, &r.URL, &skills, &cost, &r.Level, &r.Rating, &r.Description); err != nil {
			engine.IncrStoreErrors()
			return nil, fmt.Errorf("%w: scan resource: %w", engine.ErrUpstream, err)
		}
		if err := json.Unmarshal(skills, &r.Skills); err != nil {
			return nil, fmt.Errorf("decode resource skills: %w", err)
		}
		r.Cost = engine.ResourceCost(cost)
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

func (s *PostgresStore) UpsertProfile(ctx context.Context, p engine.Profile) error {
	skills, err := json.Marshal(emptyIfNil(p.Skills))
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO profiles (id, skills, preferred_track, experience)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			skills = EXCLUDED.skills,
			preferred_track = EXCLUDED.preferred_track,
			experience = EXCLUDED.experience`,
		p.ID, skills, p.PreferredTrack, string(p.Experience))
	if err != nil {
		engine.IncrStoreErrors()
		return fmt.Errorf("%w: upsert profile: %w", engine.ErrUpstream, err)
	}
	return nil
}

func (s *PostgresStore) UpsertJob(ctx context.Context, j engine.JobPosting) error {
	skills, err := json.Marshal(emptyIfNil(j.Skills))
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO jobs (id, title, company, location, track, experience, skills)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			company = EXCLUDED.company,
			location = EXCLUDED.location,
			track = EXCLUDED.track,
			experience = EXCLUDED.experience,
			skills = EXCLUDED.skills`,
		j.ID, j.Title, j.Company, j.Location, j.Track, string(j.Experience), skills)
	if err != nil {
		engine.IncrStoreErrors()
		return fmt.Errorf("%w: upsert job: %w", engine.ErrUpstream, err)
	}
	return nil
}

func (s *PostgresStore) UpsertResource(ctx context.Context, r engine.LearningResource) error {
	skills, err := json.Marshal(emptyIfNil(r.Skills))
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO resources (id, title, provider, url, skills, cost, level, rating, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			provider = EXCLUDED.provider,
			url = EXCLUDED.url,
			skills = EXCLUDED.skills,
			cost = EXCLUDED.cost,
			level = EXCLUDED.level,
			rating = EXCLUDED.rating,
			description = EXCLUDED.description`,
		r.ID, r.Title, r.Provider, r.URL, skills, string(r.Cost), r.Level, r.Rating, r.Description)
	if err != nil {
		engine.IncrStoreErrors()
		return fmt.Errorf("%w: upsert resource: %w", engine.ErrUpstream, err)
	}
	return nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
