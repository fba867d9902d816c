package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine"
)

// SQLiteStore backs Store with an embedded SQLite database. Used for local
// deployments and tests; skill lists are JSON-encoded TEXT columns.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	id              TEXT PRIMARY KEY,
	skills          TEXT NOT NULL DEFAULT '[]',
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
	skills     TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS resources (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	provider    TEXT NOT NULL DEFAULT '',
	url         TEXT NOT NULL DEFAULT '',
	skills      TEXT NOT NULL DEFAULT '[]',
	cost        TEXT NOT NULL DEFAULT '',
	level       TEXT NOT NULL DEFAULT '',
	rating      REAL NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT ''
);
`

// OpenSQLite opens (or creates) the SQLite store at path, creating parent
// directories as needed.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() { s.db.Close() }

func (s *SQLiteStore) FindProfile(ctx context.Context, id string) (engine.Profile, error) {
	engine.IncrStoreQueries()
	var p engine.Profile
	var skills string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, skills, preferred_track, experience FROM profiles WHERE id = ?`, id,
	).Scan(&p.ID, &skills, &p.PreferredTrack, &p.Experience)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.Profile{}, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	if err != nil {
		engine.IncrStoreErrors()
		return engine.Profile{}, fmt.Errorf("%w: find profile: %w", engine.ErrUpstream, err)
	}
	if err := json.Unmarshal([]byte(skills), &p.Skills); err != nil {
		return engine.Profile{}, fmt.Errorf("decode profile skills: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) FindJobs(ctx context.Context, f JobFilter) ([]engine.JobPosting, error) {
	engine.IncrStoreQueries()
	query := `SELECT id, title, company, location, track, experience, skills FROM jobs`
	args := []any{}
	switch {
	case f.ID != "":
		query += ` WHERE id = ?`
		args = append(args, f.ID)
	case f.Track != "":
		query += ` WHERE lower(track) LIKE '%' || ? || '%'`
		args = append(args, strings.ToLower(f.Track))
	}
	query += ` ORDER BY id`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		engine.IncrStoreErrors()
		return nil, fmt.Errorf("%w: find jobs: %w", engine.ErrUpstream, err)
	}
	defer rows.Close()

	var jobs []engine.JobPosting
	for rows.Next() {
		var j engine.JobPosting
		var skills string
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Track, &j.Experience, &skills); err != nil {
			engine.IncrStoreErrors()
			return nil, fmt.Errorf("%w: scan job: %w", engine.ErrUpstream, err)
		}
		if err := json.Unmarshal([]byte(skills), &j.Skills); err != nil {
			return nil, fmt.Errorf("decode job skills: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (s *SQLiteStore) FindResources(ctx context.Context, f ResourceFilter) ([]engine.LearningResource, error) {
	engine.IncrStoreQueries()
	query := `SELECT id, title, provider, url, skills, cost, level, rating, description FROM resources`
	args := []any{}
	if f.Skill != "" {
		// Skills column holds a JSON array; a LIKE over the serialized text
		// is the filtered-bulk-read contract, exact matching happens in the
		// recommender.
		query += ` WHERE lower(skills) LIKE '%' || ? || '%'`
		args = append(args, strings.ToLower(f.Skill))
	}
	query += ` ORDER BY rowid`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		engine.IncrStoreErrors()
		return nil, fmt.Errorf("%w: find resources: %w", engine.ErrUpstream, err)
	}
	defer rows.Close()

	var resources []engine.LearningResource
	for rows.Next() {
		var r engine.LearningResource
		var skills, cost string
		if err := rows.Scan(&r.ID, &r.Title, &r.Provider, &r.URL, &skills, &cost, &r.Level, &r.Rating, &r.Description); err != nil {
			engine.IncrStoreErrors()
			return nil, fmt.Errorf("%w: scan resource: %w", engine.ErrUpstream, err)
		}
		if err := json.Unmarshal([]byte(skills), &r.Skills); err != nil {
			return nil, fmt.Errorf("decode resource skills: %w", err)
		}
		r.Cost = engine.ResourceCost(cost)
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

func (s *SQLiteStore) UpsertProfile(ctx context.Context, p engine.Profile) error {
	skills, err := json.Marshal(emptyIfNil(p.Skills))
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, skills, preferred_track, experience)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			skills = excluded.skills,
			preferred_track = excluded.preferred_track,
			experience = excluded.experience`,
		p.ID, string(skills), p.PreferredTrack, string(p.Experience))
	if err != nil {
		engine.IncrStoreErrors()
		return fmt.Errorf("%w: upsert profile: %w", engine.ErrUpstream, err)
	}
	return nil
}

func (s *SQLiteStore) UpsertJob(ctx context.Context, j engine.JobPosting) error {
	skills, err := json.Marshal(emptyIfNil(j.Skills))
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, title, company, location, track, experience, skills)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			company = excluded.company,
			location = excluded.location,
			track = excluded.track,
			experience = excluded.experience,
			skills = excluded.skills`,
		j.ID, j.Title, j.Company, j.Location, j.Track, string(j.Experience), string(skills))
	if err != nil {
		engine.IncrStoreErrors()
		return fmt.Errorf("%w: upsert job: %w", engine.ErrUpstream, err)
	}
	return nil
}

func (s *SQLiteStore) UpsertResource(ctx context.Context, r engine.LearningResource) error {
	skills, err := json.Marshal(emptyIfNil(r.Skills))
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO resources (id, title, provider, url, skills, cost, level, rating, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			provider = excluded.provider,
			url = excluded.url,
			skills = excluded.skills,
			cost = excluded.cost,
			level = excluded.level,
			rating = excluded.rating,
			description = excluded.description`,
		r.ID, r.Title, r.Provider, r.URL, string(skills), string(r.Cost), r.Level, r.Rating, r.Description)
	if err != nil {
		engine.IncrStoreErrors()
		return fmt.Errorf("%w: upsert resource: %w", engine.ErrUpstream, err)
	}
	return nil
}
