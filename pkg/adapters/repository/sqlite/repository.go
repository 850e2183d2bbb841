package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/core/domain"
	"github.com/wadjakorntonsri/go-link-in-bio/pkg/ports"
	_ "modernc.org/sqlite" // Local SQLite driver
)

type SQLiteRepository struct {
	db *sql.DB
}

// profileData is the JSON document stored per profile. Identity columns
// live outside it so they can be indexed.
type profileData struct {
	Avatar   string              `json:"avatar,omitempty"`
	Bio      string              `json:"bio,omitempty"`
	Links    []domain.Link       `json:"links"`
	Theme    domain.Theme        `json:"theme"`
	Settings domain.UserSettings `json:"settings"`
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		data JSON NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_profiles_username ON profiles(username);
	CREATE INDEX IF NOT EXISTS idx_profiles_email ON profiles(email);
	`
	_, err := db.Exec(query)
	return err
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	data, err := encodeData(profile)
	if err != nil {
		return err
	}

	query := `INSERT INTO profiles (id, username, email, password_hash, data, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, profile.ID, profile.Username, profile.Email,
		profile.PasswordHash, data, profile.CreatedAt, profile.UpdatedAt)
	return uniqueViolation(err)
}

const selectProfile = `SELECT id, username, email, password_hash, data, created_at, updated_at FROM profiles`

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	return r.getOne(ctx, selectProfile+` WHERE id = ?`, id)
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	return r.getOne(ctx, selectProfile+` WHERE username = ?`, username)
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	return r.getOne(ctx, selectProfile+` WHERE email = ?`, email)
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, arg any) (*domain.UserProfile, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Save overwrites the stored profile. The username column is never
// rewritten.
func (r *SQLiteRepository) Save(ctx context.Context, profile *domain.UserProfile) error {
	data, err := encodeData(profile)
	if err != nil {
		return err
	}

	query := `UPDATE profiles SET email = ?, password_hash = ?, data = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, profile.Email, profile.PasswordHash, data, profile.UpdatedAt, profile.ID)
	if err != nil {
		return uniqueViolation(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Resource: "profile", ID: profile.ID}
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepository) Dump(ctx context.Context) ([]domain.UserProfile, error) {
	rows, err := r.db.QueryContext(ctx, selectProfile+` ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*domain.UserProfile, error) {
	var p domain.UserProfile
	var data []byte
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&p.ID, &p.Username, &p.Email, &p.PasswordHash, &data, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var d profileData
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", p.ID, err)
	}
	p.Avatar = d.Avatar
	p.Bio = d.Bio
	p.Links = d.Links
	if p.Links == nil {
		p.Links = []domain.Link{}
	}
	p.Theme = d.Theme
	p.Settings = d.Settings
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}

func encodeData(p *domain.UserProfile) ([]byte, error) {
	links := p.Links
	if links == nil {
		links = []domain.Link{}
	}
	return json.Marshal(profileData{
		Avatar:   p.Avatar,
		Bio:      p.Bio,
		Links:    links,
		Theme:    p.Theme,
		Settings: p.Settings,
	})
}

// uniqueViolation maps SQLite unique constraint failures to domain errors.
func uniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "profiles.username"):
		return domain.ErrUsernameTaken
	case strings.Contains(msg, "profiles.email"):
		return domain.ErrEmailTaken
	}
	return err
}

// Ensure interface compliance
var _ ports.ProfileRepository = (*SQLiteRepository)(nil)
