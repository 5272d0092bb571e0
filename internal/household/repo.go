package household

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"mealhub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// CreateWithProfile inserts a household and its first member profile
// in one transaction, so a half-created household can never exist.
func (r *Repo) CreateWithProfile(ctx context.Context, h models.Household, p models.Profile) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create household: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO households (id, name, invite_code)
		VALUES (?, ?, ?)
	`, h.ID, h.Name, h.InviteCode); err != nil {
		return fmt.Errorf("insert household: %w", err)
	}

	if err := insertProfile(ctx, tx, p); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create household: %w", err)
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Household, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, name, invite_code, created_at
		FROM households
		WHERE id = ?
	`, id)
	return scanHousehold(row)
}

func (r *Repo) GetByInviteCode(ctx context.Context, code string) (*models.Household, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, name, invite_code, created_at
		FROM households
		WHERE invite_code = ?
	`, strings.TrimSpace(code))
	return scanHousehold(row)
}

func (r *Repo) AddProfile(ctx context.Context, p models.Profile) error {
	if err := insertProfile(ctx, r.DB, p); err != nil {
		return err
	}
	return nil
}

// GetProfileByUser returns the profile backing a user account, or
// (nil, nil) when the user has not joined a household yet.
func (r *Repo) GetProfileByUser(ctx context.Context, userID string) (*models.Profile, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, household_id, user_id, name, created_at
		FROM profiles
		WHERE user_id = ?
	`, userID)
	return scanProfile(row)
}

func (r *Repo) GetProfile(ctx context.Context, profileID string) (*models.Profile, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, household_id, user_id, name, created_at
		FROM profiles
		WHERE id = ?
	`, profileID)
	return scanProfile(row)
}

// ListProfiles returns every member profile of a household.
func (r *Repo) ListProfiles(ctx context.Context, householdID string) ([]models.Profile, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, household_id, user_id, name, created_at
		FROM profiles
		WHERE household_id = ?
		ORDER BY created_at ASC, id ASC
	`, householdID)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile row: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// MoveProfile reassigns an existing profile to another household
// (joining a new family keeps the learned weights).
func (r *Repo) MoveProfile(ctx context.Context, profileID, householdID string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE profiles SET household_id = ? WHERE id = ?
	`, householdID, profileID)
	if err != nil {
		return fmt.Errorf("move profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("move profile rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("move profile: profile not found")
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertProfile(ctx context.Context, db execer, p models.Profile) error {
	var userID any
	if p.UserID != "" {
		userID = p.UserID
	}
	if _, err := db.ExecContext(ctx, `
		INSERT INTO profiles (id, household_id, user_id, name)
		VALUES (?, ?, ?, ?)
	`, p.ID, p.HouseholdID, userID, p.Name); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHousehold(row rowScanner) (*models.Household, error) {
	var h models.Household
	if err := row.Scan(&h.ID, &h.Name, &h.InviteCode, &h.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan household: %w", err)
	}
	return &h, nil
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var p models.Profile
	var userID sql.NullString
	if err := row.Scan(&p.ID, &p.HouseholdID, &userID, &p.Name, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	p.UserID = userID.String
	return &p, nil
}
