package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flatwalay/backend/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// ErrNotFound is returned when a document does not exist
var ErrNotFound = errors.New("not found")

// PostgresRepository handles database operations for users, profiles and
// housing listings
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := &PostgresRepository{db: db}
	if err := repo.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return repo, nil
}

func (r *PostgresRepository) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		email TEXT,
		token TEXT,
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		profile_id TEXT,
		listing_id TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		raw_profile_text TEXT,
		city TEXT NOT NULL,
		area TEXT NOT NULL,
		budget_pkr INTEGER NOT NULL,
		sleep_schedule TEXT NOT NULL,
		cleanliness TEXT NOT NULL,
		noise_tolerance TEXT NOT NULL,
		study_habits TEXT NOT NULL,
		food_pref TEXT NOT NULL,
		context_notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS housing (
		id TEXT PRIMARY KEY,
		city TEXT NOT NULL,
		area TEXT NOT NULL,
		monthly_rent INTEGER NOT NULL,
		rooms_available INTEGER NOT NULL DEFAULT 1,
		amenities JSONB NOT NULL DEFAULT '[]',
		availability TEXT NOT NULL DEFAULT 'Available',
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		sleep_schedule TEXT,
		cleanliness TEXT,
		noise_tolerance TEXT,
		study_habits TEXT,
		food_pref TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`
	_, err := r.db.Exec(schema)
	return err
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// ----- Users -----

// CreateUser inserts a new user and returns the stored row
func (r *PostgresRepository) CreateUser(ctx context.Context, username, passwordHash string, email, profileID, listingID *string) (*model.User, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO users (id, username, password, email, profile_id, listing_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.db.ExecContext(ctx, query, id, username, passwordHash, email, profileID, listingID); err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return r.GetUserByID(ctx, id)
}

// GetUserByID fetches one user by id
func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserByUsername fetches one user by username
func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE username = $1`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// ListUsers returns all users
func (r *PostgresRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY created_at`); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies a partial update; returns ErrNotFound when no row matched
func (r *PostgresRepository) UpdateUser(ctx context.Context, id string, upd *model.UserUpdate) error {
	setClauses := []string{}
	args := []interface{}{}
	argIndex := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if upd.Username != nil {
		addSet("username", *upd.Username)
	}
	if upd.Password != nil {
		addSet("password", *upd.Password)
	}
	if upd.Email != nil {
		addSet("email", *upd.Email)
	}
	if upd.ProfileID != nil {
		addSet("profile_id", *upd.ProfileID)
	}
	if upd.ListingID != nil {
		addSet("listing_id", *upd.ListingID)
	}

	if len(setClauses) == 0 {
		return fmt.Errorf("no fields to update")
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argIndex)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireRows(res)
}

// SetUserToken stores the active session token for a user
func (r *PostgresRepository) SetUserToken(ctx context.Context, id, token string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET token = $1, updated_at = NOW() WHERE id = $2`, token, id)
	if err != nil {
		return fmt.Errorf("failed to set token: %w", err)
	}
	return requireRows(res)
}

// ClearUserToken removes the active session token for a user
func (r *PostgresRepository) ClearUserToken(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET token = NULL, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return requireRows(res)
}

// AssignProfile links a profile document to a user
func (r *PostgresRepository) AssignProfile(ctx context.Context, userID, profileID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET profile_id = $1, updated_at = NOW() WHERE id = $2`, profileID, userID)
	if err != nil {
		return fmt.Errorf("failed to assign profile: %w", err)
	}
	return requireRows(res)
}

// DeleteUser removes a user by id
func (r *PostgresRepository) DeleteUser(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireRows(res)
}

// ----- Profiles -----

// CreateProfile inserts a new profile document and returns the stored row
func (r *PostgresRepository) CreateProfile(ctx context.Context, in *model.ProfileCreate) (*model.Profile, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO profiles (
			id, raw_profile_text, city, area, budget_pkr,
			sleep_schedule, cleanliness, noise_tolerance, study_habits, food_pref,
			context_notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		id, in.RawProfileText, in.City, in.Area, in.BudgetPKR,
		in.SleepSchedule, in.Cleanliness, in.NoiseTolerance, in.StudyHabits, in.FoodPref,
		in.ContextNotes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}
	return r.GetProfileByID(ctx, id)
}

// GetProfileByID fetches one profile by id
func (r *PostgresRepository) GetProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, `SELECT * FROM profiles WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// ListProfiles returns all stored profiles
func (r *PostgresRepository) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	if err := r.db.SelectContext(ctx, &profiles, `SELECT * FROM profiles ORDER BY created_at`); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// UpdateProfile applies a partial update; returns ErrNotFound when no row matched
func (r *PostgresRepository) UpdateProfile(ctx context.Context, id string, upd *model.ProfileUpdate) error {
	setClauses := []string{}
	args := []interface{}{}
	argIndex := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if upd.RawProfileText != nil {
		addSet("raw_profile_text", *upd.RawProfileText)
	}
	if upd.City != nil {
		addSet("city", *upd.City)
	}
	if upd.Area != nil {
		addSet("area", *upd.Area)
	}
	if upd.BudgetPKR != nil {
		addSet("budget_pkr", *upd.BudgetPKR)
	}
	if upd.SleepSchedule != nil {
		addSet("sleep_schedule", *upd.SleepSchedule)
	}
	if upd.Cleanliness != nil {
		addSet("cleanliness", *upd.Cleanliness)
	}
	if upd.NoiseTolerance != nil {
		addSet("noise_tolerance", *upd.NoiseTolerance)
	}
	if upd.StudyHabits != nil {
		addSet("study_habits", *upd.StudyHabits)
	}
	if upd.FoodPref != nil {
		addSet("food_pref", *upd.FoodPref)
	}
	if upd.ContextNotes != nil {
		addSet("context_notes", *upd.ContextNotes)
	}

	if len(setClauses) == 0 {
		return fmt.Errorf("no fields to update")
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE profiles SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argIndex)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return requireRows(res)
}

// DeleteProfile removes a profile by id. The owning user's profile_id link is
// not reconciled here; the two writes are independent.
func (r *PostgresRepository) DeleteProfile(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return requireRows(res)
}

// ----- Housing -----

// CreateListing inserts a new housing listing and returns the stored row
func (r *PostgresRepository) CreateListing(ctx context.Context, in *model.HousingCreate) (*model.Housing, error) {
	id := uuid.NewString()
	availability := in.Availability
	if availability == "" {
		availability = model.HousingAvailable
	}
	rooms := in.RoomsAvailable
	if rooms <= 0 {
		rooms = 1
	}
	query := `
		INSERT INTO housing (
			id, city, area, monthly_rent, rooms_available, amenities, availability,
			latitude, longitude, sleep_schedule, cleanliness, noise_tolerance,
			study_habits, food_pref
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.ExecContext(ctx, query,
		id, in.City, in.Area, in.MonthlyRent, rooms, model.JSONArray(in.Amenities), availability,
		in.Latitude, in.Longitude, in.SleepSchedule, in.Cleanliness, in.NoiseTolerance,
		in.StudyHabits, in.FoodPref,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert listing: %w", err)
	}
	return r.GetListingByID(ctx, id)
}

// GetListingByID fetches one listing by id
func (r *PostgresRepository) GetListingByID(ctx context.Context, id string) (*model.Housing, error) {
	var listing model.Housing
	err := r.db.GetContext(ctx, &listing, `SELECT * FROM housing WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &listing, nil
}

// ListListings returns listings, optionally only those marked available
func (r *PostgresRepository) ListListings(ctx context.Context, availableOnly bool) ([]model.Housing, error) {
	query := `SELECT * FROM housing ORDER BY created_at`
	if availableOnly {
		query = `SELECT * FROM housing WHERE availability = 'Available' ORDER BY created_at`
	}
	var listings []model.Housing
	if err := r.db.SelectContext(ctx, &listings, query); err != nil {
		return nil, fmt.Errorf("failed to list housing: %w", err)
	}
	return listings, nil
}

// UpdateListing applies a partial update; returns ErrNotFound when no row matched
func (r *PostgresRepository) UpdateListing(ctx context.Context, id string, upd *model.HousingUpdate) error {
	setClauses := []string{}
	args := []interface{}{}
	argIndex := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if upd.City != nil {
		addSet("city", *upd.City)
	}
	if upd.Area != nil {
		addSet("area", *upd.Area)
	}
	if upd.MonthlyRent != nil {
		addSet("monthly_rent", *upd.MonthlyRent)
	}
	if upd.RoomsAvailable != nil {
		addSet("rooms_available", *upd.RoomsAvailable)
	}
	if upd.Amenities != nil {
		addSet("amenities", model.JSONArray(*upd.Amenities))
	}
	if upd.Availability != nil {
		addSet("availability", *upd.Availability)
	}
	if upd.Latitude != nil {
		addSet("latitude", *upd.Latitude)
	}
	if upd.Longitude != nil {
		addSet("longitude", *upd.Longitude)
	}
	if upd.SleepSchedule != nil {
		addSet("sleep_schedule", *upd.SleepSchedule)
	}
	if upd.Cleanliness != nil {
		addSet("cleanliness", *upd.Cleanliness)
	}
	if upd.NoiseTolerance != nil {
		addSet("noise_tolerance", *upd.NoiseTolerance)
	}
	if upd.StudyHabits != nil {
		addSet("study_habits", *upd.StudyHabits)
	}
	if upd.FoodPref != nil {
		addSet("food_pref", *upd.FoodPref)
	}

	if len(setClauses) == 0 {
		return fmt.Errorf("no fields to update")
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE housing SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argIndex)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	return requireRows(res)
}

// DeleteListing removes a listing by id
func (r *PostgresRepository) DeleteListing(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM housing WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	return requireRows(res)
}

// requireRows maps a zero-row result to ErrNotFound
func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
