// Package repo contains all database access logic for the Habit Trail API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/habit-trail/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
// Begin on a pgx.Tx opens a savepoint, so the transactional writes nest cleanly.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ProfileStore loads and saves the user's profile.
// It replaces the browser session storage the app originally kept state in.
// Destinations are written here only at onboarding; afterwards they are
// managed one at a time through DestinationRepo.
type ProfileStore interface {
	// Load returns the nickname and every destination.
	// Returns domain.ErrNotFound if onboarding has not been completed.
	Load(ctx context.Context) (domain.ProfileState, error)

	// Create stores the nickname and the listed destinations in one
	// transaction. Destinations already in the table are kept.
	// Destinations with a nil ID get a new one.
	// Returns domain.ErrConflict if the profile already exists.
	Create(ctx context.Context, state domain.ProfileState) error

	// Rename updates only the nickname.
	// Returns domain.ErrNotFound if onboarding has not been completed.
	Rename(ctx context.Context, nickname string) error
}

// pgProfileStore is the Postgres implementation of ProfileStore.
type pgProfileStore struct {
	db db
}

// NewProfileStore constructs a ProfileStore backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewProfileStore(db db) ProfileStore {
	return &pgProfileStore{db: db}
}

// Load reads the singleton profile row and all destinations.
func (r *pgProfileStore) Load(ctx context.Context) (domain.ProfileState, error) {
	const q = `SELECT nickname, created_at, updated_at FROM profile WHERE id = 1`

	var state domain.ProfileState
	err := r.db.QueryRow(ctx, q).Scan(&state.Nickname, &state.CreatedAt, &state.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ProfileState{}, fmt.Errorf("repo.ProfileStore.Load: %w", domain.ErrNotFound)
		}
		return domain.ProfileState{}, fmt.Errorf("repo.ProfileStore.Load: %w", err)
	}

	state.Destinations, err = listDestinations(ctx, r.db)
	if err != nil {
		return domain.ProfileState{}, fmt.Errorf("repo.ProfileStore.Load: %w", err)
	}
	return state, nil
}

// Create inserts the profile row and upserts state's destinations.
// The insert on the singleton row decides which of two concurrent
// onboardings wins.
func (r *pgProfileStore) Create(ctx context.Context, state domain.ProfileState) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.ProfileStore.Create: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	const insertProfile = `
		INSERT INTO profile (id, nickname)
		VALUES (1, @nickname)
		ON CONFLICT (id) DO NOTHING`

	tag, err := tx.Exec(ctx, insertProfile, pgx.NamedArgs{"nickname": state.Nickname})
	if err != nil {
		return fmt.Errorf("repo.ProfileStore.Create: profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ProfileStore.Create: %w: already onboarded", domain.ErrConflict)
	}

	const upsertDestination = `
		INSERT INTO destinations (id, name, address, latitude, longitude, radius_meters, frequency_days, frequency_time)
		VALUES (@id, @name, @address, @latitude, @longitude, @radius_meters, @frequency_days, @frequency_time)
		ON CONFLICT (id) DO UPDATE
		SET name           = EXCLUDED.name,
		    address        = EXCLUDED.address,
		    latitude       = EXCLUDED.latitude,
		    longitude      = EXCLUDED.longitude,
		    radius_meters  = EXCLUDED.radius_meters,
		    frequency_days = EXCLUDED.frequency_days,
		    frequency_time = EXCLUDED.frequency_time`

	for _, d := range state.Destinations {
		if d.ID == uuid.Nil {
			d.ID = uuid.New()
		}
		if _, err := tx.Exec(ctx, upsertDestination, destinationArgs(d)); err != nil {
			return fmt.Errorf("repo.ProfileStore.Create: destination %s: %w", d.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.ProfileStore.Create: commit: %w", err)
	}
	return nil
}

// Rename sets the nickname without touching destinations.
func (r *pgProfileStore) Rename(ctx context.Context, nickname string) error {
	const q = `UPDATE profile SET nickname = @nickname, updated_at = now() WHERE id = 1`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"nickname": nickname})
	if err != nil {
		return fmt.Errorf("repo.ProfileStore.Rename: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ProfileStore.Rename: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}
