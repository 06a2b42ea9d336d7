package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/habit-trail/internal/domain"
)

// VisitRepo defines the persistence operations for visit records.
// Visits are append-only and are not removed when their destination is.
type VisitRepo interface {
	// Create inserts a visit and returns it with DB-generated fields populated.
	Create(ctx context.Context, v domain.Visit) (domain.Visit, error)

	// CreateOncePerDay inserts v unless its destination already has a visit
	// in [dayStart, dayEnd), in which case it returns domain.ErrConflict.
	CreateOncePerDay(ctx context.Context, v domain.Visit, dayStart, dayEnd time.Time) (domain.Visit, error)

	// List returns every visit, newest first.
	List(ctx context.Context) ([]domain.Visit, error)

	// ListByDestination returns the visits for one destination, newest first.
	ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.Visit, error)
}

// pgVisitRepo is the Postgres implementation of VisitRepo.
type pgVisitRepo struct {
	db db
}

// NewVisitRepo constructs a VisitRepo backed by the provided db connection.
func NewVisitRepo(db db) VisitRepo {
	return &pgVisitRepo{db: db}
}

const visitColumns = `id, destination_id, visited_at, latitude, longitude, note`

const insertVisit = `
	INSERT INTO visits (destination_id, visited_at, latitude, longitude, note)
	VALUES (@destination_id, @visited_at, @latitude, @longitude, @note)
	RETURNING ` + visitColumns

// Create records a visit.
func (r *pgVisitRepo) Create(ctx context.Context, v domain.Visit) (domain.Visit, error) {
	created, err := scanVisit(r.db.QueryRow(ctx, insertVisit, visitArgs(v)))
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.VisitRepo.Create: %w", err)
	}
	return created, nil
}

// CreateOncePerDay records a visit unless one already exists for the same
// destination inside the day window. A transaction-scoped advisory lock on
// the destination serialises concurrent check-ins.
func (r *pgVisitRepo) CreateOncePerDay(ctx context.Context, v domain.Visit, dayStart, dayEnd time.Time) (domain.Visit, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.VisitRepo.CreateOncePerDay: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	lock := `SELECT pg_advisory_xact_lock(hashtextextended(@destination_id::text, 0))`
	if _, err := tx.Exec(ctx, lock, pgx.NamedArgs{"destination_id": v.DestinationID}); err != nil {
		return domain.Visit{}, fmt.Errorf("repo.VisitRepo.CreateOncePerDay: lock: %w", err)
	}

	var exists bool
	q := `
		SELECT EXISTS (
			SELECT 1 FROM visits
			WHERE destination_id = @destination_id
			  AND visited_at >= @day_start AND visited_at < @day_end
		)`
	err = tx.QueryRow(ctx, q, pgx.NamedArgs{
		"destination_id": v.DestinationID,
		"day_start":      dayStart,
		"day_end":        dayEnd,
	}).Scan(&exists)
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.VisitRepo.CreateOncePerDay: %w", err)
	}
	if exists {
		return domain.Visit{}, fmt.Errorf("repo.VisitRepo.CreateOncePerDay: %w: destination already visited today", domain.ErrConflict)
	}

	created, err := scanVisit(tx.QueryRow(ctx, insertVisit, visitArgs(v)))
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.VisitRepo.CreateOncePerDay: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Visit{}, fmt.Errorf("repo.VisitRepo.CreateOncePerDay: commit: %w", err)
	}
	return created, nil
}

func visitArgs(v domain.Visit) pgx.NamedArgs {
	return pgx.NamedArgs{
		"destination_id": v.DestinationID,
		"visited_at":     v.VisitedAt,
		"latitude":       v.Latitude,
		"longitude":      v.Longitude,
		"note":           v.Note,
	}
}

// List returns all visits ordered by visited_at descending.
func (r *pgVisitRepo) List(ctx context.Context) ([]domain.Visit, error) {
	q := `SELECT ` + visitColumns + ` FROM visits ORDER BY visited_at DESC, id ASC`

	visits, err := r.query(ctx, q, pgx.NamedArgs{})
	if err != nil {
		return nil, fmt.Errorf("repo.VisitRepo.List: %w", err)
	}
	return visits, nil
}

// ListByDestination returns the visits for destinationID ordered by visited_at descending.
func (r *pgVisitRepo) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.Visit, error) {
	q := `SELECT ` + visitColumns + ` FROM visits WHERE destination_id = @destination_id ORDER BY visited_at DESC, id ASC`

	visits, err := r.query(ctx, q, pgx.NamedArgs{"destination_id": destinationID})
	if err != nil {
		return nil, fmt.Errorf("repo.VisitRepo.ListByDestination: %w", err)
	}
	return visits, nil
}

func (r *pgVisitRepo) query(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Visit, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	visits := []domain.Visit{}
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return visits, nil
}

// scanVisit maps a single database row into a domain.Visit.
func scanVisit(s scanner) (domain.Visit, error) {
	var (
		v      domain.Visit
		id     pgtype.UUID
		destID pgtype.UUID
	)

	err := s.Scan(&id, &destID, &v.VisitedAt, &v.Latitude, &v.Longitude, &v.Note)
	if err != nil {
		return domain.Visit{}, err
	}

	v.ID = uuid.UUID(id.Bytes)
	v.DestinationID = uuid.UUID(destID.Bytes)
	return v, nil
}
