package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/habit-trail/internal/domain"
)

// DestinationRepo defines the persistence operations for destinations.
type DestinationRepo interface {
	// Create inserts a new destination and returns it with DB-generated fields populated.
	Create(ctx context.Context, d domain.Destination) (domain.Destination, error)

	// GetByID returns the destination with the given ID.
	// Returns domain.ErrNotFound if no such destination exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error)

	// List returns every destination ordered by creation time.
	List(ctx context.Context) ([]domain.Destination, error)

	// UpdateFrequency replaces the weekly schedule of a destination.
	// Returns domain.ErrNotFound if no such destination exists.
	UpdateFrequency(ctx context.Context, id uuid.UUID, f domain.Frequency) (domain.Destination, error)

	// Delete removes a destination. Its visits are kept.
	// Returns domain.ErrNotFound if no such destination exists.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgDestinationRepo is the Postgres implementation of DestinationRepo.
type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided db connection.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

const destinationColumns = `id, name, address, latitude, longitude, radius_meters, frequency_days, frequency_time, created_at`

// Create inserts a destination. The ID is generated by the database unless one is supplied.
func (r *pgDestinationRepo) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}

	q := `
		INSERT INTO destinations (id, name, address, latitude, longitude, radius_meters, frequency_days, frequency_time)
		VALUES (@id, @name, @address, @latitude, @longitude, @radius_meters, @frequency_days, @frequency_time)
		RETURNING ` + destinationColumns

	row := r.db.QueryRow(ctx, q, destinationArgs(d))
	created, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", err)
	}
	return created, nil
}

// GetByID fetches a single destination by its UUID.
func (r *pgDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	q := `SELECT ` + destinationColumns + ` FROM destinations WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	d, err := scanDestination(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetByID: %w", domain.ErrNotFound)
		}
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetByID: %w", err)
	}
	return d, nil
}

// List returns all destinations.
func (r *pgDestinationRepo) List(ctx context.Context) ([]domain.Destination, error) {
	dests, err := listDestinations(ctx, r.db)
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.List: %w", err)
	}
	return dests, nil
}

// UpdateFrequency overwrites frequency_days and frequency_time.
func (r *pgDestinationRepo) UpdateFrequency(ctx context.Context, id uuid.UUID, f domain.Frequency) (domain.Destination, error) {
	q := `
		UPDATE destinations
		SET frequency_days = @frequency_days, frequency_time = @frequency_time
		WHERE id = @id
		RETURNING ` + destinationColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"id":             id,
		"frequency_days": toInt32s(f.Days),
		"frequency_time": f.Time,
	})
	d, err := scanDestination(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.UpdateFrequency: %w", domain.ErrNotFound)
		}
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.UpdateFrequency: %w", err)
	}
	return d, nil
}

// Delete removes the destination with the given ID.
func (r *pgDestinationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM destinations WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// listDestinations is shared by DestinationRepo.List and ProfileStore.Load.
func listDestinations(ctx context.Context, db db) ([]domain.Destination, error) {
	q := `SELECT ` + destinationColumns + ` FROM destinations ORDER BY created_at ASC, id ASC`

	rows, err := db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dests := []domain.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		dests = append(dests, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return dests, nil
}

func destinationArgs(d domain.Destination) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":             d.ID,
		"name":           d.Name,
		"address":        d.Address,
		"latitude":       d.Latitude,
		"longitude":      d.Longitude,
		"radius_meters":  d.RadiusMeters,
		"frequency_days": toInt32s(d.Frequency.Days),
		"frequency_time": d.Frequency.Time,
	}
}

// scanDestination maps a single database row into a domain.Destination.
func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d    domain.Destination
		id   pgtype.UUID
		days []int32
	)

	err := s.Scan(
		&id,
		&d.Name,
		&d.Address,
		&d.Latitude,
		&d.Longitude,
		&d.RadiusMeters,
		&days,
		&d.Frequency.Time,
		&d.CreatedAt,
	)
	if err != nil {
		return domain.Destination{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	d.Frequency.Days = make([]int, len(days))
	for i, v := range days {
		d.Frequency.Days[i] = int(v)
	}
	return d, nil
}

func toInt32s(days []int) []int32 {
	out := make([]int32, len(days))
	for i, v := range days {
		out[i] = int32(v)
	}
	return out
}
