package trip

import (
	"context"
	"errors"

	"backend-tripplanner/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// CreateTrip inserts a trip owned by the authenticated caller. The owner is
// fixed at creation and never changed by updates.
func (s *Service) CreateTrip(ctx context.Context, input Trip, owner string) (Trip, error) {
	input.ID = uuid.NewString()
	input.Owner = owner
	if input.Waypoints == nil {
		input.Waypoints = []string{}
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO trips (id, name, waypoints, owner)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, input.ID, input.Name, input.Waypoints, input.Owner)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Trip{}, err
	}
	return input, nil
}

func (s *Service) GetTrip(ctx context.Context, id string) (Trip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, waypoints, owner, created_at
		FROM trips WHERE id=$1
	`, id)

	var trip Trip
	if err := row.Scan(&trip.ID, &trip.Name, &trip.Waypoints, &trip.Owner, &trip.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Trip{}, ErrNotFound
		}
		return Trip{}, err
	}
	return trip, nil
}

// ListTrips returns the trips owned by a single user, oldest first.
func (s *Service) ListTrips(ctx context.Context, owner string) ([]Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, waypoints, owner, created_at
		FROM trips WHERE owner=$1
		ORDER BY created_at
	`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []Trip{}
	for rows.Next() {
		var t Trip
		if err := rows.Scan(&t.ID, &t.Name, &t.Waypoints, &t.Owner, &t.CreatedAt); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// UpdateTrip merges only the fields present in the patch into the stored
// document, in one statement so concurrent patches cannot interleave, and
// returns the post-merge trip.
func (s *Service) UpdateTrip(ctx context.Context, id string, patch Patch) (Trip, error) {
	// An absent waypoint list must reach the store as SQL NULL, not as a
	// jsonb null, or COALESCE would clobber the stored value.
	var waypoints any
	if patch.Waypoints != nil {
		waypoints = patch.Waypoints
	}

	row := s.db.QueryRow(ctx, `
		UPDATE trips
		SET name=COALESCE($2,name), waypoints=COALESCE($3,waypoints)
		WHERE id=$1
		RETURNING id, name, waypoints, owner, created_at
	`, id, patch.Name, waypoints)

	var trip Trip
	if err := row.Scan(&trip.ID, &trip.Name, &trip.Waypoints, &trip.Owner, &trip.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Trip{}, ErrNotFound
		}
		return Trip{}, err
	}
	return trip, nil
}

// DeleteTrip removes a trip and returns the document that was removed.
func (s *Service) DeleteTrip(ctx context.Context, id string) (Trip, error) {
	row := s.db.QueryRow(ctx, `
		DELETE FROM trips WHERE id=$1
		RETURNING id, name, waypoints, owner, created_at
	`, id)

	var trip Trip
	if err := row.Scan(&trip.ID, &trip.Name, &trip.Waypoints, &trip.Owner, &trip.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Trip{}, ErrNotFound
		}
		return Trip{}, err
	}
	return trip, nil
}
