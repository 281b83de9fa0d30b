package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-agency/internal/domain"
)

// TripRepo defines the read operations for Trips and their countries.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// List returns every trip ordered by id ascending, each with its countries.
	// Trips without countries are included with an empty Countries slice.
	List(ctx context.Context) ([]domain.Trip, error)

	// GetByID returns one trip with its countries.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id int) (domain.Trip, error)

	// ListByClient returns one entry per trip the client is enrolled in,
	// ordered by trip name. Trips with no countries are not returned.
	ListByClient(ctx context.Context, clientID int) ([]domain.ClientTrip, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// List runs a LEFT JOIN from Trip to Country so countryless trips still
// produce one row (with a NULL country name).
func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `
		SELECT t.IdTrip, t.Name, c.Name
		FROM Trip t
		LEFT JOIN Country_Trip ct ON ct.IdTrip = t.IdTrip
		LEFT JOIN Country c ON c.IdCountry = ct.IdCountry
		ORDER BY t.IdTrip, c.Name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	trips, err := collectTrips(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return trips, nil
}

// GetByID runs the List query filtered to a single trip.
func (r *pgTripRepo) GetByID(ctx context.Context, id int) (domain.Trip, error) {
	const q = `
		SELECT t.IdTrip, t.Name, c.Name
		FROM Trip t
		LEFT JOIN Country_Trip ct ON ct.IdTrip = t.IdTrip
		LEFT JOIN Country c ON c.IdCountry = ct.IdCountry
		WHERE t.IdTrip = @id
		ORDER BY c.Name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	trips, err := collectTrips(rows)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	if len(trips) == 0 {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", domain.NotFoundf("trip %d does not exist", id))
	}
	return trips[0], nil
}

// ListByClient uses inner joins only, so a trip the client is enrolled in
// but which has no Country_Trip rows yields no row at all.
func (r *pgTripRepo) ListByClient(ctx context.Context, clientID int) ([]domain.ClientTrip, error) {
	const q = `
		SELECT t.IdTrip, t.Name, c.Name
		FROM Client_Trip cl
		JOIN Trip t ON t.IdTrip = cl.IdTrip
		JOIN Country_Trip ct ON ct.IdTrip = t.IdTrip
		JOIN Country c ON c.IdCountry = ct.IdCountry
		WHERE cl.IdClient = @client_id
		ORDER BY t.Name, t.IdTrip, c.Name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"client_id": clientID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByClient: %w", err)
	}
	defer rows.Close()

	var (
		result []domain.ClientTrip
		lastID = -1
	)
	for rows.Next() {
		var (
			tripID      int
			tripName    string
			countryName string
		)
		if err := rows.Scan(&tripID, &tripName, &countryName); err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByClient: scan: %w", err)
		}
		// Rows of one trip are contiguous because of the ORDER BY.
		if tripID != lastID {
			result = append(result, domain.ClientTrip{TripName: tripName, Countries: []string{}})
			lastID = tripID
		}
		last := &result[len(result)-1]
		last.Countries = append(last.Countries, countryName)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByClient: rows: %w", err)
	}

	return result, nil
}

// collectTrips groups (trip id, trip name, nullable country name) rows by trip
// id, keeping the order in which trips are first seen. It closes rows.
func collectTrips(rows pgx.Rows) ([]domain.Trip, error) {
	defer rows.Close()

	var (
		trips []domain.Trip
		index = map[int]int{}
	)
	for rows.Next() {
		var (
			id      int
			name    string
			country pgtype.Text
		)
		if err := rows.Scan(&id, &name, &country); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		i, seen := index[id]
		if !seen {
			i = len(trips)
			index[id] = i
			trips = append(trips, domain.Trip{ID: id, Name: name, Countries: []domain.Country{}})
		}
		if country.Valid {
			trips[i].Countries = append(trips[i].Countries, domain.Country{Name: country.String})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return trips, nil
}
