package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-agency/internal/domain"
)

// Execer is the subset of pgx.Tx the fixture helpers need.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UniqueName returns prefix followed by a random suffix, so fixtures never
// collide with rows left in a shared test database.
func UniqueName(prefix string) string {
	return prefix + " " + uuid.NewString()[:8]
}

// SeedCountry inserts a country and returns its id.
func SeedCountry(t *testing.T, db Execer, name string) int {
	t.Helper()
	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO Country (Name) VALUES (@name) RETURNING IdCountry`,
		pgx.NamedArgs{"name": name},
	).Scan(&id)
	if err != nil {
		t.Fatalf("testutil.SeedCountry: %v", err)
	}
	return id
}

// SeedTrip inserts a trip linked to the given country ids and returns its id.
func SeedTrip(t *testing.T, db Execer, name string, countryIDs ...int) int {
	t.Helper()
	ctx := context.Background()

	var id int
	err := db.QueryRow(ctx,
		`INSERT INTO Trip (Name) VALUES (@name) RETURNING IdTrip`,
		pgx.NamedArgs{"name": name},
	).Scan(&id)
	if err != nil {
		t.Fatalf("testutil.SeedTrip: %v", err)
	}

	for _, countryID := range countryIDs {
		_, err := db.Exec(ctx,
			`INSERT INTO Country_Trip (IdCountry, IdTrip) VALUES (@country_id, @trip_id)`,
			pgx.NamedArgs{"country_id": countryID, "trip_id": id},
		)
		if err != nil {
			t.Fatalf("testutil.SeedTrip: link country %d: %v", countryID, err)
		}
	}
	return id
}

// SeedClient inserts a client with a unique email and returns its id.
func SeedClient(t *testing.T, db Execer) int {
	t.Helper()
	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO Client (FirstName, LastName, Email) VALUES ('Anna', 'Nowak', @email) RETURNING IdClient`,
		pgx.NamedArgs{"email": uuid.NewString() + "@example.com"},
	).Scan(&id)
	if err != nil {
		t.Fatalf("testutil.SeedClient: %v", err)
	}
	return id
}

// MarkPaid sets PaymentDate on an existing enrollment.
func MarkPaid(t *testing.T, db Execer, clientID, tripID, paidOn int) {
	t.Helper()
	tag, err := db.Exec(context.Background(),
		`UPDATE Client_Trip SET PaymentDate = @paid WHERE IdClient = @client_id AND IdTrip = @trip_id`,
		pgx.NamedArgs{"paid": paidOn, "client_id": clientID, "trip_id": tripID},
	)
	if err != nil {
		t.Fatalf("testutil.MarkPaid: %v", err)
	}
	if tag.RowsAffected() != 1 {
		t.Fatalf("testutil.MarkPaid: expected 1 row, got %d", tag.RowsAffected())
	}
}

// GetEnrollment reads the Client_Trip row for the pair. ok is false when the
// client is not enrolled in the trip.
func GetEnrollment(t *testing.T, db Execer, clientID, tripID int) (e domain.Enrollment, ok bool) {
	t.Helper()
	var (
		registeredAt int32
		paymentDate  pgtype.Int4
	)
	err := db.QueryRow(context.Background(),
		`SELECT IdClient, IdTrip, RegisteredAt, PaymentDate FROM Client_Trip
		 WHERE IdClient = @client_id AND IdTrip = @trip_id`,
		pgx.NamedArgs{"client_id": clientID, "trip_id": tripID},
	).Scan(&e.ClientID, &e.TripID, &registeredAt, &paymentDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Enrollment{}, false
	}
	if err != nil {
		t.Fatalf("testutil.GetEnrollment: %v", err)
	}

	e.RegisteredAt = domain.DateInt(registeredAt)
	if paymentDate.Valid {
		pd := domain.DateInt(paymentDate.Int32)
		e.PaymentDate = &pd
	}
	return e, true
}

// SeedCommitted seeds a client and a trip outside any test transaction, for
// tests that need several connections to see the same rows. The rows and any
// enrollments between them are deleted when the test finishes.
func SeedCommitted(t *testing.T, db Execer) (clientID, tripID int) {
	t.Helper()
	clientID = SeedClient(t, db)
	tripID = SeedTrip(t, db, UniqueName("Committed"))

	t.Cleanup(func() {
		ctx := context.Background()
		args := pgx.NamedArgs{"client_id": clientID, "trip_id": tripID}
		for _, q := range []string{
			`DELETE FROM Client_Trip WHERE IdClient = @client_id OR IdTrip = @trip_id`,
			`DELETE FROM Trip WHERE IdTrip = @trip_id`,
			`DELETE FROM Client WHERE IdClient = @client_id`,
		} {
			if _, err := db.Exec(ctx, q, args); err != nil {
				t.Errorf("testutil.SeedCommitted: cleanup: %v", err)
			}
		}
	})
	return clientID, tripID
}

// MissingID is an identity no SERIAL column will reach in a test database.
const MissingID = 2_000_000_000
