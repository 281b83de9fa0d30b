package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-agency/internal/domain"
)

// EnrollmentRepo defines the persistence operations for the Client_Trip
// association. Enroll and Remove each run their checks and the mutation in a
// single transaction.
type EnrollmentRepo interface {
	// Enroll checks that the client and trip exist and that the client is not
	// already enrolled, then inserts an unpaid enrollment.
	// Returns domain.ErrNotFound or domain.ErrInvalidOperation on the first
	// violated condition.
	Enroll(ctx context.Context, clientID, tripID int, registeredAt domain.DateInt) error

	// Remove checks that the client, trip and enrollment exist and that the
	// enrollment is unpaid, then deletes it.
	Remove(ctx context.Context, clientID, tripID int) error
}

// pgEnrollmentRepo is the Postgres implementation of EnrollmentRepo.
type pgEnrollmentRepo struct {
	db db
}

// NewEnrollmentRepo constructs an EnrollmentRepo backed by the provided db connection.
func NewEnrollmentRepo(db db) EnrollmentRepo {
	return &pgEnrollmentRepo{db: db}
}

func (r *pgEnrollmentRepo) Enroll(ctx context.Context, clientID, tripID int, registeredAt domain.DateInt) error {
	args := pgx.NamedArgs{
		"client_id":     clientID,
		"trip_id":       tripID,
		"registered_at": int(registeredAt),
	}

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := requireClientAndTrip(ctx, tx, clientID, tripID); err != nil {
			return err
		}

		const enrolledQ = `
			SELECT EXISTS (
				SELECT 1 FROM Client_Trip
				WHERE IdClient = @client_id AND IdTrip = @trip_id
			)`
		var enrolled bool
		if err := tx.QueryRow(ctx, enrolledQ, args).Scan(&enrolled); err != nil {
			return err
		}
		if enrolled {
			return domain.InvalidOperationf("client %d is already enrolled in trip %d", clientID, tripID)
		}

		const insertQ = `
			INSERT INTO Client_Trip (IdClient, IdTrip, RegisteredAt, PaymentDate)
			VALUES (@client_id, @trip_id, @registered_at, NULL)`
		_, err := tx.Exec(ctx, insertQ, args)
		return err
	})
	if err != nil {
		return fmt.Errorf("repo.EnrollmentRepo.Enroll: %w", translateEnrollError(err, clientID, tripID))
	}
	return nil
}

// translateEnrollError maps constraint violations raised by the insert to
// domain errors. A concurrent enroll can pass the EXISTS check and then lose
// the race on the primary key; a concurrent delete of the client or trip
// surfaces as a foreign-key violation.
func translateEnrollError(err error, clientID, tripID int) error {
	switch pgErrorCode(err) {
	case codeUniqueViolation:
		return domain.InvalidOperationf("client %d is already enrolled in trip %d", clientID, tripID)
	case codeForeignKeyViolation:
		return domain.NotFoundf("client %d or trip %d does not exist", clientID, tripID)
	}
	return err
}

func (r *pgEnrollmentRepo) Remove(ctx context.Context, clientID, tripID int) error {
	args := pgx.NamedArgs{"client_id": clientID, "trip_id": tripID}

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := requireClientAndTrip(ctx, tx, clientID, tripID); err != nil {
			return err
		}

		const paymentQ = `
			SELECT PaymentDate FROM Client_Trip
			WHERE IdClient = @client_id AND IdTrip = @trip_id
			FOR UPDATE`
		var paymentDate pgtype.Int4
		if err := tx.QueryRow(ctx, paymentQ, args).Scan(&paymentDate); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.NotFoundf("client %d is not enrolled in trip %d", clientID, tripID)
			}
			return err
		}
		if paymentDate.Valid {
			return domain.InvalidOperationf("client %d has already paid for trip %d", clientID, tripID)
		}

		const deleteQ = `DELETE FROM Client_Trip WHERE IdClient = @client_id AND IdTrip = @trip_id`
		_, err := tx.Exec(ctx, deleteQ, args)
		return err
	})
	if err != nil {
		return fmt.Errorf("repo.EnrollmentRepo.Remove: %w", err)
	}
	return nil
}

// requireClientAndTrip returns domain.ErrNotFound naming whichever of the
// client or trip is missing, checking the client first.
func requireClientAndTrip(ctx context.Context, tx pgx.Tx, clientID, tripID int) error {
	ok, err := clientExists(ctx, tx, clientID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFoundf("client %d does not exist", clientID)
	}

	ok, err = tripExists(ctx, tx, tripID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFoundf("trip %d does not exist", tripID)
	}
	return nil
}
