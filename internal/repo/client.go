package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/travel-agency/internal/domain"
)

// ClientRepo defines the persistence operations for Clients.
type ClientRepo interface {
	// Create inserts a new client and returns it with the DB-generated ID.
	// Nil Telephone and Pesel are stored as NULL.
	Create(ctx context.Context, client domain.Client) (domain.Client, error)
}

// pgClientRepo is the Postgres implementation of ClientRepo.
type pgClientRepo struct {
	db db
}

// NewClientRepo constructs a ClientRepo backed by the provided db connection.
func NewClientRepo(db db) ClientRepo {
	return &pgClientRepo{db: db}
}

// Create inserts one Client row. No uniqueness or format checks are made on
// email or pesel.
func (r *pgClientRepo) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	const q = `
		INSERT INTO Client (FirstName, LastName, Email, Telephone, Pesel)
		VALUES (@first_name, @last_name, @email, @telephone, @pesel)
		RETURNING IdClient`

	args := pgx.NamedArgs{
		"first_name": client.FirstName,
		"last_name":  client.LastName,
		"email":      client.Email,
		"telephone":  client.Telephone, // nil becomes NULL
		"pesel":      client.Pesel,
	}

	if err := r.db.QueryRow(ctx, q, args).Scan(&client.ID); err != nil {
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.Create: %w", err)
	}
	return client, nil
}
