package repo_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/repo"
	"github.com/pkordes/travel-agency/testutil"
)

func TestClientRepo_Create(t *testing.T) {
	tx := testutil.NewTx(t)
	r := repo.NewClientRepo(tx)
	ctx := context.Background()

	phone := "+48 600 100 200"
	got, err := r.Create(ctx, domain.Client{
		FirstName: "Anna",
		LastName:  "Nowak",
		Email:     "a@x.com",
		Telephone: &phone,
	})

	require.NoError(t, err)
	assert.Positive(t, got.ID, "ID should be DB-generated")

	var firstName string
	err = tx.QueryRow(ctx, `SELECT FirstName FROM Client WHERE IdClient = @id`,
		pgx.NamedArgs{"id": got.ID},
	).Scan(&firstName)
	require.NoError(t, err)
	assert.Equal(t, "Anna", firstName)
}

// Absent optional fields must be stored as NULL, not as empty strings.
func TestClientRepo_Create_NilOptionalFieldsStoredAsNull(t *testing.T) {
	tx := testutil.NewTx(t)
	r := repo.NewClientRepo(tx)
	ctx := context.Background()

	got, err := r.Create(ctx, domain.Client{FirstName: "Jan", LastName: "Kowalski", Email: "j@x.com"})
	require.NoError(t, err)

	var telephone, pesel pgtype.Text
	err = tx.QueryRow(ctx,
		`SELECT Telephone, Pesel FROM Client WHERE IdClient = @id`,
		pgx.NamedArgs{"id": got.ID},
	).Scan(&telephone, &pesel)

	require.NoError(t, err)
	assert.False(t, telephone.Valid, "Telephone should be NULL")
	assert.False(t, pesel.Valid, "Pesel should be NULL")
}
