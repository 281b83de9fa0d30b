package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-agency/internal/domain"
	"github.com/pkordes/travel-agency/internal/repo"
	"github.com/pkordes/travel-agency/testutil"
)

// findTrip returns the trip with the given id from trips, failing the test if absent.
func findTrip(t *testing.T, trips []domain.Trip, id int) domain.Trip {
	t.Helper()
	for _, tr := range trips {
		if tr.ID == id {
			return tr
		}
	}
	t.Fatalf("trip %d not in result", id)
	return domain.Trip{}
}

func countryNames(cs []domain.Country) []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return names
}

func TestTripRepo_List_GroupsCountriesPerTrip(t *testing.T) {
	tx := testutil.NewTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	poland := testutil.SeedCountry(t, tx, "Poland")
	spain := testutil.SeedCountry(t, tx, "Spain")
	first := testutil.SeedTrip(t, tx, "Iberia", spain, poland)
	second := testutil.SeedTrip(t, tx, "Baltic")

	trips, err := r.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"Poland", "Spain"}, countryNames(findTrip(t, trips, first).Countries))

	empty := findTrip(t, trips, second)
	assert.NotNil(t, empty.Countries, "countryless trip should carry an empty slice")
	assert.Empty(t, empty.Countries)
}

func TestTripRepo_List_OrderedByID(t *testing.T) {
	tx := testutil.NewTx(t)
	r := repo.NewTripRepo(tx)

	country := testutil.SeedCountry(t, tx, "Italy")
	testutil.SeedTrip(t, tx, "Zeta", country)
	testutil.SeedTrip(t, tx, "Alpha", country)

	trips, err := r.List(context.Background())

	require.NoError(t, err)
	for i := 1; i < len(trips); i++ {
		assert.Less(t, trips[i-1].ID, trips[i].ID, "trips must be ordered by ascending id")
	}
}

func TestTripRepo_GetByID(t *testing.T) {
	tx := testutil.NewTx(t)
	r := repo.NewTripRepo(tx)

	country := testutil.SeedCountry(t, tx, "Greece")
	id := testutil.SeedTrip(t, tx, "Islands", country)

	got, err := r.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Islands", got.Name)
	assert.Equal(t, []string{"Greece"}, countryNames(got.Countries))
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	tx := testutil.NewTx(t)
	r := repo.NewTripRepo(tx)

	_, err := r.GetByID(context.Background(), testutil.MissingID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_ListByClient_OrderedByTripName(t *testing.T) {
	tx := testutil.NewTx(t)
	trips := repo.NewTripRepo(tx)
	enrollments := repo.NewEnrollmentRepo(tx)
	ctx := context.Background()

	france := testutil.SeedCountry(t, tx, "France")
	germany := testutil.SeedCountry(t, tx, "Germany")
	rhine := testutil.SeedTrip(t, tx, "Rhine", germany, france)
	alps := testutil.SeedTrip(t, tx, "Alps", france)
	client := testutil.SeedClient(t, tx)

	require.NoError(t, enrollments.Enroll(ctx, client, rhine, 20250101))
	require.NoError(t, enrollments.Enroll(ctx, client, alps, 20250101))

	got, err := trips.ListByClient(ctx, client)

	require.NoError(t, err)
	assert.Equal(t, []domain.ClientTrip{
		{TripName: "Alps", Countries: []string{"France"}},
		{TripName: "Rhine", Countries: []string{"France", "Germany"}},
	}, got)
}

// Inner joins drop enrolled trips that have no Country_Trip rows.
func TestTripRepo_ListByClient_ExcludesTripsWithoutCountries(t *testing.T) {
	tx := testutil.NewTx(t)
	trips := repo.NewTripRepo(tx)
	enrollments := repo.NewEnrollmentRepo(tx)
	ctx := context.Background()

	bare := testutil.SeedTrip(t, tx, "Nowhere")
	client := testutil.SeedClient(t, tx)
	require.NoError(t, enrollments.Enroll(ctx, client, bare, 20250101))

	got, err := trips.ListByClient(ctx, client)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTripRepo_ListByClient_NoEnrollments(t *testing.T) {
	tx := testutil.NewTx(t)
	r := repo.NewTripRepo(tx)

	got, err := r.ListByClient(context.Background(), testutil.SeedClient(t, tx))

	require.NoError(t, err)
	assert.Empty(t, got)
}
