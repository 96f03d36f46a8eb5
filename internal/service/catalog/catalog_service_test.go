package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/labshare/internal/domain/models"
	"github.com/mamadbah2/labshare/internal/service/catalog"
	"github.com/mamadbah2/labshare/internal/testutil"
)

func ids(materials []models.Material) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(materials))
	for _, m := range materials {
		out = append(out, m.ID)
	}
	return out
}

func formFor(m models.Material) models.MaterialForm {
	return models.MaterialForm{
		Name:         m.Name,
		Lab:          m.Lab,
		Email:        m.Email,
		Availability: m.Availability,
		Preference:   m.Preference,
		Phone:        m.Phone,
		Description:  m.Description,
	}
}

func TestAddThenListContainsRecordOnce(t *testing.T) {
	repo := testutil.NewMemoryRepository()
	svc := catalog.NewService(repo, nil)
	ctx := context.Background()

	testutil.Seed(t, repo, testutil.Reserved("Centrifuge"))

	id, err := svc.Add(ctx, formFor(testutil.Microscope()))
	require.NoError(t, err)
	require.False(t, id.IsZero())

	for _, search := range []string{"", "Microscope"} {
		got, err := svc.List(ctx, search)
		require.NoError(t, err)

		count := 0
		for _, gotID := range ids(got) {
			if gotID == id {
				count++
			}
		}
		assert.Equal(t, 1, count, "search %q", search)
	}

	m, found, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Microscope", m.Name)
	assert.Equal(t, "a@b.com", m.Email)
}

func TestRemoveThenGetIsEmpty(t *testing.T) {
	repo := testutil.NewMemoryRepository()
	svc := catalog.NewService(repo, nil)
	ctx := context.Background()

	seeded := testutil.Seed(t, repo, testutil.Microscope())

	deleted, err := svc.Remove(ctx, seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, found, err := svc.Get(ctx, seeded[0].ID)
	require.NoError(t, err)
	assert.False(t, found)

	got, err := repo.Find(ctx, models.ByID(seeded[0].ID))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRemoveAbsentIDReturnsZero(t *testing.T) {
	repo := testutil.NewMemoryRepository()
	svc := catalog.NewService(repo, nil)

	testutil.Seed(t, repo, testutil.Microscope())

	deleted, err := svc.Remove(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
	assert.Equal(t, 1, repo.Len())
}

func TestEmptySearchMatchesAll(t *testing.T) {
	repo := testutil.NewMemoryRepository()
	svc := catalog.NewService(repo, nil)
	seeded := testutil.Seed(t, repo, testutil.Microscope(), testutil.Reserved("Centrifuge"), testutil.Reserved("Pipette"))

	all, err := repo.Find(context.Background(), models.MatchAll())
	require.NoError(t, err)

	got, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.ElementsMatch(t, ids(all), ids(got))
	assert.Len(t, got, len(seeded))

	require.NotEmpty(t, repo.Finds)
	assert.Empty(t, repo.Finds[len(repo.Finds)-1], "empty search must not filter")
}

func TestSearchIsExactNameMatch(t *testing.T) {
	repo := testutil.NewMemoryRepository()
	svc := catalog.NewService(repo, nil)

	seeded := testutil.Seed(t, repo,
		testutil.Microscope(),
		testutil.Reserved("Microscope"),
		testutil.Reserved("Microscope slides"),
		testutil.Reserved("microscope"),
	)

	got, err := svc.List(context.Background(), "Microscope")
	require.NoError(t, err)
	assert.ElementsMatch(t, []primitive.ObjectID{seeded[0].ID, seeded[1].ID}, ids(got))

	got, err = svc.List(context.Background(), "Micro")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStoreErrorsAreWrapped(t *testing.T) {
	storeErr := errors.New("server selection timeout")
	repo := testutil.NewMemoryRepository()
	repo.Err = storeErr
	svc := catalog.NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.List(ctx, "")
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.Add(ctx, models.MaterialForm{Name: "x"})
	assert.ErrorIs(t, err, storeErr)

	_, found, err := svc.Get(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, storeErr)
	assert.False(t, found)

	_, err = svc.Remove(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, storeErr)
}

func TestEachOperationIssuesOneStoreCall(t *testing.T) {
	repo := testutil.NewMemoryRepository()
	svc := catalog.NewService(repo, nil)
	ctx := context.Background()

	id, err := svc.Add(ctx, formFor(testutil.Microscope()))
	require.NoError(t, err)
	_, err = svc.List(ctx, "")
	require.NoError(t, err)
	_, _, err = svc.Get(ctx, id)
	require.NoError(t, err)
	_, err = svc.Remove(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.Inserts)
	assert.Len(t, repo.Finds, 2)
	assert.Equal(t, 1, repo.Deletes)
}
