package resource

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rosterly/rosterly/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCallerUid = "caller-1"

func setupRepositoryTest(t *testing.T) (*RepositoryImpl, *sql.DB, context.Context) {
	db := test_utils.SetupTestDB(t)
	_, err := db.Exec(`INSERT INTO callers (uid, display_name, timezone) VALUES ($1, $2, $3)`,
		testCallerUid, "Test Caller", "UTC")
	require.NoError(t, err)
	return NewRepository(db), db, context.Background()
}

func TestRepositoryImpl_StoreResource(t *testing.T) {
	repository, _, ctx := setupRepositoryTest(t)

	id, err := repository.StoreResource(ctx, testCallerUid, Resource{Name: "Anna", Role: "Nurse", Color: "#2f81f7"})

	require.NoError(t, err)
	assert.NotEmpty(t, id)

	stored, err := repository.GetResource(ctx, testCallerUid, id)
	require.NoError(t, err)
	assert.Equal(t, "Anna", stored.Name)
	assert.Equal(t, "Nurse", stored.Role)
	assert.Equal(t, "#2f81f7", stored.Color)
}

func TestRepositoryImpl_GetResource_notFound(t *testing.T) {
	repository, _, ctx := setupRepositoryTest(t)

	_, err := repository.GetResource(ctx, testCallerUid, uuid.NewString())

	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestRepositoryImpl_GetAllResources_orderedByName(t *testing.T) {
	repository, _, ctx := setupRepositoryTest(t)

	for _, name := range []string{"Celina", "Anna", "Bartek"} {
		_, err := repository.StoreResource(ctx, testCallerUid, Resource{Name: name})
		require.NoError(t, err)
	}

	all, err := repository.GetAllResources(ctx, testCallerUid)

	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Anna", all[0].Name)
	assert.Equal(t, "Bartek", all[1].Name)
	assert.Equal(t, "Celina", all[2].Name)
}

func TestRepositoryImpl_UpdateResource(t *testing.T) {
	repository, _, ctx := setupRepositoryTest(t)

	id, err := repository.StoreResource(ctx, testCallerUid, Resource{Name: "Anna"})
	require.NoError(t, err)

	err = repository.UpdateResource(ctx, testCallerUid, Resource{Id: id, Name: "Anna", Role: "Head nurse"})

	require.NoError(t, err)
	stored, err := repository.GetResource(ctx, testCallerUid, id)
	require.NoError(t, err)
	assert.Equal(t, "Head nurse", stored.Role)
}

func TestRepositoryImpl_UpdateResource_notFound(t *testing.T) {
	repository, _, ctx := setupRepositoryTest(t)

	err := repository.UpdateResource(ctx, testCallerUid, Resource{Id: uuid.NewString(), Name: "Ghost"})

	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestRepositoryImpl_DeleteResource_cascadesToEvents(t *testing.T) {
	repository, db, ctx := setupRepositoryTest(t)

	id, err := repository.StoreResource(ctx, testCallerUid, Resource{Name: "Anna"})
	require.NoError(t, err)

	start := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	_, err = db.Exec(`INSERT INTO events (uid, caller_uid, resource_id, title, start_time, end_time)
                      VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.NewString(), testCallerUid, id, "Shift", start.UnixMilli(), start.Add(time.Hour).UnixMilli())
	require.NoError(t, err)

	err = repository.DeleteResource(ctx, testCallerUid, id)

	require.NoError(t, err)
	var eventCount int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM events WHERE resource_id = $1`, id).Scan(&eventCount))
	assert.Equal(t, 0, eventCount)
}

func TestRepositoryImpl_DeleteResource_notFound(t *testing.T) {
	repository, _, ctx := setupRepositoryTest(t)

	err := repository.DeleteResource(ctx, testCallerUid, uuid.NewString())

	assert.ErrorIs(t, err, ErrResourceNotFound)
}
