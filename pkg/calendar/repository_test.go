package calendar

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
const testResourceId = "resource-1"

func setupRepositoryTest(t *testing.T) (*RepositoryImpl, *sql.DB, context.Context) {
	db := test_utils.SetupTestDB(t)
	seedCaller(t, db, testCallerUid)
	seedResource(t, db, testCallerUid, testResourceId, "Anna")
	return NewRepository(db), db, context.Background()
}

func seedCaller(t *testing.T, db *sql.DB, uid string) {
	_, err := db.Exec(`INSERT INTO callers (uid, display_name, timezone) VALUES ($1, $2, $3)`, uid, "Test Caller", "UTC")
	require.NoError(t, err)
}

func seedResource(t *testing.T, db *sql.DB, callerUid, id, name string) {
	_, err := db.Exec(`INSERT INTO resources (id, caller_uid, name, role, color) VALUES ($1, $2, $3, $4, $5)`,
		id, callerUid, name, "", "")
	require.NoError(t, err)
}

func testEvent(title string, start, end time.Time, resourceId string) Event {
	return Event{
		Title:      title,
		StartTime:  start,
		EndTime:    end,
		ResourceId: resourceId,
	}
}

func TestRepositoryImpl_StoreEvent(t *testing.T) {
	repository, _, ctx := setupRepositoryTest(t)

	// given
	start := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	event := testEvent("Morning shift", start, start.Add(8*time.Hour), testResourceId)

	// when
	uid, err := repository.StoreEvent(ctx, testCallerUid, event)

	// then
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, uid)

	stored, err := repository.GetEvent(ctx, testCallerUid, uid)
	require.NoError(t, err)
	assert.Equal(t, "Morning shift", stored.Title)
	assert.Equal(t, start, stored.StartTime)
	assert.Equal(t, start.Add(8*time.Hour), stored.EndTime)
	assert.Equal(t, testResourceId, stored.ResourceId)
	assert.True(t, stored.UID.Valid)
	assert.Equal(t, uid, stored.UID.UUID)
}

func TestRepositoryImpl_GetEvent_notFound(t *testing.T) {
	repository, _, ctx := setupRepositoryTest(t)

	_, err := repository.GetEvent(ctx, testCallerUid, uuid.New())

	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRepositoryImpl_GetEvents_returnsOverlappingOrdered(t *testing.T) {
	repository, _, ctx := setupRepositoryTest(t)

	// given
	day := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	_, err := repository.StoreEvent(ctx, testCallerUid, testEvent("Late", day.Add(14*time.Hour), day.Add(16*time.Hour), testResourceId))
	require.NoError(t, err)
	_, err = repository.StoreEvent(ctx, testCallerUid, testEvent("Early", day.Add(9*time.Hour), day.Add(11*time.Hour), testResourceId))
	require.NoError(t, err)
	// starts before the range but overlaps its beginning
	_, err = repository.StoreEvent(ctx, testCallerUid, testEvent("Overnight", day.Add(-2*time.Hour), day.Add(time.Hour), testResourceId))
	require.NoError(t, err)
	// entirely outside the range
	_, err = repository.StoreEvent(ctx, testCallerUid, testEvent("Next week", day.AddDate(0, 0, 7), day.AddDate(0, 0, 7).Add(time.Hour), testResourceId))
	require.NoError(t, err)

	// when
	events, err := repository.GetEvents(ctx, testCallerUid, day, day.Add(24*time.Hour), "")

	// then
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "Overnight", events[0].Title)
	assert.Equal(t, "Early", events[1].Title)
	assert.Equal(t, "Late", events[2].Title)
}

func TestRepositoryImpl_GetEvents_narrowsByResource(t *testing.T) {
	repository, db, ctx := setupRepositoryTest(t)
	seedResource(t, db, testCallerUid, "resource-2", "Bartek")

	day := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	_, err := repository.StoreEvent(ctx, testCallerUid, testEvent("Anna's shift", day.Add(9*time.Hour), day.Add(17*time.Hour), testResourceId))
	require.NoError(t, err)
	_, err = repository.StoreEvent(ctx, testCallerUid, testEvent("Bartek's shift", day.Add(9*time.Hour), day.Add(17*time.Hour), "resource-2"))
	require.NoError(t, err)

	events, err := repository.GetEvents(ctx, testCallerUid, day, day.Add(24*time.Hour), "resource-2")

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Bartek's shift", events[0].Title)
}

func TestRepositoryImpl_GetEvents_scopedToCaller(t *testing.T) {
	repository, db, ctx := setupRepositoryTest(t)
	seedCaller(t, db, "caller-2")
	seedResource(t, db, "caller-2", "other-resource", "Celina")

	day := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	_, err := repository.StoreEvent(ctx, testCallerUid, testEvent("Mine", day.Add(9*time.Hour), day.Add(10*time.Hour), testResourceId))
	require.NoError(t, err)
	_, err = repository.StoreEvent(ctx, "caller-2", testEvent("Theirs", day.Add(9*time.Hour), day.Add(10*time.Hour), "other-resource"))
	require.NoError(t, err)

	events, err := repository.GetEvents(ctx, testCallerUid, day, day.Add(24*time.Hour), "")

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Mine", events[0].Title)
}

func TestRepositoryImpl_UpdateEvent(t *testing.T) {
	repository, _, ctx := setupRepositoryTest(t)

	// given
	start := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	uid, err := repository.StoreEvent(ctx, testCallerUid, testEvent("Shift", start, start.Add(4*time.Hour), testResourceId))
	require.NoError(t, err)

	// when
	updated := testEvent("Extended shift", start, start.Add(6*time.Hour), testResourceId)
	updated.UID = uuid.NullUUID{UUID: uid, Valid: true}
	err = repository.UpdateEvent(ctx, testCallerUid, updated)

	// then
	require.NoError(t, err)
	stored, err := repository.GetEvent(ctx, testCallerUid, uid)
	require.NoError(t, err)
	assert.Equal(t, "Extended shift", stored.Title)
	assert.Equal(t, start.Add(6*time.Hour), stored.EndTime)
}

func TestRepositoryImpl_UpdateEvent_notFound(t *testing.T) {
	repository, _, ctx := setupRepositoryTest(t)

	event := testEvent("Ghost", time.Now(), time.Now().Add(time.Hour), testResourceId)
	event.UID = uuid.NullUUID{UUID: uuid.New(), Valid: true}
	err := repository.UpdateEvent(ctx, testCallerUid, event)

	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRepositoryImpl_DeleteEvent(t *testing.T) {
	repository, _, ctx := setupRepositoryTest(t)

	start := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	uid, err := repository.StoreEvent(ctx, testCallerUid, testEvent("Shift", start, start.Add(time.Hour), testResourceId))
	require.NoError(t, err)

	err = repository.DeleteEvent(ctx, testCallerUid, uid)

	require.NoError(t, err)
	_, err = repository.GetEvent(ctx, testCallerUid, uid)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRepositoryImpl_DeleteEvent_notFound(t *testing.T) {
	repository, _, ctx := setupRepositoryTest(t)

	err := repository.DeleteEvent(ctx, testCallerUid, uuid.New())

	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRepositoryImpl_deletingResourceCascadesToEvents(t *testing.T) {
	repository, db, ctx := setupRepositoryTest(t)

	start := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	uid, err := repository.StoreEvent(ctx, testCallerUid, testEvent("Shift", start, start.Add(time.Hour), testResourceId))
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM resources WHERE id = $1`, testResourceId)
	require.NoError(t, err)

	_, err = repository.GetEvent(ctx, testCallerUid, uid)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
