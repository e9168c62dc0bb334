package board

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_MoveEvent(t *testing.T) {
	rescheduler, service, _, _, _, ctx := setupReschedulerTest()
	handler := NewHandler(rescheduler)

	start := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	created := mustAddEvent(t, service, ctx, start, start.Add(time.Hour))

	body, err := json.Marshal(MoveRequestDTO{Start: "2024-03-04T14:00:00Z"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/calendar/event/"+created.UID.UUID.String()+"/move", bytes.NewBuffer(body))
	req = mux.SetURLVars(req.WithContext(ctx), map[string]string{"eventUid": created.UID.UUID.String()})
	w := httptest.NewRecorder()

	handler.MoveEvent(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, created.UID.UUID.String(), resp["uid"])
	assert.Equal(t, "2024-03-04T14:00:00Z", resp["start"])
	assert.Equal(t, "2024-03-04T15:00:00Z", resp["end"])
}

func TestHandler_MoveEvent_missingStart(t *testing.T) {
	rescheduler, service, _, _, _, ctx := setupReschedulerTest()
	handler := NewHandler(rescheduler)

	start := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	created := mustAddEvent(t, service, ctx, start, start.Add(time.Hour))

	req := httptest.NewRequest(http.MethodPost, "/api/calendar/event/"+created.UID.UUID.String()+"/move", bytes.NewBufferString("{}"))
	req = mux.SetURLVars(req.WithContext(ctx), map[string]string{"eventUid": created.UID.UUID.String()})
	w := httptest.NewRecorder()

	handler.MoveEvent(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_MoveEvent_invalidUid(t *testing.T) {
	rescheduler, _, _, _, _, ctx := setupReschedulerTest()
	handler := NewHandler(rescheduler)

	req := httptest.NewRequest(http.MethodPost, "/api/calendar/event/not-a-uuid/move", bytes.NewBufferString(`{"start":"9:00"}`))
	req = mux.SetURLVars(req.WithContext(ctx), map[string]string{"eventUid": "not-a-uuid"})
	w := httptest.NewRecorder()

	handler.MoveEvent(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_MoveEvent_noCaller(t *testing.T) {
	rescheduler, service, _, _, _, ctx := setupReschedulerTest()
	handler := NewHandler(rescheduler)

	start := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	created := mustAddEvent(t, service, ctx, start, start.Add(time.Hour))

	req := httptest.NewRequest(http.MethodPost, "/api/calendar/event/"+created.UID.UUID.String()+"/move", bytes.NewBufferString(`{"start":"14:00"}`))
	req = mux.SetURLVars(req, map[string]string{"eventUid": created.UID.UUID.String()})
	w := httptest.NewRecorder()

	handler.MoveEvent(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_MoveEvent_notFound(t *testing.T) {
	rescheduler, _, _, _, _, ctx := setupReschedulerTest()
	handler := NewHandler(rescheduler)

	missing := uuid.NewString()
	req := httptest.NewRequest(http.MethodPost, "/api/calendar/event/"+missing+"/move", bytes.NewBufferString(`{"start":"9:00"}`))
	req = mux.SetURLVars(req.WithContext(ctx), map[string]string{"eventUid": missing})
	w := httptest.NewRecorder()

	handler.MoveEvent(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
