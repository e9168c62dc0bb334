package stats

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rosterly/rosterly/pkg/calendar"
	"github.com/rosterly/rosterly/pkg/resource"
	"github.com/rosterly/rosterly/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest() (*StatsHandler, func()) {
	handler := NewStatsHandler(NewStatsService(eventsStub, resourcesStub), NewCsvStatsRenderer())
	return handler, func() {
		eventsStub.reset()
		resourcesStub.reset()
	}
}

func TestStatsHandler_GetWorkload(t *testing.T) {
	handler, teardown := setupHandlerTest()
	defer teardown()

	resourcesStub.resources = []resource.Resource{{Id: "r1", Name: "Anna", Role: "Nurse"}}
	eventsStub.events = []calendar.Event{
		{
			ResourceId: "r1",
			StartTime:  time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2024, time.March, 4, 10, 30, 0, 0, time.UTC),
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stats/workload?from=2024-03-04T00:00:00Z&to=2024-03-10T23:59:00Z", nil)
	w := httptest.NewRecorder()

	handler.GetWorkload(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var dto WorkloadSummaryDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	require.Len(t, dto.Resources, 1)
	assert.Equal(t, "Anna", dto.Resources[0].ResourceName)
	assert.Equal(t, 90, dto.Resources[0].TotalMinutes)
}

func TestStatsHandler_GetWorkload_invalidRange(t *testing.T) {
	handler, teardown := setupHandlerTest()
	defer teardown()

	req := httptest.NewRequest(http.MethodGet, "/api/stats/workload?from=yesterday&to=2024-03-10T23:59:00Z", nil)
	w := httptest.NewRecorder()

	handler.GetWorkload(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsHandler_GetWorkload_noCaller(t *testing.T) {
	handler, teardown := setupHandlerTest()
	defer teardown()

	eventsStub.err = fmt.Errorf("failed to get current user: %w", user.ErrNoUser)

	req := httptest.NewRequest(http.MethodGet, "/api/stats/workload?from=2024-03-04T00:00:00Z&to=2024-03-10T23:59:00Z", nil)
	w := httptest.NewRecorder()

	handler.GetWorkload(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStatsHandler_GetHeatmap_noCaller(t *testing.T) {
	handler, teardown := setupHandlerTest()
	defer teardown()

	eventsStub.err = fmt.Errorf("failed to get current user: %w", user.ErrNoUser)

	req := httptest.NewRequest(http.MethodGet, "/api/stats/heatmap?from=2024-03-04T00:00:00Z&to=2024-03-10T23:59:00Z&timezone=UTC", nil)
	w := httptest.NewRecorder()

	handler.GetHeatmap(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStatsHandler_GetHeatmap_noTimezoneAvailable(t *testing.T) {
	handler, teardown := setupHandlerTest()
	defer teardown()

	req := httptest.NewRequest(http.MethodGet, "/api/stats/heatmap?from=2024-03-04T00:00:00Z&to=2024-03-10T23:59:00Z", nil)
	w := httptest.NewRecorder()

	handler.GetHeatmap(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
