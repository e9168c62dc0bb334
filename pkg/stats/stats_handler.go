package stats

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rosterly/rosterly/internal/rest"
	"github.com/rosterly/rosterly/pkg/user"
	log "github.com/sirupsen/logrus"
)

type ResourceWorkloadDTO struct {
	ResourceId       string  `json:"resourceId"`
	ResourceName     string  `json:"resourceName"`
	Role             string  `json:"role,omitempty"`
	EventCount       int     `json:"eventCount"`
	TotalMinutes     int     `json:"totalMinutes"`
	TotalHours       float64 `json:"totalHours"`
	AvgHoursPerEvent float64 `json:"avgHoursPerEvent"`
}

type WorkloadSummaryDTO struct {
	StartDate    time.Time             `json:"startDate"`
	EndDate      time.Time             `json:"endDate"`
	Resources    []ResourceWorkloadDTO `json:"resources"`
	TotalEvents  int                   `json:"totalEvents"`
	TotalMinutes int                   `json:"totalMinutes"`
}

type IntervalDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type HeatmapDayDTO struct {
	Date          string        `json:"date"`
	TotalMinutes  int           `json:"totalMinutes"`
	EventCount    int           `json:"eventCount"`
	EarliestStart *time.Time    `json:"earliestStart,omitempty"`
	LatestEnd     *time.Time    `json:"latestEnd,omitempty"`
	Intervals     []IntervalDTO `json:"intervals"`
	OverflowCount int           `json:"overflowCount,omitempty"`
	Color         string        `json:"color"`
}

type StatsHandler struct {
	statsService     StatsService
	csvStatsRenderer StatsRenderer
}

func NewStatsHandler(statsService StatsService, csvStatsRenderer StatsRenderer) *StatsHandler {
	return &StatsHandler{statsService, csvStatsRenderer}
}

func (handler *StatsHandler) GetWorkload(w http.ResponseWriter, r *http.Request) {
	from, to, ok := rangeParams(w, r)
	if !ok {
		return
	}
	summary, err := handler.statsService.GetWorkload(r.Context(), from, to)
	if err != nil {
		writeStatsError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" || r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csv, err := handler.csvStatsRenderer.RenderWorkload(summary)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(workloadToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *StatsHandler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	from, to, ok := rangeParams(w, r)
	if !ok {
		return
	}

	zoneName := r.URL.Query().Get("timezone")
	if zoneName == "" {
		// fall back to the caller's stored timezone setting
		currentUser, err := user.CurrentUser(r.Context())
		if err == nil {
			zoneName = currentUser.Settings.Timezone
		}
	}
	if zoneName == "" {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "No timezone available",
			Details: "Provide a 'timezone' query parameter or set one in your profile",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		log.Warnf("Rejected unknown timezone %q: %v", zoneName, err)
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid timezone",
			Details: "'timezone' must be an IANA zone name",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	days, err := handler.statsService.GetHeatmap(r.Context(), from, to, loc)
	if err != nil {
		writeStatsError(w, err)
		return
	}

	dtos := make([]HeatmapDayDTO, 0, len(days))
	for _, day := range days {
		dtos = append(dtos, heatmapDayToDTO(day))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeStatsError(w http.ResponseWriter, err error) {
	if errors.Is(err, user.ErrNoUser) {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func rangeParams(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		writeRangeError(w, "Invalid from (date) format", "'from' must be in RFC3339 format")
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		writeRangeError(w, "Invalid to (date) format", "'to' must be in RFC3339 format")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func writeRangeError(w http.ResponseWriter, message, details string) {
	w.WriteHeader(http.StatusBadRequest)
	encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error:   message,
		Details: details,
	})
	if encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}

func workloadToDTO(summary WorkloadSummary) WorkloadSummaryDTO {
	rows := make([]ResourceWorkloadDTO, 0, len(summary.Resources))
	for _, row := range summary.Resources {
		rows = append(rows, ResourceWorkloadDTO{
			ResourceId:       row.Resource.Id,
			ResourceName:     row.Resource.Name,
			Role:             row.Resource.Role,
			EventCount:       row.EventCount,
			TotalMinutes:     row.TotalMinutes,
			TotalHours:       row.TotalHours,
			AvgHoursPerEvent: row.AvgHoursPerEvent,
		})
	}
	return WorkloadSummaryDTO{
		StartDate:    summary.StartDate,
		EndDate:      summary.EndDate,
		Resources:    rows,
		TotalEvents:  summary.TotalEvents,
		TotalMinutes: summary.TotalMinutes,
	}
}

func heatmapDayToDTO(day HeatmapDay) HeatmapDayDTO {
	dto := HeatmapDayDTO{
		Date:          day.Date.Format("2006-01-02"),
		TotalMinutes:  day.TotalMinutes,
		EventCount:    day.EventCount,
		OverflowCount: day.OverflowCount,
		Color:         day.Color,
	}
	if !day.EarliestStart.IsZero() {
		earliest := day.EarliestStart
		dto.EarliestStart = &earliest
	}
	if !day.LatestEnd.IsZero() {
		latest := day.LatestEnd
		dto.LatestEnd = &latest
	}
	dto.Intervals = make([]IntervalDTO, 0, len(day.Intervals))
	for _, interval := range day.Intervals {
		dto.Intervals = append(dto.Intervals, IntervalDTO{Start: interval.Start, End: interval.End})
	}
	return dto
}
