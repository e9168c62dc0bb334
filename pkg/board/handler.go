package board

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rosterly/rosterly/internal/rest"
	"github.com/rosterly/rosterly/pkg/calendar"
	"github.com/rosterly/rosterly/pkg/user"
)

type Handler struct {
	rescheduler *Rescheduler
}

type MoveRequestDTO struct {
	Start      string `json:"start"`
	ResourceId string `json:"resourceId,omitempty"`
}

func NewHandler(rescheduler *Rescheduler) *Handler {
	return &Handler{rescheduler: rescheduler}
}

// MoveEvent handles the drop half of drag and drop.
func (h *Handler) MoveEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventUid, err := uuid.Parse(vars["eventUid"])
	if err != nil {
		http.Error(w, "invalid event uid", http.StatusBadRequest)
		return
	}

	var dto MoveRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Start == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Missing start",
			Details: "'start' is required",
		})
		return
	}

	moved, err := h.rescheduler.Move(r.Context(), eventUid, dto.Start, dto.ResourceId)
	if err != nil {
		var validationErr *calendar.ValidationError
		switch {
		case errors.As(err, &validationErr):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid move",
				Details: validationErr.Error(),
			})
		case errors.Is(err, calendar.ErrEventNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, user.ErrNoUser):
			http.Error(w, err.Error(), http.StatusUnauthorized)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(struct {
		UID        string `json:"uid"`
		Start      string `json:"start"`
		End        string `json:"end"`
		ResourceId string `json:"resourceId"`
	}{
		UID:        moved.UID.UUID.String(),
		Start:      moved.StartTime.Format(time.RFC3339),
		End:        moved.EndTime.Format(time.RFC3339),
		ResourceId: moved.ResourceId,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
