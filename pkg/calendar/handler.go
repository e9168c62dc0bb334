package calendar

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rosterly/rosterly/internal/rest"
	"github.com/rosterly/rosterly/internal/utils"
	"github.com/rosterly/rosterly/pkg/colorutil"
	"github.com/rosterly/rosterly/pkg/timeutil"
	"github.com/rosterly/rosterly/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
	clock   utils.Clock
}

type EventDTO struct {
	UID         string    `json:"uid"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start"`
	EndTime     time.Time `json:"end"`
	ResourceId  string    `json:"resourceId"`
	Color       string    `json:"color,omitempty"`
	TextColor   string    `json:"textColor,omitempty"`
}

func NewHandler(s *Service, clock utils.Clock) *Handler {
	return &Handler{service: s, clock: clock}
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	fromString := r.URL.Query().Get("from")
	toString := r.URL.Query().Get("to")
	from, err := time.Parse(time.RFC3339, fromString)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid from (date) format",
			Details: "'from' must be in RFC3339 format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}
	to, err := time.Parse(time.RFC3339, toString)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid to (date) format",
			Details: "'to' must be in RFC3339 format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			return
		}
		return
	}
	resourceId := r.URL.Query().Get("resourceId")

	events, err := h.service.GetEvents(r.Context(), from, to, resourceId)
	if err != nil {
		writeEventError(w, err)
		return
	}

	var dtos = make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	draft, err := req.toDraft(h.clock.Now())
	if err != nil {
		writeEventError(w, err)
		return
	}

	created, err := h.service.AddEvent(r.Context(), draft)
	if err != nil {
		writeEventError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(eventToDTO(*created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) PatchEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventUid, err := uuid.Parse(vars["eventUid"])
	if err != nil {
		http.Error(w, "invalid event uid", http.StatusBadRequest)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	patch, err := req.toPatch(h.clock.Now())
	if err != nil {
		writeEventError(w, err)
		return
	}
	if patch.IsEmpty() {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Empty patch",
			Details: "at least one field must be provided",
		})
		return
	}

	modified, err := h.service.ModifyEvent(r.Context(), eventUid, patch)
	if err != nil {
		writeEventError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(eventToDTO(*modified)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteEvent responds with the deleted snapshot so the client can reconcile
// its optimistic state.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventUid, err := uuid.Parse(vars["eventUid"])
	if err != nil {
		http.Error(w, "invalid event uid", http.StatusBadRequest)
		return
	}

	deleted, err := h.service.DeleteEvent(r.Context(), eventUid)
	if err != nil {
		writeEventError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(eventToDTO(*deleted)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Tracef("Event deleted: %s", eventUid)
}

func writeEventError(w http.ResponseWriter, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid event",
			Details: validationErr.Error(),
		})
	case errors.Is(err, ErrEventNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func eventToDTO(e Event) EventDTO {
	dto := EventDTO{
		UID:         e.UID.UUID.String(),
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		ResourceId:  e.ResourceId,
		Color:       e.Color,
	}
	if e.Color != "" {
		dto.TextColor = colorutil.ContrastText(e.Color)
	}
	return dto
}

// eventRequest is the write-side payload. The update endpoint historically
// accepted both snake_case and camelCase names for the same logical field, and
// times either as RFC3339 or as a bare "HH:mm" label resolved against the
// "date" field. All of that aliasing is normalized here and never leaks past
// the boundary.
type eventRequest struct {
	title       *string
	description *string
	start       *string
	end         *string
	resourceId  *string
	color       *string
	date        *string
}

func (req *eventRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var err error
	if req.title, err = pickString(raw, "title"); err != nil {
		return err
	}
	if req.description, err = pickString(raw, "description"); err != nil {
		return err
	}
	if req.start, err = pickString(raw, "start", "start_time", "startTime"); err != nil {
		return err
	}
	if req.end, err = pickString(raw, "end", "end_time", "endTime"); err != nil {
		return err
	}
	if req.resourceId, err = pickString(raw, "resourceId", "resource_id"); err != nil {
		return err
	}
	if req.color, err = pickString(raw, "color"); err != nil {
		return err
	}
	if req.date, err = pickString(raw, "date"); err != nil {
		return err
	}
	return nil
}

// pickString returns the first alias present in the payload.
func pickString(raw map[string]json.RawMessage, aliases ...string) (*string, error) {
	for _, key := range aliases {
		msg, ok := raw[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return nil, fmt.Errorf("field %q must be a string: %w", key, err)
		}
		return &s, nil
	}
	return nil, nil
}

// referenceDate resolves the day that bare "HH:mm" values are interpreted
// against: the request's "date" field when present, otherwise the current day.
func (req *eventRequest) referenceDate(now time.Time) (time.Time, error) {
	if req.date == nil {
		return now, nil
	}
	ref, err := time.Parse("2006-01-02", *req.date)
	if err != nil {
		return time.Time{}, &ValidationError{Fields: []string{"date"}}
	}
	return ref, nil
}

func (req *eventRequest) toDraft(now time.Time) (EventDraft, error) {
	ref, err := req.referenceDate(now)
	if err != nil {
		return EventDraft{}, err
	}

	draft := EventDraft{}
	if req.title != nil {
		draft.Title = *req.title
	}
	if req.description != nil {
		draft.Description = *req.description
	}
	if req.resourceId != nil {
		draft.ResourceId = *req.resourceId
	}
	if req.color != nil {
		draft.Color = *req.color
	}
	if req.start != nil {
		start, err := timeutil.Parse(*req.start, ref)
		if err != nil {
			return EventDraft{}, &ValidationError{Fields: []string{"start"}}
		}
		draft.StartTime = start
	}
	if req.end != nil {
		end, err := timeutil.Parse(*req.end, ref)
		if err != nil {
			return EventDraft{}, &ValidationError{Fields: []string{"end"}}
		}
		draft.EndTime = end
	}
	return draft, nil
}

func (req *eventRequest) toPatch(now time.Time) (EventPatch, error) {
	ref, err := req.referenceDate(now)
	if err != nil {
		return EventPatch{}, err
	}

	patch := EventPatch{
		Title:       req.title,
		Description: req.description,
		ResourceId:  req.resourceId,
		Color:       req.color,
	}
	if req.start != nil {
		start, err := timeutil.Parse(*req.start, ref)
		if err != nil {
			return EventPatch{}, &ValidationError{Fields: []string{"start"}}
		}
		patch.StartTime = &start
	}
	if req.end != nil {
		end, err := timeutil.Parse(*req.end, ref)
		if err != nil {
			return EventPatch{}, &ValidationError{Fields: []string{"end"}}
		}
		patch.EndTime = &end
	}
	return patch, nil
}
