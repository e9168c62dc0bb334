package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rosterly/rosterly/pkg/user"
)

// Service enforces event invariants at the boundary and scopes every
// operation to the current caller. No operation is retried; each either
// succeeds once or fails synchronously.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetEvents lists all events overlapping [from, to], ordered by start time
// ascending. Passing a non-empty resourceId narrows the result to one resource.
func (s *Service) GetEvents(ctx context.Context, from, to time.Time, resourceId string) ([]Event, error) {
	callerUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	events, err := s.repo.GetEvents(ctx, callerUid, from, to, resourceId)
	if err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}
	return events, nil
}

func (s *Service) GetEvent(ctx context.Context, eventUid uuid.UUID) (*Event, error) {
	callerUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	event, err := s.repo.GetEvent(ctx, callerUid, eventUid)
	if errors.Is(err, ErrEventNotFound) {
		return nil, err
	} else if err != nil {
		return nil, &PersistenceError{Op: "get", Err: err}
	}
	return &event, nil
}

// AddEvent validates the draft and stores it. Validation failures are raised
// before any write leaves the process; the store may still reject the write on
// referential-integrity grounds (unknown resource), surfaced as a
// PersistenceError.
func (s *Service) AddEvent(ctx context.Context, draft EventDraft) (*Event, error) {
	callerUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	event := Event{
		Title:       draft.Title,
		Description: draft.Description,
		StartTime:   draft.StartTime,
		EndTime:     draft.EndTime,
		ResourceId:  draft.ResourceId,
		Color:       draft.Color,
	}
	eventUid, err := s.repo.StoreEvent(ctx, callerUid, event)
	if err != nil {
		return nil, &PersistenceError{Op: "create", Err: err}
	}

	event.UID = uuid.NullUUID{UUID: eventUid, Valid: true}
	return &event, nil
}

// ModifyEvent applies a sparse patch: only fields present in the patch are
// changed. The merged result is re-validated before the write.
func (s *Service) ModifyEvent(ctx context.Context, eventUid uuid.UUID, patch EventPatch) (*Event, error) {
	callerUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	event, err := s.repo.GetEvent(ctx, callerUid, eventUid)
	if errors.Is(err, ErrEventNotFound) {
		return nil, err
	} else if err != nil {
		return nil, &PersistenceError{Op: "update", Err: err}
	}

	applyPatch(&event, patch)
	if err := validateDraft(EventDraft{
		Title:      event.Title,
		StartTime:  event.StartTime,
		EndTime:    event.EndTime,
		ResourceId: event.ResourceId,
	}); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateEvent(ctx, callerUid, event); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "update", Err: err}
	}
	return &event, nil
}

// DeleteEvent removes the event and returns the deleted snapshot so callers
// can reconcile optimistic local state.
func (s *Service) DeleteEvent(ctx context.Context, eventUid uuid.UUID) (*Event, error) {
	callerUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	event, err := s.repo.GetEvent(ctx, callerUid, eventUid)
	if errors.Is(err, ErrEventNotFound) {
		return nil, err
	} else if err != nil {
		return nil, &PersistenceError{Op: "delete", Err: err}
	}

	if err := s.repo.DeleteEvent(ctx, callerUid, eventUid); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "delete", Err: err}
	}
	return &event, nil
}

func validateDraft(draft EventDraft) error {
	var fields []string
	if strings.TrimSpace(draft.Title) == "" {
		fields = append(fields, "title")
	}
	if draft.ResourceId == "" {
		fields = append(fields, "resourceId")
	}
	if draft.StartTime.IsZero() {
		fields = append(fields, "start")
	}
	if draft.EndTime.IsZero() {
		fields = append(fields, "end")
	}
	// zero or negative duration events are rejected
	if !draft.StartTime.IsZero() && !draft.EndTime.IsZero() && !draft.EndTime.After(draft.StartTime) {
		fields = append(fields, "end")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func applyPatch(event *Event, patch EventPatch) {
	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.StartTime != nil {
		event.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		event.EndTime = *patch.EndTime
	}
	if patch.ResourceId != nil {
		event.ResourceId = *patch.ResourceId
	}
	if patch.Color != nil {
		event.Color = *patch.Color
	}
}
