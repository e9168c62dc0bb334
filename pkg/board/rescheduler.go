package board

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rosterly/rosterly/internal/notification"
	"github.com/rosterly/rosterly/pkg/calendar"
	"github.com/rosterly/rosterly/pkg/timeutil"
	"github.com/rosterly/rosterly/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Rescheduler coordinates a drag/drop move of one event to a new time slot
// and/or resource: optimistic local update first, authoritative write second.
// On failure the optimistic state is abandoned and the whole range is
// re-fetched; a local undo cannot be proven correct when the store's actual
// state after a failed write is unknown.
type Rescheduler struct {
	service  *calendar.Service
	views    *Views
	notifier notification.Notifier
}

func NewRescheduler(service *calendar.Service, views *Views, notifier notification.Notifier) *Rescheduler {
	return &Rescheduler{
		service:  service,
		views:    views,
		notifier: notifier,
	}
}

// Move shifts the event so it begins at newStart, preserving its duration
// exactly, and reassigns it when newResourceId is non-empty. newStart accepts
// either an RFC3339 timestamp or a bare "HH:mm" label, which is resolved
// against the calendar day of the event's current start.
func (r *Rescheduler) Move(ctx context.Context, eventUid uuid.UUID, newStart string, newResourceId string) (*calendar.Event, error) {
	callerUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, err
	}
	view := r.views.ForCaller(callerUid)

	event, ok := view.Get(eventUid)
	if !ok {
		fetched, err := r.service.GetEvent(ctx, eventUid)
		if err != nil {
			return nil, err
		}
		event = *fetched
	}

	start, parseErr := timeutil.Parse(newStart, event.StartTime)
	if parseErr != nil {
		return nil, &calendar.ValidationError{Fields: []string{"start"}}
	}
	start, end := timeutil.Shift(event.StartTime, event.EndTime, start)

	moved := event
	moved.StartTime = start
	moved.EndTime = end
	if newResourceId != "" {
		moved.ResourceId = newResourceId
	}
	view.ApplyOptimistic(moved)

	patch := calendar.EventPatch{
		StartTime: &start,
		EndTime:   &end,
	}
	if newResourceId != "" {
		patch.ResourceId = &newResourceId
	}

	updated, err := r.service.ModifyEvent(ctx, eventUid, patch)
	if err != nil {
		r.notifier.Notify(ctx, notification.SeverityError,
			fmt.Sprintf("failed to move event %q: %v", event.Title, err))
		if resyncErr := r.resync(ctx, view); resyncErr != nil {
			log.Errorf("failed to resynchronize view after move failure: %v", resyncErr)
		}
		return nil, err
	}

	// Server is authoritative for any server-computed fields.
	view.Confirm(*updated)
	return updated, nil
}

// resync discards all optimistic state by re-fetching the view's range from
// the store.
func (r *Rescheduler) resync(ctx context.Context, view *View) error {
	from, to, ok := view.Range()
	if !ok {
		return nil
	}
	generation := view.BeginFetch(from, to)
	events, err := r.service.GetEvents(ctx, from, to, "")
	if err != nil {
		return err
	}
	return view.CompleteFetch(generation, events)
}
