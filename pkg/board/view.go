package board

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rosterly/rosterly/pkg/calendar"
)

// ErrStaleResponse marks a range query response that arrived after a newer
// query superseded it. It must be discarded silently, never applied.
var ErrStaleResponse = errors.New("stale range response")

// View holds the in-memory event collection owned by the currently active
// calendar view. It is mutated only by a completed range fetch (full replace),
// an optimistic single-event patch, or a server-confirmed single-event change;
// every mutation is one indivisible state transition under the lock.
//
// Fetches are guarded by a request generation: a response is applied only if
// no newer fetch was started after it, which prevents a slow response for an
// old range from flickering the display back to stale data.
type View struct {
	mu         sync.Mutex
	generation uint64
	from       time.Time
	to         time.Time
	hasRange   bool
	events     map[uuid.UUID]calendar.Event
	pending    map[uuid.UUID]bool
}

func NewView() *View {
	return &View{
		events:  map[uuid.UUID]calendar.Event{},
		pending: map[uuid.UUID]bool{},
	}
}

// Views keeps one View per caller, so that one caller's resync never
// disturbs what another caller has on screen.
type Views struct {
	mu    sync.Mutex
	views map[string]*View
}

func NewViews() *Views {
	return &Views{views: map[string]*View{}}
}

// ForCaller returns the caller's view, creating an empty one on first use.
func (vs *Views) ForCaller(callerUid string) *View {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	view, ok := vs.views[callerUid]
	if !ok {
		view = NewView()
		vs.views[callerUid] = view
	}
	return view
}

// BeginFetch records the range about to be queried and returns the generation
// the eventual response must present to CompleteFetch.
func (v *View) BeginFetch(from, to time.Time) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.generation++
	v.from, v.to, v.hasRange = from, to, true
	return v.generation
}

// CompleteFetch replaces the whole snapshot with the fetched events. It
// returns ErrStaleResponse when a newer fetch has been started since
// generation was handed out; the caller drops the data.
func (v *View) CompleteFetch(generation uint64, events []calendar.Event) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if generation != v.generation {
		return ErrStaleResponse
	}
	v.events = make(map[uuid.UUID]calendar.Event, len(events))
	for _, e := range events {
		v.events[e.UID.UUID] = e
	}
	v.pending = map[uuid.UUID]bool{}
	return nil
}

// Range returns the range of the most recent fetch, if any.
func (v *View) Range() (time.Time, time.Time, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.from, v.to, v.hasRange
}

// Get returns the locally held copy of an event.
func (v *View) Get(eventUid uuid.UUID) (calendar.Event, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	e, ok := v.events[eventUid]
	return e, ok
}

// Events returns the snapshot ordered by start time ascending.
func (v *View) Events() []calendar.Event {
	v.mu.Lock()
	defer v.mu.Unlock()
	events := make([]calendar.Event, 0, len(v.events))
	for _, e := range v.events {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].StartTime.Equal(events[j].StartTime) {
			return events[i].StartTime.Before(events[j].StartTime)
		}
		return events[i].UID.UUID.String() < events[j].UID.UUID.String()
	})
	return events
}

// ApplyOptimistic upserts a tentative, not yet server-confirmed event state.
func (v *View) ApplyOptimistic(event calendar.Event) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events[event.UID.UUID] = event
	v.pending[event.UID.UUID] = true
}

// Confirm promotes an event to confirmed, merging the canonical server copy.
func (v *View) Confirm(event calendar.Event) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events[event.UID.UUID] = event
	delete(v.pending, event.UID.UUID)
}

// Remove drops a single event from the snapshot.
func (v *View) Remove(eventUid uuid.UUID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.events, eventUid)
	delete(v.pending, eventUid)
}

// IsPending reports whether the locally held copy is still unconfirmed.
func (v *View) IsPending(eventUid uuid.UUID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending[eventUid]
}
