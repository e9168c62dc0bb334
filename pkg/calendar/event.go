package calendar

import (
	"time"

	"github.com/google/uuid"
)

// Event is a titled time interval assigned to exactly one resource. The
// authoritative copy lives in the store; anything held in memory is a cache.
type Event struct {
	UID         uuid.NullUUID
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	ResourceId  string
	Color       string
}

// EventDraft is the input for creating an event, before a UID exists.
type EventDraft struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	ResourceId  string
	Color       string
}

// EventPatch is a sparse update: only non-nil fields are applied, omitted
// fields are left untouched, never nulled.
type EventPatch struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	ResourceId  *string
	Color       *string
}

// IsEmpty reports whether the patch would change nothing.
func (p EventPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.StartTime == nil &&
		p.EndTime == nil && p.ResourceId == nil && p.Color == nil
}
