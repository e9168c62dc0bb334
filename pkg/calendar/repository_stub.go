package calendar

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// StubRepository is an in-memory Repository for tests.
type StubRepository struct {
	data map[string]map[uuid.UUID]Event // callerUid -> eventUid -> event

	// FailNextWrite makes the next mutating call fail, for exercising
	// persistence-failure paths.
	FailNextWrite error
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[string]map[uuid.UUID]Event{}}
}

func (s *StubRepository) forCaller(callerUid string) map[uuid.UUID]Event {
	if s.data[callerUid] == nil {
		s.data[callerUid] = map[uuid.UUID]Event{}
	}
	return s.data[callerUid]
}

func (s *StubRepository) takeFailure() error {
	err := s.FailNextWrite
	s.FailNextWrite = nil
	return err
}

func (s *StubRepository) StoreEvent(_ context.Context, callerUid string, event Event) (uuid.UUID, error) {
	if err := s.takeFailure(); err != nil {
		return uuid.Nil, err
	}
	uid := uuid.New()
	event.UID = uuid.NullUUID{UUID: uid, Valid: true}
	s.forCaller(callerUid)[uid] = event
	return uid, nil
}

func (s *StubRepository) GetEvent(_ context.Context, callerUid string, eventUid uuid.UUID) (Event, error) {
	event, ok := s.forCaller(callerUid)[eventUid]
	if !ok {
		return Event{}, ErrEventNotFound
	}
	return event, nil
}

func (s *StubRepository) GetEvents(_ context.Context, callerUid string, from, to time.Time, resourceId string) ([]Event, error) {
	events := make([]Event, 0)
	for _, event := range s.forCaller(callerUid) {
		if event.StartTime.After(to) || event.EndTime.Before(from) {
			continue
		}
		if resourceId != "" && event.ResourceId != resourceId {
			continue
		}
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].StartTime.Equal(events[j].StartTime) {
			return events[i].StartTime.Before(events[j].StartTime)
		}
		return events[i].UID.UUID.String() < events[j].UID.UUID.String()
	})
	return events, nil
}

func (s *StubRepository) UpdateEvent(_ context.Context, callerUid string, event Event) error {
	if err := s.takeFailure(); err != nil {
		return err
	}
	if _, ok := s.forCaller(callerUid)[event.UID.UUID]; !ok {
		return ErrEventNotFound
	}
	s.forCaller(callerUid)[event.UID.UUID] = event
	return nil
}

func (s *StubRepository) DeleteEvent(_ context.Context, callerUid string, eventUid uuid.UUID) error {
	if err := s.takeFailure(); err != nil {
		return err
	}
	if _, ok := s.forCaller(callerUid)[eventUid]; !ok {
		return ErrEventNotFound
	}
	delete(s.forCaller(callerUid), eventUid)
	return nil
}
