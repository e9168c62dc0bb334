package stats

import (
	"context"
	"time"

	"github.com/rosterly/rosterly/pkg/calendar"
	"github.com/rosterly/rosterly/pkg/resource"
)

type eventProviderStub struct {
	events []calendar.Event
	err    error
}

func newEventProviderStub() *eventProviderStub {
	return &eventProviderStub{}
}

func (s *eventProviderStub) GetEvents(_ context.Context, from, to time.Time, resourceId string) ([]calendar.Event, error) {
	if s.err != nil {
		return nil, s.err
	}
	matching := make([]calendar.Event, 0, len(s.events))
	for _, e := range s.events {
		if e.EndTime.Before(from) || e.StartTime.After(to) {
			continue
		}
		if resourceId != "" && e.ResourceId != resourceId {
			continue
		}
		matching = append(matching, e)
	}
	return matching, nil
}

func (s *eventProviderStub) reset() {
	s.events = nil
	s.err = nil
}

type resourceProviderStub struct {
	resources []resource.Resource
}

func newResourceProviderStub() *resourceProviderStub {
	return &resourceProviderStub{}
}

func (s *resourceProviderStub) GetAll(_ context.Context) ([]resource.Resource, error) {
	return s.resources, nil
}

func (s *resourceProviderStub) reset() {
	s.resources = nil
}
