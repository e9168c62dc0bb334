package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/rosterly/rosterly/pkg/calendar"
	"github.com/rosterly/rosterly/pkg/resource"
	log "github.com/sirupsen/logrus"
)

// EventProvider yields the caller's events overlapping a range.
type EventProvider interface {
	GetEvents(ctx context.Context, from, to time.Time, resourceId string) ([]calendar.Event, error)
}

// ResourceProvider yields all of the caller's resources.
type ResourceProvider interface {
	GetAll(ctx context.Context) ([]resource.Resource, error)
}

type WorkloadSummary struct {
	StartDate    time.Time
	EndDate      time.Time
	Resources    []ResourceWorkload
	TotalEvents  int
	TotalMinutes int
}

type StatsService interface {
	GetWorkload(ctx context.Context, from time.Time, to time.Time) (WorkloadSummary, error)
	GetHeatmap(ctx context.Context, from time.Time, to time.Time, loc *time.Location) ([]HeatmapDay, error)
}

// maxHeatmapIntervals caps how many merged intervals a heatmap day renders
// before collapsing the rest into an overflow count.
const maxHeatmapIntervals = 3

type StatsServiceImpl struct {
	events    EventProvider
	resources ResourceProvider
}

func NewStatsService(events EventProvider, resources ResourceProvider) *StatsServiceImpl {
	return &StatsServiceImpl{
		events:    events,
		resources: resources,
	}
}

func (s *StatsServiceImpl) GetWorkload(ctx context.Context, from time.Time, to time.Time) (WorkloadSummary, error) {
	events, err := s.events.GetEvents(ctx, from, to, "")
	if err != nil {
		return WorkloadSummary{}, fmt.Errorf("failed to load events for workload: %w", err)
	}
	resources, err := s.resources.GetAll(ctx)
	if err != nil {
		return WorkloadSummary{}, fmt.Errorf("failed to load resources for workload: %w", err)
	}
	log.Tracef("Calculating workload for %d events across %d resources", len(events), len(resources))

	rows := Workload(events, resources)
	summary := WorkloadSummary{
		StartDate: from,
		EndDate:   to,
		Resources: rows,
	}
	for _, row := range rows {
		summary.TotalEvents += row.EventCount
		summary.TotalMinutes += row.TotalMinutes
	}
	return summary, nil
}

func (s *StatsServiceImpl) GetHeatmap(ctx context.Context, from time.Time, to time.Time, loc *time.Location) ([]HeatmapDay, error) {
	events, err := s.events.GetEvents(ctx, from, to, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load events for heatmap: %w", err)
	}
	return Heatmap(events, from, to, loc, maxHeatmapIntervals), nil
}
