package stats

import (
	"testing"
	"time"

	"github.com/rosterly/rosterly/pkg/calendar"
	"github.com/rosterly/rosterly/pkg/resource"
	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 4, hour, minute, 0, 0, time.UTC)
}

func event(resourceId string, start, end time.Time) calendar.Event {
	return calendar.Event{
		Title:      "Shift",
		StartTime:  start,
		EndTime:    end,
		ResourceId: resourceId,
	}
}

func TestMergeIntervals(t *testing.T) {
	// given
	intervals := []Interval{
		{Start: at(9, 0), End: at(9, 30)},
		{Start: at(9, 15), End: at(10, 0)},
		{Start: at(11, 0), End: at(11, 30)},
	}

	// when
	merged := MergeIntervals(intervals)

	// then
	assert.Equal(t, []Interval{
		{Start: at(9, 0), End: at(10, 0)},
		{Start: at(11, 0), End: at(11, 30)},
	}, merged)
}

func TestMergeIntervals_touchingIntervalsMerge(t *testing.T) {
	merged := MergeIntervals([]Interval{
		{Start: at(9, 0), End: at(10, 0)},
		{Start: at(10, 0), End: at(11, 0)},
	})

	assert.Equal(t, []Interval{{Start: at(9, 0), End: at(11, 0)}}, merged)
}

func TestMergeIntervals_isIdempotent(t *testing.T) {
	intervals := []Interval{
		{Start: at(8, 0), End: at(9, 30)},
		{Start: at(9, 0), End: at(10, 0)},
		{Start: at(13, 0), End: at(14, 0)},
	}

	once := MergeIntervals(intervals)
	twice := MergeIntervals(once)

	assert.Equal(t, once, twice)
}

func TestMergeIntervals_containedIntervalIsAbsorbed(t *testing.T) {
	merged := MergeIntervals([]Interval{
		{Start: at(9, 0), End: at(12, 0)},
		{Start: at(10, 0), End: at(10, 30)},
	})

	assert.Equal(t, []Interval{{Start: at(9, 0), End: at(12, 0)}}, merged)
}

func TestMergeIntervals_emptyInput(t *testing.T) {
	assert.Empty(t, MergeIntervals(nil))
}

func TestWorkload(t *testing.T) {
	// given
	resources := []resource.Resource{
		{Id: "r1", Name: "Anna"},
		{Id: "r2", Name: "Bartek"},
		{Id: "r3", Name: "Celina"},
	}
	events := []calendar.Event{
		event("r1", at(9, 0), at(10, 0)),
		event("r1", at(12, 0), at(12, 30)),
		event("r2", at(9, 0), at(12, 0)),
	}

	// when
	rows := Workload(events, resources)

	// then
	assert.Len(t, rows, 3)
	assert.Equal(t, "r2", rows[0].Resource.Id)
	assert.Equal(t, 180, rows[0].TotalMinutes)
	assert.Equal(t, 1, rows[0].EventCount)
	assert.Equal(t, 3.0, rows[0].TotalHours)
	assert.Equal(t, 3.0, rows[0].AvgHoursPerEvent)

	assert.Equal(t, "r1", rows[1].Resource.Id)
	assert.Equal(t, 90, rows[1].TotalMinutes)
	assert.Equal(t, 2, rows[1].EventCount)
	assert.Equal(t, 0.75, rows[1].AvgHoursPerEvent)

	assert.Equal(t, "r3", rows[2].Resource.Id)
	assert.Equal(t, 0, rows[2].TotalMinutes)
	assert.Equal(t, 0, rows[2].EventCount)
	assert.Equal(t, 0.0, rows[2].AvgHoursPerEvent)
}

func TestWorkloadAndHeatmap_pureOverSameInput(t *testing.T) {
	// given events deliberately out of order, so any in-place sort would show
	resources := []resource.Resource{
		{Id: "r1", Name: "Anna"},
		{Id: "r2", Name: "Bartek"},
	}
	events := []calendar.Event{
		event("r2", at(13, 0), at(14, 0)),
		event("r1", at(9, 0), at(10, 0)),
		event("r1", at(9, 30), at(11, 0)),
	}
	eventsBefore := make([]calendar.Event, len(events))
	copy(eventsBefore, events)
	resourcesBefore := make([]resource.Resource, len(resources))
	copy(resourcesBefore, resources)
	from := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)

	// when each aggregation runs twice over the same slices
	workloadOnce := Workload(events, resources)
	workloadTwice := Workload(events, resources)
	heatmapOnce := Heatmap(events, from, to, time.UTC, maxHeatmapIntervals)
	heatmapTwice := Heatmap(events, from, to, time.UTC, maxHeatmapIntervals)

	// then the results agree and the inputs are untouched
	assert.Equal(t, workloadOnce, workloadTwice)
	assert.Equal(t, heatmapOnce, heatmapTwice)
	assert.Equal(t, eventsBefore, events)
	assert.Equal(t, resourcesBefore, resources)
}

func TestWorkload_conservesTotalMinutes(t *testing.T) {
	resources := []resource.Resource{{Id: "r1"}, {Id: "r2"}}
	events := []calendar.Event{
		event("r1", at(9, 0), at(10, 15)),
		event("r2", at(9, 30), at(11, 0)),
		event("r1", at(14, 0), at(14, 45)),
	}

	rows := Workload(events, resources)

	total := 0
	for _, row := range rows {
		total += row.TotalMinutes
	}
	assert.Equal(t, 75+90+45, total)
}

func TestWorkload_equalTotalsOrderedByResourceId(t *testing.T) {
	resources := []resource.Resource{
		{Id: "r2", Name: "Bartek"},
		{Id: "r1", Name: "Anna"},
	}
	events := []calendar.Event{
		event("r1", at(9, 0), at(10, 0)),
		event("r2", at(12, 0), at(13, 0)),
	}

	rows := Workload(events, resources)

	assert.Equal(t, "r1", rows[0].Resource.Id)
	assert.Equal(t, "r2", rows[1].Resource.Id)
}

func TestHeatmap(t *testing.T) {
	// given
	from := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 6, 23, 59, 0, 0, time.UTC)
	events := []calendar.Event{
		event("r1", at(9, 0), at(10, 0)),
		event("r2", at(9, 30), at(11, 0)),
		event("r1", time.Date(2024, time.March, 6, 8, 0, 0, 0, time.UTC), time.Date(2024, time.March, 6, 8, 30, 0, 0, time.UTC)),
	}

	// when
	days := Heatmap(events, from, to, time.UTC, 3)

	// then
	assert.Len(t, days, 3)

	assert.Equal(t, 120, days[0].TotalMinutes)
	assert.Equal(t, 2, days[0].EventCount)
	assert.Equal(t, at(9, 0), days[0].EarliestStart)
	assert.Equal(t, at(11, 0), days[0].LatestEnd)
	assert.Equal(t, []Interval{{Start: at(9, 0), End: at(11, 0)}}, days[0].Intervals)
	assert.Equal(t, heatPalette[4], days[0].Color)

	assert.Equal(t, 0, days[1].TotalMinutes)
	assert.Equal(t, 0, days[1].EventCount)
	assert.Empty(t, days[1].Intervals)
	assert.Equal(t, heatPalette[0], days[1].Color)

	assert.Equal(t, 30, days[2].TotalMinutes)
	assert.Equal(t, heatPalette[1], days[2].Color)
}

func TestHeatmap_bucketsByZoneLocalDay(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	assert.NoError(t, err)

	// 23:30 UTC on March 4th is 00:30 on March 5th in Warsaw
	start := time.Date(2024, time.March, 4, 23, 30, 0, 0, time.UTC)
	events := []calendar.Event{event("r1", start, start.Add(time.Hour))}
	from := time.Date(2024, time.March, 4, 0, 0, 0, 0, warsaw)
	to := time.Date(2024, time.March, 5, 23, 0, 0, 0, warsaw)

	days := Heatmap(events, from, to, warsaw, 3)

	assert.Len(t, days, 2)
	assert.Equal(t, 0, days[0].EventCount)
	assert.Equal(t, 1, days[1].EventCount)
}

func TestHeatmap_capsIntervalsAndCountsOverflow(t *testing.T) {
	from := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	to := from.Add(23 * time.Hour)
	events := []calendar.Event{
		event("r1", at(8, 0), at(8, 30)),
		event("r1", at(9, 0), at(9, 30)),
		event("r1", at(10, 0), at(10, 30)),
		event("r1", at(11, 0), at(11, 30)),
		event("r1", at(12, 0), at(12, 30)),
	}

	days := Heatmap(events, from, to, time.UTC, 3)

	assert.Len(t, days, 1)
	assert.Len(t, days[0].Intervals, 3)
	assert.Equal(t, 2, days[0].OverflowCount)
	assert.Equal(t, at(8, 0), days[0].Intervals[0].Start)
}

func TestIntensityColor(t *testing.T) {
	assert.Equal(t, heatPalette[0], intensityColor(0, 480))
	assert.Equal(t, heatPalette[0], intensityColor(48, 480))
	assert.Equal(t, heatPalette[1], intensityColor(120, 480))
	assert.Equal(t, heatPalette[2], intensityColor(240, 480))
	assert.Equal(t, heatPalette[4], intensityColor(480, 480))
	// a bucket above the observed maximum still clamps to the hottest color
	assert.Equal(t, heatPalette[4], intensityColor(500, 480))
	// an all-empty range stays on the coolest color
	assert.Equal(t, heatPalette[0], intensityColor(0, 0))
}
