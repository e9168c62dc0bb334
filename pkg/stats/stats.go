package stats

import (
	"sort"
	"time"

	"github.com/rosterly/rosterly/pkg/calendar"
	"github.com/rosterly/rosterly/pkg/resource"
	"github.com/rosterly/rosterly/pkg/timeutil"
)

// ResourceWorkload is a derived per-resource summary for a queried range. It
// is a view artifact, never persisted.
type ResourceWorkload struct {
	Resource         resource.Resource
	EventCount       int
	TotalMinutes     int
	TotalHours       float64
	AvgHoursPerEvent float64
}

// Interval is a busy time range inside a heatmap bucket.
type Interval struct {
	Start time.Time
	End   time.Time
}

// HeatmapDay is a derived per-calendar-day aggregate of event load.
type HeatmapDay struct {
	Date          time.Time
	TotalMinutes  int
	EventCount    int
	EarliestStart time.Time
	LatestEnd     time.Time
	// Intervals is the minimal set of disjoint busy intervals, capped for
	// display; OverflowCount is how many merged intervals were collapsed
	// into a "+N" label.
	Intervals     []Interval
	OverflowCount int
	Color         string
}

// heatPalette is the fixed ordered palette of severity colors, coolest first.
var heatPalette = [5]string{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"}

// Workload sums event durations per resource over the given events. Rows are
// ordered busiest first; equal totals fall back to resource id so the output
// is deterministic. The input slices are never mutated.
func Workload(events []calendar.Event, resources []resource.Resource) []ResourceWorkload {
	minutesByResource := make(map[string]int, len(resources))
	countByResource := make(map[string]int, len(resources))
	for _, e := range events {
		minutesByResource[e.ResourceId] += timeutil.DurationMinutes(e.StartTime, e.EndTime)
		countByResource[e.ResourceId]++
	}

	rows := make([]ResourceWorkload, 0, len(resources))
	for _, r := range resources {
		count := countByResource[r.Id]
		minutes := minutesByResource[r.Id]
		totalHours := float64(minutes) / 60
		avg := 0.0
		if count > 0 {
			avg = totalHours / float64(count)
		}
		rows = append(rows, ResourceWorkload{
			Resource:         r,
			EventCount:       count,
			TotalMinutes:     minutes,
			TotalHours:       totalHours,
			AvgHoursPerEvent: avg,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalMinutes != rows[j].TotalMinutes {
			return rows[i].TotalMinutes > rows[j].TotalMinutes
		}
		return rows[i].Resource.Id < rows[j].Resource.Id
	})
	return rows
}

// Heatmap buckets events by the calendar day of their start instant, in loc.
// One bucket is produced for every day between from and to inclusive, empty
// days included. maxIntervals caps how many merged intervals each bucket
// carries; the rest are collapsed into OverflowCount. The zone is a required
// parameter because "day" is ambiguous across zones; it is never read from
// ambient state.
func Heatmap(events []calendar.Event, from, to time.Time, loc *time.Location, maxIntervals int) []HeatmapDay {
	byDay := make(map[time.Time][]calendar.Event)
	for _, e := range events {
		day := timeutil.DayOf(e.StartTime, loc)
		byDay[day] = append(byDay[day], e)
	}

	days := make([]HeatmapDay, 0)
	maxMinutes := 0
	for day := timeutil.DayOf(from, loc); !day.After(timeutil.DayOf(to, loc)); day = day.AddDate(0, 0, 1) {
		bucket := HeatmapDay{Date: day}
		intervals := make([]Interval, 0, len(byDay[day]))
		for _, e := range byDay[day] {
			bucket.TotalMinutes += timeutil.DurationMinutes(e.StartTime, e.EndTime)
			bucket.EventCount++
			if bucket.EarliestStart.IsZero() || e.StartTime.Before(bucket.EarliestStart) {
				bucket.EarliestStart = e.StartTime
			}
			if e.EndTime.After(bucket.LatestEnd) {
				bucket.LatestEnd = e.EndTime
			}
			intervals = append(intervals, Interval{Start: e.StartTime, End: e.EndTime})
		}

		merged := MergeIntervals(intervals)
		if maxIntervals > 0 && len(merged) > maxIntervals {
			bucket.OverflowCount = len(merged) - maxIntervals
			merged = merged[:maxIntervals]
		}
		bucket.Intervals = merged

		if bucket.TotalMinutes > maxMinutes {
			maxMinutes = bucket.TotalMinutes
		}
		days = append(days, bucket)
	}

	for i := range days {
		days[i].Color = intensityColor(days[i].TotalMinutes, maxMinutes)
	}
	return days
}

// MergeIntervals sorts intervals by start and folds together any interval
// whose start does not lie past the running merge's end. Touching and
// overlapping intervals are treated identically, yielding the minimal set of
// disjoint busy intervals.
func MergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return []Interval{}
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].End.Before(sorted[j].End)
	})

	merged := make([]Interval, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if !next.Start.After(current.End) {
			if next.End.After(current.End) {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}

// intensityColor maps a bucket's load onto the fixed palette. The ratio is
// clamped to [0,1] and the top of the range lands on the last palette entry.
func intensityColor(minutes, maxMinutes int) string {
	if maxMinutes < 1 {
		maxMinutes = 1
	}
	ratio := float64(minutes) / float64(maxMinutes)
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	idx := int(ratio * float64(len(heatPalette)))
	if idx >= len(heatPalette) {
		idx = len(heatPalette) - 1
	}
	return heatPalette[idx]
}
