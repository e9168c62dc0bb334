package stats

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type StatsRenderer interface {
	RenderWorkload(summary WorkloadSummary) (string, error)
}

type CsvStatsRendererImpl struct {
}

func NewCsvStatsRenderer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

func (t *CsvStatsRendererImpl) RenderWorkload(summary WorkloadSummary) (string, error) {
	data := make([][]string, 0, len(summary.Resources)+2)
	data = append(data, []string{"Resource", "Role", "Events", "Total minutes", "Total hours", "Avg hours per event"})
	for _, row := range summary.Resources {
		data = append(data, []string{
			row.Resource.Name,
			row.Resource.Role,
			strconv.Itoa(row.EventCount),
			strconv.Itoa(row.TotalMinutes),
			formatHours(row.TotalHours),
			formatHours(row.AvgHoursPerEvent),
		})
	}
	data = append(data, []string{
		"SUM",
		"",
		strconv.Itoa(summary.TotalEvents),
		strconv.Itoa(summary.TotalMinutes),
		formatHours(float64(summary.TotalMinutes) / 60),
		"",
	})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error flushing csv: %v", err)
		return "", err
	}
	return b.String(), nil
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', 2, 64)
}
