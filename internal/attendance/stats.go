package attendance

import (
	"math"

	"github.com/felixgeelhaar/uniattend/internal/platform"
)

// Summary is the headline of a schedule's attendance.
type Summary struct {
	Present int     `json:"present" yaml:"present"`
	Total   int     `json:"total" yaml:"total"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// Percentage is present/total as a percentage rounded to one decimal,
// and 0 when total is not positive.
func Percentage(present, total int) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(present) / float64(total) * 100
	return math.Round(p*10) / 10
}

// Summarize uses the backend's counts, falling back to counting the
// student list when the backend sent none.
func Summarize(stats platform.ScheduleStats) Summary {
	present, total := stats.PresentCount, stats.TotalCount
	if total == 0 && len(stats.Students) > 0 {
		total = len(stats.Students)
		present = 0
		for _, s := range stats.Students {
			if s.Present {
				present++
			}
		}
	}
	return Summary{Present: present, Total: total, Percent: Percentage(present, total)}
}
