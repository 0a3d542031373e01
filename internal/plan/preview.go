package plan

import (
	"github.com/jobjourney/jjprep/internal/dateutil"
)

// MaxPreviewTasks caps how many tasks per day are surfaced to the
// preview and to a push body.
const MaxPreviewTasks = 3

// PreviewDay is the projection of one plan day onto a concrete
// calendar date. Derived, never persisted.
type PreviewDay struct {
	Date  string // YYYY-MM-DD
	Day   int    // 1-based plan day
	Tasks []Task // at most MaxPreviewTasks
}

// Preview projects the plan onto concrete dates starting from
// startDate. Day i lands on startDate + i calendar days; a stored day
// number of zero falls back to the 1-based position. The source plan
// is copied, not aliased.
func Preview(p *Plan, startDate string) []PreviewDay {
	if p == nil {
		return nil
	}

	preview := make([]PreviewDay, 0, len(p.Days))
	for idx, d := range p.Days {
		day := d.Day
		if day == 0 {
			day = idx + 1
		}
		preview = append(preview, PreviewDay{
			Date:  dateutil.DayToDate(startDate, idx),
			Day:   day,
			Tasks: FirstTasks(d.Tasks, MaxPreviewTasks),
		})
	}
	return preview
}

// FirstTasks returns a copy of at most n leading tasks.
func FirstTasks(tasks []Task, n int) []Task {
	if len(tasks) < n {
		n = len(tasks)
	}
	out := make([]Task, n)
	copy(out, tasks[:n])
	return out
}
