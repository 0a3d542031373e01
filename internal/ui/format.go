package ui

import (
	"fmt"

	"github.com/jobjourney/jjprep/internal/plan"
	"github.com/jobjourney/jjprep/internal/schedule"
	"github.com/jobjourney/jjprep/internal/summary"
)

// typeSymbol returns the one-glyph marker for a task type.
func typeSymbol(taskType string) string {
	switch taskType {
	case "study":
		return "◆"
	case "practice":
		return "▶"
	case "mock":
		return "●"
	case "review":
		return "○"
	default:
		return "·"
	}
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max <= 3 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// PrintTaskRow prints one task line, optionally with its scheduled
// slot.
func PrintTaskRow(t plan.Task, slot *schedule.Slot, maxTitleWidth int) {
	symbol := typeSymbol(t.Type)
	title := truncate(t.Title, maxTitleWidth)

	var duration string
	if t.DurationMinutes > 0 {
		duration = formatMuted(FormatDuration(t.DurationMinutes))
	}

	if slot != nil {
		fmt.Printf("    %s  %s-%s  %-*s  %s\n", symbol, slot.Start, slot.End, maxTitleWidth, title, duration)
	} else {
		fmt.Printf("    %s  %-*s  %s\n", symbol, maxTitleWidth, title, duration)
	}
	if t.Gap != "" {
		fmt.Printf("         %s\n", formatMuted("gap: "+t.Gap))
	}
}

// PrintPreviewDay prints one projected day: its date header and up to
// the surfaced tasks, slotted into the configured start hours.
func PrintPreviewDay(d plan.PreviewDay, assigner *schedule.Assigner) {
	fmt.Printf("%s %s\n", formatHeader(fmt.Sprintf("Day %d", d.Day)), formatAccent(d.Date))
	if len(d.Tasks) == 0 {
		fmt.Println(formatMuted("    rest day"))
		return
	}

	maxTitle := maxTitleWidth(d.Tasks)
	for i, t := range d.Tasks {
		if slot, ok := assigner.Assign(i); ok {
			PrintTaskRow(t, &slot, maxTitle)
		} else {
			PrintTaskRow(t, nil, maxTitle)
		}
	}
}

// PrintPlanSummary prints the aggregate line for a plan.
func PrintPlanSummary(s *summary.PlanSummary) {
	fmt.Printf("%s | %s | %d days\n",
		formatStats(fmt.Sprintf("Tasks: %d", s.TotalTasks)),
		formatStats(fmt.Sprintf("Time: %s", FormatDuration(s.TotalMinutes))),
		s.Plan.DurationDays)

	if s.TruncatedTasks() > 0 {
		fmt.Println(formatWarn(fmt.Sprintf(
			"%d tasks beyond the daily cap of %d will not be pushed",
			s.TruncatedTasks(), plan.MaxPreviewTasks)))
	}
	if s.BusiestDay > 0 {
		fmt.Printf("Busiest day: %s\n", formatStats(fmt.Sprintf("day %d", s.BusiestDay)))
	}
}

func maxTitleWidth(tasks []plan.Task) int {
	limit := termWidth() - 30
	if limit < 20 {
		limit = 20
	}
	width := 0
	for _, t := range tasks {
		if n := len([]rune(t.Title)); n > width {
			width = n
		}
	}
	if width > limit {
		width = limit
	}
	return width
}
