// Package export renders a day's summary as flat text. The JSON form is the
// summary itself; CSV and Markdown are the two flattened renderings.
package export

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pomo-hub/internal/service"
)

const timestampLayout = "2006-01-02 15:04"

// CSV renders the day's pomodoros as a table. Tasks and notes are not part
// of the CSV form; it is meant for timer-log spreadsheets.
func CSV(day *service.DaySummary) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write([]string{"ID", "Start", "End", "Completed"}); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range day.Pomodoros {
		end := "-"
		if p.EndAt != nil {
			end = p.EndAt.Format(timestampLayout)
		}
		record := []string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.StartAt.Format(timestampLayout),
			end,
			strconv.FormatBool(p.Completed),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return sb.String(), nil
}

// Markdown renders the day as a narrative work log.
func Markdown(day *service.DaySummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Work log - %s\n\n", day.Date)

	sb.WriteString("## Pomodoros\n\n")
	if len(day.Pomodoros) == 0 {
		sb.WriteString("No records\n")
	}
	for _, p := range day.Pomodoros {
		line := "not completed"
		if p.Completed && p.EndAt != nil {
			minutes := int(p.EndAt.Sub(p.StartAt).Round(time.Minute).Minutes())
			line = fmt.Sprintf("%d min completed", minutes)
		}
		fmt.Fprintf(&sb, "- %s - %s\n", p.StartAt.Format(timestampLayout), line)
	}

	sb.WriteString("\n## Tasks\n\n")
	if len(day.Tasks) == 0 {
		sb.WriteString("No records\n")
	}
	for _, t := range day.Tasks {
		status := "in progress"
		if t.Status == "completed" {
			status = "completed"
		}
		fmt.Fprintf(&sb, "- **%s** (%s)\n", t.Name, status)
		fmt.Fprintf(&sb, "  - start: %s\n", t.StartAt.Format(timestampLayout))
		if t.EndAt != nil {
			fmt.Fprintf(&sb, "  - end: %s\n", t.EndAt.Format(timestampLayout))
		}
		for _, n := range t.Notes {
			fmt.Fprintf(&sb, "  - note: %s\n", n.Body)
		}
	}

	return sb.String()
}
