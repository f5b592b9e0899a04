// Package stats formats end-of-session statistics and tabular listings.
package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/libretype/libretype/internal/model"
)

// FormatDuration renders a session duration as m:ss.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) - m*60
	return fmt.Sprintf("%d:%02d", m, s)
}

// RenderSessionSummary prints the end-of-session statistics block.
func RenderSessionSummary(w io.Writer, res model.SessionResult) error {
	if _, err := fmt.Fprintf(w, "Session: %s\n", res.Title); err != nil {
		return err
	}

	headers := []string{"Metric", "Value"}
	rows := [][]string{
		{"WPM", fmt.Sprintf("%d", res.WPM)},
		{"Accuracy", fmt.Sprintf("%.1f%%", res.Accuracy)},
		{"Words typed", fmt.Sprintf("%d", res.WordsTyped)},
		{"Words skipped", fmt.Sprintf("%d", res.WordsSkipped)},
		{"Incorrect words", fmt.Sprintf("%d", res.IncorrectWords)},
		{"Total words", fmt.Sprintf("%d", res.TotalWords)},
		{"Duration", FormatDuration(res.Duration)},
	}
	for _, line := range FormatTable(headers, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if res.TimedOut {
		if _, err := fmt.Fprintln(w, "Timer expired."); err != nil {
			return err
		}
	}
	return nil
}
