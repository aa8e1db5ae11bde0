package report

import (
	"encoding/csv"
	"io"
	"time"

	"icsreport/internal/model"
)

// asanaHeader is the fixed column set Asana's CSV importer expects.
var asanaHeader = []string{
	"Task ID", "Created At", "Completed At", "Last Modified", "Name",
	"Section/Column", "Assignee", "Assignee Email", "Start Date", "Due Date",
	"Tags", "Notes", "Projects", "Parent task", "Blocked By (Dependencies)",
	"Blocking (Dependencies)", "Responsible (Department)",
	"Expected Cost", "Complete By",
}

// WriteCSV emits the generic task export: Task, Due Date, Notes. Events
// behind the adjusted cutoff (or with no usable start) are dropped.
func WriteCSV(w io.Writer, events []model.Event, opts Options) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Task", "Due Date", "Notes"}); err != nil {
		return err
	}

	today := opts.today()
	for _, e := range events {
		if !included(e, today, opts.OffsetDays) {
			continue
		}
		row := []string{CleanTitle(e.Summary), FormatISODate(e.End), notes(e)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteAsanaCSV emits rows in Asana's import format. Created At and Last
// Modified carry today's date; Complete By repeats the Start Date column.
func WriteAsanaCSV(w io.Writer, events []model.Event, opts Options) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(asanaHeader); err != nil {
		return err
	}

	today := opts.today()
	nowStr := FormatISODate(today)
	for _, e := range events {
		if !included(e, today, opts.OffsetDays) {
			continue
		}
		startStr := FormatISODate(e.Start)
		row := []string{
			"",                     // Task ID
			nowStr,                 // Created At
			"",                     // Completed At
			nowStr,                 // Last Modified
			CleanTitle(e.Summary),  // Name
			"",                     // Section/Column
			"",                     // Assignee
			"",                     // Assignee Email
			startStr,               // Start Date
			FormatISODate(e.End),   // Due Date
			"",                     // Tags
			notes(e),               // Notes
			"",                     // Projects
			"",                     // Parent task
			"",                     // Blocked By (Dependencies)
			"",                     // Blocking (Dependencies)
			"",                     // Responsible (Department)
			"",                     // Expected Cost
			startStr,               // Complete By
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func included(e model.Event, today time.Time, offsetDays int) bool {
	return e.HasStart() && DaysRemaining(e.Start, today, offsetDays) >= 0
}

// notes joins location and URL into the Notes column: "loc | url", or
// whichever side exists.
func notes(e model.Event) string {
	switch {
	case e.Location != "" && e.URL != "":
		return e.Location + " | " + e.URL
	case e.URL != "":
		return e.URL
	default:
		return e.Location
	}
}
