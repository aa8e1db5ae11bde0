package report

import (
	"fmt"
	"strings"
	"time"

	"icsreport/internal/model"
)

const noLocation = "No Location Specified"

// Options controls the countdown text renderer.
type Options struct {
	// Plain drops the Markdown emphasis markers and header prefix.
	Plain bool
	// ShowDates appends the start-to-end date range to each line.
	ShowDates bool
	// OffsetDays shifts the inclusion cutoff (the report_due offset).
	OffsetDays int
	// Today overrides the reference date; zero means time.Now().
	Today time.Time
}

func (o Options) today() time.Time {
	if o.Today.IsZero() {
		return time.Now()
	}
	return o.Today
}

// Countdown renders the upcoming-events summary. Events behind the
// adjusted cutoff are dropped; events whose start could not be parsed are
// always listed as "Date/Time Unknown".
func Countdown(events []model.Event, opts Options) string {
	var b strings.Builder
	if opts.Plain {
		b.WriteString("Upcoming Events:\n\n")
	} else {
		b.WriteString("### Upcoming Events:\n\n")
	}

	today := opts.today()
	any := false
	for _, e := range events {
		line := countdownLine(e, today, opts)
		if line == "" {
			continue
		}
		b.WriteString(line)
		any = true
	}

	if !any {
		b.WriteString("No upcoming events found.\n")
	}
	return b.String()
}

// countdownLine formats one event, or returns "" when the event is behind
// the cutoff.
func countdownLine(e model.Event, today time.Time, opts Options) string {
	title := CleanTitle(e.Summary)
	location := e.Location
	if location == "" {
		location = noLocation
	}

	if !e.HasStart() {
		return fmt.Sprintf("- %s - %s (Date/Time Unknown)\n", title, location)
	}

	days := DaysRemaining(e.Start, today, opts.OffsetDays)
	if days < 0 {
		return ""
	}

	dateInfo := ""
	if opts.ShowDates {
		dateInfo = fmt.Sprintf(" (%s to %s)", FormatMonthDay(e.Start), FormatMonthDayYear(e.End))
	}
	if opts.Plain {
		return fmt.Sprintf("- %s - %s (in %d days)%s\n", title, location, days, dateInfo)
	}
	return fmt.Sprintf("- **%s** - %s (in %d days)%s\n", title, location, days, dateInfo)
}
