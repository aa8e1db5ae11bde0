package ics

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"icsreport/internal/model"
)

// ProdID replaces the source calendar's product identifier on normalized
// output.
const ProdID = "-//icsreport//Calendar Normalizer//EN"

// Normalize rebuilds a calendar containing only VEVENT components, with
// every datetime expressed in UTC. Downstream calendar clients expect
// UTC-labeled values regardless of the authoring zone.
//
// A missing DTEND defaults to start+1h (same day for all-day events).
// Plain dates stay dates. CREATED, DTSTAMP, LAST-MODIFIED, SEQUENCE,
// STATUS and TRANSP pass through when present.
func Normalize(events []model.Event) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetProductId(ProdID)
	cal.SetVersion("2.0")

	for _, e := range events {
		ve := cal.AddEvent(e.UID)
		ve.SetProperty(ical.ComponentPropertySummary, e.Summary)
		ve.SetProperty(ical.ComponentPropertyDescription, e.Description)
		ve.SetProperty(ical.ComponentPropertyLocation, e.Location)

		if e.HasStart() {
			if e.StartIsDate {
				ve.SetAllDayStartAt(e.Start)
			} else {
				ve.SetStartAt(e.Start.UTC())
			}

			end, endIsDate := normalizedEnd(e)
			if endIsDate {
				ve.SetAllDayEndAt(end)
			} else {
				ve.SetEndAt(end.UTC())
			}
		}

		setIfPresent(ve, ical.ComponentPropertyCreated, e.Created)
		setIfPresent(ve, ical.ComponentPropertyDtstamp, e.DTStamp)
		setIfPresent(ve, ical.ComponentPropertyLastModified, e.LastModified)
		setIfPresent(ve, ical.ComponentPropertySequence, e.Sequence)
		setIfPresent(ve, ical.ComponentPropertyStatus, e.Status)
		setIfPresent(ve, ical.ComponentPropertyTransp, e.Transp)
	}

	return cal
}

// normalizedEnd resolves the event end, defaulting a missing DTEND to one
// hour after the start. For an all-day start the default stays on the same
// date rather than becoming a datetime.
func normalizedEnd(e model.Event) (time.Time, bool) {
	if e.HasEnd() {
		return e.End, e.EndIsDate
	}
	if e.StartIsDate {
		return e.Start, true
	}
	return e.Start.Add(time.Hour), false
}

func setIfPresent(ve *ical.VEvent, name ical.ComponentProperty, value string) {
	if value != "" {
		ve.SetProperty(name, value)
	}
}
