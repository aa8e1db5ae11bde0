package ics

import (
	"bytes"
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/rs/zerolog/log"

	"icsreport/internal/model"
)

const (
	layoutDate     = "20060102"
	layoutDateTime = "20060102T150405"
	layoutUTC      = "20060102T150405Z"
)

// Parse parses a raw ICS payload into a list of events.
//
// Per-event failures (no DTSTART property at all) are logged and skipped so
// one broken VEVENT does not sink the feed. A DTSTART that is present but
// unparseable leaves Start zero; the text renderer shows such events as
// "Date/Time Unknown".
func Parse(body []byte) ([]model.Event, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	events := make([]model.Event, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		ev, perr := parseVEvent(ve)
		if perr != nil {
			log.Warn().Err(perr).Str("uid", ev.UID).Msg("skipping event")
			continue
		}
		events = append(events, ev)
	}

	log.Debug().Int("event_count", len(events)).Msg("feed parsed")
	return events, nil
}

func parseVEvent(ve *ical.VEvent) (model.Event, error) {
	var out model.Event

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		out.UID = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyUrl); p != nil {
		out.URL = p.Value
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return out, errors.New("missing DTSTART")
	}
	if t, isDate, err := parseDateProperty(dtStart); err == nil {
		out.Start = t
		out.StartIsDate = isDate
	} else {
		log.Warn().Err(err).Str("uid", out.UID).Msg("unparseable DTSTART")
	}

	if dtEnd := ve.GetProperty(ical.ComponentPropertyDtEnd); dtEnd != nil {
		if t, isDate, err := parseDateProperty(dtEnd); err == nil {
			out.End = t
			out.EndIsDate = isDate
		} else {
			log.Warn().Err(err).Str("uid", out.UID).Msg("unparseable DTEND")
		}
	}

	out.Created = propertyValue(ve, ical.ComponentPropertyCreated)
	out.DTStamp = propertyValue(ve, ical.ComponentPropertyDtstamp)
	out.LastModified = propertyValue(ve, ical.ComponentPropertyLastModified)
	out.Sequence = propertyValue(ve, ical.ComponentPropertySequence)
	out.Status = propertyValue(ve, ical.ComponentPropertyStatus)
	out.Transp = propertyValue(ve, ical.ComponentPropertyTransp)

	return out, nil
}

func propertyValue(ve *ical.VEvent, name ical.ComponentProperty) string {
	if p := ve.GetProperty(name); p != nil {
		return p.Value
	}
	return ""
}

// parseDateProperty turns a DTSTART/DTEND property into a time value.
//
//   - VALUE=DATE (or a value with no time part) parses as a plain date.
//   - A trailing Z parses as UTC.
//   - A TZID parameter parses in that zone; the zone is kept so countdowns
//     use the event's own calendar date.
//   - A naive value is labeled UTC without shifting the wall clock.
func parseDateProperty(p *ical.IANAProperty) (time.Time, bool, error) {
	val := strings.TrimSpace(p.Value)
	if val == "" {
		return time.Time{}, false, errors.New("empty date value")
	}

	isDate := !strings.Contains(val, "T")
	if params := p.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			isDate = true
		}
	}
	if isDate {
		t, err := time.ParseInLocation(layoutDate, val, time.UTC)
		return t, true, err
	}

	if strings.HasSuffix(val, "Z") {
		t, err := time.Parse(layoutUTC, val)
		return t, false, err
	}

	if params := p.ICalParameters; params != nil {
		if tzs, ok := params["TZID"]; ok && len(tzs) > 0 {
			if loc, err := time.LoadLocation(tzs[0]); err == nil {
				t, perr := time.ParseInLocation(layoutDateTime, val, loc)
				return t, false, perr
			}
			// Unknown TZID: fall through and treat the value as naive.
		}
	}

	t, err := time.ParseInLocation(layoutDateTime, val, time.UTC)
	return t, false, err
}
