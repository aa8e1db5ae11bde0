package ics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icsreport/internal/model"
)

func TestNormalizeDefaultsMissingEnd(t *testing.T) {
	events := []model.Event{
		{
			UID:     "naive@example.com",
			Summary: "Naive",
			Start:   time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	out := Normalize(events).Serialize()
	assert.Contains(t, out, "DTSTART:20250301T100000Z")
	assert.Contains(t, out, "DTEND:20250301T110000Z")
}

func TestNormalizeRoundTrip(t *testing.T) {
	// A naive source datetime with no end survives a serialize/parse cycle
	// as UTC with a one-hour span.
	body := fixture(
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"UID:rt@example.com",
		"SUMMARY:Round Trip",
		"DTSTART:20250301T100000",
		"END:VEVENT",
		"END:VCALENDAR",
	)

	events, err := Parse(body)
	require.NoError(t, err)

	reparsed, err := Parse([]byte(Normalize(events).Serialize()))
	require.NoError(t, err)
	require.Len(t, reparsed, 1)

	e := reparsed[0]
	assert.True(t, e.Start.Equal(time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)))
	assert.True(t, e.End.Equal(time.Date(2025, time.March, 1, 11, 0, 0, 0, time.UTC)))
}

func TestNormalizeShiftsZonedTimesToUTC(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	events := []model.Event{
		{
			UID:     "paris@example.com",
			Summary: "Paris",
			Start:   time.Date(2019, time.January, 1, 9, 0, 0, 0, paris),
			End:     time.Date(2019, time.January, 1, 11, 0, 0, 0, paris),
		},
	}

	out := Normalize(events).Serialize()
	assert.Contains(t, out, "DTSTART:20190101T080000Z")
	assert.Contains(t, out, "DTEND:20190101T100000Z")
}

func TestNormalizeKeepsDatesAsDates(t *testing.T) {
	events := []model.Event{
		{
			UID:         "allday@example.com",
			Summary:     "All Day",
			Start:       time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
			StartIsDate: true,
		},
	}

	out := Normalize(events).Serialize()
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250115")
	// Missing end stays on the same date instead of becoming a datetime.
	assert.Contains(t, out, "DTEND;VALUE=DATE:20250115")
}

func TestNormalizeCalendarHeaderAndPassthrough(t *testing.T) {
	events := []model.Event{
		{
			UID:          "meta@example.com",
			Summary:      "Meta",
			Start:        time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC),
			Created:      "20250101T000000Z",
			DTStamp:      "20250102T000000Z",
			LastModified: "20250103T000000Z",
			Sequence:     "3",
			Status:       "CONFIRMED",
			Transp:       "OPAQUE",
		},
	}

	out := Normalize(events).Serialize()
	assert.Contains(t, out, "PRODID:"+ProdID)
	assert.Contains(t, out, "VERSION:2.0")
	assert.Contains(t, out, "CREATED:20250101T000000Z")
	assert.Contains(t, out, "DTSTAMP:20250102T000000Z")
	assert.Contains(t, out, "LAST-MODIFIED:20250103T000000Z")
	assert.Contains(t, out, "SEQUENCE:3")
	assert.Contains(t, out, "STATUS:CONFIRMED")
	assert.Contains(t, out, "TRANSP:OPAQUE")
}

func TestNormalizeEventWithoutStart(t *testing.T) {
	events := []model.Event{
		{UID: "nostart@example.com", Summary: "No Start"},
	}

	out := Normalize(events).Serialize()
	assert.Contains(t, out, "SUMMARY:No Start")
	assert.NotContains(t, out, "DTSTART")
	assert.NotContains(t, out, "DTEND")
}
