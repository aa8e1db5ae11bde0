package model

import "time"

// Event is a single VEVENT pulled out of a feed, reduced to the fields the
// renderers and the normalizer care about.
type Event struct {
	UID         string
	Summary     string
	Description string
	Location    string
	URL         string

	// Start / End are zero when the source property is absent or its value
	// could not be parsed. Naive datetimes are labeled UTC as-is; TZID
	// datetimes keep their zone until normalization.
	Start time.Time
	End   time.Time

	// StartIsDate / EndIsDate mark plain DATE values (all-day). Date values
	// are never promoted to datetimes.
	StartIsDate bool
	EndIsDate   bool

	// Raw passthrough properties for the normalized-calendar output.
	// Empty string means the property was absent in the source.
	Created      string
	DTStamp      string
	LastModified string
	Sequence     string
	Status       string
	Transp       string
}

// HasStart reports whether the event carries a usable start value.
func (e Event) HasStart() bool { return !e.Start.IsZero() }

// HasEnd reports whether the event carries a usable end value.
func (e Event) HasEnd() bool { return !e.End.IsZero() }
