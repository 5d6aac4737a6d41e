// Package ical renders the canonical store as an RFC 5545 calendar
// document. Output is a pure function of the records plus the generation
// timestamp: fixed property order, CRLF line endings and 75-octet folding,
// so subscribers and tests can diff exports byte for byte.
package ical

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/valyala/bytebufferpool"

	"github.com/sgwessen/kalender/internal/domain/event"
	"github.com/sgwessen/kalender/internal/domain/fixture"
	"github.com/sgwessen/kalender/internal/platform/dateparse"
)

const (
	// ProdID identifies this generator in the calendar header.
	ProdID = "-//SG Wasserball Essen//Kalender Sync//DE"

	matchUIDPrefix = "sgw-match-"
	eventUIDPrefix = "sgw-event-"
	uidDomain      = "@sgwessen.de"

	stampLayout = "20060102T150405"

	// foldLimit is the maximum octet count of a content line before
	// folding continues it on the next line (RFC 5545 section 3.1).
	foldLimit = 75

	unknownLocation = "TBA"
)

// Options carries the subscriber-facing calendar headers.
type Options struct {
	Name        string
	Description string
	Timezone    string
}

func (o Options) withDefaults() Options {
	if o.Name == "" {
		o.Name = "SG Wasserball Essen"
	}
	if o.Description == "" {
		o.Description = "Spielplan, Ergebnisse und Termine der SG Wasserball Essen"
	}
	if o.Timezone == "" {
		o.Timezone = "Europe/Berlin"
	}
	return o
}

type component struct {
	date  string
	clock string
	uid   string
	lines []string
}

// Encode renders all fixtures and events as one VCALENDAR document in
// ascending (date, time, uid) order. Records whose stored date no longer
// parses are skipped rather than failing the export. DTSTAMP is the only
// field derived from generatedAt; everything else comes from the records,
// so a fixed store and a fixed timestamp yield identical bytes.
func Encode(fixtures []fixture.Fixture, events []event.Event, generatedAt time.Time, opts Options) []byte {
	opts = opts.withDefaults()
	stamp := generatedAt.UTC().Format(stampLayout) + "Z"

	components := make([]component, 0, len(fixtures)+len(events))
	for _, item := range fixtures {
		if c, ok := fixtureComponent(item, stamp); ok {
			components = append(components, c)
		}
	}
	for _, item := range events {
		if c, ok := eventComponent(item, stamp); ok {
			components = append(components, c)
		}
	}
	sort.SliceStable(components, func(i, j int) bool {
		if components[i].date != components[j].date {
			return components[i].date < components[j].date
		}
		if components[i].clock != components[j].clock {
			return components[i].clock < components[j].clock
		}
		return components[i].uid < components[j].uid
	})

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeLine(buf, "BEGIN:VCALENDAR")
	writeLine(buf, "VERSION:2.0")
	writeLine(buf, "PRODID:"+ProdID)
	writeLine(buf, "CALSCALE:GREGORIAN")
	writeLine(buf, "METHOD:PUBLISH")
	writeLine(buf, "X-WR-CALNAME:"+escapeText(opts.Name))
	writeLine(buf, "X-WR-CALDESC:"+escapeText(opts.Description))
	writeLine(buf, "X-WR-TIMEZONE:"+opts.Timezone)
	for _, c := range components {
		writeLine(buf, "BEGIN:VEVENT")
		for _, line := range c.lines {
			writeLine(buf, line)
		}
		writeLine(buf, "END:VEVENT")
	}
	writeLine(buf, "END:VCALENDAR")

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out
}

func fixtureComponent(item fixture.Fixture, stamp string) (component, bool) {
	start, ok := dateparse.Instant(item.Date, item.Time)
	if !ok {
		return component{}, false
	}

	uid := matchUIDPrefix + item.Identity + uidDomain
	return component{
		date:  item.Date,
		clock: item.Time,
		uid:   uid,
		lines: propertyLines(uid, stamp, start, start.Add(fixture.DefaultDuration),
			item.Summary(), item.Description(), fixtureLocation(item)),
	}, true
}

func eventComponent(item event.Event, stamp string) (component, bool) {
	start, ok := dateparse.Instant(item.Date, item.Time)
	if !ok {
		return component{}, false
	}

	uid := eventUIDPrefix + item.Identity + uidDomain
	return component{
		date:  item.Date,
		clock: item.Time,
		uid:   uid,
		lines: propertyLines(uid, stamp, start, start.Add(event.DefaultDuration),
			item.Summary(), item.Description, eventLocation(item)),
	}, true
}

// propertyLines fixes the per-component property order. Consumers diff
// exports line by line, so the order is part of the format contract.
func propertyLines(uid, stamp string, start, end time.Time, summary, description, location string) []string {
	return []string{
		"UID:" + uid,
		"DTSTAMP:" + stamp,
		"DTSTART:" + start.Format(stampLayout),
		"DTEND:" + end.Format(stampLayout),
		"SUMMARY:" + escapeText(summary),
		"DESCRIPTION:" + escapeText(description),
		"LOCATION:" + escapeText(location),
		"STATUS:CONFIRMED",
		"TRANSP:OPAQUE",
	}
}

// fixtureLocation joins the enriched venue address with the map link when
// both are known, falls back to the list-page pool name and finally to a
// placeholder.
func fixtureLocation(item fixture.Fixture) string {
	address := item.VenueAddress
	if address == "" {
		address = item.Location
	}

	switch {
	case address != "" && item.VenueMapURL != "":
		return address + " - " + item.VenueMapURL
	case address != "":
		return address
	case item.VenueMapURL != "":
		return item.VenueMapURL
	default:
		return unknownLocation
	}
}

func eventLocation(item event.Event) string {
	if item.Location == "" {
		return unknownLocation
	}
	return item.Location
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\r\n", `\n`,
	"\r", `\n`,
	"\n", `\n`,
	";", `\;`,
	",", `\,`,
)

// escapeText applies RFC 5545 TEXT escaping.
func escapeText(value string) string {
	return textEscaper.Replace(value)
}

// writeLine emits one content line, folded at foldLimit octets with a
// single-space continuation. Splits never land inside a UTF-8 sequence.
func writeLine(buf *bytebufferpool.ByteBuffer, line string) {
	for first := true; ; first = false {
		limit := foldLimit
		if !first {
			_ = buf.WriteByte(' ')
			limit = foldLimit - 1
		}

		if len(line) <= limit {
			_, _ = buf.WriteString(line)
			_, _ = buf.WriteString("\r\n")
			return
		}

		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		_, _ = buf.WriteString(line[:cut])
		_, _ = buf.WriteString("\r\n")
		line = line[cut:]
	}
}
