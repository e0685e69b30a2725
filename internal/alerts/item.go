package alerts

import (
	"fmt"
	"strings"
	"time"

	"github.com/RobBrazier/alertfeed/internal/model"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
)

// DateLayout renders a timestamp the way en-NZ locales show a long date with
// a 12-hour, two-digit time.
const DateLayout = "2 January 2006 at 03:04 pm"

var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04 -0700",
	"Mon, 2 Jan 2006 15:04 MST",
	"2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// extractAlerts maps every item element of the document, in document order.
func extractAlerts(doc *element, loc *time.Location) []model.Alert {
	items := doc.all("item")
	alerts := make([]model.Alert, 0, len(items))
	for _, item := range items {
		alerts = append(alerts, extractAlert(item, loc))
	}
	return alerts
}

// extractAlert applies the per-field defaults: "No Title" for a missing
// title, "#" for a missing link, "" for a missing description and "N/A" for
// a missing or unreadable pubDate. Present fields keep their text untouched,
// even when empty.
func extractAlert(item *element, loc *time.Location) model.Alert {
	alert := model.Alert{
		Title:       optionalText(item, "title", model.DefaultTitle),
		Link:        optionalText(item, "link", model.DefaultLink),
		Description: optionalText(item, "description", ""),
		PublishedAt: model.NoDate,
	}
	if el := item.first("pubDate"); el != nil {
		raw := el.textContent()
		published, err := parsePubDate(raw)
		if err != nil {
			log.Warn().Err(err).Str("pubDate", raw).Str("title", alert.Title).Msg("Could not parse pubDate")
		} else {
			alert.Published = published
			alert.PublishedAt = formatDate(published, loc)
		}
	}
	return alert
}

func optionalText(item *element, name, fallback string) string {
	if el := item.first(name); el != nil {
		return el.textContent()
	}
	return fallback
}

func parsePubDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var err error
	for _, layout := range pubDateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, raw); err == nil {
			if strings.Contains(layout, "MST") {
				return resolveZone(t)
			}
			return t, nil
		}
	}
	return time.Time{}, err
}

// rfc822Zones are the North American abbreviations RFC 822 defines alongside
// UT and GMT.
var rfc822Zones = map[string]int{
	"EST": -5 * 60 * 60,
	"EDT": -4 * 60 * 60,
	"CST": -6 * 60 * 60,
	"CDT": -5 * 60 * 60,
	"MST": -7 * 60 * 60,
	"MDT": -6 * 60 * 60,
	"PST": -8 * 60 * 60,
	"PDT": -7 * 60 * 60,
}

// resolveZone fixes up a time parsed from a zone abbreviation. time.Parse
// records an abbreviation it does not know at a zero offset, which would
// silently read as UTC.
func resolveZone(t time.Time) (time.Time, error) {
	name, offset := t.Zone()
	if offset != 0 {
		return t, nil
	}
	switch name {
	case "GMT", "UTC", "UT", "Z":
		return t, nil
	}
	if offset, ok := rfc822Zones[name]; ok {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.FixedZone(name, offset)), nil
	}
	return time.Time{}, fmt.Errorf("unknown time zone %q", name)
}

func formatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// showDescription reports whether a description adds anything over the
// title: it must be non-blank and differ from the title after trimming and
// case folding.
func showDescription(title, description string) bool {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return false
	}
	fold := cases.Fold()
	return fold.String(desc) != fold.String(strings.TrimSpace(title))
}
