// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package concert finds upcoming concerts for composers by searching Classical
Events listings through Google Custom Search.
*/
package concert

import (
	"strings"
	"time"

	"github.com/taibuivan/voxmundi/internal/provider/cse"
)

// Source tags every event with the listing site it came from.
const Source = "classicalevents"

const titleSuffix = " concerts | Classical Events"

// # Domain Entities

// Address is the postal address of a venue.
type Address struct {
	Locality string `json:"locality"`
	Street   string `json:"street"`
}

// Event is one concert listing.
type Event struct {
	Composer    string     `json:"composer"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	Link        string     `json:"link"`
	Venue       *string    `json:"venue"`
	Address     *Address   `json:"address"`
	Source      string     `json:"source"`
}

// # Parsing

/*
ParseResults turns one composer's search payload into events.

Description: Only hits titled "<composer> concerts | Classical Events" (any
case) are kept. A hit with music events expands into one event per entry,
paired by index with the hCalendar, venue and address entries. A hit
without them yields a single undated event. Events repeating the same
composer, title and date are dropped.
*/
func ParseResults(data *cse.Response, composer string) []Event {
	events := []Event{}
	if data == nil {
		return events
	}

	expected := strings.ToLower(composer + titleSuffix)
	seen := map[string]bool{}

	keep := func(event Event) {
		date := ""
		if event.Date != nil {
			date = event.Date.Format(time.RFC3339)
		}
		key := event.Composer + "\x00" + event.Title + "\x00" + date
		if !seen[key] {
			seen[key] = true
			events = append(events, event)
		}
	}

	for _, item := range data.Items {
		title := strings.TrimSpace(item.Title)
		if strings.ToLower(title) != expected {
			continue
		}

		pagemap := item.Pagemap
		if len(pagemap.MusicEvents) == 0 {
			keep(Event{Composer: composer, Title: title, Description: item.Snippet, Link: item.Link, Source: Source})
			continue
		}

		for index, music := range pagemap.MusicEvents {
			var calendar cse.HCalendar
			if index < len(pagemap.HCalendars) {
				calendar = pagemap.HCalendars[index]
			}

			event := Event{
				Composer:    composer,
				Title:       firstNonEmpty(music.Name, title),
				Description: firstNonEmpty(music.Description, item.Snippet),
				Date:        ParseDate(firstNonEmpty(music.StartDate, calendar.DtStart)),
				Link:        firstNonEmpty(calendar.URL, music.URL, item.Link),
				Source:      Source,
			}
			if index < len(pagemap.Venues) && pagemap.Venues[index].Name != "" {
				venue := pagemap.Venues[index].Name
				event.Venue = &venue
			}
			if index < len(pagemap.Addresses) {
				address := pagemap.Addresses[index]
				event.Address = &Address{Locality: address.Locality, Street: address.Street}
			}
			keep(event)
		}
	}

	return events
}

// dateLayouts are tried in order after RFC 3339.
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"2 January 2006",
	"2 Jan 2006",
	"Monday 2 January 2006",
	"Mon 2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate reads a listing date as UTC. It returns nil when the text is
// empty or in no known layout.
func ParseDate(text string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if parsed, err := time.Parse(time.RFC3339, text); err == nil {
		parsed = parsed.UTC()
		return &parsed
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, text, time.UTC); err == nil {
			return &parsed
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
