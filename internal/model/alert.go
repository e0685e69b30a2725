package model

import "time"

const (
	DefaultTitle = "No Title"
	DefaultLink  = "#"
	NoDate       = "N/A"
)

// Collection is the result of one successful load of the alert feed.
type Collection struct {
	Title   string
	Link    string
	Created time.Time
	Alerts  []Alert
}

func NewCollection(title, link string, alerts []Alert) Collection {
	return Collection{
		Title:   title,
		Link:    link,
		Created: time.Now(),
		Alerts:  alerts,
	}
}

// Alert is one feed item. Title, Link and PublishedAt always hold a
// displayable value; Description may be empty.
type Alert struct {
	Title       string
	Link        string
	Description string
	PublishedAt string
	Published   time.Time
}
