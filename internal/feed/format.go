package feed

import "strings"

type Format string

const (
	FORMAT_RSS  Format = "rss"
	FORMAT_ATOM Format = "atom"
	FORMAT_JSON Format = "json"
)

// ParseFormat maps a URL extension to a Format, defaulting to RSS.
func ParseFormat(ext string) (Format, bool) {
	switch Format(strings.ToLower(ext)) {
	case "", FORMAT_RSS, "xml":
		return FORMAT_RSS, true
	case FORMAT_ATOM:
		return FORMAT_ATOM, true
	case FORMAT_JSON:
		return FORMAT_JSON, true
	default:
		return FORMAT_RSS, false
	}
}

func (f Format) ContentType() string {
	switch f {
	case FORMAT_ATOM:
		return "application/atom+xml"
	case FORMAT_JSON:
		return "application/json"
	default:
		return "application/rss+xml"
	}
}
