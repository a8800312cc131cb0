package domain

import (
	"strings"
	"time"
)

// VideoItem is an entry of the instructional video catalog. Read-only here.
type VideoItem struct {
	ID          string
	Title       string
	Description string
	URL         string
	CreatedAt   time.Time
	ModifiedAt  time.Time
	Enabled     bool
	Symptoms    []string
	Thumbnail   string
}

// MatchesTitle reports whether the title contains query, ignoring case.
func (v VideoItem) MatchesTitle(query string) bool {
	return strings.Contains(strings.ToLower(v.Title), strings.ToLower(query))
}
