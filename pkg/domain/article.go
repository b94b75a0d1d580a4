package domain

import (
	"regexp"
	"time"
)

// Article represents a single normalized feed item. Once produced by the
// parser it is treated as an immutable value; stages that need to change
// Hidden or Distance work on copies.
type Article struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Published   time.Time  `json:"published"`
	Description string     `json:"description"`
	Image       *MediaInfo `json:"image,omitempty"`
	Source      string     `json:"source"`
	Key         string     `json:"key"`
	Hidden      bool       `json:"hidden"`
	Distance    *float64   `json:"distance,omitempty"` // relevance score, set per ranking pass only
}

// WithHidden returns a copy of the article with the hidden flag set
func (a Article) WithHidden(hidden bool) Article {
	a.Hidden = hidden
	return a
}

// WithDistance returns a copy of the article with the relevance distance set
func (a Article) WithDistance(d float64) Article {
	a.Distance = &d
	return a
}

// MediaInfo describes a display image attached to an article, either captured
// from embedded markup or from structured feed media metadata
type MediaInfo struct {
	Src    string `json:"src"`
	Alt    string `json:"alt,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	HTML   string `json:"html,omitempty"` // serialized markup when captured from the description
}

// SourceStat reports the outcome of one fetch attempt for one source
type SourceStat struct {
	Source string `json:"source"`
	Shown  int    `json:"shown"`
	Hidden int    `json:"hidden"`
	Stale  int    `json:"stale"`
	Total  int    `json:"total"`
	Failed bool   `json:"failed"`
}

// FetchResult is the output of one ingestion pass across all sources
type FetchResult struct {
	Articles   []Article    `json:"articles"`
	Stats      []SourceStat `json:"stats"`
	UpdateTime time.Time    `json:"update_time"`
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)
var edgeDashes = regexp.MustCompile(`^-+|-+$`)

// ArticleKey derives a stable identifier from a canonical article link by
// collapsing runs of non-alphanumeric characters. The same link always yields
// the same key, so it can serve as a cache and dedup identifier.
func ArticleKey(link string) string {
	key := nonAlphanumeric.ReplaceAllString(link, "-")
	return edgeDashes.ReplaceAllString(key, "")
}
