package domain

import "time"

// ApplyVisibility recomputes the hidden flag for a different visibility
// window. It never changes the surviving set, only the flags; articles are
// returned as copies.
func ApplyVisibility(articles []Article, window time.Duration, now time.Time) []Article {
	result := make([]Article, len(articles))
	for i, a := range articles {
		result[i] = a.WithHidden(now.Sub(a.Published) > window)
	}
	return result
}
