package embed

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/feedsift/pkg/domain"
)

var stripPolicy = bluemonday.StrictPolicy()

var structuralWhitespace = regexp.MustCompile(`[\n\t]+|[ ]{4,}`)
var spaceRuns = regexp.MustCompile(`\s{2,}`)

// ArticleFingerprint returns the cache key for an article's embedding. The
// article key is already a stable function of the canonical link.
func ArticleFingerprint(a domain.Article) string {
	return a.Key
}

// QueryFingerprint returns the cache key for a free-text query. The query is
// normalized first so identical queries across sessions share one entry.
func QueryFingerprint(query string) string {
	normalized := strings.ToLower(spaceRuns.ReplaceAllString(strings.TrimSpace(query), " "))
	sum := sha256.Sum256([]byte(normalized))
	return "q-" + hex.EncodeToString(sum[:])
}

// EmbeddingText builds the composite text submitted for embedding. Including
// source, date and URL alongside the cleaned description makes near-duplicate
// stories from different sources embed close together, which is what the
// dedup engine relies on.
func EmbeddingText(a domain.Article) string {
	parts := []string{a.Title, sourceHost(a.Source), a.Published.UTC().Format("2006-01-02"), a.Link}
	if a.Image != nil && a.Image.Src != "" {
		parts = append(parts, fmt.Sprintf("[image: %s]", a.Image.Src))
	}
	parts = append(parts, cleanForEmbedding(a.Description))
	return strings.Join(parts, " / ")
}

// cleanForEmbedding strips residual markup and collapses structural
// whitespace (tabs, newlines, run indents)
func cleanForEmbedding(text string) string {
	cleaned := stripPolicy.Sanitize(text)
	cleaned = structuralWhitespace.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(spaceRuns.ReplaceAllString(cleaned, " "))
}

// sourceHost shortens a source URL to its host for the composite text
func sourceHost(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil || u.Host == "" {
		return sourceURL
	}
	return u.Host
}
