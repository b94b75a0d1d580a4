package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedsift/pkg/domain"
)

func TestGenerator_GenerateRSS(t *testing.T) {
	articles := []domain.Article{
		{
			Title:       "Visible Story",
			Link:        "https://example.com/visible",
			Key:         "https-example-com-visible",
			Published:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
			Description: "the summary",
		},
		{
			Title:     "Hidden Story",
			Link:      "https://example.com/hidden",
			Key:       "https-example-com-hidden",
			Published: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			Hidden:    true,
		},
	}

	g := NewGenerator("https://feeds.example.com/")
	out, err := g.GenerateRSS(articles, "astronomy", "space news")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "<title>FeedSift - astronomy</title>")
	assert.Contains(t, out, "ranked by relevance to &#34;space news&#34;")
	assert.Contains(t, out, "https://feeds.example.com/api/v1/rss/astronomy")
	assert.Contains(t, out, "<title>Visible Story</title>")
	assert.Contains(t, out, "<guid>https-example-com-visible</guid>")
	assert.NotContains(t, out, "Hidden Story", "hidden articles stay out of the export")
}

func TestGenerator_GenerateRSSWithDistance(t *testing.T) {
	a := domain.Article{
		Title:       "Ranked",
		Link:        "https://example.com/r",
		Key:         "k",
		Published:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Description: "body",
	}
	g := NewGenerator("https://feeds.example.com")
	out, err := g.GenerateRSS([]domain.Article{a.WithDistance(0.123)}, "astronomy", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Distance: 0.123 - body")
	assert.Contains(t, out, "aggregated astronomy articles</description>")
}

func TestGenerator_GenerateRSSEmpty(t *testing.T) {
	g := NewGenerator("https://feeds.example.com")
	out, err := g.GenerateRSS(nil, "astronomy", "")
	require.NoError(t, err)
	assert.Contains(t, out, "<channel>")
	assert.NotContains(t, out, "<item>")
}

func TestGenerator_GenerateOPML(t *testing.T) {
	g := NewGenerator("https://feeds.example.com")
	out, err := g.GenerateOPML(map[string][]string{
		"finance":   {"https://example.com/fin1", "https://example.com/fin2"},
		"astronomy": {"https://example.com/astro"},
	})
	require.NoError(t, err)

	assert.Contains(t, out, `<opml version="2.0">`)
	assert.Contains(t, out, "FeedSift Subscriptions")
	assert.Contains(t, out, `xmlUrl="https://example.com/astro"`)
	assert.Contains(t, out, `xmlUrl="https://example.com/fin2"`)

	// categories come out in stable sorted order
	assert.Less(t, strings.Index(out, `title="astronomy"`), strings.Index(out, `title="finance"`))
}
