package feed

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/umputun/feedsift/pkg/domain"
)

// RSS represents the root RSS 2.0 element
type RSS struct {
	XMLName xml.Name    `xml:"rss"`
	Version string      `xml:"version,attr"`
	Atom    string      `xml:"xmlns:atom,attr"`
	Channel *RSSChannel `xml:"channel"`
}

// RSSChannel represents an RSS channel
type RSSChannel struct {
	XMLName       xml.Name   `xml:"channel"`
	Title         string     `xml:"title"`
	Link          string     `xml:"link"`
	Description   string     `xml:"description"`
	AtomLink      *AtomLink  `xml:"http://www.w3.org/2005/Atom link"`
	LastBuildDate string     `xml:"lastBuildDate"`
	Items         []*RSSItem `xml:"item"`
}

// AtomLink represents an Atom link element within RSS
type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// RSSItem represents an item in an RSS feed
type RSSItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	Category    string `xml:"category,omitempty"`
}

// Generator exports the curated article set back out as RSS and OPML, so the
// result of aggregation can feed a regular reader
type Generator struct {
	baseURL string
}

// NewGenerator creates a feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimRight(baseURL, "/")}
}

// GenerateRSS creates an RSS 2.0 document from the ranked article set.
// Hidden articles are excluded; the distance, when present, is surfaced in
// the description so reader-side filtering stays possible.
func (g *Generator) GenerateRSS(articles []domain.Article, category, query string) (string, error) {
	title := fmt.Sprintf("FeedSift - %s", category)
	desc := fmt.Sprintf("aggregated %s articles", category)
	if query != "" {
		desc = fmt.Sprintf("aggregated %s articles ranked by relevance to %q", category, query)
	}

	selfLink := fmt.Sprintf("%s/api/v1/rss/%s", g.baseURL, category)

	rssItems := make([]*RSSItem, 0, len(articles))
	for _, a := range articles {
		if a.Hidden {
			continue
		}
		rssItems = append(rssItems, g.convertArticle(a, category))
	}

	rss := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   desc,
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: time.Now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(rss, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

// convertArticle maps one article to an RSS item
func (g *Generator) convertArticle(a domain.Article, category string) *RSSItem {
	desc := a.Description
	if a.Distance != nil {
		desc = fmt.Sprintf("Distance: %.3f - %s", *a.Distance, a.Description)
	}
	if a.Image != nil && a.Image.HTML != "" {
		desc += "\n\n" + a.Image.HTML
	}

	return &RSSItem{
		Title:       a.Title,
		Link:        a.Link,
		GUID:        a.Key,
		Description: desc,
		PubDate:     a.Published.Format(time.RFC1123Z),
		Category:    category,
	}
}

// GenerateOPML creates an OPML subscription list of the configured sources,
// grouped by category name
func (g *Generator) GenerateOPML(categories map[string][]string) (string, error) {
	type outline struct {
		XMLName  xml.Name  `xml:"outline"`
		Text     string    `xml:"text,attr"`
		Title    string    `xml:"title,attr"`
		Type     string    `xml:"type,attr,omitempty"`
		XMLUrl   string    `xml:"xmlUrl,attr,omitempty"`
		Outlines []outline `xml:"outline,omitempty"`
	}

	type body struct {
		XMLName  xml.Name  `xml:"body"`
		Outlines []outline `xml:"outline"`
	}

	type head struct {
		XMLName     xml.Name `xml:"head"`
		Title       string   `xml:"title"`
		DateCreated string   `xml:"dateCreated"`
	}

	type opml struct {
		XMLName xml.Name `xml:"opml"`
		Version string   `xml:"version,attr"`
		Head    head     `xml:"head"`
		Body    body     `xml:"body"`
	}

	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]outline, 0, len(names))
	for _, name := range names {
		group := outline{Text: name, Title: name}
		for _, feedURL := range categories[name] {
			group.Outlines = append(group.Outlines, outline{
				Text:   feedURL,
				Title:  feedURL,
				Type:   "rss",
				XMLUrl: feedURL,
			})
		}
		groups = append(groups, group)
	}

	doc := opml{
		Version: "2.0",
		Head: head{
			Title:       "FeedSift Subscriptions",
			DateCreated: time.Now().Format(time.RFC1123Z),
		},
		Body: body{Outlines: groups},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}
	return xml.Header + string(output), nil
}
