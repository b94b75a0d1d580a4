package feed

import (
	"bytes"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"

	"github.com/umputun/feedsift/pkg/domain"
)

// Parser converts raw feed documents into normalized articles. It accepts
// RSS, Atom and RDF dialects; anything else degrades to zero items.
type Parser struct {
	now func() time.Time // injectable clock for tests
}

// NewParser creates a parser using the wall clock
func NewParser() *Parser {
	return &Parser{now: time.Now}
}

// knownDialects lists feed types the parser accepts. gofeed reports RDF
// (RSS 1.0) documents as rss.
var knownDialects = map[string]bool{"rss": true, "atom": true, "rdf": true}

// Parse converts a raw feed document into articles. Unknown dialects and
// malformed documents yield an empty slice, never a panic; the coordinator
// treats a parse error the same as zero items.
func (p *Parser) Parse(raw []byte, sourceURL string) ([]domain.Article, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", sourceURL, err)
	}

	if !knownDialects[parsed.FeedType] || len(parsed.Items) == 0 {
		log.Printf("[WARN] unexpected feed structure for %s, detected type: %q, items: %d",
			sourceURL, parsed.FeedType, len(parsed.Items))
		return []domain.Article{}, nil
	}

	articles := make([]domain.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		articles = append(articles, p.parseItem(item, sourceURL))
	}
	return articles, nil
}

// parseItem normalizes a single feed item
func (p *Parser) parseItem(item *gofeed.Item, sourceURL string) domain.Article {
	published := p.now()
	switch {
	case item.PublishedParsed != nil:
		published = *item.PublishedParsed
	case item.UpdatedParsed != nil:
		published = *item.UpdatedParsed
	default:
		// undated items cluster at "now", keeps them inside the age filters
		log.Printf("[DEBUG] no parseable date for item %q from %s", item.Title, sourceURL)
	}

	text, embedded := parseDescription(item.Description)

	image := mediaImage(item)
	if image == nil {
		image = embedded
	}

	return domain.Article{
		Title:       item.Title,
		Link:        item.Link,
		Published:   published,
		Description: text,
		Image:       image,
		Source:      sourceURL,
		Key:         domain.ArticleKey(item.Link),
	}
}

var whitespaceRuns = regexp.MustCompile(`\s\s+`)

// boilerplatePrefix is injected by some feed generators as a trailing
// "The post X appeared first on Y" fragment
const boilerplatePrefix = "The post"

// parseDescription walks the description markup, returning the collapsed
// text content and the first image-bearing element found in document order.
// Captured images are removed from the text stream so they are not duplicated.
func parseDescription(description string) (text string, image *domain.MediaInfo) {
	if description == "" {
		return "", nil
	}

	root, err := html.Parse(strings.NewReader(description))
	if err != nil {
		// not expected, html.Parse recovers from almost anything
		return strings.TrimSpace(description), nil
	}

	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := cleanText(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			if n.Data == "img" || n.Data == "figure" || n.Data == "picture" {
				if image == nil {
					image = renderImage(n)
				}
				return // image subtree is excluded from the text stream
			}
		case html.DocumentNode, html.DoctypeNode, html.CommentNode, html.ErrorNode, html.RawNode:
			// containers and noise, fall through to children
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return strings.Join(parts, " "), image
}

// cleanText trims a text node, collapses whitespace runs and drops the
// generator boilerplate fragment
func cleanText(s string) string {
	t := whitespaceRuns.ReplaceAllString(strings.TrimSpace(s), " ")
	if t == boilerplatePrefix {
		return ""
	}
	return t
}

// renderImage serializes an image-bearing node and pulls structured fields
// from its first img descendant
func renderImage(n *html.Node) *domain.MediaInfo {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return nil
	}

	info := &domain.MediaInfo{HTML: buf.String()}

	var findImg func(node *html.Node) *html.Node
	findImg = func(node *html.Node) *html.Node {
		if node.Type == html.ElementNode && node.Data == "img" {
			return node
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if found := findImg(c); found != nil {
				return found
			}
		}
		return nil
	}

	img := findImg(n)
	if img == nil {
		return info
	}
	for _, attr := range img.Attr {
		switch attr.Key {
		case "src":
			info.Src = attr.Val
		case "alt":
			info.Alt = attr.Val
		case "width":
			info.Width, _ = strconv.Atoi(attr.Val)
		case "height":
			info.Height, _ = strconv.Atoi(attr.Val)
		}
	}
	return info
}

var sizeSuffix = regexp.MustCompile(`(\d+)x(\d+)\.\w+$`)

// mediaImage builds image info from structured media metadata on the item,
// the first entry with a non-empty URL wins. Missing dimensions are inferred
// from a WxH filename suffix when present.
func mediaImage(item *gofeed.Item) *domain.MediaInfo {
	var src, alt string

	if item.Image != nil && item.Image.URL != "" {
		src, alt = item.Image.URL, item.Image.Title
	}
	if src == "" {
		for _, enc := range item.Enclosures {
			if enc != nil && enc.URL != "" && strings.HasPrefix(enc.Type, "image/") {
				src = enc.URL
				break
			}
		}
	}
	if src == "" {
		if media, ok := item.Extensions["media"]; ok {
			for _, content := range media["content"] {
				if u := content.Attrs["url"]; u != "" {
					src = u
					if w, err := strconv.Atoi(content.Attrs["width"]); err == nil {
						if h, err := strconv.Atoi(content.Attrs["height"]); err == nil {
							return imageInfo(src, alt, w, h)
						}
					}
					break
				}
			}
		}
	}
	if src == "" {
		return nil
	}

	width, height := 0, 0
	if m := sizeSuffix.FindStringSubmatch(src); m != nil {
		width, _ = strconv.Atoi(m[1])
		height, _ = strconv.Atoi(m[2])
	}
	return imageInfo(src, alt, width, height)
}

// imageInfo assembles MediaInfo with a serialized img form matching what the
// description capture produces
func imageInfo(src, alt string, width, height int) *domain.MediaInfo {
	htmlForm := fmt.Sprintf("<img src=%q alt=%q>", src, alt)
	if width > 0 && height > 0 {
		htmlForm = fmt.Sprintf("<img src=%q alt=%q width=%q height=%q>", src, alt, strconv.Itoa(width), strconv.Itoa(height))
	}
	return &domain.MediaInfo{Src: src, Alt: alt, Width: width, Height: height, HTML: htmlForm}
}
