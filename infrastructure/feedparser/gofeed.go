// ABOUTME: Feed parser implementation backed by mmcdole/gofeed
// ABOUTME: Detects RSS, Atom, and JSON Feed documents and counts their entries

package feedparser

import (
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/sgacode/rss-finder/core/domain"
)

// GofeedParser implements the FeedParser interface
type GofeedParser struct{}

// NewGofeedParser creates a new parser
func NewGofeedParser() *GofeedParser {
	return &GofeedParser{}
}

// Parse parses body as a syndication document.
// gofeed parsers keep state, so each call uses its own.
func (p *GofeedParser) Parse(body string) (*domain.ParsedFeed, error) {
	feed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil, err
	}

	return &domain.ParsedFeed{
		Title:    strings.TrimSpace(feed.Title),
		FeedType: feed.FeedType,
		Entries:  len(feed.Items),
	}, nil
}
