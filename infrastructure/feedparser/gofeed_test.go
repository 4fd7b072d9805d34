package feedparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Blog</title>
    <link>http://example.com/</link>
    <item><title>First</title><link>http://example.com/1</link></item>
    <item><title>Second</title><link>http://example.com/2</link></item>
  </channel>
</rss>`

const atomFeed = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Example Atom</title>
  <id>urn:example</id>
  <updated>2024-01-01T00:00:00Z</updated>
  <entry>
    <title>Entry</title>
    <id>urn:example:1</id>
    <updated>2024-01-01T00:00:00Z</updated>
  </entry>
</feed>`

const emptyRSS = `<?xml version="1.0"?><rss version="2.0"><channel><title>Quiet</title></channel></rss>`

const jsonFeed = `{"version": "https://jsonfeed.org/version/1.1", "title": "JSON", "items": [{"id": "1", "content_text": "hi"}]}`

func TestGofeedParser_Parse(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		feedType string
		title    string
		entries  int
	}{
		{name: "rss", body: rssFeed, feedType: "rss", title: "Example Blog", entries: 2},
		{name: "atom", body: atomFeed, feedType: "atom", title: "Example Atom", entries: 1},
		{name: "json feed", body: jsonFeed, feedType: "json", title: "JSON", entries: 1},
		{name: "rss without items", body: emptyRSS, feedType: "rss", title: "Quiet", entries: 0},
	}

	parser := NewGofeedParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed, err := parser.Parse(tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.feedType, feed.FeedType)
			assert.Equal(t, tt.title, feed.Title)
			assert.Equal(t, tt.entries, feed.Entries)
			assert.Equal(t, tt.entries > 0, feed.HasEntries())
		})
	}
}

func TestGofeedParser_RejectsHTML(t *testing.T) {
	parser := NewGofeedParser()

	_, err := parser.Parse(`<!DOCTYPE html><html><head><title>Home</title></head><body></body></html>`)
	assert.Error(t, err)

	_, err = parser.Parse("plain text")
	assert.Error(t, err)
}
