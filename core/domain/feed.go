// ABOUTME: Feed domain model holds what feed validation needs from a parsed document
// ABOUTME: Only the entry count decides validity; title and type are informational

package domain

// ParsedFeed is the summary of a successfully parsed syndication document
type ParsedFeed struct {
	// Title is the feed's title, possibly empty
	Title string

	// FeedType is the detected format ("rss", "atom", "json")
	FeedType string

	// Entries is the number of items in the document
	Entries int
}

// HasEntries reports whether the document counts as a feed
func (f *ParsedFeed) HasEntries() bool {
	return f != nil && f.Entries > 0
}
