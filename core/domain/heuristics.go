// ABOUTME: Static heuristic tables used to find feed candidates
// ABOUTME: Feed MIME types, anchor labels, and conventional feed paths per platform

package domain

// Heuristics groups the reference data that drives extraction and probing.
// Values are injected into the extractor and orchestrator so several
// configurations (for example an extended path list) can coexist.
type Heuristics struct {
	// MIMETypes are the <link type> values that declare a feed
	MIMETypes []string `yaml:"mime_types"`

	// Labels are substrings an <a href> must contain to become a candidate
	Labels []string `yaml:"labels"`

	// Paths are conventional feed locations, relative to the site root
	Paths []string `yaml:"paths"`
}

// DefaultHeuristics returns a fresh copy of the built-in tables
func DefaultHeuristics() Heuristics {
	return Heuristics{
		MIMETypes: []string{
			"application/rss+xml",
			"application/atom+xml",
			"application/rdf+xml",
			"application/rss",
			"application/atom",
			"text/rss+xml",
			"text/atom+xml",
			"text/rss",
			"text/atom",
		},
		Labels: []string{"rss", "feed"},
		Paths: []string{
			// WordPress
			"feed",
			"wp-rss2.php",
			"?feed=rss2",
			// Drupal, MODX
			"rss.xml",
			"rss",
			// Joomla
			"?format=feed&type=rss",
			// Bitrix
			"bitrix/rss.php",
			// custom
			"export/rss.xml",
			"feed/rss/",
			"rss.php",
			"rss/all",
			"rss/all.php",
			"rss/index.xml",
			"rss/index.php",
			"rss/news.xml",
			"rss/news",
			"rss/rss.xml",
			"rss/rss.php",
			"news/rss",
			"news.rss",
			"xml/rss.xml",
		},
	}
}

// Merge returns a copy of h with the entries of extra appended.
// Entries already present are not repeated and order is kept.
func (h Heuristics) Merge(extra Heuristics) Heuristics {
	return Heuristics{
		MIMETypes: appendUnique(h.MIMETypes, extra.MIMETypes),
		Labels:    appendUnique(h.Labels, extra.Labels),
		Paths:     appendUnique(h.Paths, extra.Paths),
	}
}

func appendUnique(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]struct{}, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, v := range list {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
