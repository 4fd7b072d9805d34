// ABOUTME: Feed-link extractor finds feed hrefs declared or linked in an HTML page
// ABOUTME: Typed <link> elements win; labelled <a> elements are used only when none exist

package extract

import (
	"io"
	"mime"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sgacode/rss-finder/core/domain"
	"github.com/sgacode/rss-finder/core/errors"
)

// Extractor implements interfaces.LinkExtractor with goquery
type Extractor struct {
	mimeTypes map[string]struct{}
	labels    []string
}

// NewExtractor creates an extractor driven by the MIME types and labels of h
func NewExtractor(h domain.Heuristics) *Extractor {
	types := make(map[string]struct{}, len(h.MIMETypes))
	for _, t := range h.MIMETypes {
		types[strings.ToLower(t)] = struct{}{}
	}
	return &Extractor{
		mimeTypes: types,
		labels:    append([]string(nil), h.Labels...),
	}
}

// ExtractLinks returns the raw candidate hrefs of html in document order
func (e *Extractor) ExtractLinks(html string) ([]string, error) {
	return e.ExtractLinksFrom(strings.NewReader(html))
}

// ExtractLinksFrom is ExtractLinks over a reader.
// A document that cannot be read or parsed yields a ParseError.
func (e *Extractor) ExtractLinksFrom(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &errors.ParseError{Cause: err}
	}

	if links := e.declared(doc); len(links) > 0 {
		return links, nil
	}
	return e.labelled(doc), nil
}

// declared collects <link> elements whose type is a feed MIME type
func (e *Extractor) declared(doc *goquery.Document) []string {
	var links []string
	doc.Find("link[type]").Each(func(_ int, s *goquery.Selection) {
		typ, _ := s.Attr("type")
		if !e.isFeedType(typ) {
			return
		}
		if href, ok := hrefOf(s); ok {
			links = append(links, href)
		}
	})
	return links
}

// labelled collects <a> elements whose href mentions a feed label
func (e *Extractor) labelled(doc *goquery.Document) []string {
	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := hrefOf(s)
		if !ok {
			return
		}
		for _, label := range e.labels {
			if strings.Contains(href, label) {
				links = append(links, href)
				return
			}
		}
	})
	return links
}

func (e *Extractor) isFeedType(typ string) bool {
	typ = strings.TrimSpace(typ)
	if mediaType, _, err := mime.ParseMediaType(typ); err == nil {
		typ = mediaType
	}
	_, ok := e.mimeTypes[strings.ToLower(typ)]
	return ok
}

func hrefOf(s *goquery.Selection) (string, bool) {
	href, ok := s.Attr("href")
	if !ok {
		return "", false
	}
	href = strings.TrimSpace(href)
	return href, href != ""
}
