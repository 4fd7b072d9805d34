// ABOUTME: URL normalizer canonicalizes URLs and resolves relative ones against a base
// ABOUTME: Decomposes hosts into subdomain, domain and public suffix using the PSL

package normalize

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// DefaultScheme is used when a URL carries none
const DefaultScheme = "http"

var (
	// ErrEmpty is returned for blank input
	ErrEmpty = errors.New("empty URL")

	// ErrOpaque is returned for URLs without a hierarchical part (mailto:, javascript:)
	ErrOpaque = errors.New("opaque URL cannot be normalized")
)

// URL is a decomposed URL. Host labels are split on the public suffix, so
// "blog.example.co.uk" has Subdomain "blog", Domain "example" and TLD "co.uk".
// IP addresses and single-label hosts live entirely in Domain.
type URL struct {
	Scheme    string
	User      string
	Subdomain string
	Domain    string
	TLD       string
	Port      string
	Path      string
	RawQuery  string
}

// Host joins the host labels
func (u URL) Host() string {
	labels := make([]string, 0, 3)
	for _, label := range []string{u.Subdomain, u.Domain, u.TLD} {
		if label != "" {
			labels = append(labels, label)
		}
	}
	return strings.Join(labels, ".")
}

// HasHost reports whether the URL names a host
func (u URL) HasHost() bool {
	return u.Domain != "" || u.TLD != ""
}

// String reconstructs the canonical form
func (u URL) String() string {
	var b strings.Builder

	host := u.Host()
	if u.Scheme != "" {
		b.WriteString(u.Scheme)
		b.WriteByte(':')
	}
	if host != "" || u.Scheme != "" {
		b.WriteString("//")
	}
	if host != "" {
		if u.User != "" {
			b.WriteString(u.User)
			b.WriteByte('@')
		}
		if strings.Contains(host, ":") {
			b.WriteString("[" + host + "]")
		} else {
			b.WriteString(host)
		}
		if u.Port != "" {
			b.WriteString(":" + u.Port)
		}
	}

	path := u.Path
	if (host != "" || u.Scheme != "") && !strings.HasPrefix(path, "/") {
		if path != "" || host == "" {
			path = "/" + path
		}
	}
	b.WriteString(path)

	if u.RawQuery != "" {
		b.WriteString("?" + u.RawQuery)
	}
	return b.String()
}

// Parse decomposes raw. Schemeless input whose first segment looks like a
// host ("example.com/feed") is read as host and path; anything else without
// a scheme or "//" prefix is a relative reference. Fragments are dropped.
func Parse(raw string) (URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return URL{}, ErrEmpty
	}

	if !hasScheme(raw) && !strings.HasPrefix(raw, "//") && looksLikeHost(firstSegment(raw)) {
		raw = "//" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return URL{}, fmt.Errorf("could not parse URL: %w", err)
	}
	if u.Opaque != "" {
		return URL{}, ErrOpaque
	}

	out := URL{
		Scheme:   strings.ToLower(u.Scheme),
		Path:     u.EscapedPath(),
		RawQuery: u.RawQuery,
	}
	if u.User != nil {
		out.User = u.User.String()
	}

	out.Port = u.Port()
	if isDefaultPort(out.Scheme, out.Port) {
		out.Port = ""
	}
	out.Subdomain, out.Domain, out.TLD = splitHost(strings.ToLower(u.Hostname()))

	return out, nil
}

// Normalize canonicalizes raw. A missing scheme becomes "http". When raw
// has no host and base is given, raw is resolved against base and inherits
// its scheme, host labels and port. A protocol-relative raw ("//host/path")
// takes only the scheme of base. Normalizing an already normalized URL
// without a base returns it unchanged.
func Normalize(raw, base string) (string, error) {
	u, err := Parse(raw)
	if err != nil {
		return "", err
	}

	protocolRelative := strings.HasPrefix(strings.TrimSpace(raw), "//")
	if base != "" && (!u.HasHost() || (protocolRelative && u.Scheme == "")) {
		b, err := Parse(base)
		if err != nil {
			return "", fmt.Errorf("could not parse base URL: %w", err)
		}
		switch {
		case !b.HasHost():
		case u.HasHost():
			u.Scheme = b.Scheme
			if isDefaultPort(u.Scheme, u.Port) {
				u.Port = ""
			}
		default:
			u, err = resolve(b, u)
			if err != nil {
				return "", err
			}
		}
	}

	if u.Scheme == "" {
		u.Scheme = DefaultScheme
	}
	return u.String(), nil
}

// resolve applies RFC 3986 reference resolution to the path and query of ref
func resolve(base, ref URL) (URL, error) {
	out := base
	if ref.Scheme != "" {
		out.Scheme = ref.Scheme
	}

	basePath := base.Path
	if basePath == "" {
		basePath = "/"
	}
	bu, err := url.Parse(basePath + querySuffix(base.RawQuery))
	if err != nil {
		return URL{}, fmt.Errorf("could not parse base path: %w", err)
	}
	ru, err := url.Parse(ref.Path + querySuffix(ref.RawQuery))
	if err != nil {
		return URL{}, fmt.Errorf("could not parse relative reference: %w", err)
	}

	resolved := bu.ResolveReference(ru)
	out.Path = resolved.EscapedPath()
	out.RawQuery = resolved.RawQuery
	return out, nil
}

func querySuffix(q string) string {
	if q == "" {
		return ""
	}
	return "?" + q
}

func splitHost(host string) (subdomain, domain, tld string) {
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return "", "", ""
	}
	if net.ParseIP(host) != nil || !strings.Contains(host, ".") {
		return "", host, ""
	}

	suffix, _ := publicsuffix.PublicSuffix(host)
	if suffix == host {
		return "", host, ""
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", host, ""
	}

	domain = strings.TrimSuffix(registrable, "."+suffix)
	subdomain = strings.TrimSuffix(strings.TrimSuffix(host, registrable), ".")
	return subdomain, domain, suffix
}

func hasScheme(raw string) bool {
	i := strings.Index(raw, "://")
	return i > 0 && !strings.ContainsAny(raw[:i], "/?#")
}

func firstSegment(raw string) string {
	if i := strings.IndexAny(raw, "/?#"); i >= 0 {
		return raw[:i]
	}
	return raw
}

// looksLikeHost reports whether a schemeless first segment is a host name
// rather than a relative file name such as "feed.xml" or "rss.php"
func looksLikeHost(segment string) bool {
	if segment == "" || strings.HasPrefix(segment, ".") || strings.ContainsAny(segment, "@\\") {
		return false
	}

	host := segment
	if h, port, err := net.SplitHostPort(segment); err == nil {
		if !isDigits(port) {
			return false
		}
		host = h
	} else if strings.Contains(segment, ":") {
		return false
	}

	host = strings.ToLower(host)
	if host == "localhost" || net.ParseIP(host) != nil {
		return true
	}
	if !strings.Contains(host, ".") {
		return false
	}

	suffix, icann := publicsuffix.PublicSuffix(host)
	if suffix == host {
		return false
	}
	return icann || strings.Contains(suffix, ".")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isDefaultPort(scheme, port string) bool {
	return (scheme == "http" && port == "80") || (scheme == "https" && port == "443")
}
