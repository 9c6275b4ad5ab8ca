package crawl

import (
	"net/url"
	"strings"

	"github.com/jmwsk/sitechat"
)

// NormalizeURL canonicalizes a URL for deduplication and fetching: the
// fragment is stripped, the host is lowercased, and a trailing slash is
// folded so /docs and /docs/ count as one page. The query is preserved.
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", sitechat.Errorf(sitechat.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", sitechat.Errorf(sitechat.EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", sitechat.Errorf(sitechat.EINVALID, "URL %q has no host", rawURL)
	}

	u.Fragment = ""
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		// The site root with and without a slash is the same page.
		u.Path = "/"
	}
	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String(), nil
}

// SameHost reports whether two URLs share a host. Invalid URLs never match.
func SameHost(a, b string) bool {
	ua, err := url.Parse(a)
	if err != nil {
		return false
	}
	ub, err := url.Parse(b)
	if err != nil {
		return false
	}
	return ua.Host != "" && strings.EqualFold(ua.Host, ub.Host)
}
