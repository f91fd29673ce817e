package services

import (
	"net/url"
	"strings"
)

// DomainRoot returns the last two dot-separated labels of the URL's host,
// lower-cased. A single-label host is returned as-is. It reports false when
// the URL cannot be parsed or carries no host.
func DomainRoot(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", false
	}
	parts := strings.Split(host, ".")
	if len(parts) >= 2 {
		return strings.Join(parts[len(parts)-2:], "."), true
	}
	return host, true
}
