package util

import (
	"net/url"
	"strings"
)

// RegistrableDomain extracts the host from a URL with any www. prefix
// stripped. Returns "" for unparseable or host-less input.
func RegistrableDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := parsed.Hostname()
	if host == "" {
		// Tolerate bare "example.com" without a scheme
		host = strings.Split(rawURL, "/")[0]
		if !strings.Contains(host, ".") {
			return ""
		}
	}
	return strings.TrimPrefix(host, "www.")
}
