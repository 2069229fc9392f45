package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc builds the transport proxy callback for the snapshot
// fetcher. With no explicit proxy URLs configured it defers to the
// standard environment variables. Hosts listed in noProxy (comma
// separated; an entry matches the host itself and its subdomains) connect
// directly.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	bypass := parseNoProxy(noProxy)

	return func(req *http.Request) (*url.URL, error) {
		host := req.URL.Hostname()
		for _, entry := range bypass {
			if host == entry || strings.HasSuffix(host, "."+entry) {
				return nil, nil
			}
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

func parseNoProxy(noProxy string) []string {
	var entries []string
	for _, raw := range strings.Split(noProxy, ",") {
		entry := strings.TrimPrefix(strings.TrimSpace(raw), ".")
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}
