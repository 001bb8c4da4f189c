// Package fetcher fetches full article bodies for content enhancement.
// Feed entries often carry only a teaser paragraph; when the content is
// below a configured threshold the article's URL is fetched and the body
// extracted with the Readability algorithm so the classifier and
// summarizer work on real prose.
package fetcher

import (
	"fmt"
	"net"
	"net/url"
)

// validateURL validates a URL before any HTTP request is made. Only
// http/https schemes are accepted, and when denyPrivateIPs is set the
// hostname is resolved and rejected if any address is loopback, private,
// or link-local. Article URLs come from external feeds, so every one is
// treated as attacker-controlled.
func validateURL(urlStr string, denyPrivateIPs bool) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%w: parse error: %v", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme '%s' not allowed (only http/https)", ErrInvalidURL, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("%w: empty hostname", ErrInvalidURL)
	}

	if !denyPrivateIPs {
		return nil
	}

	ips, err := net.LookupIP(hostname)
	if err != nil {
		return fmt.Errorf("%w: DNS lookup failed for %s: %v", ErrInvalidURL, hostname, err)
	}

	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("%w: hostname '%s' resolves to private IP %s", ErrPrivateIP, hostname, ip.String())
		}
	}

	return nil
}

// isPrivateIP reports whether ip is loopback, private, or link-local.
// Covers both IPv4 (127.0.0.0/8, 10.0.0.0/8, 172.16.0.0/12,
// 192.168.0.0/16, 169.254.0.0/16) and IPv6 (::1, fc00::/7, fe80::/10).
func isPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() {
		return true
	}

	if ip.IsPrivate() {
		return true
	}

	if ip.IsLinkLocalUnicast() {
		return true
	}

	return false
}
