package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Unknown is reported when no address can be extracted from the request.
const Unknown = "unknown"

// FromRequest extracts the client IP best-effort: X-Forwarded-For first
// (first entry when the header carries a chain), then X-Real-IP, then
// RemoteAddr. Returns Unknown when nothing usable is present.
func FromRequest(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(ips[0]); ip != "" {
			return ip
		}
	}

	realIP := strings.TrimSpace(r.Header.Get("X-Real-IP"))
	if realIP != "" {
		return realIP
	}

	if r.RemoteAddr == "" {
		return Unknown
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return strings.TrimSpace(host)
}

// UserAgent returns the request's User-Agent, or Unknown when absent.
func UserAgent(r *http.Request) string {
	ua := strings.TrimSpace(r.Header.Get("User-Agent"))
	if ua == "" {
		return Unknown
	}
	return ua
}
