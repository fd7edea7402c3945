package http

import (
	"net/http"
	"strings"
)

// ParseSetCookies collects name/value pairs from every Set-Cookie header.
// Attributes after the first ";" are ignored. The value is everything after
// the first "=", so values may themselves contain "=". Later headers win.
func ParseSetCookies(header http.Header) map[string]string {
	cookies := make(map[string]string)

	for name, lines := range header {
		if !strings.EqualFold(name, "Set-Cookie") {
			continue
		}

		for _, line := range lines {
			cookieName, value, ok := parseSetCookie(line)
			if ok {
				cookies[cookieName] = value
			}
		}
	}

	return cookies
}

func parseSetCookie(line string) (string, string, bool) {
	pair, _, _ := strings.Cut(strings.TrimLeft(line, " \t"), ";")

	name, value, _ := strings.Cut(pair, "=")
	if name == "" {
		return "", "", false
	}

	return name, value, true
}
