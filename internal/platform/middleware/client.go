package middleware

import (
	"strings"

	"github.com/mssola/useragent"
)

// ClientLabel turns a User-Agent string into "Browser on OS"
// (e.g. "Chrome on macOS"). Mobile clients report their platform instead.
func ClientLabel(userAgent string) string {
	if userAgent == "" {
		return "Unknown Client"
	}

	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	os := ua.OS()

	if ua.Mobile() {
		if platform := ua.Platform(); platform != "" {
			return strings.TrimSpace(browser + " on " + platform)
		}
	}
	if browser == "" {
		browser = "Unknown Browser"
	}
	if os == "" {
		os = "Unknown OS"
	}
	return strings.TrimSpace(browser + " on " + os)
}
