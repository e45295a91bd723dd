// Package privacy masks personal data before it reaches the logs.
package privacy

import (
	"net"
	"net/netip"
	"strings"
)

// MaskEmail keeps the first character of the local part and the domain:
// "alice@uwaterloo.ca" becomes "a***@uwaterloo.ca". Anything without an @
// is fully masked.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return "***"
	}
	first := []rune(local)[0]
	return string(first) + "***@" + domain
}

// AnonymizeAddr truncates a remote address (with or without port) to its
// network: /24 for IPv4, /48 for IPv6.
func AnonymizeAddr(addr string) string {
	if addr == "" {
		return "unknown"
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return "invalid"
	}
	ip = ip.Unmap()
	bits := 48
	if ip.Is4() {
		bits = 24
	}
	prefix, err := ip.Prefix(bits)
	if err != nil {
		return "invalid"
	}
	return prefix.Addr().String()
}
