package safefetch

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"
)

var blockedHostSuffixes = []string{".localhost", ".local", ".internal", ".lan"}

// hostProfile is idna.Lookup without the STD3 restriction, so names with
// underscores resolve. validHostASCII narrows the result back down.
var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.StrictDomainName(false),
)

// normalizeHost lowercases host, drops a trailing root dot and converts
// internationalized names to their ASCII form.
func normalizeHost(host string) (string, error) {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if host == "" || strings.Contains(host, ":") {
		return host, nil
	}
	ascii, err := hostProfile.ToASCII(host)
	if err != nil {
		return "", err
	}
	if !validHostASCII(ascii) {
		return "", fmt.Errorf("invalid host %q", ascii)
	}
	return ascii, nil
}

// validHostASCII allows letters, digits, '-', '_' and '.'.
func validHostASCII(host string) bool {
	for i := 0; i < len(host); i++ {
		c := host[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}

func isBlockedHostname(host string) bool {
	if host == "localhost" {
		return true
	}
	for _, suffix := range blockedHostSuffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

// looksNumeric reports whether host should be treated as an IPv4 literal.
// A name whose last label is a number (decimal, or 0x-prefixed hex) is never
// a DNS name, so shorthand forms like 2130706433 or 0x7f.1 land here and fail
// strict dotted-quad parsing.
func looksNumeric(host string) bool {
	last := host
	if i := strings.LastIndexByte(host, '.'); i >= 0 {
		last = host[i+1:]
	}
	if last == "" {
		return false
	}
	if strings.HasPrefix(last, "0x") {
		last = last[2:]
		for _, r := range last {
			if !strings.ContainsRune("0123456789abcdef", r) {
				return false
			}
		}
		return true
	}
	for _, r := range last {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
