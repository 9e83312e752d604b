package safefetch

import (
	"net"
	"net/netip"
	"strconv"
	"strings"
)

// Classification is the outcome of checking an address against the blocked
// address space. Unparseable input is never treated as public.
type Classification int

const (
	Public Classification = iota
	Private
	Unparseable
)

func (c Classification) String() string {
	switch c {
	case Public:
		return "public"
	case Private:
		return "private"
	default:
		return "unparseable"
	}
}

// Blocked reports whether a fetch to an address with this classification
// must be refused.
func (c Classification) Blocked() bool {
	return c != Public
}

// ClassifyIPv4 classifies a dotted-quad IPv4 string. Anything other than
// exactly four decimal octets in 0-255 is Unparseable.
func ClassifyIPv4(s string) Classification {
	octets, ok := parseDottedQuad(s)
	if !ok {
		return Unparseable
	}
	if privateIPv4(octets) {
		return Private
	}
	return Public
}

// IsPrivateIPv4 is ClassifyIPv4 collapsed to a boolean.
func IsPrivateIPv4(s string) bool {
	return ClassifyIPv4(s).Blocked()
}

// ClassifyIPv6 classifies an IPv6 string. IPv4-mapped, IPv4-compatible and
// NAT64 addresses are judged by their embedded IPv4 address.
func ClassifyIPv6(s string) Classification {
	addr, err := netip.ParseAddr(s)
	if err != nil || addr.Zone() != "" {
		return Unparseable
	}
	if addr.Is4() {
		// Plain dotted quads are not IPv6.
		return Unparseable
	}
	if addr.Is4In6() {
		return ClassifyIPv4(addr.Unmap().String())
	}
	if addr.IsLoopback() || addr.IsUnspecified() {
		return Private
	}
	for _, p := range privateIPv6Prefixes {
		if p.Contains(addr) {
			return Private
		}
	}
	if nat64Prefix.Contains(addr) || v4CompatPrefix.Contains(addr) {
		return ClassifyIPv4(embeddedIPv4(addr).String())
	}
	return Public
}

func embeddedIPv4(addr netip.Addr) netip.Addr {
	b := addr.As16()
	return netip.AddrFrom4([4]byte{b[12], b[13], b[14], b[15]})
}

// IsPrivateIPv6 is ClassifyIPv6 collapsed to a boolean.
func IsPrivateIPv6(s string) bool {
	return ClassifyIPv6(s).Blocked()
}

// ClassifyIP classifies a resolved address.
func ClassifyIP(ip net.IP) Classification {
	if ip == nil {
		return Unparseable
	}
	// net.IP stores IPv4 and IPv4-mapped addresses the same way.
	if v4 := ip.To4(); v4 != nil {
		return ClassifyIPv4(v4.String())
	}
	if len(ip) != net.IPv6len {
		return Unparseable
	}
	return ClassifyIPv6(ip.String())
}

var (
	privateIPv6Prefixes = []netip.Prefix{
		netip.MustParsePrefix("fc00::/7"),
		netip.MustParsePrefix("fe80::/10"),
		netip.MustParsePrefix("ff00::/8"),
		netip.MustParsePrefix("fec0::/10"),
	}
	nat64Prefix    = netip.MustParsePrefix("64:ff9b::/96")
	v4CompatPrefix = netip.MustParsePrefix("::/96")
)

func privateIPv4(o [4]int) bool {
	a, b, c := o[0], o[1], o[2]
	switch {
	case a == 0, a == 10, a == 127:
		return true
	case a == 169 && b == 254:
		return true
	case a == 172 && b >= 16 && b <= 31:
		return true
	case a == 192 && b == 168:
		return true
	case a == 100 && b >= 64 && b <= 127:
		return true
	case a == 192 && b == 0 && (c == 0 || c == 2):
		return true
	case a == 198 && (b == 18 || b == 19):
		return true
	case a == 198 && b == 51 && (c == 0 || c == 100):
		return true
	case a == 203 && b == 0 && (c == 0 || c == 113):
		return true
	case a >= 224:
		return true
	}
	return false
}

func parseDottedQuad(s string) ([4]int, bool) {
	var out [4]int
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return out, false
	}
	for i, p := range parts {
		if p == "" || len(p) > 3 {
			return out, false
		}
		// Leading zeros are octal to some resolvers.
		if len(p) > 1 && p[0] == '0' {
			return out, false
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return out, false
			}
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return out, false
		}
		out[i] = n
	}
	return out, true
}
