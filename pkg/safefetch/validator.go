package safefetch

import (
	"context"
	"net"
	"net/url"
	"strings"
)

// Candidate is a URL that passed validation together with the addresses it
// is allowed to be fetched from.
type Candidate struct {
	URL   *url.URL
	Addrs []net.IP
}

// Validator decides whether an attacker-supplied URL may be fetched.
type Validator struct {
	resolver Resolver
}

func NewValidator(resolver Resolver) *Validator {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	return &Validator{resolver: resolver}
}

// Validate parses rawURL and checks it against the scheme, credential, host
// and address rules. For DNS names every resolved address must be public.
func (v *Validator) Validate(ctx context.Context, rawURL string) (*Candidate, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, rejectErr(ReasonInvalidURL, rawURL, err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, reject(ReasonInvalidProtocol, rawURL, "scheme "+u.Scheme)
	}
	u.Scheme = scheme

	if u.User != nil {
		return nil, reject(ReasonInvalidCredentials, rawURL, "")
	}

	host, err := normalizeHost(u.Hostname())
	if err != nil {
		return nil, rejectErr(ReasonInvalidURL, rawURL, err)
	}
	if host == "" {
		return nil, reject(ReasonInvalidURL, rawURL, "missing host")
	}
	if isBlockedHostname(host) {
		return nil, reject(ReasonBlockedHost, rawURL, host)
	}

	if strings.Contains(host, ":") {
		if c := ClassifyIPv6(host); c.Blocked() {
			return nil, reject(ReasonPrivateIP, rawURL, host+" is "+c.String())
		}
		return &Candidate{URL: u, Addrs: []net.IP{net.ParseIP(host)}}, nil
	}
	if looksNumeric(host) {
		if c := ClassifyIPv4(host); c.Blocked() {
			return nil, reject(ReasonPrivateIP, rawURL, host+" is "+c.String())
		}
		return &Candidate{URL: u, Addrs: []net.IP{net.ParseIP(host)}}, nil
	}

	addrs, err := v.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		if ctx.Err() != nil {
			return nil, rejectErr(ReasonTimeout, rawURL, ctx.Err())
		}
		return nil, rejectErr(ReasonDNSNotFound, rawURL, err)
	}
	if len(addrs) == 0 {
		return nil, reject(ReasonDNSNotFound, rawURL, host)
	}

	ips := make([]net.IP, 0, len(addrs))
	for _, a := range addrs {
		if c := ClassifyIP(a.IP); c.Blocked() {
			return nil, reject(ReasonPrivateIP, rawURL, host+" resolves to "+c.String()+" address "+a.IP.String())
		}
		ips = append(ips, a.IP)
	}
	return &Candidate{URL: u, Addrs: ips}, nil
}
