package safefetch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// newPinnedClient builds a client for a single hop. The transport never
// resolves the request host itself: it dials only the addresses that were
// classified during validation, so a DNS answer that changes between the
// check and the connect is never consulted. TLS still verifies against the
// original hostname.
func newPinnedClient(c *Candidate, dialer Dialer, timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:                  nil,
		DialContext:            pinnedDial(c.Addrs, dialer),
		DisableKeepAlives:      true,
		MaxResponseHeaderBytes: 64 << 10,
		TLSHandshakeTimeout:    timeout,
		ResponseHeaderTimeout:  timeout,
		ExpectContinueTimeout:  1 * time.Second,
		ForceAttemptHTTP2:      true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func pinnedDial(addrs []net.IP, dialer Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		_, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}
		if len(addrs) == 0 {
			return nil, errors.New("no validated address to dial")
		}
		var lastErr error
		for _, ip := range addrs {
			// Re-check at connect time; addresses only reach here through Validate.
			if ClassifyIP(ip).Blocked() {
				lastErr = fmt.Errorf("refusing to dial blocked address %s", ip)
				continue
			}
			conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip.String(), port))
			if err == nil {
				return conn, nil
			}
			lastErr = err
			if ctx.Err() != nil {
				break
			}
		}
		return nil, lastErr
	}
}
