package safefetch

import (
	"context"
	"net"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultTimeout      = 8 * time.Second
	DefaultMaxRedirects = 3
	DefaultMaxBytes     = 5 << 20
	DefaultUserAgent    = "imagefetch-api/1.0 (+external-image-import)"
)

// Resolver looks up every address for a host. *net.Resolver satisfies it.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// Dialer opens the connection to an already validated address.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// DialFunc adapts a function to Dialer.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

func (f DialFunc) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	return f(ctx, network, address)
}

// Options tunes a Fetcher. Zero values fall back to the defaults above.
type Options struct {
	Timeout      time.Duration
	MaxRedirects int
	MaxBytes     int64
	UserAgent    string
	Resolver     Resolver
	Dialer       Dialer
	Logger       zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	// A negative budget disables redirects entirely.
	switch {
	case o.MaxRedirects == 0:
		o.MaxRedirects = DefaultMaxRedirects
	case o.MaxRedirects < 0:
		o.MaxRedirects = 0
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.Resolver == nil {
		o.Resolver = net.DefaultResolver
	}
	if o.Dialer == nil {
		o.Dialer = &net.Dialer{
			Timeout:   o.Timeout,
			KeepAlive: -1,
		}
	}
	return o
}
