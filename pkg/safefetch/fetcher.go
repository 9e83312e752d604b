package safefetch

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// Fetcher performs bounded GET requests against validated URLs, following
// redirects manually so every hop is validated from scratch.
type Fetcher struct {
	validator *Validator
	opts      Options
	logger    zerolog.Logger
}

func NewFetcher(opts Options) *Fetcher {
	opts = opts.withDefaults()
	return &Fetcher{
		validator: NewValidator(opts.Resolver),
		opts:      opts,
		logger:    opts.Logger.With().Str("component", "safefetch").Logger(),
	}
}

// Validator exposes the validator used for each hop.
func (f *Fetcher) Validator() *Validator {
	return f.validator
}

// MaxBytes is the body size cap applied by Download.
func (f *Fetcher) MaxBytes() int64 {
	return f.opts.MaxBytes
}

// Fetch returns the first non-redirect response reached from rawURL. The
// caller owns the response body. Status, content type and size are not
// judged here.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*http.Response, error) {
	visited := make(map[string]struct{})
	remaining := f.opts.MaxRedirects
	current := rawURL

	for {
		cand, err := f.validator.Validate(ctx, current)
		if err != nil {
			return nil, err
		}

		key := hopKey(cand.URL)
		if _, seen := visited[key]; seen {
			return nil, reject(ReasonRedirectLoop, key, "")
		}
		visited[key] = struct{}{}

		resp, err := f.do(ctx, cand)
		if err != nil {
			return nil, err
		}
		if !isRedirect(resp.StatusCode) {
			return resp, nil
		}

		location := resp.Header.Get("Location")
		resp.Body.Close()

		if remaining <= 0 {
			return nil, reject(ReasonRedirectLimit, key, "")
		}
		if strings.TrimSpace(location) == "" {
			return nil, reject(ReasonRedirectMissing, key, "")
		}
		next, err := cand.URL.Parse(location)
		if err != nil {
			return nil, rejectErr(ReasonInvalidURL, location, err)
		}

		f.logger.Debug().
			Str("from", key).
			Str("to", next.String()).
			Int("status", resp.StatusCode).
			Int("remaining", remaining-1).
			Msg("Following redirect")

		current = next.String()
		remaining--
	}
}

func (f *Fetcher) do(ctx context.Context, cand *Candidate) (*http.Response, error) {
	target := cand.URL.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, rejectErr(ReasonInvalidURL, target, err)
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "image/avif,image/webp,image/png,image/gif,image/jpeg;q=0.9,*/*;q=0.1")

	client := newPinnedClient(cand, f.opts.Dialer, f.opts.Timeout)
	resp, err := client.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, rejectErr(ReasonTimeout, target, err)
		}
		return nil, rejectErr(ReasonFetchFailed, target, err)
	}
	return resp, nil
}

// hopKey identifies a request for loop detection. The fragment never reaches
// the server, so it is dropped.
func hopKey(u *url.URL) string {
	k := *u
	k.Fragment = ""
	k.RawFragment = ""
	return k.String()
}

func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
