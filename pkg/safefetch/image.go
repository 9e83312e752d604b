package safefetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Image is an accepted download.
type Image struct {
	Data        []byte
	ContentType string
	Extension   string
	FinalURL    string
}

// Download fetches rawURL and applies the image acceptance policy. The whole
// chain, body included, runs under the configured timeout; a body cut short
// by the deadline is discarded.
func (f *Fetcher) Download(ctx context.Context, rawURL string) (*Image, error) {
	ctx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	defer cancel()

	resp, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	finalURL := resp.Request.URL.String()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, reject(ReasonBadStatus, finalURL, resp.Status)
	}

	contentType, err := CheckContentType(resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, withURL(err, finalURL)
	}

	if resp.ContentLength > f.opts.MaxBytes {
		return nil, reject(ReasonTooLarge, finalURL, fmt.Sprintf("declared %d bytes", resp.ContentLength))
	}

	data, err := ReadLimited(resp.Body, f.opts.MaxBytes)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, rejectErr(ReasonTimeout, finalURL, err)
		}
		return nil, withURL(err, finalURL)
	}

	if err := CheckSniffed(data); err != nil {
		return nil, withURL(err, finalURL)
	}

	return &Image{
		Data:        data,
		ContentType: contentType,
		Extension:   ExtensionFor(contentType),
		FinalURL:    finalURL,
	}, nil
}

// CheckContentType accepts image/* media types other than SVG and returns the
// bare media type.
func CheckContentType(header string) (string, error) {
	mediaType := strings.ToLower(strings.TrimSpace(header))
	if parsed, _, err := mime.ParseMediaType(header); err == nil {
		mediaType = parsed
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return "", reject(ReasonUnsupportedContentType, "", "content type "+quoteOrEmpty(header))
	}
	if strings.Contains(mediaType, "svg") {
		return "", reject(ReasonUnsupportedContentType, "", "svg is not accepted")
	}
	return mediaType, nil
}

// ReadLimited buffers r and fails once more than max bytes arrive, whatever
// Content-Length claimed.
func ReadLimited(r io.Reader, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, rejectErr(ReasonFetchFailed, "", err)
	}
	if int64(len(data)) > max {
		return nil, reject(ReasonTooLarge, "", fmt.Sprintf("body exceeds %d bytes", max))
	}
	return data, nil
}

// CheckSniffed rejects bodies whose magic bytes are not an image, or are SVG,
// regardless of the declared content type.
func CheckSniffed(data []byte) error {
	detected := mimetype.Detect(data)
	if detected.Is("image/svg+xml") {
		return reject(ReasonUnsupportedContentType, "", "body sniffed as svg")
	}
	if !strings.HasPrefix(detected.String(), "image/") {
		return reject(ReasonUnsupportedContentType, "", "body sniffed as "+detected.String())
	}
	return nil
}

// ExtensionFor maps an accepted image media type to a file extension.
// Unknown subtypes fall back to .jpg.
func ExtensionFor(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return ".png"
	case strings.Contains(contentType, "gif"):
		return ".gif"
	case strings.Contains(contentType, "webp"):
		return ".webp"
	default:
		return ".jpg"
	}
}

func withURL(err error, u string) error {
	if rej, ok := err.(*RejectionError); ok && rej.URL == "" {
		rej.URL = u
	}
	return err
}

func quoteOrEmpty(s string) string {
	if s == "" {
		return "<empty>"
	}
	return fmt.Sprintf("%q", s)
}
