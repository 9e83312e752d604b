package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidScope     = errors.New("invalid scope")
	ErrScopeNotAllowed  = errors.New("scope not allowed")
	ErrInvalidExtension = errors.New("invalid extension")
	ErrOutsideRoot      = errors.New("path escapes upload root")
)

var scopePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// StorageError records the operation and relative path of a failed write.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// SavedFile describes a persisted upload.
type SavedFile struct {
	Path string // slash-separated, relative to the upload root
	URL  string
	Size int64
}

// LocalStore writes uploads below a root directory as
// <scope>/<yyyy>/<mm>/<uuid><ext>.
type LocalStore struct {
	root    string
	baseURL string
	scopes  map[string]bool
	now     func() time.Time
}

// NewLocalStore creates root if needed. An empty scope list allows every
// well-formed scope.
func NewLocalStore(root, baseURL string, scopes []string) (*LocalStore, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(absRoot, 0755); err != nil {
		return nil, &StorageError{Op: "init", Path: root, Err: err}
	}

	allowed := make(map[string]bool, len(scopes))
	for _, s := range scopes {
		allowed[strings.ToLower(strings.TrimSpace(s))] = true
	}

	return &LocalStore{
		root:    absRoot,
		baseURL: strings.TrimRight(baseURL, "/"),
		scopes:  allowed,
		now:     time.Now,
	}, nil
}

// Root is the absolute upload directory.
func (s *LocalStore) Root() string {
	return s.root
}

// CheckScope reports whether scope is well formed and allowed.
func (s *LocalStore) CheckScope(scope string) error {
	if !scopePattern.MatchString(scope) {
		return ErrInvalidScope
	}
	if len(s.scopes) > 0 && !s.scopes[scope] {
		return ErrScopeNotAllowed
	}
	return nil
}

// Save writes data under scope. The file appears under its final name only
// once fully written.
func (s *LocalStore) Save(ctx context.Context, scope, ext string, data []byte) (*SavedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.CheckScope(scope); err != nil {
		return nil, err
	}
	if !allowedExtensions[ext] {
		return nil, ErrInvalidExtension
	}

	now := s.now()
	rel := path.Join(scope, now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if !isPathUnderRoot(s.root, full) {
		return nil, &StorageError{Op: "save", Path: rel, Err: ErrOutsideRoot}
	}

	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &StorageError{Op: "save", Path: rel, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return nil, &StorageError{Op: "save", Path: rel, Err: err}
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return nil, &StorageError{Op: "save", Path: rel, Err: err}
	}
	if err := tmp.Chmod(0644); err != nil {
		cleanup()
		return nil, &StorageError{Op: "save", Path: rel, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return nil, &StorageError{Op: "save", Path: rel, Err: err}
	}
	if err := os.Rename(tmpName, full); err != nil {
		os.Remove(tmpName)
		return nil, &StorageError{Op: "save", Path: rel, Err: err}
	}

	return &SavedFile{
		Path: rel,
		URL:  s.baseURL + "/" + rel,
		Size: int64(len(data)),
	}, nil
}

func isPathUnderRoot(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
