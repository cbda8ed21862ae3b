// Package uploads stores listing photos on local disk. Stored files are
// addressed by bare file name relative to the store directory.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/crucial707/staybook/internal/apperr"
	"github.com/crucial707/staybook/internal/metrics"
)

// Store writes uploaded photos into Dir.
type Store struct {
	Dir          string
	MaxBytes     int64
	FetchTimeout time.Duration
	Client       *http.Client

	now func() time.Time
}

func NewStore(dir string, maxBytes int64, fetchTimeout time.Duration) *Store {
	return &Store{
		Dir:          dir,
		MaxBytes:     maxBytes,
		FetchTimeout: fetchTimeout,
		Client:       &http.Client{},
		now:          time.Now,
	}
}

// Init creates the upload directory if needed.
func (s *Store) Init() error {
	return os.MkdirAll(s.Dir, 0o755)
}

// SaveFromLink downloads link and stores it as photo<unix-millis>.jpg.
func (s *Store) SaveFromLink(ctx context.Context, link string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", apperr.Validation("validation failed", map[string]string{"link": "must be an absolute http(s) URL"})
	}

	if s.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.FetchTimeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", apperr.Internal(err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return "", apperr.Internal(oops.With("link", u.String()).Wrap(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", apperr.Validation("could not download image", map[string]string{
			"link": fmt.Sprintf("upstream responded %d", resp.StatusCode),
		})
	}

	name := fmt.Sprintf("photo%d.jpg", s.now().UnixMilli())
	if err := s.write(name, resp.Body); err != nil {
		return "", err
	}
	metrics.AddUploadsStored("link", 1)
	return name, nil
}

// SaveMultipart stores every file header, keeping each file's original extension.
func (s *Store) SaveMultipart(files []*multipart.FileHeader) ([]string, error) {
	names := make([]string, 0, len(files))
	for _, fh := range files {
		if s.MaxBytes > 0 && fh.Size > s.MaxBytes {
			return nil, apperr.Validation("validation failed", map[string]string{
				"photos": fmt.Sprintf("%s exceeds %d bytes", fh.Filename, s.MaxBytes),
			})
		}
		f, err := fh.Open()
		if err != nil {
			return nil, apperr.Internal(err)
		}
		name := ulid.Make().String() + extension(fh.Filename)
		err = s.write(name, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	metrics.AddUploadsStored("device", len(names))
	return names, nil
}

var errTooLarge = errors.New("file too large")

func (s *Store) write(name string, r io.Reader) error {
	path := filepath.Join(s.Dir, name)
	out, err := os.Create(path)
	if err != nil {
		return apperr.Internal(oops.With("path", path).Wrap(err))
	}

	src := r
	if s.MaxBytes > 0 {
		src = io.LimitReader(r, s.MaxBytes+1)
	}
	n, err := io.Copy(out, src)
	if err == nil && s.MaxBytes > 0 && n > s.MaxBytes {
		err = errTooLarge
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		if errors.Is(err, errTooLarge) {
			return apperr.Validation("validation failed", map[string]string{"photos": fmt.Sprintf("file exceeds %d bytes", s.MaxBytes)})
		}
		return apperr.Internal(oops.With("path", path).Wrap(err))
	}
	return nil
}

// extension returns the lowercase extension of name including the dot, or "".
// Anything that is not a short alphanumeric suffix is dropped.
func extension(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if len(ext) < 2 || len(ext) > 6 {
		return ""
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return ""
		}
	}
	return ext
}
