package thumbs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"bibyaml/src/internal/httpx"
	"bibyaml/src/internal/sanitize"
)

var (
	// ErrStatus is returned when the server answers with anything but 200.
	ErrStatus = errors.New("unexpected http status")
	// ErrNotImage is returned when neither the content type nor the URL
	// extension identifies an image.
	ErrNotImage = errors.New("not an image")
)

// Fetcher probes and downloads remote images into a filesystem.
type Fetcher struct {
	Client  httpx.Doer
	Fs      afero.Fs
	Timeout time.Duration
}

// New returns a Fetcher. A nil client gets a plain http.Client; a nil fs writes
// to the OS filesystem.
func New(client httpx.Doer, fs afero.Fs, timeout time.Duration) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Fetcher{Client: client, Fs: fs, Timeout: timeout}
}

func (f *Fetcher) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, f.Timeout)
}

// Probe issues a HEAD request and returns the reported content type. Any
// failure, including a non-200 answer, yields "".
func (f *Fetcher) Probe(ctx context.Context, url string) string {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()
	req, err := httpx.NewRequest(ctx, http.MethodHead, url)
	if err != nil {
		return ""
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return ""
	}
	defer httpx.Drain(resp)
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	return resp.Header.Get("Content-Type")
}

// GuessExt picks the extension for a download: the probed content type first,
// then the URL path, then DefaultExt.
func (f *Fetcher) GuessExt(ctx context.Context, url string) string {
	if ext := ExtFromContentType(f.Probe(ctx, url)); ext != "" {
		return ext
	}
	if ext := ExtFromURL(url); ext != "" {
		return ext
	}
	return DefaultExt
}

// Download fetches url and stores the body at dest. The body goes to a
// temporary file in the same directory first, so a failed transfer never
// leaves a truncated image behind.
func (f *Fetcher) Download(ctx context.Context, url, dest string) error {
	ctx, cancel := f.withTimeout(ctx)
	defer cancel()
	req, err := httpx.NewRequest(ctx, http.MethodGet, url)
	if err != nil {
		return err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer httpx.Drain(resp)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}
	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.HasPrefix(ct, "image/") && !IsImageExt(sanitize.URLExt(url)) {
		return fmt.Errorf("%w: content-type %q", ErrNotImage, ct)
	}
	return f.save(resp.Body, dest)
}

func (f *Fetcher) save(r io.Reader, dest string) error {
	tmp, err := afero.TempFile(f.Fs, filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = f.Fs.Remove(name)
		return fmt.Errorf("write %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		_ = f.Fs.Remove(name)
		return err
	}
	if err := f.Fs.Rename(name, dest); err != nil {
		_ = f.Fs.Remove(name)
		return err
	}
	return nil
}
