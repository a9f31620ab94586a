package thumbs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bibyaml/src/internal/httpx"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake")

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/cover", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != httpx.ChromeUA {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBytes)
	})
	mux.HandleFunc("/octet.webp", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("RIFF"))
	})
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	})
	mux.HandleFunc("/nohead.gif", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "image/gif")
		_, _ = w.Write([]byte("GIF89a"))
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGuessExt(t *testing.T) {
	srv := imageServer(t)
	f := New(srv.Client(), afero.NewMemMapFs(), time.Second)
	ctx := context.Background()

	assert.Equal(t, ".png", f.GuessExt(ctx, srv.URL+"/cover"))
	assert.Equal(t, ".gif", f.GuessExt(ctx, srv.URL+"/nohead.gif"), "falls back to url extension")
	assert.Equal(t, ".webp", f.GuessExt(ctx, srv.URL+"/octet.webp"))
	assert.Equal(t, DefaultExt, f.GuessExt(ctx, srv.URL+"/page"))
	assert.Equal(t, DefaultExt, f.GuessExt(ctx, srv.URL+"/missing"))
}

func TestProbe_TimeoutIsSwallowed(t *testing.T) {
	srv := imageServer(t)
	f := New(srv.Client(), afero.NewMemMapFs(), 50*time.Millisecond)
	assert.Equal(t, "", f.Probe(context.Background(), srv.URL+"/slow"))
}

func TestDownload(t *testing.T) {
	srv := imageServer(t)
	fs := afero.NewMemMapFs()
	dir := "/out/thumbnail"
	require.NoError(t, fs.MkdirAll(dir, 0o755))
	f := New(srv.Client(), fs, time.Second)
	ctx := context.Background()

	dest := filepath.Join(dir, "smith_2020.png")
	require.NoError(t, f.Download(ctx, srv.URL+"/cover", dest))
	got, err := afero.ReadFile(fs, dest)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, got)

	require.NoError(t, f.Download(ctx, srv.URL+"/octet.webp", filepath.Join(dir, "x.webp")), "extension vouches for non-image content type")

	err = f.Download(ctx, srv.URL+"/page", filepath.Join(dir, "page.jpg"))
	assert.True(t, errors.Is(err, ErrNotImage), "got %v", err)

	err = f.Download(ctx, srv.URL+"/missing.png", filepath.Join(dir, "missing.png"))
	assert.True(t, errors.Is(err, ErrStatus), "got %v", err)

	err = f.Download(ctx, srv.URL+"/slow", filepath.Join(dir, "slow.jpg"))
	assert.Error(t, err)

	entries, err := afero.ReadDir(fs, dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"smith_2020.png", "x.webp"}, names, "failed downloads leave nothing behind")
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) { return nil, errors.New("dial tcp: refused") }

func TestDownload_NetworkError(t *testing.T) {
	f := New(failingDoer{}, afero.NewMemMapFs(), time.Second)
	assert.Error(t, f.Download(context.Background(), "https://img.example.com/a.png", "/t/a.png"))
	assert.Equal(t, DefaultExt, f.GuessExt(context.Background(), "https://img.example.com/a"))
	assert.Equal(t, ".png", f.GuessExt(context.Background(), "https://img.example.com/a.png"))
}
