package httpx

import (
	"context"
	"io"
	"net/http"
)

// Doer sends a request. *http.Client satisfies it; tests swap in their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ChromeUA is sent on every image request. Several CDNs answer 403 to
// anything that does not look like a browser.
const ChromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// SetUA stamps req with ChromeUA. A nil request is ignored.
func SetUA(req *http.Request) {
	if req != nil {
		req.Header.Set("User-Agent", ChromeUA)
	}
}

// NewRequest builds a request carrying ChromeUA and an image-friendly Accept header.
func NewRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	SetUA(req)
	req.Header.Set("Accept", "image/*,*/*;q=0.8")
	return req, nil
}

// Drain discards what is left of a response body and closes it so the
// connection can be reused.
func Drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
