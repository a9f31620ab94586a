package sanitize

import (
	"net/url"
	"path"
	"strings"
)

// HTTPURL reports whether raw is an absolute http/https URL with a host.
func HTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// URLExt returns the extension of the URL path, including the leading dot.
// Query strings and fragments are ignored.
func URLExt(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return path.Ext(u.Path)
}

// Basename returns the last "/"-separated segment of p. A trailing slash
// yields "".
func Basename(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// StripExt drops the last extension of a file name; names without a dot are
// returned unchanged.
func StripExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}
