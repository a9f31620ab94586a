// Package imagefield rewrites the "image" field of each record to a local
// thumbnail path, or clears it when no thumbnail can be produced.
package imagefield

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"bibyaml/src/internal/records"
	"bibyaml/src/internal/sanitize"
	"bibyaml/src/internal/slug"
	"bibyaml/src/internal/yamlnode"
)

// Field is the only key this package ever writes.
const Field = "image"

// Outcome classifies what happened to one record's image.
type Outcome string

const (
	Blank      Outcome = "blank"
	NotURL     Outcome = "not-url"
	NoSlug     Outcome = "no-slug"
	Downloaded Outcome = "downloaded"
	Failed     Outcome = "failed"
)

// Fetcher is the network side of resolution.
type Fetcher interface {
	GuessExt(ctx context.Context, url string) string
	Download(ctx context.Context, url, dest string) error
}

// Resolver turns image URLs into thumbnail paths. Dir is where files are
// written; RelDir is the prefix recorded in the document.
type Resolver struct {
	Fetcher Fetcher
	Dir     string
	RelDir  string
	Slug    func(*yaml.Node) string
	Log     *log.Logger
}

// New returns a Resolver using slug.For and a silent logger.
func New(f Fetcher, dir, relDir string) *Resolver {
	return &Resolver{
		Fetcher: f,
		Dir:     dir,
		RelDir:  strings.TrimRight(filepath.ToSlash(relDir), "/"),
		Slug:    slug.For,
		Log:     log.New(io.Discard, "", 0),
	}
}

// Resolve decides the new image value for rec without modifying it.
func (r *Resolver) Resolve(ctx context.Context, rec *yaml.Node) (string, Outcome) {
	raw, ok := yamlnode.Str(yamlnode.Lookup(rec, Field))
	url := strings.TrimSpace(raw)
	if !ok || url == "" {
		return "", Blank
	}
	if !sanitize.HTTPURL(url) {
		return "", NotURL
	}
	s := r.Slug(rec)
	if s == "" {
		return "", NoSlug
	}
	if strings.ContainsAny(s, `/\`) || s == "." || s == ".." {
		r.Log.Printf("%s: slug is not a plain file name", s)
		return "", Failed
	}
	name := s + r.Fetcher.GuessExt(ctx, url)
	if err := r.Fetcher.Download(ctx, url, filepath.Join(r.Dir, name)); err != nil {
		r.Log.Printf("%s: %s: %v", s, url, err)
		return "", Failed
	}
	return r.RelDir + "/" + name, Downloaded
}

// Report counts outcomes of one Apply run.
type Report map[Outcome]int

func (rep Report) String() string {
	return fmt.Sprintf("%d downloaded, %d failed, %d cleared (blank %d, not-url %d, no-slug %d)",
		rep[Downloaded], rep[Failed], rep[Blank]+rep[NotURL]+rep[NoSlug], rep[Blank], rep[NotURL], rep[NoSlug])
}

// Apply resolves every record in order and writes the result back in place.
// No record's failure stops the others.
func (r *Resolver) Apply(ctx context.Context, refs []records.Ref) Report {
	rep := Report{}
	for i, ref := range refs {
		val, out := r.Resolve(ctx, ref.Record)
		yamlnode.SetString(ref.Root, ref.Record, Field, val)
		rep[out]++
		r.Log.Printf("record %d: %s -> %q", i, out, val)
	}
	return rep
}
