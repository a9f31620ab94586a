package imagescmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"bibyaml/src/internal/config"
	"bibyaml/src/internal/httpx"
	"bibyaml/src/internal/imagefield"
	"bibyaml/src/internal/records"
	"bibyaml/src/internal/rtyaml"
	"bibyaml/src/internal/slug"
	"bibyaml/src/internal/thumbs"
)

var client httpx.Doer = &http.Client{}

// SetHTTPClient allows tests to inject a fake HTTP client.
func SetHTTPClient(c httpx.Doer) { client = c }

// New returns the images command: every record's image URL is downloaded to
// the thumbnail directory and replaced by the local path, or cleared.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "images INPUT OUTPUT",
		Aliases:      []string{"download-images"},
		Short:        "Download record images as thumbnails and rewrite only the image field",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         func(cmd *cobra.Command, args []string) error { return run(cmd, args[0], args[1]) },
	}
	cmd.Flags().String("thumbdir", "thumbnail", "Thumbnail directory relative to OUTPUT's directory")
	cmd.Flags().Float64("timeout", 15, "HTTP timeout in seconds")
	cmd.Flags().BoolP("verbose", "v", false, "Log the outcome of every record to stderr")
	return cmd
}

func run(cmd *cobra.Command, in, out string) error {
	v, err := config.Bind(cmd)
	if err != nil {
		return err
	}
	thumbdir := strings.TrimSpace(v.GetString("thumbdir"))
	if thumbdir == "" {
		return fmt.Errorf("--thumbdir must not be empty")
	}
	secs := v.GetFloat64("timeout")
	if secs < 0 {
		return fmt.Errorf("--timeout must not be negative")
	}

	docs, err := rtyaml.ReadFile(in)
	if err != nil {
		return err
	}
	var refs []records.Ref
	for _, d := range docs {
		refs = append(refs, records.Locate(d)...)
	}
	if err := records.ReportDuplicates(cmd.ErrOrStderr(), records.FindDuplicates(refs, slug.For)); err != nil {
		return err
	}

	dir, err := thumbDir(out, thumbdir)
	if err != nil {
		return err
	}
	fs := afero.NewOsFs()
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	fetcher := thumbs.New(client, fs, time.Duration(secs*float64(time.Second)))
	res := imagefield.New(fetcher, dir, thumbdir)
	if v.GetBool("verbose") {
		res.Log = log.New(cmd.ErrOrStderr(), "images: ", 0)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rep := res.Apply(ctx, refs)

	b, err := rtyaml.Marshal(docs, rtyaml.DefaultOptions())
	if err != nil {
		return err
	}
	if err := rtyaml.WriteFile(out, b); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d record(s), %s\n", out, len(refs), rep)
	return err
}

// thumbDir resolves the thumbnail directory against the output file's
// directory; absolute paths are used as given.
func thumbDir(out, thumbdir string) (string, error) {
	if filepath.IsAbs(thumbdir) {
		return thumbdir, nil
	}
	abs, err := filepath.Abs(out)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(abs), thumbdir), nil
}
