package store

import (
	"context"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/gorewood/gitobj/internal/git"
)

// ArchiveOptions tunes Archive.
type ArchiveOptions struct {
	Format string // tar (default), zip, tgz or tar.gz
	Prefix string // prepended to every path, usually "name/"
	Path   string // limit the archive to this path
}

// Archive writes an archive of the tree of ref to w. tgz archives are
// produced as tar by git and compressed here.
func (s *Store) Archive(ctx context.Context, ref string, w io.Writer, opts ArchiveOptions) error {
	format := opts.Format
	if format == "" {
		format = "tar"
	}

	compress := false
	switch format {
	case "tar", "zip":
	case "tgz", "tar.gz":
		compress = true
		format = "tar"
	default:
		return &git.InvalidArgumentError{Message: fmt.Sprintf("unsupported archive format %q", opts.Format)}
	}

	cmd := s.runner.NewCommand("archive").AddOptionValues("--format=", format)
	if opts.Prefix != "" {
		cmd.AddOptionValues("--prefix=", opts.Prefix)
	}
	cmd.AddDynamicArguments(ref)
	if opts.Path != "" {
		cmd.AddDynamicArguments(opts.Path)
	}

	if !compress {
		_, err := cmd.Run(ctx, &git.RunOpts{Stdout: w})
		return err
	}

	zw := gzip.NewWriter(w)
	if _, err := cmd.Run(ctx, &git.RunOpts{Stdout: zw}); err != nil {
		_ = zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compressing archive of %s: %w", ref, err)
	}
	return nil
}
