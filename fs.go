package aritygen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// FS is an in-memory set of generated files that supports batch-writing its
// contents to the real filesystem, or batch-comparing its contents to the real
// filesystem. Its intended use is for idiomatic `go generate`-style code
// generators, where it is expected that the results of codegen are committed to
// version control.
//
// In such cases, the normal behavior of a generator is to write files to disk,
// but in CI, that behavior should change to verify that what is already on disk
// is identical to the results of code generation. FS supports these related
// behaviors through its Write and Verify methods, respectively.
//
// Note that FS is stateless with respect to disk: if the max arity shrinks, the
// files for the arities that went away are neither removed nor reported.
//
// Files may not be removed once added. If a path conflict occurs when adding a
// new file or merging another FS, an error is returned.
type FS struct {
	mu    sync.RWMutex
	files map[string]File
}

// ShouldExistErr indicates a generated file should exist on disk, but does not.
type ShouldExistErr struct {
	Path string
}

func (e *ShouldExistErr) Error() string {
	return fmt.Sprintf("%s: generated file should exist, but does not", e.Path)
}

// ContentsDifferErr indicates the contents of a file on disk are different
// than those in the FS.
type ContentsDifferErr struct {
	Path string
	Diff string
}

func (e *ContentsDifferErr) Error() string {
	return fmt.Sprintf("%s would have changed:\n\n%s", e.Path, e.Diff)
}

// NewFS creates a new FS, ready for use.
func NewFS() *FS {
	return &FS{
		files: make(map[string]File),
	}
}

// Add adds one or more files to the FS. An error is returned if any of the
// provided files is invalid or would conflict with a file already in the FS,
// in which case none of them are added.
func (wd *FS) Add(flist ...File) error {
	if err := Files(flist).Validate(); err != nil {
		return err
	}
	return wd.add(flist...)
}

func (wd *FS) add(flist ...File) error {
	wd.mu.Lock()
	defer wd.mu.Unlock()

	var result *multierror.Error
	for _, f := range flist {
		if rf, has := wd.files[f.RelativePath]; has {
			result = multierror.Append(result, fmt.Errorf("cannot create %s for %s, already created for %s", f.RelativePath, jennystack(f.From), jennystack(rf.From)))
		}
	}
	if result.ErrorOrNil() != nil {
		return result
	}

	for _, f := range flist {
		wd.files[f.RelativePath] = f
	}
	return nil
}

// Merge combines all the entries from the provided FS into the callee FS.
// Duplicate paths result in an error.
func (wd *FS) Merge(wd2 *FS) error {
	return wd.add(wd2.AsFiles()...)
}

// Len returns the number of files in the FS.
func (wd *FS) Len() int {
	wd.mu.RLock()
	defer wd.mu.RUnlock()
	return len(wd.files)
}

// Get returns the file at the given relative path.
func (wd *FS) Get(relpath string) (File, bool) {
	wd.mu.RLock()
	defer wd.mu.RUnlock()
	f, has := wd.files[relpath]
	return f, has
}

// AsFiles returns the contents of the FS, sorted by path.
func (wd *FS) AsFiles() Files {
	wd.mu.RLock()
	defer wd.mu.RUnlock()

	fl := make(Files, 0, len(wd.files))
	for _, f := range wd.files {
		fl = append(fl, f)
	}
	sort.Slice(fl, func(i, j int) bool {
		return fl[i].RelativePath < fl[j].RelativePath
	})
	return fl
}

// Write writes all of the files to their indicated paths, one at a time in
// path order. It stops at the first failure; files written before it are left
// in place.
//
// If the provided prefix path is non-empty, it will be prepended to all file
// entries in the map for writing. prefix may be an absolute path.
func (wd *FS) Write(ctx context.Context, prefix string) error {
	for _, f := range wd.AsFiles() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeFile(filepath.Join(prefix, filepath.FromSlash(f.RelativePath)), f.Data); err != nil {
			return err
		}
	}
	return nil
}

// Verify checks the contents of each file against the filesystem. It emits an
// error if any of its contained files differ; the error aggregates a
// [*ShouldExistErr] or [*ContentsDifferErr] per offending file.
//
// If the provided prefix path is non-empty, it will be prepended to all file
// entries in the map for reading. prefix may be an absolute path.
func (wd *FS) Verify(ctx context.Context, prefix string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(12)

	var (
		mu     sync.Mutex
		result *multierror.Error
	)
	record := func(err error) {
		mu.Lock()
		result = multierror.Append(result, err)
		mu.Unlock()
	}

	for _, it := range wd.AsFiles() {
		item := it
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ipath := filepath.Join(prefix, filepath.FromSlash(item.RelativePath))
			ob, err := os.ReadFile(ipath) //nolint:gosec
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					record(&ShouldExistErr{Path: ipath})
					return nil
				}
				return fmt.Errorf("%s: error reading file: %w", ipath, err)
			}
			if dstr := cmp.Diff(string(ob), string(item.Data)); dstr != "" {
				record(&ContentsDifferErr{Path: ipath, Diff: dstr})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("io error while verifying tree: %w", err)
	}

	if result.ErrorOrNil() == nil {
		return nil
	}
	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].Error() < result.Errors[j].Error()
	})
	return result
}
