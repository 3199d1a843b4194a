package aritygen

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// File is a single generated file.
type File struct {
	// RelativePath is the slash-separated path, relative to the output root,
	// to which the file should be written.
	RelativePath string

	// Data is the contents of the file.
	Data []byte

	// From is the stack of jennies responsible for producing this File, the
	// innermost first.
	From []NamedJenny
}

// Exists reports whether f names a file. The zero File is how jennies report
// that they had nothing to generate.
func (f File) Exists() bool {
	return f.RelativePath != ""
}

// Validate checks that f can be placed in an [FS].
func (f File) Validate() error {
	if f.RelativePath == "" {
		return fmt.Errorf("file from %s has an empty path", jennystack(f.From))
	}
	if path.IsAbs(f.RelativePath) || filepath.IsAbs(f.RelativePath) {
		return fmt.Errorf("files must have relative paths, got %s from %s", f.RelativePath, jennystack(f.From))
	}
	if !filepath.IsLocal(filepath.FromSlash(f.RelativePath)) {
		return fmt.Errorf("%s from %s escapes the output root", f.RelativePath, jennystack(f.From))
	}
	return nil
}

// Files is a set of generated files.
type Files []File

// Validate checks every file in fl, and that no two of them share a path.
func (fl Files) Validate() error {
	var result *multierror.Error
	seen := make(map[string]File, len(fl))
	for _, f := range fl {
		if err := f.Validate(); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if prev, has := seen[f.RelativePath]; has {
			result = multierror.Append(result, fmt.Errorf("%s generated by both %s and %s", f.RelativePath, jennystack(prev.From), jennystack(f.From)))
			continue
		}
		seen[f.RelativePath] = f
	}
	return result.ErrorOrNil()
}

// FileMapper postprocesses a File, such as by adding a header or formatting
// its contents.
type FileMapper func(File) (File, error)

func jennystack(s []NamedJenny) string {
	if len(s) == 0 {
		return "<unknown jenny>"
	}
	names := make([]string, len(s))
	for i, j := range s {
		names[len(s)-1-i] = j.JennyName()
	}
	return strings.Join(names, ":")
}
