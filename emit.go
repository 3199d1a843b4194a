package aritygen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/tools/imports"
)

// DefaultCharset is the encoding generated files are written in unless
// another is requested.
const DefaultCharset = "utf-8"

// EmitOption configures [Emit].
type EmitOption func(*emitOptions)

type emitOptions struct {
	charset string
}

// WithCharset makes Emit encode the file in the named charset. Names are
// resolved per the WHATWG Encoding Standard, e.g. "utf-8", "utf-16le" or
// "windows-1252".
func WithCharset(name string) EmitOption {
	return func(o *emitOptions) {
		o.charset = name
	}
}

// Emit writes header followed by body to packagePath/fileName, creating
// packagePath if needed and replacing any existing file.
//
// The body is aligned on its own before it is joined to the header, so it may
// be written as an indented template.
func Emit(packagePath, fileName, header, body string, opts ...EmitOption) error {
	o := emitOptions{charset: DefaultCharset}
	for _, opt := range opts {
		opt(&o)
	}

	enc, err := Encode(o.charset)
	if err != nil {
		return err
	}
	f, err := enc(File{RelativePath: fileName, Data: []byte(withHeader(header, body))})
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(packagePath, fileName), f.Data)
}

// WithHeader returns a FileMapper that puts header, followed by a blank line,
// at the top of every file. Header and contents are aligned the same way
// [Emit] aligns them, and the file ends with exactly one newline.
func WithHeader(header string) FileMapper {
	return func(f File) (File, error) {
		f.Data = []byte(withHeader(header, string(f.Data)))
		return f, nil
	}
}

func withHeader(header, body string) string {
	return Fmt(`%v

%v`, header, Align([]string{body}, nil)) + "\n"
}

// Encode returns a FileMapper that converts file contents from UTF-8 to the
// named charset. It fails if the charset is unknown.
func Encode(charset string) (FileMapper, error) {
	enc, err := lookupCharset(charset)
	if err != nil {
		return nil, err
	}
	if enc == unicode.UTF8 {
		return func(f File) (File, error) { return f, nil }, nil
	}

	return func(f File) (File, error) {
		b, err := enc.NewEncoder().Bytes(f.Data)
		if err != nil {
			return f, fmt.Errorf("%s: cannot encode as %s: %w", f.RelativePath, charset, err)
		}
		f.Data = b
		return f, nil
	}, nil
}

func lookupCharset(name string) (encoding.Encoding, error) {
	if name == "" {
		name = DefaultCharset
	}
	enc, err := htmlindex.Get(strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", name, err)
	}
	return enc, nil
}

// Format returns a FileMapper that gofmts Go files and sorts their imports.
// Files with other extensions pass through unchanged. Generated Go that does
// not parse is reported as an error.
func Format() FileMapper {
	return func(f File) (File, error) {
		if filepath.Ext(f.RelativePath) != ".go" {
			return f, nil
		}
		b, err := imports.Process(f.RelativePath, f.Data, &imports.Options{
			Comments:   true,
			TabIndent:  true,
			TabWidth:   8,
			FormatOnly: true,
		})
		if err != nil {
			return f, fmt.Errorf("%s is not valid Go: %w", f.RelativePath, err)
		}
		f.Data = b
		return f, nil
	}
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("%s: failed to ensure parent directory exists: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%s: error while writing file: %w", path, err)
	}
	return nil
}
