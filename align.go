package aritygen

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	lineBreak     = regexp.MustCompile(`\r?\n`)
	leadingBlank  = regexp.MustCompile(`^[ \t]*\r?\n`)
	trailingBlank = regexp.MustCompile(`\r?\n[ \t]*$`)
	blankRun      = regexp.MustCompile(`\r?\n(?:[ \t]*\r?\n)+`)
)

// Align interpolates args into parts and normalizes the result so that
// templates written inline in indented Go source produce flush-left output.
//
// parts and args interleave as parts[0], args[0], parts[1], ..., parts[n], so
// len(parts) must be len(args)+1; Align panics otherwise. Every line after the
// first of a multi-line argument is prefixed with the spaces and tabs that end
// the part before it, so an argument placed on its own indented line keeps
// that indentation. The result then has a single leading and a single trailing
// blank line removed, the indentation shared by all non-blank lines stripped,
// and runs of blank lines collapsed into one.
func Align(parts []string, args []string) string {
	if len(parts) != len(args)+1 {
		panic(errors.AssertionFailedf("template has %d parts for %d arguments, want %d parts", len(parts), len(args), len(args)+1))
	}

	var b strings.Builder
	b.WriteString(parts[0])
	for i, arg := range args {
		if arg != "" {
			space := trailingSpace(parts[i])
			b.WriteString(strings.Join(lineBreak.Split(arg, -1), "\n"+space))
		}
		b.WriteString(parts[i+1])
	}

	s := leadingBlank.ReplaceAllLiteralString(b.String(), "")
	s = trailingBlank.ReplaceAllLiteralString(s, "")
	s = dedent(s)
	return blankRun.ReplaceAllLiteralString(s, "\n\n")
}

// trailingSpace returns the run of spaces and tabs that s ends with.
func trailingSpace(s string) string {
	return s[len(strings.TrimRight(s, " \t")):]
}

// indentation returns the run of spaces and tabs that line starts with.
func indentation(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// dedent strips the indentation common to all non-blank lines of s.
//
// The common indentation is the longest shared prefix of the indentation of
// those lines, not merely the shortest one, so a line indented with tabs never
// loses leading spaces it does not have.
func dedent(s string) string {
	lines := strings.Split(s, "\n")

	var prefix string
	found := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := indentation(line)
		if !found {
			prefix, found = indent, true
			continue
		}
		prefix = commonPrefix(prefix, indent)
	}
	if prefix == "" {
		return s
	}

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

// Template is a sequence of literal parts interleaved with arguments. It is
// the explicit form of an interpolated string literal.
type Template struct {
	Parts []string
	Args  []any
}

// NewTemplate splits format on each %v placeholder and pairs the pieces with
// args. A doubled %% stands for a literal percent sign; any other verb is
// kept verbatim.
func NewTemplate(format string, args ...any) Template {
	var (
		parts []string
		cur   strings.Builder
	)
	for i := 0; i < len(format); i++ {
		if format[i] == '%' && i+1 < len(format) {
			switch format[i+1] {
			case '%':
				cur.WriteByte('%')
				i++
				continue
			case 'v':
				parts = append(parts, cur.String())
				cur.Reset()
				i++
				continue
			}
		}
		cur.WriteByte(format[i])
	}
	parts = append(parts, cur.String())

	return Template{Parts: parts, Args: args}
}

// String aligns the template. It panics if the number of parts does not match
// the number of arguments, or if an argument has no string form.
func (t Template) String() string {
	args := make([]string, len(t.Args))
	for i, arg := range t.Args {
		args[i] = stringify(arg)
	}
	return Align(t.Parts, args)
}

// Fmt is shorthand for NewTemplate(format, args...).String().
func Fmt(format string, args ...any) string {
	return NewTemplate(format, args...).String()
}

func stringify(arg any) string {
	if arg == nil {
		return ""
	}

	rv := reflect.ValueOf(arg)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return ""
		}
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		panic(errors.AssertionFailedf("template argument of type %T has no string form", arg))
	}

	switch v := arg.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	default:
		return fmt.Sprint(v)
	}
}
