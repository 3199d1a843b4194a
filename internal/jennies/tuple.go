package jennies

import (
	"fmt"
	"path"
	"strings"

	"github.com/sdboyer/aritygen"
)

// TupleJenny generates the TupleN type for one arity.
type TupleJenny struct {
	// Package is the slash-separated path of the generated package, relative
	// to the output root.
	Package string
}

var _ aritygen.OneToOne[int] = TupleJenny{}

func (j TupleJenny) JennyName() string {
	return "TupleJenny"
}

func (j TupleJenny) Generate(n int) (*aritygen.File, error) {
	if err := checkArity(n); err != nil {
		return nil, err
	}

	return &aritygen.File{
		RelativePath: path.Join(j.Package, fmt.Sprintf("tuple%d.go", n)),
		Data:         []byte(j.tuple(n)),
	}, nil
}

func (j TupleJenny) tuple(n int) string {
	name := fmt.Sprintf("Tuple%d", n)
	self := generic(name, n, "")

	var imports string
	if n > 0 {
		imports = `import "fmt"`
	}

	return aritygen.Fmt(`
		package %v

		%v

		// %v is a tuple of %v elements.
		%v

		// Arity returns the number of elements in t.
		func (t %v) Arity() int {
			return %v
		}

		// Values returns the elements of t in order.
		func (t %v) Values() []any {
			return []any{%v}
		}

		%v
	`,
		packageName(j.Package),
		imports,
		name, n,
		"type "+typeDecl(name, n)+" "+structType(n),
		self, n,
		self, fields(n),
		sections(unpack(self, n), updates(self, n), tupleString(self, n)),
	)
}

func typeDecl(name string, n int) string {
	if n == 0 {
		return name
	}
	return name + "[" + typeVars(n) + " any]"
}

// structType lays out one field per element, padded the way gofmt aligns
// struct fields.
func structType(n int) string {
	if n == 0 {
		return "struct{}"
	}
	width := len(fmt.Sprintf("V%d", n))
	return aritygen.Fmt(`
		struct {
			%v
		}
	`, aritygen.Expand(1, n, func(i int) string {
		field := fmt.Sprintf("V%d", i)
		return fmt.Sprintf("%s%s T%d", field, strings.Repeat(" ", width-len(field)), i)
	}, "\n"))
}

// fields lists the fields of t in order: "t.V1, t.V2".
func fields(n int) string {
	return aritygen.Expand(1, n, func(i int) string {
		return fmt.Sprintf("t.V%d", i)
	}, ", ")
}

func unpack(self string, n int) string {
	if n == 0 {
		return ""
	}
	results := typeVars(n)
	if n > 1 {
		results = "(" + results + ")"
	}
	return aritygen.Fmt(`
		// Unpack returns the elements of t.
		func (t %v) Unpack() %v {
			return %v
		}
	`, self, results, fields(n))
}

// updates generates one UpdateK method per element.
func updates(self string, n int) string {
	return aritygen.Expand(1, n, func(k int) string {
		return aritygen.Fmt(`
			// Update%v returns a copy of t with element %v set to v.
			func (t %v) Update%v(v T%v) %v {
				t.V%v = v
				return t
			}
		`, k, k, self, k, k, self, k)
	}, "\n\n")
}

func tupleString(self string, n int) string {
	if n == 0 {
		return aritygen.Fmt(`
			// String returns t formatted as "()".
			func (t %v) String() string {
				return "()"
			}
		`, self)
	}
	verbs := aritygen.Expand(1, n, func(int) string { return "%v" }, ", ")
	return aritygen.Fmt(`
		// String returns t formatted as a parenthesized, comma-separated list.
		func (t %v) String() string {
			return fmt.Sprintf("(%v)", %v)
		}
	`, self, verbs, fields(n))
}
