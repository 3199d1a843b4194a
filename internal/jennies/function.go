package jennies

import (
	"fmt"
	"path"

	"github.com/sdboyer/aritygen"
)

// FunctionJenny generates, for one arity, the FunctionN type and its
// CheckedFunctionN counterpart, each into its own file.
type FunctionJenny struct {
	// Package is the slash-separated path of the generated package, relative
	// to the output root.
	Package string
}

var _ aritygen.OneToMany[int] = FunctionJenny{}

func (j FunctionJenny) JennyName() string {
	return "FunctionJenny"
}

func (j FunctionJenny) Generate(n int) (aritygen.Files, error) {
	if err := checkArity(n); err != nil {
		return nil, err
	}

	return aritygen.Files{
		{
			RelativePath: path.Join(j.Package, fmt.Sprintf("function%d.go", n)),
			Data:         []byte(j.function(n)),
		},
		{
			RelativePath: path.Join(j.Package, fmt.Sprintf("checked_function%d.go", n)),
			Data:         []byte(j.checkedFunction(n)),
		},
	}, nil
}

func (j FunctionJenny) function(n int) string {
	name := fmt.Sprintf("Function%d", n)
	self := generic(name, n, "R")

	typ := aritygen.Fmt(`
		// %v represents a function of %v arguments returning an R.
		type %v[%v] func(%v) R
	`, name, n, name, withResult(n, "R any"), params(n))

	arity := aritygen.Fmt(`
		// Arity returns the number of arguments f accepts.
		func (f %v) Arity() int {
			return %v
		}
	`, self, n)

	apply := aritygen.Fmt(`
		// Apply calls f with the given arguments.
		func (f %v) Apply(%v) R {
			return f(%v)
		}
	`, self, params(n), args(n))

	checked := aritygen.Fmt(`
		// Checked returns f as a CheckedFunction%v that never fails.
		func (f %v) Checked() %v {
			return func(%v) (R, error) {
				return f(%v), nil
			}
		}
	`, n, self, generic(fmt.Sprintf("CheckedFunction%d", n), n, "R"), params(n), args(n))

	return aritygen.Fmt(`
		package %v

		%v
	`, packageName(j.Package), sections(typ, arity, apply, checked, curried(self, n), reversed(name, self, n)))
}

// curried generates the Curried method, which turns a function of n arguments
// into n nested functions of one argument each.
func curried(self string, n int) string {
	if n < 1 {
		return ""
	}
	return aritygen.Fmt(`
		// Curried returns f as a chain of functions of one argument each.
		func (f %v) Curried() %v {
			%v
		}
	`, self, curriedType(1, n), curriedBody(1, n))
}

// curriedType is the type of the curried function that still needs arguments
// k through n.
func curriedType(k, n int) string {
	return aritygen.Gen(k, n, func(i int) string {
		return fmt.Sprintf("func(T%d) ", i)
	}) + "R"
}

func curriedBody(k, n int) string {
	if k > n {
		return fmt.Sprintf("return f(%s)", args(n))
	}
	return aritygen.Fmt(`
		return func(t%v T%v) %v {
			%v
		}
	`, k, k, curriedType(k+1, n), curriedBody(k+1, n))
}

// reversed generates the Reversed method, which swaps the argument order.
func reversed(name, self string, n int) string {
	if n < 2 {
		return ""
	}
	rtypes := aritygen.Expand(1, n, func(i int) string {
		return fmt.Sprintf("T%d", n+1-i)
	}, ", ")
	rparams := aritygen.Expand(1, n, func(i int) string {
		return fmt.Sprintf("t%d T%d", n+1-i, n+1-i)
	}, ", ")

	return aritygen.Fmt(`
		// Reversed returns a function that accepts the arguments of f in reverse order.
		func (f %v) Reversed() %v[%v, R] {
			return func(%v) R {
				return f(%v)
			}
		}
	`, self, name, rtypes, rparams, args(n))
}

func (j FunctionJenny) checkedFunction(n int) string {
	name := fmt.Sprintf("CheckedFunction%d", n)
	self := generic(name, n, "R")
	unchecked := generic(fmt.Sprintf("Function%d", n), n, "R")

	return aritygen.Fmt(`
		package %v

		// %v represents a function of %v arguments returning an R, or an error.
		type %v[%v] func(%v) (R, error)

		// Arity returns the number of arguments f accepts.
		func (f %v) Arity() int {
			return %v
		}

		// Apply calls f with the given arguments.
		func (f %v) Apply(%v) (R, error) {
			return f(%v)
		}

		// Unchecked returns a Function%v that panics if f fails.
		func (f %v) Unchecked() %v {
			return func(%v) R {
				r, err := f(%v)
				if err != nil {
					panic(err)
				}
				return r
			}
		}

		// Recover returns a Function%v that calls handle with the error, and
		// returns its result, if f fails.
		func (f %v) Recover(handle func(error) R) %v {
			return func(%v) R {
				r, err := f(%v)
				if err != nil {
					return handle(err)
				}
				return r
			}
		}
	`,
		packageName(j.Package),
		name, n,
		name, withResult(n, "R any"), params(n),
		self, n,
		self, params(n), args(n),
		n, self, unchecked, params(n), args(n),
		n, self, unchecked, params(n), args(n),
	)
}
