package jennies

import (
	"fmt"
	"path"

	"github.com/sdboyer/aritygen"
)

// FunctionBaseJenny generates function.go, which holds the package
// documentation, the Function interface and the factories for every arity.
type FunctionBaseJenny struct {
	Package string
}

var _ aritygen.ManyToOne[int] = FunctionBaseJenny{}

func (j FunctionBaseJenny) JennyName() string {
	return "FunctionBaseJenny"
}

func (j FunctionBaseJenny) Generate(arities ...int) (*aritygen.File, error) {
	lo, hi, err := arityRange(arities)
	if err != nil {
		return nil, err
	}

	assertions := aritygen.Expand(lo, hi, func(n int) string {
		return aritygen.Fmt(`
			_ Function = %v(nil)
			_ Function = %v(nil)
		`, instantiateAny(fmt.Sprintf("Function%d", n), n+1), instantiateAny(fmt.Sprintf("CheckedFunction%d", n), n+1))
	}, "\n")

	factories := aritygen.Expand(lo, hi, func(n int) string {
		fn := generic(fmt.Sprintf("Function%d", n), n, "R")
		checked := generic(fmt.Sprintf("CheckedFunction%d", n), n, "R")
		return aritygen.Fmt(`
			// Of%v returns f as a Function%v.
			func Of%v[%v](f func(%v) R) %v {
				return f
			}

			// Checked%v returns f as a CheckedFunction%v.
			func Checked%v[%v](f func(%v) (R, error)) %v {
				return f
			}

			// Constant%v returns a Function%v that ignores its arguments and returns r.
			func Constant%v[%v](r R) %v {
				return func(%v) R {
					return r
				}
			}
		`,
			n, n,
			n, withResult(n, "R any"), typeVars(n), fn,
			n, n,
			n, withResult(n, "R any"), typeVars(n), checked,
			n, n,
			n, withResult(n, "R any"), fn, typeVars(n),
		)
	}, "\n\n")

	return &aritygen.File{
		RelativePath: path.Join(j.Package, "function.go"),
		Data: []byte(aritygen.Fmt(`
			// Package %v provides function types of %v to %v arguments, each
			// in a variant that cannot fail and a checked variant that can.
			package %v

			// Function is implemented by every function type in this package.
			type Function interface {
				// Arity returns the number of arguments the function accepts.
				Arity() int
			}

			var (
				%v
			)

			%v
		`, packageName(j.Package), lo, hi, packageName(j.Package), assertions, factories)),
	}, nil
}

// TupleBaseJenny generates tuple.go, which holds the package documentation,
// the Tuple interface and the factories for every arity.
type TupleBaseJenny struct {
	Package string
}

var _ aritygen.ManyToOne[int] = TupleBaseJenny{}

func (j TupleBaseJenny) JennyName() string {
	return "TupleBaseJenny"
}

func (j TupleBaseJenny) Generate(arities ...int) (*aritygen.File, error) {
	lo, hi, err := arityRange(arities)
	if err != nil {
		return nil, err
	}

	assertions := aritygen.Expand(lo, hi, func(n int) string {
		if n == 0 {
			return "_ Tuple = Tuple0{}"
		}
		return "_ Tuple = " + instantiateAny(fmt.Sprintf("Tuple%d", n), n) + "{}"
	}, "\n")

	factories := aritygen.Expand(lo, hi, func(n int) string {
		self := generic(fmt.Sprintf("Tuple%d", n), n, "")
		if n == 0 {
			return aritygen.Fmt(`
				// Of0 returns the empty tuple.
				func Of0() %v {
					return %v{}
				}
			`, self, self)
		}
		return aritygen.Fmt(`
			// Of%v returns a tuple of %v elements.
			func Of%v[%v any](%v) %v {
				return %v{%v}
			}
		`, n, n, n, typeVars(n), valueParams(n), self, self, fieldInits(n))
	}, "\n\n")

	return &aritygen.File{
		RelativePath: path.Join(j.Package, "tuple.go"),
		Data: []byte(aritygen.Fmt(`
			// Package %v provides tuple types of %v to %v elements.
			package %v

			// Tuple is implemented by every tuple type in this package.
			type Tuple interface {
				// Arity returns the number of elements.
				Arity() int
				// Values returns the elements in order.
				Values() []any
			}

			var (
				%v
			)

			%v
		`, packageName(j.Package), lo, hi, packageName(j.Package), assertions, factories)),
	}, nil
}

// valueParams declares one value per element: "v1 T1, v2 T2".
func valueParams(n int) string {
	return aritygen.Expand(1, n, func(i int) string {
		return fmt.Sprintf("v%d T%d", i, i)
	}, ", ")
}

// fieldInits sets every field from valueParams: "V1: v1, V2: v2".
func fieldInits(n int) string {
	return aritygen.Expand(1, n, func(i int) string {
		return fmt.Sprintf("V%d: v%d", i, i)
	}, ", ")
}
