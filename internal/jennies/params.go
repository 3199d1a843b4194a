package jennies

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/sdboyer/aritygen"
)

// typeVars lists the element type parameters of arity n: "T1, T2, T3".
func typeVars(n int) string {
	return aritygen.Expand(1, n, func(i int) string {
		return fmt.Sprintf("T%d", i)
	}, ", ")
}

// withResult appends extra to the type parameters of arity n.
func withResult(n int, extra string) string {
	if n == 0 {
		return extra
	}
	return typeVars(n) + ", " + extra
}

// generic instantiates name with the element type parameters of arity n and
// any extra ones. An arity 0 type with no extras is not generic.
func generic(name string, n int, extra string) string {
	list := typeVars(n)
	if extra != "" {
		list = withResult(n, extra)
	}
	if list == "" {
		return name
	}
	return name + "[" + list + "]"
}

// params declares one argument per element: "t1 T1, t2 T2".
func params(n int) string {
	return aritygen.Expand(1, n, func(i int) string {
		return fmt.Sprintf("t%d T%d", i, i)
	}, ", ")
}

// args passes the arguments declared by params: "t1, t2".
func args(n int) string {
	return aritygen.Expand(1, n, func(i int) string {
		return fmt.Sprintf("t%d", i)
	}, ", ")
}

// sections joins the non-empty top-level declarations of a file with a blank
// line between each.
func sections(decls ...string) string {
	var nonempty []string
	for _, d := range decls {
		if strings.TrimSpace(d) != "" {
			nonempty = append(nonempty, d)
		}
	}
	return strings.Join(nonempty, "\n\n")
}

// packageName derives the Go package name from a slash-separated package path.
func packageName(pkgPath string) string {
	return path.Base(pkgPath)
}

// arityRange checks that arities is a non-empty run of consecutive
// non-negative integers, in any order, and returns its bounds.
func arityRange(arities []int) (lo, hi int, err error) {
	if len(arities) == 0 {
		return 0, 0, fmt.Errorf("no arities to generate")
	}
	sorted := append([]int(nil), arities...)
	sort.Ints(sorted)
	if sorted[0] < 0 {
		return 0, 0, fmt.Errorf("arity must not be negative, got %d", sorted[0])
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return 0, 0, fmt.Errorf("arities must be consecutive, got %v", sorted)
		}
	}
	return sorted[0], sorted[len(sorted)-1], nil
}

func checkArity(n int) error {
	if n < 0 {
		return fmt.Errorf("arity must not be negative, got %d", n)
	}
	return nil
}

// instantiateAny instantiates a generic type with count type arguments, all
// of them any.
func instantiateAny(name string, count int) string {
	return name + "[" + aritygen.Expand(1, count, func(int) string { return "any" }, ", ") + "]"
}
