package generate

import (
	"bytes"
	"context"
	"errors"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/matryer/is"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/sdboyer/aritygen"
	"github.com/sdboyer/aritygen/internal/config"
	"github.com/sdboyer/aritygen/internal/logger"
)

func testConfig(t *testing.T, maxArity int) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	cfg.MaxArity = maxArity
	return cfg
}

func TestGenerate(t *testing.T) {
	is := is.New(t)

	cfg := testConfig(t, 3)
	gfs, err := Generate(cfg)
	is.NoErr(err)
	is.Equal(gfs.Len(), 4*2+1+4+1) // per-arity function files, function.go, tuples, tuple.go

	for _, p := range []string{
		"function/function.go",
		"function/function0.go",
		"function/checked_function3.go",
		"tuple/tuple.go",
		"tuple/tuple3.go",
	} {
		_, ok := gfs.Get(p)
		is.True(ok) // expected file is generated
	}

	for _, f := range gfs.AsFiles() {
		is.True(strings.HasPrefix(string(f.Data), config.DefaultHeader+"\n\npackage ") ||
			strings.HasPrefix(string(f.Data), config.DefaultHeader+"\n\n// Package "))
		is.True(strings.HasSuffix(string(f.Data), "}\n"))
		is.True(!strings.HasSuffix(string(f.Data), "\n\n"))
	}

	again, err := Generate(cfg)
	is.NoErr(err)
	is.Equal(again.Len(), gfs.Len())
	for _, f := range gfs.AsFiles() {
		af, ok := again.Get(f.RelativePath)
		is.True(ok)
		is.Equal(string(af.Data), string(f.Data)) // generation is deterministic
	}
}

func TestGenerateTypeChecks(t *testing.T) {
	cfg := testConfig(t, 4)
	gfs, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}

	pkgs := map[string][]aritygen.File{}
	for _, f := range gfs.AsFiles() {
		dir := path.Dir(f.RelativePath)
		pkgs[dir] = append(pkgs[dir], f)
	}

	fset := token.NewFileSet()
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	for dir, files := range pkgs {
		var parsed []*ast.File
		for _, f := range files {
			af, err := parser.ParseFile(fset, f.RelativePath, f.Data, parser.ParseComments)
			if err != nil {
				t.Fatalf("%s: %v", f.RelativePath, err)
			}
			parsed = append(parsed, af)
		}
		if _, err := conf.Check(dir, fset, parsed, nil); err != nil {
			t.Errorf("package %s does not type check: %v", dir, err)
		}
	}
}

func TestGenerateCustomPackages(t *testing.T) {
	is := is.New(t)

	cfg := testConfig(t, 1)
	cfg.FunctionPackage = "pkg/fn"
	cfg.TuplePackage = "pkg/tup"
	cfg.Header = "// custom"
	cfg.Format = false

	gfs, err := Generate(cfg)
	is.NoErr(err)
	f, ok := gfs.Get("pkg/fn/function1.go")
	is.True(ok)
	is.True(strings.HasPrefix(string(f.Data), "// custom\n\npackage fn\n"))
	f, ok = gfs.Get("pkg/tup/tuple.go")
	is.True(ok)
	is.True(strings.Contains(string(f.Data), "\npackage tup\n"))
}

func TestRunThenCheck(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	cfg := testConfig(t, 2)
	err := Check(ctx, cfg)
	is.True(err != nil) // nothing written yet
	var missing *aritygen.ShouldExistErr
	is.True(errors.As(err, &missing))

	gfs, err := Run(ctx, cfg)
	is.NoErr(err)
	is.NoErr(Check(ctx, cfg))

	for _, f := range gfs.AsFiles() {
		b, err := os.ReadFile(filepath.Join(cfg.OutputDir, filepath.FromSlash(f.RelativePath)))
		is.NoErr(err)
		is.Equal(b, f.Data)
	}

	edited := filepath.Join(cfg.OutputDir, "tuple", "tuple1.go")
	is.NoErr(os.WriteFile(edited, []byte("package tuple\n"), 0644))
	err = Check(ctx, cfg)
	is.True(err != nil)

	var merr *multierror.Error
	is.True(errors.As(err, &merr))
	is.Equal(len(merr.Errors), 1)
	var differ *aritygen.ContentsDifferErr
	is.True(errors.As(merr.Errors[0], &differ))
	is.Equal(differ.Path, edited)

	_, err = Run(ctx, cfg)
	is.NoErr(err)
	is.NoErr(Check(ctx, cfg)) // regenerating repairs the tree
}

func TestRunCharset(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	plain, err := Generate(testConfig(t, 1))
	is.NoErr(err)

	cfg := testConfig(t, 1)
	cfg.Charset = "utf-16le"
	_, err = Run(ctx, cfg)
	is.NoErr(err)
	is.NoErr(Check(ctx, cfg))

	enc, err := htmlindex.Get("utf-16le")
	is.NoErr(err)
	for _, f := range plain.AsFiles() {
		b, err := os.ReadFile(filepath.Join(cfg.OutputDir, filepath.FromSlash(f.RelativePath)))
		is.NoErr(err)
		is.True(!bytes.Equal(b, f.Data))
		decoded, err := enc.NewDecoder().Bytes(b)
		is.NoErr(err)
		is.Equal(string(decoded), string(f.Data))
	}
}

func TestArities(t *testing.T) {
	is := is.New(t)
	is.Equal(Arities(0), []int{0})
	is.Equal(Arities(3), []int{0, 1, 2, 3})
}

func TestCheckLogsStaleFiles(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Logger
	logger.Logger = zap.New(core).Sugar()
	t.Cleanup(func() { logger.Logger = prev })

	cfg := testConfig(t, 1)
	_, err := Run(ctx, cfg)
	is.NoErr(err)

	edited := filepath.Join(cfg.OutputDir, "tuple", "tuple1.go")
	removed := filepath.Join(cfg.OutputDir, "function", "function0.go")
	is.NoErr(os.WriteFile(edited, []byte("package tuple\n"), 0644))
	is.NoErr(os.Remove(removed))
	is.True(Check(ctx, cfg) != nil)

	stale := map[string]string{}
	for _, entry := range logs.FilterLevelExact(zapcore.WarnLevel).All() {
		fields := entry.ContextMap()
		is.Equal(fields[logger.FieldComponent], "check")
		stale[fields[logger.FieldPath].(string)] = entry.Message
	}
	is.Equal(stale, map[string]string{
		edited:  "generated file differs",
		removed: "generated file is missing",
	})
}
