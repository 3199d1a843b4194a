package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/matryer/is"
	"github.com/pelletier/go-toml/v2"

	"github.com/sdboyer/aritygen/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateAndCheck(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()

	_, err := execute(t, "-o", dir, "--max-arity", "2")
	is.NoErr(err)
	for _, p := range []string{"function/function2.go", "function/checked_function0.go", "tuple/tuple.go"} {
		_, err := os.Stat(filepath.Join(dir, p))
		is.NoErr(err) // generated file exists
	}
	_, err = os.Stat(filepath.Join(dir, "tuple", "tuple3.go"))
	is.True(os.IsNotExist(err)) // above max arity

	_, err = execute(t, "check", "-o", dir, "--max-arity", "2")
	is.NoErr(err)

	_, err = execute(t, "check", "-o", dir, "--max-arity", "3")
	is.True(err != nil) // arity 3 was never written

	is.NoErr(os.WriteFile(filepath.Join(dir, "function", "function1.go"), []byte("package function\n"), 0644))
	_, err = execute(t, "check", "-o", dir, "--max_arity", "2")
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "generated files are not up to date"))
	is.True(len(errors.GetAllHints(err)) > 0)
}

func TestNoFormat(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()

	_, err := execute(t, "-o", dir, "--max-arity", "1", "--no-format")
	is.NoErr(err)
	_, err = execute(t, "check", "-o", dir, "--max-arity", "1", "--no-format")
	is.NoErr(err)
}

func TestConfigCommand(t *testing.T) {
	is := is.New(t)

	cfgPath := filepath.Join(t.TempDir(), "aritygen.toml")
	is.NoErr(os.WriteFile(cfgPath, []byte("tuple_package = \"tup\"\nmax_arity = 7\n"), 0644))

	out, err := execute(t, "config", "-c", cfgPath, "--max-arity", "2", "-o", "elsewhere")
	is.NoErr(err)

	var cfg config.Config
	is.NoErr(toml.Unmarshal([]byte(out), &cfg))
	is.Equal(cfg.MaxArity, 2) // flags win over the file
	is.Equal(cfg.OutputDir, "elsewhere")
	is.Equal(cfg.TuplePackage, "tup")
	is.Equal(cfg.FunctionPackage, "function")
	is.Equal(cfg.Header, config.DefaultHeader)
	is.True(strings.Contains(out, "max_arity = 2"))
}

func TestInvalidConfig(t *testing.T) {
	is := is.New(t)

	_, err := execute(t, "-o", t.TempDir(), "--max-arity=-1")
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "out of range"))

	_, err = execute(t, "unexpected")
	is.True(err != nil)
}

func TestFlagsBoundToConfigKeys(t *testing.T) {
	is := is.New(t)

	root := NewRootCmd()
	for _, name := range []string{"output", "max-arity", "max_arity"} {
		is.True(root.PersistentFlags().Lookup(name) != nil) // flag is registered
	}

	out, err := execute(t, "config", "--output=bound", "--max_arity=4")
	is.NoErr(err)
	var cfg config.Config
	is.NoErr(toml.Unmarshal([]byte(out), &cfg))
	is.Equal(cfg.OutputDir, "bound")
	is.Equal(cfg.MaxArity, 4)
}
