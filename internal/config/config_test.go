package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/matryer/is"
	"github.com/spf13/viper"
)

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func load(t *testing.T, configPath string) (*Config, error) {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	return Load(v, configPath)
}

func TestDefault(t *testing.T) {
	is := is.New(t)

	cfg := Default()
	is.Equal(cfg.OutputDir, "gen")
	is.Equal(cfg.MaxArity, 13)
	is.Equal(cfg.FunctionPackage, "function")
	is.Equal(cfg.TuplePackage, "tuple")
	is.Equal(cfg.Header, DefaultHeader)
	is.Equal(cfg.Charset, "utf-8")
	is.True(cfg.Format)
	is.True(strings.HasSuffix(DefaultHeader, "// Code generated by aritygen. DO NOT EDIT."))
}

func TestLoadTOML(t *testing.T) {
	is := is.New(t)

	p := writeConfig(t, "aritygen.toml", `
output_dir = "out"
max_arity = 5
function_package = "pkg/fn"
format = false
header = """
// Copyright 2026 Example"""
`)
	cfg, err := load(t, p)
	is.NoErr(err)
	is.Equal(cfg.OutputDir, "out")
	is.Equal(cfg.MaxArity, 5)
	is.Equal(cfg.FunctionPackage, "pkg/fn")
	is.Equal(cfg.TuplePackage, "tuple") // default kept
	is.Equal(cfg.Header, "// Copyright 2026 Example")
	is.True(!cfg.Format)
}

func TestLoadYAML(t *testing.T) {
	is := is.New(t)

	p := writeConfig(t, "aritygen.yaml", "max_arity: 2\ntuple_package: tuples\ncharset: windows-1252\n")
	cfg, err := load(t, p)
	is.NoErr(err)
	is.Equal(cfg.MaxArity, 2)
	is.Equal(cfg.TuplePackage, "tuples")
	is.Equal(cfg.Charset, "windows-1252")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		contents string
		wantErr  string
		wantHint bool
	}{
		{
			name:     "negative arity",
			file:     "c.toml",
			contents: "max_arity = -1\n",
			wantErr:  "max_arity -1 out of range",
			wantHint: true,
		},
		{
			name:     "arity too large",
			file:     "c.toml",
			contents: "max_arity = 65\n",
			wantErr:  "max_arity 65 out of range",
			wantHint: true,
		},
		{
			name:     "same package",
			file:     "c.toml",
			contents: "function_package = \"types\"\ntuple_package = \"types\"\n",
			wantErr:  "are both",
			wantHint: true,
		},
		{
			name:     "unknown charset",
			file:     "c.toml",
			contents: "charset = \"klingon\"\n",
			wantErr:  "unknown charset",
			wantHint: true,
		},
		{
			name:     "not a package name",
			file:     "c.toml",
			contents: "tuple_package = \"Tuple\"\n",
			wantErr:  "invalid tuple_package",
		},
		{
			name:     "absolute package path",
			file:     "c.toml",
			contents: "function_package = \"/abs/fn\"\n",
			wantErr:  "invalid function_package",
		},
		{
			name:     "empty output dir",
			file:     "c.toml",
			contents: "output_dir = \"\"\n",
			wantErr:  "output_dir must not be empty",
		},
		{
			name:     "malformed file",
			file:     "c.toml",
			contents: "max_arity = = 3\n",
			wantErr:  "failed to read config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			_, err := load(t, writeConfig(t, tt.file, tt.contents))
			is.True(err != nil)
			is.True(strings.Contains(err.Error(), tt.wantErr))
			is.Equal(len(errors.GetAllHints(err)) > 0, tt.wantHint)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	is := is.New(t)
	_, err := load(t, filepath.Join(t.TempDir(), "missing.toml"))
	is.True(err != nil)
}

func TestValidatePackagePath(t *testing.T) {
	is := is.New(t)

	for _, ok := range []string{"function", "a/b/c", "my_pkg", "v2"} {
		is.NoErr(validatePackagePath(ok))
	}
	for _, bad := range []string{"", "../up", "a//b", "Upper", "9lives", "with-dash", "./x"} {
		is.True(validatePackagePath(bad) != nil)
	}
}
