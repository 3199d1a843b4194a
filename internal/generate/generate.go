// Package generate wires the jennies of every type family into one run.
package generate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/sdboyer/aritygen"
	"github.com/sdboyer/aritygen/internal/config"
	"github.com/sdboyer/aritygen/internal/jennies"
	"github.com/sdboyer/aritygen/internal/logger"
)

func arityName(n int) string {
	return fmt.Sprintf("arity %d", n)
}

// Jennies returns the JennyList that generates every family for cfg, with
// header, formatting and encoding postprocessors attached.
func Jennies(cfg *config.Config) (*aritygen.JennyList[int], error) {
	functions := aritygen.NewJennyList[int]("functions").WithNamer(arityName)
	functions.AppendOneToMany(jennies.FunctionJenny{Package: cfg.FunctionPackage})
	functions.AppendManyToOne(jennies.FunctionBaseJenny{Package: cfg.FunctionPackage})

	tuples := aritygen.NewJennyList[int]("tuples").WithNamer(arityName)
	tuples.AppendOneToOne(jennies.TupleJenny{Package: cfg.TuplePackage})
	tuples.AppendManyToOne(jennies.TupleBaseJenny{Package: cfg.TuplePackage})

	all := aritygen.NewJennyList[int]("aritygen")
	all.AppendManyToMany(functions, tuples)

	all.AddPostprocessors(aritygen.WithHeader(cfg.Header))
	if cfg.Format {
		all.AddPostprocessors(aritygen.Format())
	}
	enc, err := aritygen.Encode(cfg.Charset)
	if err != nil {
		return nil, err
	}
	all.AddPostprocessors(enc)

	return all, nil
}

// Arities returns 0 through hi.
func Arities(hi int) []int {
	arities := make([]int, hi+1)
	for i := range arities {
		arities[i] = i
	}
	return arities
}

// Generate produces every file for cfg in memory.
func Generate(cfg *config.Config) (*aritygen.FS, error) {
	jl, err := Jennies(cfg)
	if err != nil {
		return nil, err
	}
	return jl.GenerateFS(Arities(cfg.MaxArity)...)
}

// Run generates every file for cfg and writes it below cfg.OutputDir. It stops
// at the first file that cannot be written.
func Run(ctx context.Context, cfg *config.Config) (*aritygen.FS, error) {
	start := time.Now()

	gfs, err := Generate(cfg)
	if err != nil {
		return nil, err
	}
	if err := gfs.Write(ctx, cfg.OutputDir); err != nil {
		logger.Logger.Errorw("write failed",
			logger.FieldComponent, "generate",
			logger.FieldOutputDir, cfg.OutputDir,
			logger.FieldError, err,
		)
		return nil, err
	}

	logger.Logger.Infow("generated files",
		logger.FieldComponent, "generate",
		logger.FieldCount, gfs.Len(),
		logger.FieldOutputDir, cfg.OutputDir,
		logger.FieldMaxArity, cfg.MaxArity,
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return gfs, nil
}

// Check generates every file for cfg in memory and verifies that what is
// below cfg.OutputDir matches it.
func Check(ctx context.Context, cfg *config.Config) error {
	gfs, err := Generate(cfg)
	if err != nil {
		return err
	}
	if err := gfs.Verify(ctx, cfg.OutputDir); err != nil {
		logStale(err)
		return err
	}

	logger.Logger.Infow("generated files are up to date",
		logger.FieldComponent, "check",
		logger.FieldCount, gfs.Len(),
		logger.FieldOutputDir, cfg.OutputDir,
	)
	return nil
}

// logStale logs one line per file that Verify found missing or changed.
func logStale(err error) {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return
	}
	for _, e := range merr.Errors {
		var (
			missing *aritygen.ShouldExistErr
			differ  *aritygen.ContentsDifferErr
		)
		switch {
		case errors.As(e, &missing):
			logger.Logger.Warnw("generated file is missing",
				logger.FieldComponent, "check",
				logger.FieldPath, missing.Path,
			)
		case errors.As(e, &differ):
			logger.Logger.Warnw("generated file differs",
				logger.FieldComponent, "check",
				logger.FieldPath, differ.Path,
			)
		}
	}
}
