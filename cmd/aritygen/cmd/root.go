package cmd

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sdboyer/aritygen/internal/config"
	"github.com/sdboyer/aritygen/internal/generate"
	"github.com/sdboyer/aritygen/internal/logger"
)

type options struct {
	configPath string
	noFormat   bool
	jsonLogs   bool
	verbose    bool
}

// NewRootCmd builds the aritygen command tree. Each call returns an
// independent tree with its own configuration state.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)
	opts := &options{}

	root := &cobra.Command{
		Use:   "aritygen",
		Short: "Generate Go function and tuple types for every arity",
		Long: `Generate Go function and tuple types for every arity from 0 to max_arity.

For each arity N this writes FunctionN and CheckedFunctionN to the function
package and TupleN to the tuple package, plus one file per package with the
shared interface and the OfN factories. Existing files are overwritten.

Examples:
  aritygen                          # Generate arities 0..13 into ./gen
  aritygen -o internal/gen          # Different output directory
  aritygen --max-arity 8            # Fewer arities
  aritygen -c aritygen.toml         # Settings from a config file
  aritygen check                    # Verify generated files are up to date`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Initialize(opts.jsonLogs, opts.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v, opts)
			if err != nil {
				return err
			}
			if _, err := generate.Run(cmd.Context(), cfg); err != nil {
				return errors.Wrap(err, "generation failed")
			}
			return nil
		},
	}

	root.SetGlobalNormalizationFunc(configKeyNames)
	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (TOML or YAML)")
	flags.StringP("output", "o", "gen", "Output directory")
	flags.Int("max-arity", 13, "Highest arity to generate")
	flags.BoolVar(&opts.noFormat, "no-format", false, "Do not gofmt generated files")
	flags.BoolVar(&opts.jsonLogs, "json-logs", false, "Log as JSON")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output")
	for key, flag := range map[string]string{
		config.KeyOutputDir: "output",
		config.KeyMaxArity:  "max-arity",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(errors.NewAssertionErrorWithWrappedErrf(err, "cannot bind flag --%s to %s", flag, key))
		}
	}

	root.AddCommand(newCheckCmd(v, opts), newConfigCmd(v, opts))
	return root
}

// configKeyNames lets flags also be spelled like the config keys they set,
// so --max_arity means --max-arity.
func configKeyNames(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func loadConfig(cmd *cobra.Command, v *viper.Viper, opts *options) (*config.Config, error) {
	if cmd.Flags().Changed("no-format") {
		v.Set(config.KeyFormat, !opts.noFormat)
	}
	cfg, err := config.Load(v, opts.configPath)
	if err != nil {
		return nil, err
	}
	logger.Logger.Debugw("loaded config",
		logger.FieldOutputDir, cfg.OutputDir,
		logger.FieldMaxArity, cfg.MaxArity,
		config.KeyFunctionPackage, cfg.FunctionPackage,
		config.KeyTuplePackage, cfg.TuplePackage,
		config.KeyCharset, cfg.Charset,
		config.KeyFormat, cfg.Format,
	)
	return cfg, nil
}

func newCheckCmd(v *viper.Viper, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that generated files are up to date",
		Long: `Regenerate every file in memory and compare it with what is on disk.

Exit codes:
  0 - Generated files are up to date
  1 - A file is missing or differs (diff shown), or the check failed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v, opts)
			if err != nil {
				return err
			}
			if err := generate.Check(cmd.Context(), cfg); err != nil {
				return errors.WithHint(errors.Wrap(err, "generated files are not up to date"),
					"run aritygen with the same flags to regenerate them")
			}
			return nil
		},
	}
}

func newConfigCmd(v *viper.Viper, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v, opts)
			if err != nil {
				return err
			}
			b, err := toml.Marshal(cfg)
			if err != nil {
				return errors.Wrap(err, "failed to encode config")
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}
