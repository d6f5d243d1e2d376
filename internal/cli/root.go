package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fortran-tools/fpmeta/internal/branding"
	"github.com/fortran-tools/fpmeta/internal/codec"
	"github.com/fortran-tools/fpmeta/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbose     bool
	backendFlag string
	logger      = log.NewWithOptions(os.Stderr, log.Options{Prefix: branding.CLIName()})
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Manifest backend (go-toml, burntsushi, yaml)")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` reads fpm.toml package manifests, checks them against the manifest
schema and writes them back in canonical form.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		logger.Error(err)
	}
	return err
}

// newCodec builds a codec from the --backend flag or the configured backend.
func newCodec() (*codec.Codec, error) {
	name := backendFlag
	if name == "" {
		name = config.Backend()
	}
	b, err := codec.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("selecting backend: %w", err)
	}
	if g, ok := b.(codec.GoTOML); ok {
		g.IndentTables = config.IndentTables()
		b = g
	}
	logger.Debug("using backend", "name", b.Name())
	return codec.New(codec.WithBackend(b), codec.WithLogger(logger)), nil
}
