// Package commands wires the emailsig command line.
package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-emailsig/internal/logging"
	"github.com/goliatone/go-emailsig/pkg/config"
	"github.com/goliatone/go-emailsig/pkg/orchestrator"
	"github.com/goliatone/go-emailsig/pkg/presets"
)

// Version is stamped at build time with -ldflags "-X ...commands.Version=...".
var Version = "dev"

type globalOptions struct {
	verbosity  int
	configPath string
	noEnv      bool
}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "emailsig",
		Short: "Build email signatures that survive every mail client",
		Long: `emailsig renders email signatures as table-based HTML with inline styles,
plus plain text, PNG, vCard and QR variants of the same settings file.`,
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.SetupLogger(opts.verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "increase log verbosity (-v, -vv, -vvv)")
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "settings file (default: emailsig.yaml|yml|toml|json in the working directory)")
	rootCmd.PersistentFlags().BoolVar(&opts.noEnv, "no-env", false, "ignore EMAILSIG_ environment overrides")

	rootCmd.AddCommand(
		newRenderCmd(opts),
		newCopyCmd(opts),
		newExportCmd(opts),
		newInitCmd(opts),
		newWizardCmd(opts),
		newPresetsCmd(),
		newServeCmd(opts),
		newPublishCmd(opts),
		newSendTestCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// settingsPath resolves --config, falling back to discovery in the working
// directory.
func (o *globalOptions) settingsPath() string {
	if o.configPath != "" {
		return o.configPath
	}
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return config.Discover(dir)
}

func (o *globalOptions) loadSettings(overrides ...string) (config.Settings, error) {
	path := o.settingsPath()
	settings, err := config.Load(
		config.WithFile(path),
		config.WithEnv(!o.noEnv),
		config.WithOverrides(overrides...),
	)
	if err != nil {
		return config.Settings{}, err
	}
	log.Debug().Str("file", path).Msg("settings loaded")
	return settings, nil
}

func newGenerator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	base := []orchestrator.Option{
		orchestrator.WithThemeSelector(presets.Default()),
		orchestrator.WithLogger(logging.GetLogger("orchestrator")),
	}
	return orchestrator.New(append(base, options...)...)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "emailsig %s\n", Version)
			return err
		},
	}
}
