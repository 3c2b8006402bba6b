package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-emailsig/pkg/config"
	"github.com/goliatone/go-emailsig/pkg/presets"
	"github.com/goliatone/go-emailsig/pkg/wizard"
)

const defaultSettingsFile = "emailsig.yaml"

func newInitCmd(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter settings file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultSettingsFile
			if len(args) == 1 {
				path = args[0]
			} else if opts.configPath != "" {
				path = opts.configPath
			}
			if err := config.Write(path, config.Default(), force); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), SuccessStyle.Render("✓ Settings written"), PathStyle.Render(path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newWizardCmd(opts *globalOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Answer a few questions to build or update the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := opts.loadSettings()
			if err != nil {
				return err
			}

			w := wizard.New(wizard.WithPromptDriver(wizard.NewSurveyDriver(cmd.ErrOrStderr())))
			result, err := w.Run(cmd.Context(), settings.Signature, settings.Preset)
			if err != nil {
				return err
			}
			settings.Signature = result.Config
			settings.Preset = result.Preset

			path := out
			if path == "" {
				path = opts.settingsPath()
			}
			if path == "" {
				path = defaultSettingsFile
			}
			if err := config.Write(path, settings, true); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), SuccessStyle.Render("✓ Settings saved"), PathStyle.Render(path))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "where to save (default: the loaded settings file)")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the bundled style presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			selector := presets.Default()
			w := cmd.OutOrStdout()
			for _, name := range selector.Names() {
				line := HeadingStyle.Render(name)
				if variants := selector.Variants(name); len(variants) > 0 {
					line += " " + MutedStyle.Render("variants: "+strings.Join(variants, ", "))
				}
				if _, err := fmt.Fprintln(w, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
