package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-emailsig/internal/logging"
	"github.com/goliatone/go-emailsig/pkg/config"
	"github.com/goliatone/go-emailsig/pkg/orchestrator"
	"github.com/goliatone/go-emailsig/pkg/presets"
	"github.com/goliatone/go-emailsig/pkg/renderers/markup"
	"github.com/goliatone/go-emailsig/pkg/session"
)

// renderFlags are shared by every command that produces a signature.
type renderFlags struct {
	preset    string
	sets      []string
	overrides string
	freeform  string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "preset as name[:variant]; overrides the settings file")
	cmd.Flags().StringArrayVar(&f.sets, "set", nil, "override a setting, e.g. --set first_name=Ada (repeatable)")
	cmd.Flags().StringVar(&f.overrides, "overrides", "", "JSON document merged into the signature after the preset")
	cmd.Flags().StringVar(&f.freeform, "freeform", "", "HTML file that replaces the generated markup")
}

// prepared bundles what a command needs to render the current signature.
type prepared struct {
	settings config.Settings
	gen      *orchestrator.Orchestrator
	session  *session.Session
	preset   string
	variant  string
}

func (f *renderFlags) prepare(ctx context.Context, opts *globalOptions) (*prepared, error) {
	settings, err := opts.loadSettings(f.sets...)
	if err != nil {
		return nil, err
	}

	var genOpts []orchestrator.Option
	if f.overrides != "" {
		data, err := os.ReadFile(f.overrides)
		if err != nil {
			return nil, fmt.Errorf("read overrides: %w", err)
		}
		transformer, err := orchestrator.NewJSONOverrideTransformer(data)
		if err != nil {
			return nil, err
		}
		genOpts = append(genOpts, orchestrator.WithTransformer(transformer))
	}
	gen := newGenerator(genOpts...)

	ref := settings.Preset
	if f.preset != "" {
		ref = f.preset
	}
	name, variant := presets.ParseRef(ref)

	sess := session.New(gen, session.WithConfig(settings.Signature), session.WithPreset(name, variant))
	if f.freeform != "" {
		data, err := os.ReadFile(f.freeform)
		if err != nil {
			return nil, fmt.Errorf("read freeform: %w", err)
		}
		if err := sess.SetFreeform(ctx, true); err != nil {
			return nil, err
		}
		sess.EditFreeform(string(data))
	}

	return &prepared{settings: settings, gen: gen, session: sess, preset: name, variant: variant}, nil
}

func (p *prepared) request(format string, document bool) orchestrator.Request {
	options := p.session.RenderOptions()
	options.Document = document
	return orchestrator.Request{
		Config:   p.session.Config(),
		Renderer: format,
		Preset:   p.preset,
		Variant:  p.variant,
		Options:  options,
	}
}

func (p *prepared) render(ctx context.Context, format string, document bool) ([]byte, error) {
	defer logging.LogOperationStart(logging.GetLogger("render"), "render "+format)()
	return p.gen.Generate(ctx, p.request(format, document))
}

func newRenderCmd(opts *globalOptions) *cobra.Command {
	var (
		flags    renderFlags
		format   string
		out      string
		document bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the signature to stdout or a file",
		Example: `  emailsig render
  emailsig render --format png --out signature.png
  emailsig render --document --preset corporate:muted --set first_name=Ada`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p, err := flags.prepare(ctx, opts)
			if err != nil {
				return err
			}
			data, err := p.render(ctx, format, document)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), SuccessStyle.Render("✓ Signature written"), PathStyle.Render(out))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", markup.Name, "output format: html, text, png, vcard or qr")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	cmd.Flags().BoolVar(&document, "document", false, "wrap html output in a standalone document")
	return cmd
}
