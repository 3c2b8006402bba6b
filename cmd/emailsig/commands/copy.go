package commands

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-emailsig/pkg/export"
	"github.com/goliatone/go-emailsig/pkg/renderers/markup"
)

func newCopyCmd(opts *globalOptions) *cobra.Command {
	var (
		flags    renderFlags
		rendered bool
	)

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy the signature HTML to the clipboard over OSC 52",
		Long: `copy places the signature on the system clipboard through the terminal
(OSC 52), which also works over SSH and inside tmux or screen. With
--rendered the markup is normalized the way a browser serializes it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p, err := flags.prepare(ctx, opts)
			if err != nil {
				return err
			}
			html, err := p.session.Preview(ctx)
			if err != nil {
				return err
			}

			clip := export.NewOSC52Clipboard(cmd.OutOrStdout())

			var notice export.Notice
			if rendered {
				notice = export.CopyRendered(ctx, clip, html)
			} else {
				notice = export.CopyHTML(ctx, clip, html)
			}
			PrintNotice(cmd.ErrOrStderr(), notice)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&rendered, "rendered", false, "copy the browser-normalized markup instead of the generated source")
	return cmd
}

func newExportCmd(opts *globalOptions) *cobra.Command {
	var (
		flags renderFlags
		dir   string
		png   bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Save signature.html (and optionally signature.png) to a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p, err := flags.prepare(ctx, opts)
			if err != nil {
				return err
			}

			doc, err := p.render(ctx, markup.Name, true)
			if err != nil {
				return err
			}
			PrintNotice(cmd.ErrOrStderr(), export.DownloadHTML(dir, string(doc)))

			if png {
				rasterizer, err := p.gen.Registry().Get("png")
				if err != nil {
					return err
				}
				// the renderer is called directly, so resolve presets first
				prepared, err := p.gen.Prepare(ctx, p.request("png", false))
				if err != nil {
					return err
				}
				PrintNotice(cmd.ErrOrStderr(), export.ExportPNG(ctx, rasterizer, prepared, p.session.RenderOptions(), dir))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "destination directory")
	cmd.Flags().BoolVar(&png, "png", false, "also export a PNG image")
	return cmd
}
