package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-emailsig/internal/logging"
	"github.com/goliatone/go-emailsig/pkg/assets"
	"github.com/goliatone/go-emailsig/pkg/export"
	"github.com/goliatone/go-emailsig/pkg/mail"
)

func newPublishCmd(opts *globalOptions) *cobra.Command {
	var (
		flags  renderFlags
		inline bool
	)

	cmd := &cobra.Command{
		Use:   "publish [files...]",
		Short: "Upload images (or the rendered PNG) and print their public URLs",
		Long: `publish uploads each file to the S3 bucket configured under "publish" in the
settings file and prints the public URL to use as logo_url or headshot_url.
Without files it uploads the rendered signature PNG. With --inline nothing
is uploaded; a data: URI is printed instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := flags.prepare(ctx, opts)
			if err != nil {
				return err
			}

			type upload struct {
				name string
				path string
				data []byte
			}
			var uploads []upload
			if len(args) == 0 {
				data, err := p.render(ctx, "png", false)
				if err != nil {
					return err
				}
				uploads = append(uploads, upload{name: export.DefaultPNGName, data: data})
			}
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				uploads = append(uploads, upload{name: filepath.Base(path), path: path, data: data})
			}

			out := cmd.OutOrStdout()
			if inline {
				for _, u := range uploads {
					uri, err := assets.InlineBytes(u.data, assets.DetectMIMEType(u.name, u.data))
					if err != nil {
						return fmt.Errorf("inline %s: %w", u.name, err)
					}
					fmt.Fprintln(out, uri)
				}
				return nil
			}

			publisher, err := assets.NewPublisher(ctx, p.settings.Publish,
				assets.WithPublishLogger(logging.GetLogger("publish")),
			)
			if err != nil {
				return err
			}
			for _, u := range uploads {
				var published assets.Published
				if u.path != "" {
					published, err = publisher.PublishFile(ctx, u.path)
				} else {
					published, err = publisher.Publish(ctx, u.name, u.data, "")
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(out, published.URL)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&inline, "inline", false, "print data: URIs instead of uploading")
	return cmd
}

func newSendTestCmd(opts *globalOptions) *cobra.Command {
	var (
		flags   renderFlags
		to      string
		subject string
	)

	cmd := &cobra.Command{
		Use:   "send-test",
		Short: "Email the signature to yourself through Postmark",
		Long: `send-test renders the signature and sends it in a test message so it can be
checked in a real mail client. The Postmark server token and sender come
from the "mail" section of the settings file or EMAILSIG_MAIL__SERVER_TOKEN
and EMAILSIG_MAIL__FROM.`,
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

			settings := p.settings.Mail
			if to == "" {
				to = settings.To
			}
			if to == "" {
				to = p.session.Config().Email
			}
			if subject == "" {
				subject = settings.Subject
			}

			sender, err := mail.NewPostmarkSender(mail.PostmarkConfig{
				ServerToken: settings.ServerToken,
				From:        settings.From,
			})
			if err != nil {
				return err
			}
			if err := mail.SendTest(ctx, sender, to, subject, html); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), SuccessStyle.Render("✓ Test email sent to "+to))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&to, "to", "", "recipient (default: mail.to, then the signature email)")
	cmd.Flags().StringVar(&subject, "subject", "", "subject line")
	return cmd
}
