package mail

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/mrz1836/postmark"
)

// PostmarkAPI is the part of *postmark.Client the sender uses.
type PostmarkAPI interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// PostmarkConfig configures PostmarkSender.
type PostmarkConfig struct {
	ServerToken string
	From        string
}

// PostmarkOption customises a PostmarkSender.
type PostmarkOption func(*PostmarkSender)

// WithPostmarkAPI replaces the HTTP client. Useful for tests.
func WithPostmarkAPI(api PostmarkAPI) PostmarkOption {
	return func(s *PostmarkSender) {
		s.api = api
	}
}

// PostmarkSender sends through Postmark's transactional API.
type PostmarkSender struct {
	api    PostmarkAPI
	config PostmarkConfig
}

var _ Sender = (*PostmarkSender)(nil)

// NewPostmarkSender validates cfg and builds a sender.
func NewPostmarkSender(cfg PostmarkConfig, opts ...PostmarkOption) (*PostmarkSender, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: server token is required", ErrInvalidConfig)
	}
	if _, err := mail.ParseAddress(cfg.From); err != nil {
		return nil, fmt.Errorf("%w: from address %q: %v", ErrInvalidConfig, cfg.From, err)
	}

	s := &PostmarkSender{config: cfg}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.api == nil {
		s.api = postmark.NewClient(cfg.ServerToken, "")
	}
	return s, nil
}

// Send implements Sender. Tracking stays off; this is a preview, not a
// campaign.
func (s *PostmarkSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	resp, err := s.api.SendEmail(ctx, postmark.Email{
		From:     s.config.From,
		To:       msg.To,
		Subject:  msg.Subject,
		Tag:      msg.Tag,
		HTMLBody: msg.HTML,
		TextBody: msg.Text,
	})
	if err != nil {
		return errors.Join(ErrFailedToSend, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSend,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
