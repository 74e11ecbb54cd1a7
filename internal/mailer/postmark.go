package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

var ErrSendFailed = errors.New("failed to send email")

type postmarkDispatcher struct {
	client  *postmark.Client
	sender  string
	replyTo string
}

// NewPostmark returns a Dispatcher backed by Postmark's templated
// transactional API.
func NewPostmark(serverToken, accountToken, sender, replyTo string) Dispatcher {
	return &postmarkDispatcher{
		client:  postmark.NewClient(serverToken, accountToken),
		sender:  sender,
		replyTo: replyTo,
	}
}

func (d *postmarkDispatcher) Send(ctx context.Context, template, recipient string, vars map[string]string) error {
	model := make(map[string]interface{}, len(vars))
	for k, v := range vars {
		model[k] = v
	}

	resp, err := d.client.SendTemplatedEmail(ctx, postmark.TemplatedEmail{
		TemplateAlias: template,
		TemplateModel: model,
		From:          d.sender,
		ReplyTo:       d.replyTo,
		To:            recipient,
		Tag:           template,
		TrackOpens:    true,
	})
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(ErrSendFailed, fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message))
	}
	return nil
}
