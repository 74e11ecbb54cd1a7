package mailer

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// devDispatcher logs the would-be email instead of sending it. Used
// when no Postmark tokens are configured, so local runs work without
// a provider account.
type devDispatcher struct{}

func NewDev() Dispatcher {
	return devDispatcher{}
}

func (devDispatcher) Send(_ context.Context, template, recipient string, vars map[string]string) error {
	log.WithFields(log.Fields{
		"template":  template,
		"recipient": recipient,
		"vars":      vars,
	}).Info("dev mailer: email not sent")
	return nil
}
