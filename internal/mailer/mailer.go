// Package mailer is the outbound notification boundary. The auth
// service only ever supplies a template name, a recipient and the
// substitution values; rendering lives with the email provider.
package mailer

import "context"

// Template aliases known to the provider.
const (
	TemplateVerification = "email-verification"
	TemplateResetRequest = "password-reset"
	TemplateResetSuccess = "password-reset-success"
)

// Dispatcher sends one transactional email. A send is attempted exactly
// once; the error is the caller's to surface.
type Dispatcher interface {
	Send(ctx context.Context, template, recipient string, vars map[string]string) error
}
