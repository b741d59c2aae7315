// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

/*
Package notify implements the out-of-band delivery channels for one-time codes.

It provides an SMTP mailer for email verification codes and a Twilio REST
client for SMS two-factor codes, composed behind a single Notifier facade
consumed by the authentication service.

# Failure Semantics

Senders report delivery failure as a plain error; they never retry. The
authentication state machine decides what a failed delivery means for stored
state (compensating delete at signup, plain failure elsewhere).
*/
package notify

import (
	"context"
	"log/slog"

	"github.com/condorlabs/condor/internal/platform/config"
	"github.com/condorlabs/condor/internal/users/auth"
)

// Notifier composes the email and SMS channels behind [auth.Notifier].
type Notifier struct {
	email *EmailSender
	sms   *SMSSender
}

// New constructs a [Notifier] with both delivery channels configured.
func New(cfg *config.Config, logger *slog.Logger) *Notifier {
	return &Notifier{
		email: NewEmailSender(cfg, logger),
		sms:   NewSMSSender(cfg, logger),
	}
}

// SendVerificationEmail delivers an email verification code.
func (notifier *Notifier) SendVerificationEmail(context context.Context, email, code, fullName string) error {
	return notifier.email.SendVerificationEmail(context, email, code, fullName)
}

// SendTwoFactorSMS delivers a second-factor login code.
func (notifier *Notifier) SendTwoFactorSMS(context context.Context, code string, user *auth.User) error {
	return notifier.sms.SendTwoFactorSMS(context, code, user)
}
