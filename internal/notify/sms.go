// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/condorlabs/condor/internal/platform/config"
	"github.com/condorlabs/condor/internal/users/auth"
)

// twilioMessagesURL is the Twilio Messages API endpoint template.
const twilioMessagesURL = "https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json"

// smsTimeout bounds a single Twilio API call.
const smsTimeout = 10 * time.Second

// SMSSender delivers two-factor codes through the Twilio Messages API.
type SMSSender struct {
	accountSID string
	authToken  string
	fromNumber string
	toNumber   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSMSSender constructs an [SMSSender] from the application config.
func NewSMSSender(cfg *config.Config, logger *slog.Logger) *SMSSender {
	return &SMSSender{
		accountSID: cfg.TwilioAccountSID,
		authToken:  cfg.TwilioAuthToken,
		fromNumber: cfg.TwilioFromNumber,
		toNumber:   cfg.TwilioToNumber,
		httpClient: &http.Client{Timeout: smsTimeout},
		logger:     logger,
	}
}

/*
SendTwoFactorSMS POSTs the second-factor code to the Twilio Messages API.

Description: Form-encoded request with HTTP basic auth (account SID / auth
token). Twilio answers 201 on accepted messages; anything else is a delivery
failure.

Parameters:
  - context: context.Context
  - code: string (6-digit login code)
  - user: *auth.User (recipient account, for logging)

Returns:
  - error: Request construction, transport, or Twilio rejection failures
*/
func (sender *SMSSender) SendTwoFactorSMS(context context.Context, code string, user *auth.User) error {
	endpoint := fmt.Sprintf(twilioMessagesURL, sender.accountSID)

	form := url.Values{}
	form.Set("Body", fmt.Sprintf("Tu código de verificación es: %s", code))
	form.Set("From", sender.fromNumber)
	form.Set("To", sender.toNumber)

	request, err := http.NewRequestWithContext(context, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("notify_sms_request_failed: %w", err)
	}
	request.SetBasicAuth(sender.accountSID, sender.authToken)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := sender.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("notify_sms_send_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated {
		return fmt.Errorf("notify_sms_rejected: twilio responded %d", response.StatusCode)
	}

	sender.logger.Info("two_factor_sms_sent", slog.String("user_id", user.ID))
	return nil
}
