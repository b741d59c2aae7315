// Copyright (c) 2026 Condor Labs. All rights reserved.
// Author: dev@condorlabs.io

package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/condorlabs/condor/internal/platform/config"
)

// verificationSubject is the subject line for verification-code emails.
const verificationSubject = "Código de verificación para tu cuenta"

// verificationTemplate renders the verification-code email body.
var verificationTemplate = template.Must(template.New("verification").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e9e9e9; border-radius: 5px;">
  <h2 style="color: #333; text-align: center;">Verificación de cuenta</h2>
  <p>Hola {{.FullName}},</p>
  <p>Gracias por registrarte. Para completar tu registro, por favor utiliza el siguiente código de verificación:</p>
  <div style="background-color: #f5f5f5; padding: 15px; text-align: center; font-size: 24px; font-weight: bold; letter-spacing: 5px; margin: 20px 0;">
    {{.Code}}
  </div>
  <p>Este código expirará en 15 minutos.</p>
  <p>Si no has solicitado este código, por favor ignora este correo.</p>
  <p>Saludos,<br>El equipo de soporte</p>
</div>
`))

// EmailSender delivers verification codes over SMTP with implicit TLS.
type EmailSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *slog.Logger
}

// NewEmailSender constructs an [EmailSender] from the application config.
func NewEmailSender(cfg *config.Config, logger *slog.Logger) *EmailSender {
	return &EmailSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		logger:   logger,
	}
}

/*
SendVerificationEmail renders and delivers the verification-code email.

Parameters:
  - context: context.Context
  - email: string (recipient address)
  - code: string (6-digit verification code)
  - fullName: string (greeting name)

Returns:
  - error: Template, connection, authentication, or delivery failures
*/
func (sender *EmailSender) SendVerificationEmail(context context.Context, email, code, fullName string) error {
	if err := context.Err(); err != nil {
		return fmt.Errorf("notify_email_context: %w", err)
	}

	var body bytes.Buffer
	err := verificationTemplate.Execute(&body, struct {
		FullName string
		Code     string
	}{FullName: fullName, Code: code})
	if err != nil {
		return fmt.Errorf("notify_email_template_failed: %w", err)
	}

	message := sender.buildMessage(email, verificationSubject, body.String())

	if err := sender.deliver(email, message); err != nil {
		return err
	}

	sender.logger.Info("verification_email_sent", slog.String("to", email))
	return nil
}

// buildMessage assembles the RFC 5322 message with HTML headers.
func (sender *EmailSender) buildMessage(to, subject, body string) []byte {
	var message bytes.Buffer

	fmt.Fprintf(&message, "From: %s\r\n", sender.from)
	fmt.Fprintf(&message, "To: %s\r\n", to)
	fmt.Fprintf(&message, "Subject: %s\r\n", subject)
	fmt.Fprintf(&message, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	message.WriteString("\r\n")
	message.WriteString(body)

	return message.Bytes()
}

// deliver performs the SMTP session. Port 465 style: TLS from the first byte.
func (sender *EmailSender) deliver(to string, message []byte) error {
	address := fmt.Sprintf("%s:%d", sender.host, sender.port)
	tlsConfig := &tls.Config{ServerName: sender.host}

	conn, err := tls.Dial("tcp", address, tlsConfig)
	if err != nil {
		return fmt.Errorf("notify_email_dial_failed: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, sender.host)
	if err != nil {
		return fmt.Errorf("notify_email_client_failed: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", sender.username, sender.password, sender.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("notify_email_auth_failed: %w", err)
	}

	if err := client.Mail(sender.from); err != nil {
		return fmt.Errorf("notify_email_sender_failed: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("notify_email_recipient_failed: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("notify_email_data_failed: %w", err)
	}
	if _, err := writer.Write(message); err != nil {
		return fmt.Errorf("notify_email_write_failed: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("notify_email_close_failed: %w", err)
	}

	if err := client.Quit(); err != nil {
		return fmt.Errorf("notify_email_quit_failed: %w", err)
	}

	return nil
}
