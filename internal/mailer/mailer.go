package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"

	"github.com/shopspring/decimal"

	"github.com/Beyondthell/shopify-auction-backend/utils"
)

// WinnerMailer delivers the winner email. The notification gate is
// checked before calling this, and a delivery failure is never fed back
// into the ledger: the gate stays marked.
type WinnerMailer interface {
	SendWinnerEmail(ctx context.Context, to, bidderName, productID string, amount decimal.Decimal) error
}

// SMTPMailer sends winner emails over plain SMTP.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPMailer creates a mailer for the given SMTP endpoint. An empty
// username skips authentication, which local relays accept.
func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, username: username, password: password, from: from}
}

// SendWinnerEmail delivers one winner notification.
func (m *SMTPMailer) SendWinnerEmail(_ context.Context, to, bidderName, productID string, amount decimal.Decimal) error {
	subject := fmt.Sprintf("You won the auction for %s", productID)
	body := fmt.Sprintf(
		"<html><body><p>Congratulations %s!</p><p>Your bid of %s won the auction for product <b>%s</b>.</p></body></html>",
		bidderName, amount, productID,
	)

	msg := []byte(
		"From: " + m.from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
			"\r\n" + body,
	)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	addr := net.JoinHostPort(m.host, m.port)
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("mailer: failed to send winner email to %s: %w", to, err)
	}
	return nil
}

// LogMailer logs instead of sending. Used when SMTP is not configured,
// so local runs still exercise the notify flow end to end.
type LogMailer struct{}

// SendWinnerEmail logs the notification that would have been sent.
func (LogMailer) SendWinnerEmail(_ context.Context, to, bidderName, productID string, amount decimal.Decimal) error {
	utils.Info("winner email (log only, SMTP not configured)", map[string]any{
		"to":         to,
		"name":       bidderName,
		"product_id": productID,
		"amount":     amount.String(),
	})
	return nil
}
