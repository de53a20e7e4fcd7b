// Package mailer delivers account confirmation email. The SMTP sender
// is a thin transport; retry policy lives in the Dispatcher.
package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/dentix/clinic-server/internal/model"
)

var _ model.ConfirmationSender = (*SMTPSender)(nil)

// SMTPSender sends confirmation messages over plain SMTP.
type SMTPSender struct {
	addr            string
	from            string
	confirmationURL string
}

// NewSMTPSender creates a sender for the given host/port.
// confirmationURL is the public base the token link is appended to.
func NewSMTPSender(host, port, from, confirmationURL string) *SMTPSender {
	return &SMTPSender{
		addr:            net.JoinHostPort(host, port),
		from:            from,
		confirmationURL: strings.TrimRight(confirmationURL, "/"),
	}
}

// SendConfirmation delivers the confirmation link to the account's
// email. The ctx deadline bounds connection establishment so a slow
// relay cannot block the caller indefinitely.
func (s *SMTPSender) SendConfirmation(ctx context.Context, account model.Account, token string) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to dial smtp relay: %w", err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			conn.Close()
			return fmt.Errorf("failed to set smtp deadline: %w", err)
		}
	}

	host, _, _ := net.SplitHostPort(s.addr)
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	defer client.Close()

	if err := client.Mail(s.from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(account.Email); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open message body: %w", err)
	}
	if _, err := w.Write([]byte(s.message(account, token))); err != nil {
		return fmt.Errorf("failed to write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message body: %w", err)
	}

	return client.Quit()
}

func (s *SMTPSender) message(account model.Account, token string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", account.Email)
	b.WriteString("Subject: Confirm your account\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Hello %s,\r\n\r\n", account.Name)
	b.WriteString("Follow the link below to confirm your account:\r\n\r\n")
	fmt.Fprintf(&b, "%s/%s\r\n", s.confirmationURL, token)
	return b.String()
}
