package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"
)

// sendTimeout bounds one SMTP dial-and-send.
const sendTimeout = 10 * time.Second

// Sender is the transactional email collaborator consumed by the auth
// service. Each operation either resolves or fails; the caller decides
// whether a failure is fatal for the surrounding flow.
type Sender interface {
	SendVerificationEmail(ctx context.Context, email, token, username string) error
	SendPasswordResetEmail(ctx context.Context, email, token, username string) error
	SendWelcomeEmail(ctx context.Context, email, username string) error
}

// Mailer sends transactional email over SMTP.
type Mailer struct {
	dialer      *gomail.Dialer
	from        string
	frontendURL string
}

// New creates a Mailer against the given SMTP endpoint. Links in message
// bodies point at frontendURL.
func New(host string, port int, user, password, from, frontendURL string) *Mailer {
	return &Mailer{
		dialer:      gomail.NewDialer(host, port, user, password),
		from:        from,
		frontendURL: frontendURL,
	}
}

var _ Sender = (*Mailer)(nil)

type templateData struct {
	Username string
	Link     string
	Year     int
}

// SendVerificationEmail sends the email-verification link. The token is the
// plaintext one-time token; this is the only place it leaves the process.
func (m *Mailer) SendVerificationEmail(ctx context.Context, email, token, username string) error {
	data := templateData{
		Username: username,
		Link:     fmt.Sprintf("%s/verify-email/%s", m.frontendURL, token),
		Year:     time.Now().Year(),
	}
	return m.send(ctx, email, "Verify Your Email - IDJ", verificationTmpl, data)
}

// SendPasswordResetEmail sends the password-reset link.
func (m *Mailer) SendPasswordResetEmail(ctx context.Context, email, token, username string) error {
	data := templateData{
		Username: username,
		Link:     fmt.Sprintf("%s/reset-password/%s", m.frontendURL, token),
		Year:     time.Now().Year(),
	}
	return m.send(ctx, email, "Reset Your Password - IDJ", resetTmpl, data)
}

// SendWelcomeEmail greets a freshly verified account.
func (m *Mailer) SendWelcomeEmail(ctx context.Context, email, username string) error {
	data := templateData{
		Username: username,
		Year:     time.Now().Year(),
	}
	return m.send(ctx, email, "Welcome to IDJ!", welcomeTmpl, data)
}

func (m *Mailer) send(ctx context.Context, to, subject string, tmpl *template.Template, data templateData) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render email body: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	// gomail has no context support, so the send runs in a goroutine and
	// the caller stops waiting when the deadline passes.
	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send email to %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send email to %s: %w", to, ctx.Err())
	}
}
