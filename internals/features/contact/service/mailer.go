package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"vetmissions_backend/internals/configs"
	"vetmissions_backend/internals/features/contact/dto"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/rs/zerolog/log"
)

var ErrMailerNotConfigured = errors.New("smtp host is not configured")

// Mailer relays a contact request to the organisation inbox.
type Mailer interface {
	Send(ctx context.Context, req dto.ContactRequest) error
}

type sendFunc func(addr string, a sasl.Client, from string, to []string, r io.Reader) error

type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	To       string

	send sendFunc
	now  func() time.Time
}

func NewSMTPMailer(cfg *configs.Config) *SMTPMailer {
	return &SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		To:       cfg.ContactTo,
		send:     smtp.SendMail,
		now:      time.Now,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, req dto.ContactRequest) error {
	if m.Host == "" {
		return ErrMailerNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth sasl.Client
	if m.Username != "" {
		auth = sasl.NewLoginClient(m.Username, m.Password)
	}

	from := m.From
	if from == "" {
		from = m.Username
	}

	msg := m.compose(from, req)
	addr := net.JoinHostPort(m.Host, m.Port)
	if err := m.send(addr, auth, from, []string{m.To}, bytes.NewReader(msg)); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("contact mail failed")
		return fmt.Errorf("send contact mail: %w", err)
	}
	log.Info().Str("interest", req.Interest).Msg("contact mail relayed")
	return nil
}

func (m *SMTPMailer) compose(from string, req dto.ContactRequest) []byte {
	subject := "Website contact"
	if req.Interest != "" {
		subject += ": " + req.Interest
	}

	var b strings.Builder
	header := func(k, v string) {
		b.WriteString(k + ": " + oneLine(v) + "\r\n")
	}
	header("From", from)
	header("To", m.To)
	header("Reply-To", fmt.Sprintf("%s <%s>", req.Name, req.Email))
	header("Subject", subject)
	header("Date", m.now().Format(time.RFC1123Z))
	header("Content-Type", "text/plain; charset=UTF-8")
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "Name: %s\r\n", req.Name)
	fmt.Fprintf(&b, "Email: %s\r\n", req.Email)
	if req.Interest != "" {
		fmt.Fprintf(&b, "Interest: %s\r\n", req.Interest)
	}
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(req.Message, "\r\n", "\n"), "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}

// oneLine keeps user input from adding header lines.
func oneLine(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
