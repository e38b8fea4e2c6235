package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"dinebook/config"
	"dinebook/infras/otel"
	"dinebook/shared/constant"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

const (
	otelAttrRecipient = "mail.to"
	defaultSMTPPort   = 587
	defaultTimeout    = 15 * time.Second
)

var ErrNoRecipient = errors.New("mail recipient is required")

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type deliverFunc func(ctx context.Context, client *mail.Client, msg *mail.Msg) error

type smtpMailer struct {
	config  *config.Config
	otel    otel.Otel
	timeout time.Duration
	options []mail.Option
	deliver deliverFunc
}

type consoleMailer struct {
	otel otel.Otel
}

// New returns an SMTP mailer when MAIL_SMTP_HOST is configured and a console mailer otherwise.
func New(config *config.Config, otel otel.Otel) Mailer {
	smtpCfg := config.Mail.SMTP

	if smtpCfg.Host == constant.Empty {
		log.Warn().Msg("Mailer running in console mode (no SMTP host configured)")

		return &consoleMailer{otel: otel}
	}

	timeout := time.Duration(smtpCfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	log.Info().Str("host", smtpCfg.Host).Int("port", smtpCfg.Port).Dur("timeout", timeout).Msg("Mailer configured with SMTP")

	return &smtpMailer{
		config:  config,
		otel:    otel,
		timeout: timeout,
		options: clientOptions(config, timeout),
		deliver: dialAndSend,
	}
}

func clientOptions(config *config.Config, timeout time.Duration) []mail.Option {
	smtpCfg := config.Mail.SMTP

	port := smtpCfg.Port
	if port <= 0 {
		port = defaultSMTPPort
	}

	options := []mail.Option{
		mail.WithPort(port),
		mail.WithTimeout(timeout),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
		mail.WithDialContextFunc(dialWithDeadline),
	}

	if smtpCfg.Username != constant.Empty {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(smtpCfg.Username),
			mail.WithPassword(smtpCfg.Password),
		)
	}

	return options
}

// dialWithDeadline bounds every read and write of the SMTP session by the dial context's deadline.
func dialWithDeadline(ctx context.Context, network, address string) (net.Conn, error) {
	var dialer net.Dialer

	conn, err := dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err = conn.SetDeadline(deadline); err != nil {
			_ = conn.Close()

			return nil, err //nolint:wrapcheck
		}
	}

	return conn, nil
}

func dialAndSend(ctx context.Context, client *mail.Client, msg *mail.Msg) error {
	return client.DialAndSendWithContext(ctx, msg) //nolint:wrapcheck
}

func (m *smtpMailer) envelope(msg Message) (*mail.Msg, error) {
	envelope := mail.NewMsg()

	if err := envelope.From(m.config.Mail.From); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}

	if err := envelope.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}

	envelope.Subject(msg.Subject)
	envelope.SetBodyString(mail.TypeTextHTML, msg.HTML)

	return envelope, nil
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailScopeName, constant.OtelMailScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelAttrRecipient, msg.To)

	if msg.To == constant.Empty {
		return ErrNoRecipient
	}

	envelope, err := m.envelope(msg)
	if err != nil {
		log.Error().Err(err).Str("to", msg.To).Msg("failed to build email")

		return err
	}

	client, err := mail.NewClient(m.config.Mail.SMTP.Host, m.options...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err = m.deliver(ctx, client, envelope); err != nil {
		log.Error().Err(err).Str("to", msg.To).Msg("failed to send email")

		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("Email sent")

	return nil
}

func (m *consoleMailer) Send(ctx context.Context, msg Message) error {
	_, scope := m.otel.NewScope(ctx, constant.OtelMailScopeName, constant.OtelMailScopeName+".Send")
	defer scope.End()

	if msg.To == constant.Empty {
		scope.TraceError(ErrNoRecipient)

		return ErrNoRecipient
	}

	log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.HTML).
		Msg("Email sent (console mode)")

	return nil
}
