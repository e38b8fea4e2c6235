package mailer

import (
	"context"
	"dinebook/config"
	"dinebook/infras/otel/mocks"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func smtpConfig(host string, port int) *config.Config {
	cfg := &config.Config{}
	cfg.Mail.SMTP.Host = host
	cfg.Mail.SMTP.Port = port
	cfg.Mail.SMTP.TimeoutSeconds = 5
	cfg.Mail.From = "no-reply@dinebook.local"

	return cfg
}

func TestNew_ConsoleFallback(t *testing.T) {
	m := New(&config.Config{}, mocks.NewOtel())

	_, ok := m.(*consoleMailer)
	assert.True(t, ok)
	assert.NoError(t, m.Send(context.Background(), Message{To: "guest@example.com", Subject: "hi", HTML: "<p>hi</p>"}))
	assert.ErrorIs(t, m.Send(context.Background(), Message{}), ErrNoRecipient)
}

func TestSMTPMailer_Send(t *testing.T) {
	m, ok := New(smtpConfig("smtp.example.com", 2525), mocks.NewOtel()).(*smtpMailer)
	require.True(t, ok)

	var (
		recipients  []string
		hasDeadline bool
	)

	m.deliver = func(ctx context.Context, _ *mail.Client, msg *mail.Msg) error {
		_, hasDeadline = ctx.Deadline()

		var err error
		recipients, err = msg.GetRecipients()

		return err
	}

	err := m.Send(context.Background(), Message{To: "guest@example.com", Subject: "Confirm your table", HTML: "<b>ok</b>"})

	require.NoError(t, err)
	assert.Equal(t, []string{"guest@example.com"}, recipients)
	assert.True(t, hasDeadline)
}

func TestSMTPMailer_RejectsHeaderInjection(t *testing.T) {
	m, ok := New(smtpConfig("smtp.example.com", 2525), mocks.NewOtel()).(*smtpMailer)
	require.True(t, ok)

	delivered := false
	m.deliver = func(context.Context, *mail.Client, *mail.Msg) error {
		delivered = true

		return nil
	}

	err := m.Send(context.Background(), Message{To: "guest@example.com\r\nBcc: everyone@example.com", Subject: "hi"})

	assert.ErrorContains(t, err, "invalid recipient address")
	assert.False(t, delivered)
}

func TestSMTPMailer_SendError(t *testing.T) {
	m, ok := New(smtpConfig("smtp.example.com", 2525), mocks.NewOtel()).(*smtpMailer)
	require.True(t, ok)

	m.deliver = func(context.Context, *mail.Client, *mail.Msg) error {
		return errors.New("connection refused")
	}

	assert.ErrorContains(t, m.Send(context.Background(), Message{To: "guest@example.com"}), "connection refused")
}

// A server that accepts the connection but never greets must not hold the sender past its deadline.
func TestSMTPMailer_SilentServer(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	hold := make(chan struct{})
	t.Cleanup(func() { close(hold) })

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}

		<-hold
		_ = conn.Close()
	}()

	port := listener.Addr().(*net.TCPAddr).Port
	m := New(smtpConfig("127.0.0.1", port), mocks.NewOtel())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- m.Send(ctx, Message{To: "guest@example.com", Subject: "hi"}) }()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Send stayed blocked after its context deadline")
	}
}
