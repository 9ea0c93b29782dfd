package email

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPSenderSend(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", "587", "noreply@example.com", "pw")

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	s.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	require.NoError(t, s.Send(context.Background(), "alice@example.com", "Your open tasks", "- Read ch.1"))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"alice@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Your open tasks\r\n")
	assert.Contains(t, string(gotMsg), "\r\n\r\n- Read ch.1\r\n")
}

func TestSMTPSenderErrors(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", "587", "noreply@example.com", "pw")
	s.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("relay down")
	}

	err := s.Send(context.Background(), "alice@example.com", "s", "b")
	assert.ErrorContains(t, err, "relay down")

	assert.Error(t, s.Send(context.Background(), "alice@example.com\r\nBcc: x@y", "s", "b"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, "alice@example.com", "s", "b"), context.Canceled)
}
