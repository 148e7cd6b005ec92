package mail

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	raw, rcpt, err := compose("Gomotor <no-reply@gomotor.test>", Message{
		To:       []string{"buyer@example.test"},
		Bcc:      []string{"audit@gomotor.test"},
		ReplyTo:  "sales@gomotor.test",
		Subject:  "Terima kasih, Budi",
		TextBody: "plain",
		HTMLBody: "<p>html</p>",
	}, now)
	require.NoError(t, err)

	msg := string(raw)
	assert.Equal(t, []string{"buyer@example.test", "audit@gomotor.test"}, rcpt)
	assert.Contains(t, msg, "From: Gomotor <no-reply@gomotor.test>\r\n")
	assert.Contains(t, msg, "Reply-To: sales@gomotor.test\r\n")
	assert.Contains(t, msg, "Subject: Terima kasih, Budi\r\n")
	assert.Contains(t, msg, "multipart/alternative; boundary=")
	assert.Contains(t, msg, "<p>html</p>")
	assert.NotContains(t, msg, "audit@gomotor.test")
	assert.True(t, strings.Index(msg, "plain") < strings.Index(msg, "<p>html</p>"))
}

func TestComposeErrors(t *testing.T) {
	_, _, err := compose("", Message{To: []string{"a@b.test"}}, time.Now())
	assert.ErrorIs(t, err, ErrNoSender)

	_, _, err = compose("x@y.test", Message{}, time.Now())
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestEnvelopeAddress(t *testing.T) {
	assert.Equal(t, "no-reply@x.test", envelopeAddress("Shop <no-reply@x.test>"))
	assert.Equal(t, "plain@x.test", envelopeAddress("plain@x.test"))
}

func TestNewSMTPRequiresHost(t *testing.T) {
	_, err := NewSMTP(SMTPConfig{})
	assert.ErrorIs(t, err, ErrSMTPHostPortRequired)
}

func TestLogDriver(t *testing.T) {
	l := NewLog("no-reply@x.test")
	assert.NoError(t, l.Send(context.Background(), Message{To: []string{"a@b.test"}, Subject: "hi"}))
	assert.ErrorIs(t, l.Send(context.Background(), Message{}), ErrNoRecipients)
}
