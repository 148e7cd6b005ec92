package mail

import (
	"context"
	"log/slog"
)

// Log writes messages to the logger instead of sending them. It is the
// driver for local runs without an SMTP relay.
type Log struct {
	from string
}

func NewLog(from string) *Log { return &Log{from: from} }

func (l *Log) Send(ctx context.Context, msg Message) error {
	from := msg.From
	if from == "" {
		from = l.from
	}
	if len(msg.To)+len(msg.Cc)+len(msg.Bcc) == 0 {
		return ErrNoRecipients
	}

	slog.InfoContext(ctx, "mail not sent, log driver",
		"from", from,
		"to", msg.To,
		"subject", msg.Subject,
		"text", msg.TextBody,
	)
	return nil
}

func (l *Log) Close() error { return nil }
