// Package mail sends transactional email. Usecases depend on Mail; the
// delivery mechanism is picked at startup.
package mail

import (
	"context"
	"io"
)

type Message struct {
	// From overrides the configured sender when set.
	From    string
	ReplyTo string
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	// TextBody and HTMLBody are sent as multipart/alternative when both are set.
	TextBody string
	HTMLBody string
}

type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}
