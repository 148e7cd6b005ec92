package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"
)

var (
	ErrSMTPHostPortRequired = errors.New("mail: smtp host and port are required")
	ErrNoRecipients         = errors.New("mail: no recipients")
	ErrNoSender             = errors.New("mail: no sender")
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTP struct {
	addr string
	from string
	auth smtp.Auth
}

func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrSMTPHostPortRequired
	}

	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTP{
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		from: cfg.From,
		auth: auth,
	}, nil
}

func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from := msg.From
	if from == "" {
		from = s.from
	}

	raw, rcpt, err := compose(from, msg, time.Now())
	if err != nil {
		return err
	}

	return smtp.SendMail(s.addr, s.auth, envelopeAddress(from), rcpt, raw)
}

func (s *SMTP) Close() error { return nil }

// envelopeAddress strips a display name: "Gomotor <no-reply@x>" -> "no-reply@x".
func envelopeAddress(from string) string {
	if i := strings.LastIndexByte(from, '<'); i >= 0 {
		return strings.TrimSuffix(from[i+1:], ">")
	}
	return from
}

// compose renders an RFC 5322 message and returns it with the envelope
// recipients.
func compose(from string, msg Message, now time.Time) ([]byte, []string, error) {
	if from == "" {
		return nil, nil, ErrNoSender
	}

	rcpt := make([]string, 0, len(msg.To)+len(msg.Cc)+len(msg.Bcc))
	rcpt = append(append(append(rcpt, msg.To...), msg.Cc...), msg.Bcc...)
	if len(rcpt) == 0 {
		return nil, nil, ErrNoRecipients
	}

	var buf bytes.Buffer
	header := func(k, v string) {
		if v != "" {
			fmt.Fprintf(&buf, "%s: %s\r\n", k, v)
		}
	}

	header("From", from)
	header("To", strings.Join(msg.To, ", "))
	header("Cc", strings.Join(msg.Cc, ", "))
	header("Reply-To", msg.ReplyTo)
	header("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header("Date", now.Format(time.RFC1123Z))
	header("MIME-Version", "1.0")

	switch {
	case msg.HTMLBody != "" && msg.TextBody != "":
		mw := multipart.NewWriter(&buf)
		header("Content-Type", "multipart/alternative; boundary="+mw.Boundary())
		buf.WriteString("\r\n")
		for _, part := range []struct{ ct, body string }{
			{"text/plain; charset=UTF-8", msg.TextBody},
			{"text/html; charset=UTF-8", msg.HTMLBody},
		} {
			w, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {part.ct}})
			if err != nil {
				return nil, nil, err
			}
			if _, err := w.Write([]byte(part.body)); err != nil {
				return nil, nil, err
			}
		}
		if err := mw.Close(); err != nil {
			return nil, nil, err
		}
	case msg.HTMLBody != "":
		header("Content-Type", "text/html; charset=UTF-8")
		buf.WriteString("\r\n" + msg.HTMLBody)
	default:
		header("Content-Type", "text/plain; charset=UTF-8")
		buf.WriteString("\r\n" + msg.TextBody)
	}

	return buf.Bytes(), rcpt, nil
}
