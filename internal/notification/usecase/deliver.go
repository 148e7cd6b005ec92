package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/gomotor/internal/notification/entity"
)

const (
	defaultRetryBase = 500 * time.Millisecond
	defaultRetryMax  = 4
	maxErrorLength   = 500
)

// deliver sends e with bounded exponential backoff and records the outcome
// in the deliveries log. A failed log write never blocks the send.
func (s *Usecase) deliver(ctx context.Context, e entity.Email) error {
	d := entity.Delivery{
		ID:        s.uid.Generate(),
		Event:     e.Event,
		Recipient: e.To,
		Subject:   e.Subject,
		Status:    entity.DeliveryStatusQueued,
	}

	recorded := true
	if err := s.repoDB.CreateDelivery(ctx, d); err != nil {
		slog.ErrorContext(ctx, "failed to repo create delivery", "event", e.Event, "error", err)
		recorded = false
	}

	var attempts int32
	sendErr := retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		attempts++
		if err := s.repoMail.Send(ctx, e); err != nil {
			slog.WarnContext(ctx, "email send attempt failed", "delivery_id", d.ID, "attempt", attempts, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})

	status, lastErr := entity.DeliveryStatusSent, ""
	if sendErr != nil {
		status, lastErr = entity.DeliveryStatusFailed, truncate(sendErr.Error(), maxErrorLength)
		slog.ErrorContext(ctx, "failed to send email", "delivery_id", d.ID, "event", e.Event, "attempts", attempts, "error", sendErr)
	}

	if recorded {
		if err := s.repoDB.UpdateDelivery(ctx, d.ID, status, attempts, lastErr); err != nil {
			slog.ErrorContext(ctx, "failed to repo update delivery", "delivery_id", d.ID, "status", status, "error", err)
		}
	}

	return sendErr
}

func (s *Usecase) backoff() retry.Backoff {
	base := time.Duration(s.cfg.GetInt64("modules.notification.retry_base_ms")) * time.Millisecond
	if base <= 0 {
		base = defaultRetryBase
	}

	attempts := uint64(s.cfg.GetUint("modules.notification.retry_max"))
	if attempts == 0 {
		attempts = defaultRetryMax
	}

	b := retry.NewExponential(base)
	b = retry.WithCappedDuration(30*time.Second, b)
	return retry.WithMaxRetries(attempts-1, b)
}

// truncate keeps at most n runes of valid UTF-8 so the text column accepts it.
func truncate(s string, n int) string {
	s = strings.ToValidUTF8(s, "?")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
