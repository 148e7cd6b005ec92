package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/messaging"
	"github.com/shandysiswandi/gomotor/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	messaging.Messaging
	topic string
	out   messaging.Outgoing
	err   error
}

func (r *recorder) Publish(_ context.Context, topic string, out messaging.Outgoing) error {
	r.topic = topic
	r.out = out
	return r.err
}

func TestPublishAdminSecurity(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		rec := &recorder{}
		m := NewMessaging(rec, instrument.NewNoop())
		ctx := instrument.SetCorrelationID(t.Context(), "req-7")

		// Act
		err := m.PublishAdminSecurity(ctx, event.AdminSecurityMessage{AdminID: 3, Change: event.SecurityPasswordChanged})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, event.AdminSecurityDestination, rec.topic)
		assert.Equal(t, []byte("3"), rec.out.Key)
		assert.Equal(t, "req-7", rec.out.Headers[event.HeaderCorrelationID])

		var payload event.AdminSecurityMessage
		require.NoError(t, json.Unmarshal(rec.out.Body, &payload))
		assert.Equal(t, event.SecurityPasswordChanged, payload.Change)
	})

	t.Run("BrokerError", func(t *testing.T) {
		// Arrange
		rec := &recorder{err: errors.New("broker down")}
		m := NewMessaging(rec, instrument.NewNoop())

		// Act
		err := m.PublishAdminSecurity(t.Context(), event.AdminSecurityMessage{AdminID: 3})

		// Assert
		assert.EqualError(t, err, "broker down")
	})
}
