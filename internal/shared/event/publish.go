package event

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/messaging"
)

// HeaderCorrelationID carries the request correlation id across the broker.
const HeaderCorrelationID string = "cID"

// Publish sends payload as JSON keyed by the aggregate id, so brokers that
// partition by key keep one aggregate's events in order.
func Publish(ctx context.Context, client messaging.Messaging, destination string, key int64, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return client.Publish(ctx, destination, messaging.Outgoing{
		Key:     []byte(strconv.FormatInt(key, 10)),
		Body:    body,
		Headers: map[string]string{HeaderCorrelationID: instrument.GetCorrelationID(ctx)},
	})
}
