package usecase

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shandysiswandi/gomotor/internal/notification/entity"
	"github.com/shandysiswandi/gomotor/internal/shared/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func buyLead() ConsumeLeadCreatedInput {
	return ConsumeLeadCreatedInput{
		LeadID:   77,
		Type:     event.LeadTypeBuy,
		FullName: "Budi <Santoso>",
		Email:    "budi@example.test",
		Phone:    "+628123456789",
		Message:  "Is it still available?",
		Subject:  "Toyota Avanza 2021",
		Details:  []event.Pair{{Label: "Financing", Value: "yes"}},
	}
}

func TestUsecase_ConsumeLeadCreated(t *testing.T) {
	t.Run("InvalidPayloadIsDropped", func(t *testing.T) {
		f := newFixture(t, testConfig)

		err := f.uc.ConsumeLeadCreated(t.Context(), ConsumeLeadCreatedInput{LeadID: 1, Type: "rent"})

		assert.NoError(t, err)
		f.mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("SalesAndCustomer", func(t *testing.T) {
		f := newFixture(t, testConfig)

		var sent []entity.Email
		f.db.On("CreateDelivery", mock.Anything, mock.AnythingOfType("entity.Delivery")).Return(nil).Twice()
		f.mail.On("Send", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sent = append(sent, args.Get(1).(entity.Email)) }).
			Return(nil).Twice()
		f.db.On("UpdateDelivery", mock.Anything, int64(901), entity.DeliveryStatusSent, int32(1), "").Return(nil)
		f.db.On("UpdateDelivery", mock.Anything, int64(902), entity.DeliveryStatusSent, int32(1), "").Return(nil)

		err := f.uc.ConsumeLeadCreated(t.Context(), buyLead())

		require.NoError(t, err)
		require.Len(t, sent, 2)

		sales := sent[0]
		assert.Equal(t, entity.EventLeadSales, sales.Event)
		assert.Equal(t, "sales@gomotor.test", sales.To)
		assert.Equal(t, "[Lead #77] Toyota Avanza 2021", sales.Subject)
		assert.Contains(t, sales.HTML, "Budi &lt;Santoso&gt;")
		assert.Contains(t, sales.HTML, "Financing")
		assert.Contains(t, sales.HTML, "https://gomotor.test/admin/leads/buy/77")
		assert.Contains(t, sales.HTML, "Jl. Sudirman 1, Jakarta")
		assert.Contains(t, sales.HTML, "2026")

		customer := sent[1]
		assert.Equal(t, entity.EventLeadCustomer, customer.Event)
		assert.Equal(t, "budi@example.test", customer.To)
		assert.Equal(t, "We received your enquiry #77", customer.Subject)
		assert.Contains(t, customer.HTML, "sales team will contact you")
	})

	t.Run("SellAcknowledgement", func(t *testing.T) {
		f := newFixture(t, "modules:\n  notification:\n    retry_base_ms: 1\n")
		in := buyLead()
		in.Type = event.LeadTypeSell

		f.db.On("CreateDelivery", mock.Anything, mock.Anything).Return(nil).Once()
		f.mail.On("Send", mock.Anything, mock.MatchedBy(func(e entity.Email) bool {
			return e.Event == entity.EventLeadCustomer && e.Subject == "We received your car details #77"
		})).Return(nil).Once()
		f.db.On("UpdateDelivery", mock.Anything, int64(901), entity.DeliveryStatusSent, int32(1), "").Return(nil)

		assert.NoError(t, f.uc.ConsumeLeadCreated(t.Context(), in))
	})

	t.Run("LongestAcceptedName", func(t *testing.T) {
		// Lead forms accept names up to 120 characters.
		f := newFixture(t, "modules:\n  notification:\n    retry_base_ms: 1\n")
		in := buyLead()
		in.FullName = strings.Repeat("Budiman ", 14) + "Sulistyo"

		f.db.On("CreateDelivery", mock.Anything, mock.Anything).Return(nil).Once()
		f.mail.On("Send", mock.Anything, mock.MatchedBy(func(e entity.Email) bool {
			return e.Event == entity.EventLeadCustomer
		})).Return(nil).Once()
		f.db.On("UpdateDelivery", mock.Anything, int64(901), entity.DeliveryStatusSent, int32(1), "").Return(nil)

		require.Len(t, in.FullName, 120)
		assert.NoError(t, f.uc.ConsumeLeadCreated(t.Context(), in))
		f.mail.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("RetriesThenSends", func(t *testing.T) {
		f := newFixture(t, testConfig)
		in := buyLead()

		f.db.On("CreateDelivery", mock.Anything, mock.Anything).Return(nil)
		f.mail.On("Send", mock.Anything, mock.MatchedBy(func(e entity.Email) bool { return e.Event == entity.EventLeadSales })).
			Return(errors.New("421 try later")).Twice()
		f.mail.On("Send", mock.Anything, mock.Anything).Return(nil).Twice()
		f.db.On("UpdateDelivery", mock.Anything, int64(901), entity.DeliveryStatusSent, int32(3), "").Return(nil)
		f.db.On("UpdateDelivery", mock.Anything, int64(902), entity.DeliveryStatusSent, int32(1), "").Return(nil)

		assert.NoError(t, f.uc.ConsumeLeadCreated(t.Context(), in))
	})

	t.Run("GivesUpAfterMaxAttempts", func(t *testing.T) {
		f := newFixture(t, testConfig)

		f.db.On("CreateDelivery", mock.Anything, mock.Anything).Return(nil)
		f.mail.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Times(6)
		f.db.On("UpdateDelivery", mock.Anything, int64(901), entity.DeliveryStatusFailed, int32(3), "smtp down").Return(nil)
		f.db.On("UpdateDelivery", mock.Anything, int64(902), entity.DeliveryStatusFailed, int32(3), "smtp down").Return(nil)

		assert.NoError(t, f.uc.ConsumeLeadCreated(t.Context(), buyLead()))
	})

	t.Run("SendsEvenWhenLogWriteFails", func(t *testing.T) {
		f := newFixture(t, testConfig)

		f.db.On("CreateDelivery", mock.Anything, mock.Anything).Return(errors.New("db down"))
		f.mail.On("Send", mock.Anything, mock.Anything).Return(nil).Twice()

		assert.NoError(t, f.uc.ConsumeLeadCreated(t.Context(), buyLead()))
		f.db.AssertNotCalled(t, "UpdateDelivery", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUsecase_ConsumeAdminSecurity(t *testing.T) {
	t.Run("DescribesChange", func(t *testing.T) {
		f := newFixture(t, testConfig)

		var got entity.Email
		f.db.On("CreateDelivery", mock.Anything, mock.MatchedBy(func(d entity.Delivery) bool {
			return d.Event == entity.EventAdminSecurity && d.Recipient == "dewi@gomotor.test" && d.Status == entity.DeliveryStatusQueued
		})).Return(nil)
		f.mail.On("Send", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { got = args.Get(1).(entity.Email) }).
			Return(nil)
		f.db.On("UpdateDelivery", mock.Anything, int64(901), entity.DeliveryStatusSent, int32(1), "").Return(nil)

		err := f.uc.ConsumeAdminSecurity(t.Context(), ConsumeAdminSecurityInput{
			AdminID:    1,
			Email:      "dewi@gomotor.test",
			FullName:   "Dewi",
			Change:     event.SecurityTwoFactorDisabled,
			IP:         "203.0.113.9",
			OccurredAt: 1782898200,
		})

		require.NoError(t, err)
		assert.Equal(t, "Security alert for your Gomotor account", got.Subject)
		assert.Contains(t, got.HTML, "Two-factor authentication was turned off")
		assert.Contains(t, got.HTML, "203.0.113.9")
		assert.NotContains(t, got.HTML, "Device")
	})

	t.Run("MissingEmailIsDropped", func(t *testing.T) {
		f := newFixture(t, testConfig)

		assert.NoError(t, f.uc.ConsumeAdminSecurity(t.Context(), ConsumeAdminSecurityInput{AdminID: 1, Change: event.SecurityPasswordChanged}))
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "Short", in: "smtp down", n: 20, want: "smtp down"},
		{name: "ASCII", in: "connection refused", n: 10, want: "connection"},
		{name: "KeepsWholeRunes", in: "gagal kirim ke büro 😞 sibuk", n: 21, want: "gagal kirim ke büro 😞"},
		{name: "InvalidBytes", in: "bad \xff\xfe reply", n: 50, want: "bad ? reply"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.n)

			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
