package events_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/pkg/events"
)

func TestNewBaseEvent(t *testing.T) {
	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	evt := events.NewBaseEvent("credit.loan.issued", "loan-001", "Loan", at)

	require.NotEmpty(t, evt.EventID())
	assert.Equal(t, "credit.loan.issued", evt.EventType())
	assert.Equal(t, "loan-001", evt.AggregateID())
	assert.Equal(t, "Loan", evt.AggregateType())
	assert.Equal(t, at, evt.OccurredAt())
}

func TestNewBaseEvent_UniqueIDs(t *testing.T) {
	now := time.Now().UTC()
	a := events.NewBaseEvent("credit.payment.registered", "pay-1", "Payment", now)
	b := events.NewBaseEvent("credit.payment.registered", "pay-1", "Payment", now)
	assert.NotEqual(t, a.EventID(), b.EventID())
}
