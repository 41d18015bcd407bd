package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusProcessing, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusPending, StatusCancelled, true},
		{StatusShipped, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusProcessing, StatusPending, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" shipped ")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, st)

	_, err = ParseStatus("LOST")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestNewComputesTotal(t *testing.T) {
	o := New("u1", []byte(`{}`), []byte(`{}`), []OrderItem{
		{ProductID: "p1", Quantity: 2, Price: decimal.NewFromInt(10)},
		{ProductID: "p2", Quantity: 1, Price: decimal.NewFromInt(5)},
	})

	assert.Equal(t, StatusPending, o.Status)
	assert.True(t, o.Total.Equal(decimal.NewFromInt(25)))
}
