package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten_BuildsCompositeIDs(t *testing.T) {
	categories := []*ServiceCategory{
		{
			ID:   "2",
			Name: "Hair",
			Items: []ServiceItem{
				{ID: "1", Title: "Haircut", Price: 35},
				{ID: "4", Title: "Colour", Price: 80, Type: "premium"},
			},
		},
		nil,
		{ID: "3", Name: "Nails"},
	}

	flat := Flatten(categories)

	require.Len(t, flat, 2)
	assert.Equal(t, "2-1", flat[0].ID)
	assert.Equal(t, "Hair", flat[0].CategoryName)
	assert.Equal(t, "2-4", flat[1].ID)
	assert.Equal(t, "premium", flat[1].Type)
}

func TestProduct_EffectivePrice(t *testing.T) {
	discount := 19.99
	p := &Product{Price: 24.99}
	assert.Equal(t, 24.99, p.EffectivePrice())

	p.DiscountPrice = &discount
	assert.Equal(t, 19.99, p.EffectivePrice())
}

func TestNewDomainEvent_EncodesPayload(t *testing.T) {
	event := NewDomainEvent(EventAppointmentApproved, AggregateAppointment, "a-1", map[string]bool{"isApproved": true})

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "a-1", event.AggregateID)

	var payload map[string]bool
	require.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.True(t, payload["isApproved"])
}
