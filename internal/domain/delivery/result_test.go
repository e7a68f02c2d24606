//go:build unit

package delivery_test

import (
	"testing"

	"reminder-engine/internal/domain/delivery"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUnsubscribeURL(t *testing.T) {
	id := uuid.MustParse("7d0f3a52-8c1e-4c55-9a51-3c0c2b1f0e11")

	assert.Equal(t, "https://app.example.com/unsub/"+id.String(), delivery.UnsubscribeURL("https://app.example.com/", id))
	assert.Equal(t, "https://app.example.com/unsub/"+id.String(), delivery.UnsubscribeURL(" https://app.example.com ", id))
	assert.Empty(t, delivery.UnsubscribeURL("", id))
	assert.Empty(t, delivery.UnsubscribeURL("https://app.example.com", uuid.Nil))
}

func TestPayload_Greeting(t *testing.T) {
	assert.Equal(t, "Hello Camille,", delivery.Payload{Recipient: delivery.Recipient{FirstName: " Camille "}}.Greeting())
	assert.Equal(t, "Hello,", delivery.Payload{}.Greeting())
}

func TestPayload_WithUnsubscribeLine(t *testing.T) {
	p := delivery.Payload{UnsubscribeURL: "https://app.example.com/unsub/1"}
	assert.Equal(t, "See you soon!\n\nUnsubscribe: https://app.example.com/unsub/1", p.WithUnsubscribeLine("See you soon!"))
	assert.Equal(t, "See you soon!", delivery.Payload{}.WithUnsubscribeLine("See you soon!"))
}
