package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/models"
)

func TestNewProductEvent(t *testing.T) {
	t.Parallel()

	ev := NewProductEvent(ProductUpdated, models.Product{SKU: "A-1", Name: "Mug", Price: 5}, "admin-1")
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "A-1", ev.SKU)
	assert.False(t, ev.OccurredAt.IsZero())

	data, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "product_updated", decoded["type"])
	assert.Equal(t, "admin-1", decoded["actorId"])
	assert.Equal(t, "A-1", decoded["product"].(map[string]any)["sku"])
}

func TestProducerConfig(t *testing.T) {
	t.Parallel()

	p := NewProducer([]string{"localhost:9092"}, TopicProductEvents)
	assert.Equal(t, TopicProductEvents, p.writer.Topic)
	assert.Equal(t, "localhost:9092", p.writer.Addr.String())
	require.NoError(t, p.Close())
}
