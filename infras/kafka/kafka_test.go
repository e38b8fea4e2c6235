package kafka_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	kafkaGo "github.com/segmentio/kafka-go"

	"dinebook/infras/kafka"
)

type sampleEvent struct {
	Type         string `json:"type"`
	RestaurantID string `json:"restaurant_id"`
}

func TestMessage_ToKafkaMessageAndDecode(t *testing.T) {
	msg := kafka.Message{
		Key:   "restaurant-1",
		Value: sampleEvent{Type: "reservation.created", RestaurantID: "restaurant-1"},
	}

	encoded, err := msg.ToKafkaMessage()
	assert.NoError(t, err)
	assert.Equal(t, []byte("restaurant-1"), encoded.Key)
	assert.JSONEq(t, `{"type":"reservation.created","restaurant_id":"restaurant-1"}`, string(encoded.Value))

	decoded, err := kafka.Decode[sampleEvent](encoded)
	assert.NoError(t, err)
	assert.Equal(t, "reservation.created", decoded.Type)
}

func TestDecode_InvalidPayload(t *testing.T) {
	_, err := kafka.Decode[sampleEvent](kafkaGo.Message{Value: []byte("not json")})
	assert.Error(t, err)
}

func TestMessage_ToKafkaMessage_Unmarshalable(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}
