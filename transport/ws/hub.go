package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

// RestaurantTopic is the topic carrying the reservation feed of one restaurant.
func RestaurantTopic(restaurantID string) string {
	return "restaurant:" + restaurantID
}

type Message struct {
	Topic string `json:"topic"`
	Type  string `json:"type"`
	Data  any    `json:"data"`
}

// Hub fans messages out to the clients subscribed to a topic.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[*Client]struct{})}
}

func (h *Hub) Attach(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]struct{})
	}

	h.topics[topic][c] = struct{}{}
	c.topic = topic

	log.Debug().Str("topic", topic).Msg("ws client attached")
}

func (h *Hub) Detach(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, ok := h.topics[c.topic]; ok {
		delete(subs, c)

		if len(subs) == 0 {
			delete(h.topics, c.topic)
		}
	}

	c.close()
}

// Subscribers returns the number of clients attached to topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.topics[topic])
}

// Broadcast delivers msg to every subscriber of msg.Topic. Clients whose buffer is full are dropped.
func (h *Hub) Broadcast(_ context.Context, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal ws message")

		return
	}

	// sends happen under the read lock so Detach cannot close a channel mid-send.
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.topics[msg.Topic] {
		select {
		case c.send <- data:
		default:
			log.Warn().Str("topic", msg.Topic).Msg("ws send buffer full, dropping client")

			go h.Detach(c)
		}
	}
}
