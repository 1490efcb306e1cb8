// Package feed consumes cashier events from the order-management backend:
// food availability flips and same-day order updates. Events never touch
// cart lines already added at the register.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/MySagra/mycassa-sub000/internal/domain"
)

const (
	EventFoodAvailability = "food-availability"
	EventOrderUpdated     = "order-updated"
	EventOrderPickedUp    = "order-picked-up"
)

// envelope wraps every cashier event on the wire.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type foodAvailabilityEvent struct {
	FoodID    string `json:"foodId"`
	Available bool   `json:"available"`
}

type orderPickedUpEvent struct {
	ID int64 `json:"id"`
}

// MenuUpdater receives availability flips.
type MenuUpdater interface {
	SetAvailability(foodID string, available bool) bool
}

// OrderBoard receives same-day order updates.
type OrderBoard interface {
	Upsert(order domain.DailyOrder)
	Remove(id int64)
}

type Consumer struct {
	menu   MenuUpdater
	board  OrderBoard
	reader *kafka.Reader
}

func NewConsumer(menu MenuUpdater, board OrderBoard, topic, groupID string, brokers ...string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{menu: menu, board: board, reader: reader}
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.processMessage(ctx)
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		log.Printf("error closing kafka reader: %v", err)
	}
}

func (c *Consumer) processMessage(ctx context.Context) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Printf("error reading cashier event: %v", err)
		return
	}

	var event envelope
	if err := json.Unmarshal(m.Value, &event); err != nil {
		log.Printf("error parsing cashier event: %v", err)
		return
	}

	switch event.Type {
	case EventFoodAvailability:
		var payload foodAvailabilityEvent
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			log.Printf("error parsing availability event: %v", err)
			return
		}
		if !c.menu.SetAvailability(payload.FoodID, payload.Available) {
			log.Printf("availability event for unknown food %q, skipping", payload.FoodID)
		}
	case EventOrderUpdated:
		var payload domain.DailyOrder
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			log.Printf("error parsing order event: %v", err)
			return
		}
		c.board.Upsert(payload)
	case EventOrderPickedUp:
		var payload orderPickedUpEvent
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			log.Printf("error parsing pickup event: %v", err)
			return
		}
		c.board.Remove(payload.ID)
	default:
		log.Printf("unknown cashier event type %q, skipping", event.Type)
	}
}
