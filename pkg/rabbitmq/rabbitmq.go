package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/streadway/amqp"
)

const orderEventQueue = "order_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// OrderEvent is published whenever an order changes state in a way the rest
// of the shop (back-office, analytics) cares about.
type OrderEvent struct {
	Type            string    `json:"type"` // "order_created" | "order_completed" | "order_failed"
	OrderID         uint      `json:"order_id"`
	MerchantOrderID string    `json:"merchant_order_id"`
	UserID          string    `json:"user_id"`
	TotalAmount     float64   `json:"total_amount"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// NewClient connects to RabbitMQ and declares the order event queue.
func NewClient(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(orderEventQueue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &Client{conn: conn, channel: ch}, nil
}

// PublishOrderEvent sends an event to the order queue. Best-effort: callers
// log the returned error and move on.
func (c *Client) PublishOrderEvent(event OrderEvent) error {
	if c == nil {
		return nil
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return c.channel.Publish("", orderEventQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
}

// Close shuts down the channel and connection.
func (c *Client) Close() {
	if c == nil {
		return
	}
	if err := c.channel.Close(); err != nil {
		log.Printf("rabbitmq: failed to close channel: %v", err)
	}
	if err := c.conn.Close(); err != nil {
		log.Printf("rabbitmq: failed to close connection: %v", err)
	}
}
