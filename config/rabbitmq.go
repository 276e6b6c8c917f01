package config

import (
	"encoding/json"
	"log"
	"os"

	"github.com/streadway/amqp"
)

// AMQPChannel is nil when RabbitMQ is not configured; publishing is a
// no-op in that case.
var AMQPChannel *amqp.Channel

const (
	ExchangeBookingConfirmed = "booking_confirmed"
	ExchangeBookingCancelled = "booking_cancelled"
)

// ConnectRabbitMQ wires the optional event broker. A missing
// RABBITMQ_URL or a failed dial only logs; the API works without it.
func ConnectRabbitMQ() {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		log.Println("⚠️  RABBITMQ_URL not set; booking events disabled")
		return
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		log.Printf("⚠️  RabbitMQ connect failed, booking events disabled: %v", err)
		return
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("⚠️  RabbitMQ channel failed, booking events disabled: %v", err)
		return
	}

	for _, ex := range []string{ExchangeBookingConfirmed, ExchangeBookingCancelled} {
		if err := ch.ExchangeDeclare(ex, "fanout", true, false, false, false, nil); err != nil {
			log.Printf("⚠️  RabbitMQ exchange %s declare failed, booking events disabled: %v", ex, err)
			return
		}
	}

	AMQPChannel = ch
	log.Println("✅ RabbitMQ connected, booking event exchanges declared")
}

// BookingEvent is the payload published on booking state changes.
type BookingEvent struct {
	BookingID uint    `json:"booking_id"`
	OrderID   string  `json:"order_id,omitempty"`
	Total     float64 `json:"total"`
}

// PublishBookingEvent fans the event out on the given exchange.
// Best-effort: failures are logged, never returned.
func PublishBookingEvent(exchange string, event BookingEvent) {
	if AMQPChannel == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("warning: failed to marshal booking event: %v", err)
		return
	}
	if err := AMQPChannel.Publish(exchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	}); err != nil {
		log.Printf("warning: failed to publish booking event to %s: %v", exchange, err)
	}
}
