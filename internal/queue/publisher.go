package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sweetdelights/storefront/internal/model"
)

// Publisher sends order confirmations to the broker. It dials per publish;
// checkout volume in the demo never justifies a held connection, and a dead
// broker then only costs one failed dial per order.
type Publisher struct{}

// NewPublisher returns a broker publisher using the environment's AMQP URL.
func NewPublisher() *Publisher { return &Publisher{} }

// PublishOrderConfirmed sends the order snapshot to the order.confirmed
// queue. Errors are logged and returned so the caller may ignore them; an
// unreachable broker never fails a checkout.
func (p *Publisher) PublishOrderConfirmed(ctx context.Context, o model.Order) error {
	conn, err := amqp.Dial(brokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so confirmations survive broker restarts.
	if _, err := ch.QueueDeclare(orderQueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(eventFromOrder(o))
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", orderQueueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
