package common

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Exchange string

type BindingKey string

type MessageProducer interface {
	Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error
}

type MessageConsumer interface {
	Subscribe(key BindingKey, exchange Exchange) (<-chan amqp.Delivery, error)
}

const (
	BlogExchange   Exchange   = "blog_exchange"
	BlogCreatedKey BindingKey = "blog.created"
	BlogUpdatedKey BindingKey = "blog.updated"
	BlogDeletedKey BindingKey = "blog.deleted"
	BlogAnyKey     BindingKey = "blog.*"

	UserExchange   Exchange   = "user_exchange"
	UserCreatedKey BindingKey = "user.created"
)

type MessageBroker struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewMessageBroker(URI string) (*MessageBroker, error) {
	conn, ch, err := connectAMQP(URI)
	if err != nil {
		return nil, err
	}

	return &MessageBroker{
		conn: conn,
		ch:   ch,
	}, nil
}

func connectAMQP(URI string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(URI)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("could not open channel: %w", err)
	}

	return conn, ch, nil
}

// Close closes the connection and channel of the message broker.
func (mb *MessageBroker) Close() error {
	err := mb.ch.Close()
	if err != nil {
		return err
	}

	err = mb.conn.Close()
	if err != nil {
		return err
	}

	return nil
}

// SetupExchanges declares the topic exchanges the services publish to.
func SetupExchanges(mb *MessageBroker) error {
	for _, exchange := range []Exchange{BlogExchange, UserExchange} {
		err := mb.ch.ExchangeDeclare(string(exchange), "topic", true, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("could not declare exchange %s: %w", exchange, err)
		}
	}

	return nil
}

func (mb *MessageBroker) Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error {
	err := mb.ch.PublishWithContext(ctx, string(exchange), string(key), false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        msg,
	})
	if err != nil {
		return fmt.Errorf("could not publish message: %w", err)
	}

	return nil
}

// Subscribe binds a server-named exclusive queue to the exchange, so every
// process gets its own copy of each matching message.
func (mb *MessageBroker) Subscribe(key BindingKey, exchange Exchange) (<-chan amqp.Delivery, error) {
	q, err := mb.ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return nil, fmt.Errorf("could not declare queue: %w", err)
	}

	err = mb.ch.QueueBind(q.Name, string(key), string(exchange), false, nil)
	if err != nil {
		return nil, fmt.Errorf("could not bind queue: %w", err)
	}

	msgs, err := mb.ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("could not consume message: %w", err)
	}

	return msgs, nil
}

// NopBroker drops published messages and never delivers any. It stands in
// when no broker is configured.
type NopBroker struct{}

func (NopBroker) Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error {
	return nil
}

func (NopBroker) Subscribe(key BindingKey, exchange Exchange) (<-chan amqp.Delivery, error) {
	return make(chan amqp.Delivery), nil
}
