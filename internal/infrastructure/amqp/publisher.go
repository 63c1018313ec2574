// Package amqp publica los eventos de orden en un exchange topic de RabbitMQ
// para consumidores externos (pantalla de cocina, integraciones). Es
// best-effort: un broker caído nunca bloquea ni revierte una operación.
package amqp

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp091 "github.com/rabbitmq/amqp091-go"

	"github.com/tu-usuario/breakfast-pos/internal/application/orders"
	"github.com/tu-usuario/breakfast-pos/pkg/logger"
)

const publishTimeout = 5 * time.Second

// Publisher publica eventos de orden en RabbitMQ.
type Publisher struct {
	url      string
	exchange string
	log      *logger.Logger

	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// NewPublisher conecta al broker y declara el exchange topic durable.
func NewPublisher(url, exchange string, log *logger.Logger) (*Publisher, error) {
	p := &Publisher{url: url, exchange: exchange, log: log}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) connect() error {
	conn, err := amqp091.Dial(p.url)
	if err != nil {
		return err
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}
	if err := channel.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return err
	}
	p.conn = conn
	p.channel = channel
	return nil
}

// Publish emite el evento con su nombre como routing key (ej. "order.paid").
// Los errores se registran y se descartan; ante canal caído intenta reconectar
// una vez en la siguiente publicación.
func (p *Publisher) Publish(event orders.Event) {
	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Str("event", event.Event).Msg("amqp: serializar evento")
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() {
		if err := p.connect(); err != nil {
			p.log.Warn().Err(err).Msg("amqp: broker no disponible, evento descartado")
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	err = p.channel.PublishWithContext(ctx, p.exchange, event.Event, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		p.log.Warn().Err(err).Str("event", event.Event).Msg("amqp: publicar evento")
	}
}

// Close cierra canal y conexión.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
