package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// DefaultDialTimeout bounds connect and handshake when the caller's context
// has no sooner deadline.
const DefaultDialTimeout = 2 * time.Second

// Publisher sends account events to RabbitMQ. Each call dials, declares the
// queue and publishes one persistent message. Failures are returned, not
// logged; callers decide whether they matter.
type Publisher struct {
	url         string
	queue       string
	dialTimeout time.Duration
	log         *zap.Logger
}

func NewPublisher(url string, log *zap.Logger) *Publisher {
	return &Publisher{url: url, queue: AccountEventsQueue, dialTimeout: DefaultDialTimeout, log: log}
}

// timeout is the dial budget: dialTimeout or what is left of ctx, whichever
// is shorter.
func (p *Publisher) timeout(ctx context.Context) time.Duration {
	t := p.dialTimeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < t {
			t = left
		}
	}
	return t
}

func (p *Publisher) PublishAccountEvent(ctx context.Context, ev AccountEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := p.timeout(ctx)
	if timeout <= 0 {
		return context.DeadlineExceeded
	}
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq declare %s: %w", p.queue, err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Type,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	p.log.Debug("account event published", zap.String("type", ev.Type), zap.String("account_id", ev.AccountID))
	return nil
}

// NopPublisher drops events. Used when the broker is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishAccountEvent(context.Context, AccountEvent) error { return nil }
