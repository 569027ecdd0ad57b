package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/locadora-backend/internal/entitlement"
	"github.com/magabrotheeeer/locadora-backend/internal/lib/sl"
)

// entitlementEvent сырое событие изменения подписки от магазина.
type entitlementEvent struct {
	EventType      string     `json:"event_type"`
	IsActive       bool       `json:"is_active"`
	ProductID      string     `json:"product_id"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	WillRenew      bool       `json:"will_renew"`
	IsInTrial      bool       `json:"is_in_trial"`
	TrialEndDate   *time.Time `json:"trial_end_date,omitempty"`
}

// Applier принимает снимок подписки, присланный магазином.
type Applier interface {
	ApplyRemote(info entitlement.SubscriptionInfo)
}

// Consumer читает события подписки из очереди и применяет их.
type Consumer struct {
	applier Applier
	log     *slog.Logger
}

// NewConsumer создаёт Consumer.
func NewConsumer(applier Applier, log *slog.Logger) *Consumer {
	return &Consumer{applier: applier, log: log}
}

// HandleMessage разбирает одно событие и применяет его к снимку.
// Ошибка разбора возвращается наружу, сообщение уйдёт в nack.
func (c *Consumer) HandleMessage(body []byte) error {
	const op = "events.HandleMessage"

	var event entitlementEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.log.Error("failed to unmarshal entitlement event", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	c.applier.ApplyRemote(entitlement.SubscriptionInfo{
		IsActive:       event.IsActive,
		ProductID:      event.ProductID,
		ExpirationDate: event.ExpirationDate,
		WillRenew:      event.WillRenew,
		IsInTrial:      event.IsInTrial,
		TrialEndDate:   event.TrialEndDate,
	})
	c.log.Info("entitlement event applied",
		slog.String("event_type", event.EventType),
		slog.Bool("is_active", event.IsActive))
	return nil
}

// Run запускает потребление очереди. Сообщения обрабатываются
// с ограниченной конкурентностью, ack после успешной обработки.
func (c *Consumer) Run(ctx context.Context, ch *amqp.Channel, queueName string) error {
	const op = "events.Run"

	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sem := make(chan struct{}, 10)
	go func() {
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(delivery amqp.Delivery) {
					defer func() { <-sem }()
					if err := c.HandleMessage(delivery.Body); err != nil {
						if nackErr := delivery.Nack(false, true); nackErr != nil {
							c.log.Error("failed to nack message", sl.Err(nackErr))
						}
						return
					}
					if ackErr := delivery.Ack(false); ackErr != nil {
						c.log.Error("failed to ack message", sl.Err(ackErr))
					}
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}
