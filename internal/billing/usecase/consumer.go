// Package usecase implements the billing event consumer.
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"gocloud.dev/pubsub"

	billingDomain "github.com/viralspark/gateway/internal/billing/domain"
	apperrors "github.com/viralspark/gateway/internal/errors"
	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
)

// CapabilityToggler is the slice of the admin control surface the consumer needs.
type CapabilityToggler interface {
	SetEnabled(ctx context.Context, name string, enabled bool) (*registryDomain.Capability, error)
}

// Consumer receives billing subscription events and toggles the affected
// capabilities. Toggles go through the same contract the admin API uses, so a
// billing-driven change is indistinguishable from an operator's.
type Consumer struct {
	subscription *pubsub.Subscription
	toggler      CapabilityToggler
	logger       *slog.Logger
}

// NewConsumer creates a new billing event consumer.
func NewConsumer(
	subscription *pubsub.Subscription,
	toggler CapabilityToggler,
	logger *slog.Logger,
) *Consumer {
	return &Consumer{
		subscription: subscription,
		toggler:      toggler,
		logger:       logger,
	}
}

// Start receives messages until the context is canceled. Returns the context
// error on shutdown; any other receive failure is returned as-is.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("starting billing event consumer")

	for {
		message, err := c.subscription.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("stopping billing event consumer")
				return ctx.Err()
			}
			return err
		}

		c.handleMessage(ctx, message)
	}
}

// Shutdown closes the underlying subscription.
func (c *Consumer) Shutdown(ctx context.Context) error {
	return c.subscription.Shutdown(ctx)
}

// handleMessage processes one billing message. Malformed and unknown-capability
// messages are acked so a poison message never blocks the subscription;
// transient toggle failures are nacked for redelivery when the provider
// supports it.
func (c *Consumer) handleMessage(ctx context.Context, message *pubsub.Message) {
	var event billingDomain.SubscriptionEvent
	if err := json.Unmarshal(message.Body, &event); err != nil {
		c.logger.Warn("dropping malformed billing event", slog.Any("error", err))
		message.Ack()
		return
	}

	if err := event.Validate(); err != nil {
		c.logger.Warn("dropping invalid billing event",
			slog.String("event_id", event.EventID),
			slog.Any("error", err))
		message.Ack()
		return
	}

	if err := c.applyEvent(ctx, &event); err != nil {
		c.logger.Error("failed to apply billing event",
			slog.String("event_id", event.EventID),
			slog.Any("error", err))
		if message.Nackable() {
			message.Nack()
		} else {
			message.Ack()
		}
		return
	}

	message.Ack()
}

// applyEvent toggles every capability the event names. Unknown capabilities are
// logged and skipped rather than failing the event: the billing plan may list
// capabilities this deployment does not register.
func (c *Consumer) applyEvent(ctx context.Context, event *billingDomain.SubscriptionEvent) error {
	enabled := event.Enables()

	for _, name := range event.Capabilities {
		_, err := c.toggler.SetEnabled(ctx, name, enabled)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				c.logger.Warn("billing event names unknown capability",
					slog.String("event_id", event.EventID),
					slog.String("capability", name))
				continue
			}
			return err
		}

		c.logger.Info("billing event toggled capability",
			slog.String("event_id", event.EventID),
			slog.String("capability", name),
			slog.String("status", string(event.Status)),
			slog.Bool("enabled", enabled))
	}

	return nil
}
