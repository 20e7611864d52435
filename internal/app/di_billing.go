package app

import (
	"context"
	"fmt"

	billingService "github.com/viralspark/gateway/internal/billing/service"
	billingUseCase "github.com/viralspark/gateway/internal/billing/usecase"
)

// BillingConsumer returns the billing event consumer, or nil when billing
// events are disabled.
func (c *Container) BillingConsumer(ctx context.Context) (*billingUseCase.Consumer, error) {
	c.billingConsumerInit.Do(func() {
		if !c.config.BillingEventsEnabled {
			return
		}

		consumer, err := c.initBillingConsumer(ctx)
		if err != nil {
			c.initErrors["billingConsumer"] = err
			return
		}
		c.billingConsumer = consumer
	})
	if storedErr, exists := c.initErrors["billingConsumer"]; exists {
		return nil, storedErr
	}
	return c.billingConsumer, nil
}

// initBillingConsumer creates the billing consumer with all its dependencies.
func (c *Container) initBillingConsumer(ctx context.Context) (*billingUseCase.Consumer, error) {
	capabilityUseCase, err := c.CapabilityUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get capability use case for billing consumer: %w", err)
	}

	subscription, err := billingService.OpenSubscription(ctx, c.config.BillingEventsSubscriptionURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open billing subscription: %w", err)
	}

	return billingUseCase.NewConsumer(subscription, capabilityUseCase, c.Logger()), nil
}
