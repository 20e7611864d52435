// Package service opens billing message subscriptions using gocloud.dev/pubsub.
package service

import (
	"context"
	"fmt"

	"gocloud.dev/pubsub"

	// Register pubsub provider drivers
	_ "gocloud.dev/pubsub/awssnssqs"
	_ "gocloud.dev/pubsub/gcppubsub"
	_ "gocloud.dev/pubsub/mempubsub"
	_ "gocloud.dev/pubsub/rabbitpubsub"
)

// OpenSubscription opens a pubsub subscription for the configured provider using
// the subscription URL.
// Supports: gcppubsub://, awssqs://, rabbit://, mem://
func OpenSubscription(ctx context.Context, subscriptionURL string) (*pubsub.Subscription, error) {
	subscription, err := pubsub.OpenSubscription(ctx, subscriptionURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open billing subscription: %w", err)
	}
	return subscription, nil
}
