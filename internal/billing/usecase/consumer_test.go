package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/pubsub"
	"gocloud.dev/pubsub/mempubsub"

	registryDomain "github.com/viralspark/gateway/internal/registry/domain"
)

type toggleCall struct {
	name    string
	enabled bool
}

// fakeToggler records toggles and can fail unknown capabilities.
type fakeToggler struct {
	mu      sync.Mutex
	calls   []toggleCall
	unknown map[string]bool
}

func (f *fakeToggler) SetEnabled(
	_ context.Context,
	name string,
	enabled bool,
) (*registryDomain.Capability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unknown[name] {
		return nil, registryDomain.ErrCapabilityNotFound
	}
	f.calls = append(f.calls, toggleCall{name: name, enabled: enabled})
	return &registryDomain.Capability{Name: name, Enabled: enabled}, nil
}

func (f *fakeToggler) recorded() []toggleCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]toggleCall(nil), f.calls...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type consumerFixture struct {
	topic    *pubsub.Topic
	consumer *Consumer
	toggler  *fakeToggler
	cancel   context.CancelFunc
	done     chan struct{}
	startErr error
}

func startConsumer(t *testing.T, toggler *fakeToggler) *consumerFixture {
	t.Helper()

	topic := mempubsub.NewTopic()
	subscription := mempubsub.NewSubscription(topic, time.Second)

	consumer := NewConsumer(subscription, toggler, testLogger())
	ctx, cancel := context.WithCancel(context.Background())

	fixture := &consumerFixture{
		topic:    topic,
		consumer: consumer,
		toggler:  toggler,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	go func() {
		fixture.startErr = consumer.Start(ctx)
		close(fixture.done)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-fixture.done:
		case <-time.After(5 * time.Second):
			t.Fatal("consumer did not stop")
		}
		_ = subscription.Shutdown(context.Background())
		_ = topic.Shutdown(context.Background())
	})
	return fixture
}

func (f *consumerFixture) send(t *testing.T, body string) {
	t.Helper()
	require.NoError(t, f.topic.Send(context.Background(), &pubsub.Message{Body: []byte(body)}))
}

func TestConsumer(t *testing.T) {
	t.Run("active subscription enables capabilities", func(t *testing.T) {
		toggler := &fakeToggler{}
		fixture := startConsumer(t, toggler)

		fixture.send(t, `{
			"event_id": "evt-1",
			"status": "active",
			"capabilities": ["web_scraping", "social_media"]
		}`)

		require.Eventually(t, func() bool {
			return len(toggler.recorded()) == 2
		}, 5*time.Second, 10*time.Millisecond)

		calls := toggler.recorded()
		assert.Equal(t, toggleCall{name: "web_scraping", enabled: true}, calls[0])
		assert.Equal(t, toggleCall{name: "social_media", enabled: true}, calls[1])
	})

	t.Run("canceled subscription disables capabilities", func(t *testing.T) {
		toggler := &fakeToggler{}
		fixture := startConsumer(t, toggler)

		fixture.send(t, `{
			"event_id": "evt-2",
			"status": "canceled",
			"capabilities": ["web_scraping"]
		}`)

		require.Eventually(t, func() bool {
			return len(toggler.recorded()) == 1
		}, 5*time.Second, 10*time.Millisecond)

		assert.Equal(t, toggleCall{name: "web_scraping", enabled: false}, toggler.recorded()[0])
	})

	t.Run("past due subscription disables capabilities", func(t *testing.T) {
		toggler := &fakeToggler{}
		fixture := startConsumer(t, toggler)

		fixture.send(t, `{
			"event_id": "evt-3",
			"status": "past_due",
			"capabilities": ["cloud_management"]
		}`)

		require.Eventually(t, func() bool {
			return len(toggler.recorded()) == 1
		}, 5*time.Second, 10*time.Millisecond)

		assert.False(t, toggler.recorded()[0].enabled)
	})

	t.Run("malformed message does not stop the consumer", func(t *testing.T) {
		toggler := &fakeToggler{}
		fixture := startConsumer(t, toggler)

		fixture.send(t, `{not json`)
		fixture.send(t, `{
			"event_id": "evt-4",
			"status": "active",
			"capabilities": ["web_scraping"]
		}`)

		require.Eventually(t, func() bool {
			return len(toggler.recorded()) == 1
		}, 5*time.Second, 10*time.Millisecond)
	})

	t.Run("unknown status is dropped", func(t *testing.T) {
		toggler := &fakeToggler{}
		fixture := startConsumer(t, toggler)

		fixture.send(t, `{
			"event_id": "evt-5",
			"status": "trialing",
			"capabilities": ["web_scraping"]
		}`)
		fixture.send(t, `{
			"event_id": "evt-6",
			"status": "active",
			"capabilities": ["social_media"]
		}`)

		require.Eventually(t, func() bool {
			return len(toggler.recorded()) == 1
		}, 5*time.Second, 10*time.Millisecond)
		assert.Equal(t, "social_media", toggler.recorded()[0].name)
	})

	t.Run("unknown capability is skipped", func(t *testing.T) {
		toggler := &fakeToggler{unknown: map[string]bool{"not_registered": true}}
		fixture := startConsumer(t, toggler)

		fixture.send(t, `{
			"event_id": "evt-7",
			"status": "active",
			"capabilities": ["not_registered", "web_scraping"]
		}`)

		require.Eventually(t, func() bool {
			return len(toggler.recorded()) == 1
		}, 5*time.Second, 10*time.Millisecond)
		assert.Equal(t, "web_scraping", toggler.recorded()[0].name)
	})

	t.Run("stops on context cancel", func(t *testing.T) {
		toggler := &fakeToggler{}
		fixture := startConsumer(t, toggler)

		fixture.cancel()

		select {
		case <-fixture.done:
			assert.ErrorIs(t, fixture.startErr, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("consumer did not stop on cancel")
		}
	})
}
