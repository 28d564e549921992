package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitWithoutDSNIsNoop(t *testing.T) {
	shutdown := Init(Config{}, zap.NewNop())
	require.NotNil(t, shutdown)
	shutdown()
}

func TestInitWithBadDSNDegrades(t *testing.T) {
	shutdown := Init(Config{DSN: "not a dsn"}, zap.NewNop())
	require.NotNil(t, shutdown)
	shutdown()
}

func TestCaptureErrorUsesContextHub(t *testing.T) {
	var events []*sentry.Event
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn: "https://public@example.com/1",
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			events = append(events, event)
			return nil
		},
	})
	require.NoError(t, err)

	hub := sentry.NewHub(client, sentry.NewScope())
	ctx := sentry.SetHubOnContext(context.Background(), hub)

	AddBreadcrumb(ctx, "consultant", "asking")
	CaptureError(ctx, errors.New("gemini unavailable"))
	CaptureError(ctx, nil)

	require.Len(t, events, 1)
	require.NotEmpty(t, events[0].Exception)
	assert.Equal(t, "gemini unavailable", events[0].Exception[0].Value)
	require.Len(t, events[0].Breadcrumbs, 1)
	assert.Equal(t, "asking", events[0].Breadcrumbs[0].Message)
}
