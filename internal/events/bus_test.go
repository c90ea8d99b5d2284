package events_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sivakasi-crackers/internal/events"
)

type captureNotifier struct {
	events []events.Event
}

func (c *captureNotifier) Notify(_ context.Context, event events.Event) error {
	c.events = append(c.events, event)
	return nil
}

func TestEmitFansOut(t *testing.T) {
	notifier := &captureNotifier{}
	fixed := time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC)
	bus := events.Bus{
		Notifiers: []events.Notifier{notifier, nil},
		Now:       func() time.Time { return fixed },
	}

	event, err := bus.Emit(context.Background(), events.TopicOrderPlaced, "ORD123456", map[string]any{"total": 240})
	require.NoError(t, err)
	require.Equal(t, events.TopicOrderPlaced, event.Topic)
	require.Equal(t, fixed, event.OccurredAt)
	require.JSONEq(t, `{"total":240}`, string(event.Payload))
	require.Len(t, notifier.events, 1)
	require.Equal(t, event.ID, notifier.events[0].ID)
}

func TestEmitValidates(t *testing.T) {
	bus := events.Bus{}
	_, err := bus.Emit(context.Background(), " ", "x", nil)
	require.Error(t, err)
	_, err = bus.Emit(context.Background(), events.TopicOrderPlaced, "", nil)
	require.Error(t, err)
	_, err = bus.Emit(context.Background(), events.TopicOrderPlaced, "x", "not json")
	require.Error(t, err)

	ev, err := bus.Emit(context.Background(), events.TopicOrderPlaced, "x", nil)
	require.NoError(t, err)
	require.Equal(t, "{}", string(ev.Payload))

	var nilBus *events.Bus
	_, err = nilBus.Emit(context.Background(), events.TopicOrderPlaced, "x", nil)
	require.Error(t, err)
}

func TestEmitJoinsNotifierErrors(t *testing.T) {
	boom := errors.New("boom")
	capture := &captureNotifier{}
	bus := events.Bus{Notifiers: []events.Notifier{
		events.NotifierFunc(func(context.Context, events.Event) error { return boom }),
		capture,
	}}
	_, err := bus.Emit(context.Background(), events.TopicContactReceived, "c-1", json.RawMessage(`{"a":1}`))
	require.ErrorIs(t, err, boom)
	require.Len(t, capture.events, 1)
}

func TestLogAndMetricsNotifiers(t *testing.T) {
	var buf bytes.Buffer
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "events_total", Help: "test"}, []string{"topic"})
	bus := events.Bus{Notifiers: []events.Notifier{
		events.LogNotifier{Logger: zerolog.New(&buf)},
		events.MetricsNotifier{Counter: counter},
		events.MetricsNotifier{},
	}}
	_, err := bus.Emit(context.Background(), events.TopicQuoteShared, "quote", map[string]int{"products": 3})
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "domain_event", line["message"])
	require.Equal(t, events.TopicQuoteShared, line["topic"])
	require.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues(events.TopicQuoteShared)))
}
