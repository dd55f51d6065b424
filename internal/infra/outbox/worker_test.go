package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appoutbox "unahotel/internal/app/outbox"
	"unahotel/internal/infra/storage/memory"
)

type fakeProducer struct {
	published []publishedMessage
	fail      bool
}

type publishedMessage struct {
	Topic   string
	Key     string
	Payload []byte
	Headers map[string]string
}

func (p *fakeProducer) Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error {
	if p.fail {
		return errors.New("broker unreachable")
	}
	p.published = append(p.published, publishedMessage{Topic: topic, Key: key, Payload: payload, Headers: headers})
	return nil
}

func stageEvent(t *testing.T, box *memory.Outbox) appoutbox.EventRecord {
	t.Helper()
	rec := appoutbox.EventRecord{
		ID:         "evt-1",
		Name:       "reservation.cancelled",
		Payload:    []byte(`{"reservation_id":"res-1","penalty_amount":18363}`),
		OccurredAt: time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC),
		Aggregate:  "res-1",
		Headers:    map[string]string{},
	}
	require.NoError(t, box.Add(context.Background(), rec))
	return rec
}

func TestWorkerPublishesCloudEvent(t *testing.T) {
	box := memory.NewOutbox()
	stageEvent(t, box)
	producer := &fakeProducer{}
	w := &Worker{Store: box, Producer: producer, ID: "worker-1"}

	require.NoError(t, w.processOnce(context.Background()))
	require.Len(t, producer.published, 1)

	msg := producer.published[0]
	assert.Equal(t, "reservation.events.v1", msg.Topic)
	assert.Equal(t, "res-1", msg.Key)
	assert.Equal(t, "application/cloudevents+json", msg.Headers["content-type"])

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(msg.Payload, &envelope))
	assert.Equal(t, "1.0", envelope["specversion"])
	assert.Equal(t, "reservation.cancelled.v1", envelope["type"])
	assert.Equal(t, "app://unahotel", envelope["source"])
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "res-1", data["reservation_id"])

	// The record is settled: nothing left to claim.
	rec, err := box.Claim(context.Background(), "worker-1")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestWorkerTopicPrefix(t *testing.T) {
	box := memory.NewOutbox()
	stageEvent(t, box)
	producer := &fakeProducer{}
	w := &Worker{Store: box, Producer: producer, TopicPrefix: "staging.", ID: "worker-1"}

	require.NoError(t, w.processOnce(context.Background()))
	require.Len(t, producer.published, 1)
	assert.Equal(t, "staging.reservation.events.v1", producer.published[0].Topic)
}

func TestWorkerRetriesAfterPublishFailure(t *testing.T) {
	box := memory.NewOutbox()
	stageEvent(t, box)
	producer := &fakeProducer{fail: true}
	w := &Worker{
		Store:    box,
		Producer: producer,
		ID:       "worker-1",
		Backoff:  []time.Duration{time.Millisecond},
	}

	require.NoError(t, w.processOnce(context.Background()))
	assert.Empty(t, producer.published)

	attempts, err := box.Attempts(context.Background(), "evt-1")
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)

	// After the backoff elapses the record is claimable again and a healthy
	// broker receives it.
	time.Sleep(5 * time.Millisecond)
	producer.fail = false
	require.NoError(t, w.processOnce(context.Background()))
	assert.Len(t, producer.published, 1)
}

func TestWorkerRequiresDependencies(t *testing.T) {
	w := &Worker{}
	err := w.Run(context.Background())
	assert.ErrorIs(t, err, ErrWorkerNotConfigured)
}
