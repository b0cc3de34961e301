package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fyyur/internal/logger"
	"fyyur/internal/models"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

type fakeReader struct {
	messages []kafka.Message
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.messages) == 0 {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *fakeReader) Close() error { return nil }

var at = time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)

func TestPublishWritesKeyedJSON(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{Writer: w, Topic: "fyyur-directory-events", Logger: logger.Discard()}

	venue := &models.Venue{ID: 4, Name: "The Musical Hop"}
	require.NoError(t, p.Publish(context.Background(), models.NewChangeEvent(models.VenueListed, 4, venue, at)))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, "venue:4", string(msg.Key))
	assert.Equal(t, "venue.listed", string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "venue.listed", decoded["type"])
	assert.Equal(t, "The Musical Hop", decoded["payload"].(map[string]any)["name"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := &Producer{Writer: w, Topic: "t", Logger: logger.Discard()}

	err := p.Publish(context.Background(), models.NewChangeEvent(models.ShowListed, 1, nil, at))
	assert.ErrorContains(t, err, "leader not available")
}

func TestMockModeOnlyLogs(t *testing.T) {
	var buf bytes.Buffer
	p := NewProducer([]string{"localhost:9092"}, "fyyur-directory-events", true, logger.New(&buf, logger.DEBUG))

	require.NoError(t, p.Publish(context.Background(), models.NewChangeEvent(models.ArtistUpdated, 2, nil, at)))
	assert.Nil(t, p.Writer)
	assert.Contains(t, buf.String(), "[MOCK] fyyur-directory-events - artist:2")
	assert.NoError(t, p.Close())
}

func TestConsumerRun(t *testing.T) {
	good, err := json.Marshal(models.NewChangeEvent(models.VenueDeleted, 9, nil, at))
	require.NoError(t, err)

	c := &Consumer{
		Reader: &fakeReader{messages: []kafka.Message{
			{Value: []byte("not json"), Offset: 1},
			{Value: good, Offset: 2},
		}},
		Logger: logger.Discard(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	var seen []models.ChangeEvent
	err = c.Run(ctx, func(e models.ChangeEvent) error {
		seen = append(seen, e)
		cancel()
		return nil
	})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, models.VenueDeleted, seen[0].Type)
	assert.Equal(t, int64(9), seen[0].EntityID)
}

func TestConsumerStopsOnHandlerError(t *testing.T) {
	good, err := json.Marshal(models.NewChangeEvent(models.ShowListed, 3, nil, at))
	require.NoError(t, err)

	c := &Consumer{Reader: &fakeReader{messages: []kafka.Message{{Value: good}}}, Logger: logger.Discard()}
	err = c.Run(context.Background(), func(models.ChangeEvent) error { return errors.New("sink full") })
	assert.ErrorContains(t, err, "show:3")
}

func TestNop(t *testing.T) {
	var n Nop
	assert.NoError(t, n.Publish(context.Background(), models.ChangeEvent{}))
	assert.NoError(t, n.Close())
}
