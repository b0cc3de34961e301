package sse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fyyur/internal/models"
)

var at = time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)

func receive(t *testing.T, ch <-chan models.ChangeEvent) models.ChangeEvent {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return models.ChangeEvent{}
	}
}

func TestPublishRoutesByEntity(t *testing.T) {
	b := NewBroadcaster()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	venues := b.Subscribe(ctx, "venue")
	all := b.Subscribe(ctx, "")
	artists := b.Subscribe(ctx, "artist")

	require.NoError(t, b.Publish(ctx, models.NewChangeEvent(models.VenueListed, 1, nil, at)))

	assert.Equal(t, models.VenueListed, receive(t, venues).Type)
	assert.Equal(t, models.VenueListed, receive(t, all).Type)
	select {
	case e := <-artists:
		t.Fatalf("artist subscriber got %v", e.Type)
	default:
	}
}

func TestSlowClientDoesNotBlock(t *testing.T) {
	b := NewBroadcaster()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx, "show")
	for i := 0; i < clientBuffer+5; i++ {
		require.NoError(t, b.Publish(ctx, models.NewChangeEvent(models.ShowListed, int64(i+1), nil, at)))
	}
	assert.Len(t, ch, clientBuffer)
}

func TestUnsubscribeOnCancel(t *testing.T) {
	b := NewBroadcaster()
	ctx, cancel := context.WithCancel(context.Background())

	ch := b.Subscribe(ctx, "venue")
	assert.Equal(t, 1, b.ClientCount("venue"))

	cancel()
	assert.Eventually(t, func() bool { return b.ClientCount("venue") == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-ch
	assert.False(t, open)
}

func TestEntityOf(t *testing.T) {
	assert.Equal(t, "artist", EntityOf(models.ChangeEvent{Type: models.ArtistUpdated}))
	assert.Equal(t, "show", EntityOf(models.ChangeEvent{Type: models.ShowListed}))
}
