package notify

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T, buffer int) *Hub {
	t.Helper()
	h := NewHub(buffer)
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	t.Cleanup(cancel)
	return h
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case ev, ok := <-c.C:
		require.True(t, ok, "client channel closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestHub_FanOut(t *testing.T) {
	h := startHub(t, 4)
	a := h.Subscribe()
	b := h.Subscribe()

	h.Publish(EventContactCreated, map[string]int{"id": 1})

	require.Equal(t, EventContactCreated, receive(t, a).Type)
	require.Equal(t, EventContactCreated, receive(t, b).Type)
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	h := startHub(t, 1)
	c := h.Subscribe()
	h.Unsubscribe(c)

	select {
	case _, ok := <-c.C:
		require.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed")
	}
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	h := startHub(t, 1)
	c := h.Subscribe()

	h.Publish(EventOrderRated, 1)
	h.Publish(EventOrderRated, 2)

	require.Eventually(t, func() bool { return h.Dropped() >= 1 }, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, 1, receive(t, c).Data)
}

func TestHub_StoppedHub(t *testing.T) {
	h := NewHub(1)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()
	c := h.Subscribe()
	cancel()
	<-stopped

	_, ok := <-c.C
	require.False(t, ok)
	require.Nil(t, h.Subscribe())
	h.Publish(EventOrderStatus, nil)
}

func TestServeWS_StreamsEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := startHub(t, 4)
	r := gin.New()
	r.GET("/feed", ServeWS(h))
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/feed", nil)
	require.NoError(t, err)

	// the subscription is registered after the upgrade completes
	require.Eventually(t, func() bool { return h.Subscribers() == 1 }, 3*time.Second, 10*time.Millisecond)
	h.Publish(EventContactCreated, "hello")

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	require.Equal(t, EventContactCreated, ev.Type)
	require.Equal(t, "hello", ev.Data)

	conn.Close()
	require.Eventually(t, func() bool { return h.Subscribers() == 0 }, 3*time.Second, 10*time.Millisecond)
}
