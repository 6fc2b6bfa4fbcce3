package realtime

import (
	"context"
	"encoding/json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var f Frame
	require.NoError(t, json.Unmarshal(data, &f))
	return f
}

func join(t *testing.T, conn *websocket.Conn, action string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]string{"action": action}))
	f := readFrame(t, conn)
	require.Equal(t, eventSubscribed, f.Event)
	require.Equal(t, Topic, f.Topic)
}

func TestHub_Notify(t *testing.T) {
	t.Run("Happy path - subscribers receive the hint", func(t *testing.T) {
		hub, url := startHub(t)
		a := dial(t, url)
		b := dial(t, url)
		join(t, a, "join_leaderboard")
		join(t, b, "join-leaderboard")
		assert.Equal(t, 2, hub.Subscribers())

		hub.Notify("leaderboard_updated")

		assert.Equal(t, Frame{Event: "leaderboard_updated", Topic: Topic}, readFrame(t, a))
		assert.Equal(t, Frame{Event: "leaderboard_updated", Topic: Topic}, readFrame(t, b))
	})

	t.Run("Happy path - hints arrive in order", func(t *testing.T) {
		hub, url := startHub(t)
		conn := dial(t, url)
		join(t, conn, "join_leaderboard")

		hub.Notify("submission_added")
		hub.Notify("leaderboard_updated")

		assert.Equal(t, "submission_added", readFrame(t, conn).Event)
		assert.Equal(t, "leaderboard_updated", readFrame(t, conn).Event)
	})

	t.Run("Unhappy path - clients that never joined get nothing", func(t *testing.T) {
		hub, url := startHub(t)
		listener := dial(t, url)
		join(t, listener, "join_leaderboard")
		idle := dial(t, url)

		hub.Notify("leaderboard_updated")
		assert.Equal(t, "leaderboard_updated", readFrame(t, listener).Event)

		require.NoError(t, idle.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
		_, _, err := idle.ReadMessage()
		assert.Error(t, err)
	})

	t.Run("Happy path - leaving stops delivery", func(t *testing.T) {
		hub, url := startHub(t)
		conn := dial(t, url)
		join(t, conn, "join_leaderboard")

		require.NoError(t, conn.WriteJSON(map[string]string{"action": "leave_leaderboard"}))
		assert.Equal(t, eventUnsubscribed, readFrame(t, conn).Event)
		assert.Equal(t, 0, hub.Subscribers())

		hub.Notify("leaderboard_updated")
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
		_, _, err := conn.ReadMessage()
		assert.Error(t, err)
	})

	t.Run("Happy path - disconnect removes the subscriber", func(t *testing.T) {
		hub, url := startHub(t)
		conn := dial(t, url)
		join(t, conn, "join_leaderboard")
		require.Equal(t, 1, hub.Subscribers())

		conn.Close()
		assert.Eventually(t, func() bool { return hub.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("Happy path - notify with no clients does not block", func(t *testing.T) {
		hub, _ := startHub(t)
		for i := 0; i < 200; i++ {
			hub.Notify("leaderboard_updated")
		}
	})
}

func TestHub_CheckOrigin(t *testing.T) {
	request := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	t.Run("Happy path - no restriction configured", func(t *testing.T) {
		hub := NewHub()
		assert.True(t, hub.checkOrigin(request("http://anywhere.test")))
	})

	t.Run("Happy path - listed origin", func(t *testing.T) {
		hub := NewHub()
		hub.AllowedOrigins = []string{"http://localhost:5173"}
		assert.True(t, hub.checkOrigin(request("http://localhost:5173")))
		assert.True(t, hub.checkOrigin(request("")))
	})

	t.Run("Unhappy path - unlisted origin", func(t *testing.T) {
		hub := NewHub()
		hub.AllowedOrigins = []string{"http://localhost:5173"}
		assert.False(t, hub.checkOrigin(request("http://evil.test")))
	})
}
