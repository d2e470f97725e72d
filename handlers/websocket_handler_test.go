package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/cup-roster/realtime"
)

func TestServeWs_ReceivesRoomBroadcast(t *testing.T) {
	hub := realtime.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	h := NewWebSocketHandler(hub, newFakeTeamService(), []string{"*"})
	r := chi.NewRouter()
	r.Get("/ws/teams/{teamID}", h.ServeWs)
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/teams/5"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	defer resp.Body.Close()

	require.Eventually(t, func() bool { return hub.ClientCount(realtime.TeamRoom(5)) == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom(realtime.TeamRoom(5), realtime.Message{
		Type:    realtime.MessageRosterImported,
		Payload: map[string]int{"created": 2},
		RoomID:  realtime.TeamRoom(5),
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, realtime.MessageRosterImported, msg["type"])
	assert.Equal(t, "team_5", msg["room_id"])
}

func TestServeWs_UnknownTeam(t *testing.T) {
	hub := realtime.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := NewWebSocketHandler(hub, newFakeTeamService(), []string{"*"})
	r := chi.NewRouter()
	r.Get("/ws/teams/{teamID}", h.ServeWs)
	srv := httptest.NewServer(r)
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/teams/77", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeWs_RejectsForeignOrigin(t *testing.T) {
	hub := realtime.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	h := NewWebSocketHandler(hub, newFakeTeamService(), []string{"https://staff.example.com"})
	r := chi.NewRouter()
	r.Get("/ws/teams/{teamID}", h.ServeWs)
	srv := httptest.NewServer(r)
	defer srv.Close()

	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/teams/5", header)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
