package handlers

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/cup-roster/realtime"
	"github.com/Dosada05/cup-roster/services"
)

type WebSocketHandler struct {
	hub         *realtime.Hub
	teamService services.TeamService
	upgrader    websocket.Upgrader
}

// NewWebSocketHandler: allowedOrigins те же, что у CORS; "*" разрешает всех.
func NewWebSocketHandler(hub *realtime.Hub, ts services.TeamService, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		teamService: ts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// ServeWs подписывает страницу команды на события загрузки составов.
// Клиент подключается к /ws/teams/{teamID}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if _, err := h.teamService.GetTeamByID(r.Context(), teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту
		slog.Warn("failed to upgrade websocket connection", slog.Int("team_id", teamID), slog.Any("error", err))
		return
	}

	client := realtime.NewClient(h.hub, conn, realtime.TeamRoom(teamID))
	if !h.hub.Register(client) {
		_ = conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
