package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Dosada05/cup-roster/handlers"
	"github.com/Dosada05/cup-roster/middleware"
)

const requestTimeout = 60 * time.Second

type Handlers struct {
	Tournament   *handlers.TournamentHandler
	Team         *handlers.TeamHandler
	PlayerImport *handlers.PlayerImportHandler
	WebSocket    *handlers.WebSocketHandler
}

func SetupRoutes(router *chi.Mux, auth *middleware.Authenticator, h Handlers, allowedOrigins []string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Websocket без Bearer: браузер не может передать заголовок при подключении.
	router.Get("/ws/teams/{teamID}", h.WebSocket.ServeWs)

	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.Timeout(requestTimeout))

			r.Get("/tournaments", h.Tournament.ListTournaments)
			r.Get("/tournaments/{tournamentID}/categories", h.Tournament.ListCategories)
			r.Get("/categories/{categoryID}/teams", h.Team.ListTeamsByCategory)
			r.Get("/teams/{teamID}", h.Team.GetTeamByID)
			r.Get("/teams/{teamID}/players", h.Team.ListPlayers)

			r.With(middleware.RequireWriter).Post("/teams", h.Team.CreateTeam)
		})

		// Загрузка состава без Timeout: партия дописывается до конца,
		// её ограничивает только WriteTimeout сервера.
		r.With(middleware.RequireWriter).Post("/teams/{teamID}/players/import", h.PlayerImport.ImportPlayers)
	})
}
