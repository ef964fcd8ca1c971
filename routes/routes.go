package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tlemaire/savate-tournament/handlers"
)

func SetupRoutes(
	router *chi.Mux,
	clubHandler *handlers.ClubHandler,
	fighterHandler *handlers.FighterHandler,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/clubs", func(r chi.Router) {
		r.Get("/", clubHandler.ListHandler)
		r.Post("/", clubHandler.CreateHandler)
		r.Get("/{clubID}", clubHandler.GetByIDHandler)
		r.Put("/{clubID}", clubHandler.UpdateHandler)
		r.Delete("/{clubID}", clubHandler.DeleteHandler)
		r.Post("/{clubID}/logo", clubHandler.UploadLogoHandler)
	})

	router.Route("/fighters", func(r chi.Router) {
		r.Get("/", fighterHandler.ListHandler)
		r.Post("/", fighterHandler.CreateHandler)
		r.Get("/{fighterID}", fighterHandler.GetByIDHandler)
		r.Put("/{fighterID}", fighterHandler.UpdateHandler)
		r.Delete("/{fighterID}", fighterHandler.DeleteHandler)
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)
		r.Post("/", tournamentHandler.CreateHandler)
		r.Get("/{tournamentID}", tournamentHandler.GetByIDHandler)
		r.Put("/{tournamentID}", tournamentHandler.UpdateHandler)
		r.Delete("/{tournamentID}", tournamentHandler.DeleteHandler)

		r.Get("/{tournamentID}/fighters", tournamentHandler.ListFightersHandler)
		r.Post("/{tournamentID}/fighters/{fighterID}", tournamentHandler.EnrollHandler)
		r.Delete("/{tournamentID}/fighters/{fighterID}", tournamentHandler.WithdrawHandler)

		r.Get("/{tournamentID}/matches", matchHandler.ListByTournamentHandler)
		r.Post("/{tournamentID}/matches/generate", matchHandler.GenerateHandler)
		r.Post("/{tournamentID}/matches/manual", matchHandler.CreateManualHandler)
		r.Get("/{tournamentID}/matches/stats", matchHandler.StatsHandler)
		r.Get("/{tournamentID}/matches/winners", matchHandler.DirectWinnersHandler)
		r.Get("/{tournamentID}/matches/order", matchHandler.RunningOrderHandler)
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.GetByIDHandler)
		r.Put("/{matchID}/result", matchHandler.RecordResultHandler)
		r.Patch("/{matchID}/fighter2", matchHandler.SetSecondFighterHandler)
		r.Delete("/{matchID}", matchHandler.DeleteHandler)
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
