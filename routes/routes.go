package routes

import (
	"net/http"

	"github.com/batchcrick/tournament-engine/handlers"
	"github.com/batchcrick/tournament-engine/middleware"
	"github.com/batchcrick/tournament-engine/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Tournament *handlers.TournamentHandler
	Group      *handlers.GroupHandler
	Qualifier  *handlers.QualifierHandler
	Bracket    *handlers.BracketHandler
	Stage      *handlers.StageHandler
	Match      *handlers.MatchHandler
	Squad      *handlers.SquadHandler
	WebSocket  *handlers.WebSocketHandler
}

// New assembles the router. Reads are public; every mutation sits behind
// authentication, with structural and lifecycle changes restricted to admins
// and match results open to scorers as well.
func New(h Handlers, jwtSecret []byte) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	canScore := middleware.RequireRole(models.RoleAdmin, models.RoleScorer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/signup", h.Auth.Register)
		r.Post("/auth/signin", h.Auth.Login)

		r.Get("/squads", h.Squad.List)
		r.Get("/squads/{squadID}", h.Squad.Get)

		r.Get("/ws/tournaments/{tournamentID}", h.WebSocket.Subscribe)

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", h.Tournament.List)
			r.Get("/{tournamentID}", h.Tournament.Get)
			r.Get("/{tournamentID}/bracket", h.Bracket.Resolved)
			r.Get("/{tournamentID}/matches", h.Match.ListByTournament)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, adminOnly)

				r.Post("/", h.Tournament.Create)
				r.Patch("/{tournamentID}/status", h.Tournament.UpdateStatus)
				r.Post("/{tournamentID}/logo", h.Tournament.UploadLogo)

				r.Post("/{tournamentID}/groups", h.Group.Add)
				r.Delete("/{tournamentID}/groups/{groupID}", h.Group.Remove)
				r.Put("/{tournamentID}/groups/{groupID}/squads", h.Group.AssignSquad)
				r.Put("/{tournamentID}/groups/{groupID}/qualify-count", h.Group.SetQualifyCount)
				r.Put("/{tournamentID}/groups/{groupID}/qualifiers", h.Qualifier.Confirm)

				r.Post("/{tournamentID}/bracket/auto-map", h.Bracket.AutoMap)
				r.Post("/{tournamentID}/bracket/ensure-default", h.Bracket.EnsureDefault)
				r.Put("/{tournamentID}/bracket/slots/{slotID}", h.Bracket.SetSlot)

				r.Post("/{tournamentID}/stages", h.Stage.Add)
				r.Delete("/{tournamentID}/stages/{stageID}", h.Stage.Remove)
				r.Post("/{tournamentID}/stages/{stageID}/move", h.Stage.Move)
				r.Post("/{tournamentID}/stages/{stageID}/activate", h.Stage.Activate)
				r.Post("/{tournamentID}/stages/{stageID}/complete", h.Stage.Complete)
			})

			r.Get("/{tournamentID}/stages/{stageID}/match-stats", h.Stage.MatchStats)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate, canScore)
			r.Put("/matches/{matchID}/result", h.Match.RecordResult)
		})
	})

	return r
}
