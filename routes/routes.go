package routes

import (
	"net/http"
	"time"

	"github.com/Dosada05/referee-review/handlers"
	"github.com/Dosada05/referee-review/middleware"
	"github.com/Dosada05/referee-review/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Handlers собирает все HTTP-обработчики приложения.
type Handlers struct {
	Auth      *handlers.AuthHandler
	League    *handlers.LeagueHandler
	Match     *handlers.MatchHandler
	Referee   *handlers.RefereeHandler
	Moment    *handlers.MomentHandler
	Embed     *handlers.EmbedHandler
	Cron      *handlers.CronHandler
	WebSocket *handlers.WebSocketHandler
}

type Options struct {
	JWTSecret      string
	CronSecret     string
	AllowedOrigins []string
	Logger         zerolog.Logger
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Cron-Secret"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(opts.JWTSecret)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Триггеры фоновых задач для внешнего планировщика
	router.Route("/cron", func(r chi.Router) {
		r.Use(middleware.RequireCronSecret(opts.CronSecret))
		r.Use(chiMiddleware.Timeout(2 * time.Minute))
		r.Get("/match-status", h.Cron.MatchStatus)
		r.Post("/match-status", h.Cron.MatchStatus)
		r.Get("/round-focus", h.Cron.RoundFocus)
		r.Post("/round-focus", h.Cron.RoundFocus)
	})

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
	})

	router.Route("/leagues", func(r chi.Router) {
		r.Get("/", h.League.ListLeagues)
		r.Get("/{leagueID}/rounds", h.League.ListRounds)
		r.Get("/{leagueID}/focus", h.League.GetFocusRound)
	})

	router.Get("/rounds/{roundID}/matches", h.League.ListRoundMatches)

	router.Route("/matches/{matchID}", func(r chi.Router) {
		r.Get("/", h.Match.GetMatch)
		r.Get("/moments", h.Match.ListMoments)
		r.With(authenticate, adminOnly).Post("/moments", h.Match.CreateMoment)
	})

	router.Route("/referees", func(r chi.Router) {
		r.Get("/", h.Referee.ListReferees)
		r.Get("/{refereeID}", h.Referee.GetReferee)
		r.With(authenticate).Post("/{refereeID}/ratings", h.Referee.Rate)
		r.With(authenticate, adminOnly).Post("/{refereeID}/photo", h.Referee.UploadPhoto)
	})

	router.Route("/moments/{momentID}", func(r chi.Router) {
		r.Get("/", h.Moment.GetMoment)
		r.Get("/comments", h.Moment.ListComments)
		r.With(authenticate).Post("/comments", h.Moment.CreateComment)
	})

	router.Route("/comments/{commentID}", func(r chi.Router) {
		r.Use(authenticate)
		r.Delete("/", h.Moment.DeleteComment)
		r.Post("/reports", h.Moment.ReportComment)
	})

	router.Route("/reports", func(r chi.Router) {
		r.Use(authenticate, adminOnly)
		r.Get("/", h.Moment.ListOpenReports)
		r.Post("/{reportID}/resolve", h.Moment.ResolveReport)
	})

	router.Post("/embeds/preview", h.Embed.Preview)

	router.Route("/ws", func(r chi.Router) {
		r.Get("/matches/{matchID}", h.WebSocket.ServeMatch)
		r.Get("/leagues/{leagueID}", h.WebSocket.ServeLeague)
	})
}
