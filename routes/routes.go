package routes

import (
	"context"
	"net/http"
	"time"

	_ "github.com/Dosada05/swiss-tournament/docs" // регистрирует swagger spec
	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Tournament *handlers.TournamentHandler
	Player     *handlers.PlayerHandler
	Round      *handlers.RoundHandler
	WebSocket  *handlers.WebSocketHandler
}

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
	// RateLimiter ограничивает изменяющие запросы. Nil отключает ограничение.
	RateLimiter *middleware.IPRateLimiter
	// Health проверяет зависимости для /healthz.
	Health func(ctx context.Context) error
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(middleware.Metrics)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", healthHandler(opts.Health))
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	authenticate := middleware.Authenticate(opts.JWTSecret)
	limit := func(next http.Handler) http.Handler { return next }
	if opts.RateLimiter != nil {
		limit = middleware.RateLimit(opts.RateLimiter)
	}

	router.Route("/api", func(r chi.Router) {
		r.Route("/tournaments", func(r chi.Router) {
			// Публичные маршруты
			r.Get("/", h.Tournament.ListHandler)
			r.With(limit).Post("/", h.Tournament.CreateHandler)

			r.Route("/{tournamentID}", func(r chi.Router) {
				r.Get("/", h.Tournament.GetByIDHandler)
				r.With(limit).Post("/token", h.Tournament.TokenHandler)
				r.Get("/players", h.Player.ListHandler)
				r.Get("/rounds", h.Round.ListHandler)
				r.Get("/rounds/{roundNumber}", h.Round.GetHandler)
				r.Get("/standings", h.Round.StandingsHandler)

				// Только организатор этого турнира
				r.Group(func(r chi.Router) {
					r.Use(limit)
					r.Use(authenticate)
					r.Use(middleware.RequireTournamentOrganizer)

					r.Delete("/", h.Tournament.DeleteHandler)
					r.Post("/start", h.Tournament.StartHandler)
					r.Post("/players", h.Player.AddHandler)
					r.Post("/players/bulk", h.Player.AddBulkHandler)
					r.Delete("/players/{playerID}", h.Player.DeleteHandler)
					r.Post("/rounds/advance", h.Round.AdvanceHandler)
					r.Put("/rounds/{roundNumber}/pairings/{pairingID}/result", h.Round.SetResultHandler)
				})
			})
		})
	})
}

func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
