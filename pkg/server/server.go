package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	authhandler "github.com/lib-tools/library-atlas/pkg/handlers/auth"
	"github.com/lib-tools/library-atlas/pkg/handlers/books"
	"github.com/lib-tools/library-atlas/pkg/handlers/borrowers"
	"github.com/lib-tools/library-atlas/pkg/handlers/borrowing"
	"github.com/lib-tools/library-atlas/pkg/handlers/reports"
	libmiddleware "github.com/lib-tools/library-atlas/pkg/server/middleware"
	"github.com/lib-tools/library-atlas/pkg/services/accounts"
	"github.com/lib-tools/library-atlas/pkg/services/auth"
	"github.com/lib-tools/library-atlas/pkg/services/catalog"
	"github.com/lib-tools/library-atlas/pkg/services/circulation"
	"github.com/lib-tools/library-atlas/pkg/services/reporting"
)

const (
	rateLimitWindow     = 15 * time.Minute
	reportRateLimit     = 10
	standardRateLimit   = 50
	healthCheckResponse = `{"status":"success","message":"library API is running"}`
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Auth        auth.Service
	Catalog     catalog.Service
	Circulation circulation.Service
	Accounts    accounts.Service
	Reports     reporting.Generator
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	deps := config.Dependencies
	authHandler := authhandler.NewHandler(deps.Auth)
	booksHandler := books.NewHandler(deps.Catalog)
	borrowersHandler := borrowers.NewHandler(deps.Accounts)
	borrowingHandler := borrowing.NewHandler(deps.Circulation)
	reportsHandler := reports.NewHandler(deps.Reports)

	router := chi.NewRouter()

	router.Use(libmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(healthCheckResponse))
	})

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(httprate.LimitByIP(standardRateLimit, rateLimitWindow))
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(libmiddleware.Authenticate(deps.Auth))

			r.Route("/books", func(r chi.Router) {
				r.Get("/", booksHandler.ListBooks)
				r.Get("/search", booksHandler.SearchBooks)
				r.Get("/{id}", booksHandler.GetBook)
				r.Group(func(r chi.Router) {
					r.Use(libmiddleware.RequireAdmin)
					r.Post("/", booksHandler.CreateBook)
					r.Put("/{id}", booksHandler.UpdateBook)
					r.Delete("/{id}", booksHandler.DeleteBook)
				})
			})

			r.Route("/borrowers", func(r chi.Router) {
				r.Get("/profile", borrowersHandler.GetProfile)
				r.Put("/profile", borrowersHandler.UpdateProfile)
				r.Group(func(r chi.Router) {
					r.Use(libmiddleware.RequireAdmin)
					r.Get("/", borrowersHandler.ListBorrowers)
					r.Get("/{id}", borrowersHandler.GetBorrower)
					r.Delete("/{id}", borrowersHandler.DeleteBorrower)
				})
			})

			r.Route("/borrowing", func(r chi.Router) {
				r.Post("/checkout", borrowingHandler.Checkout)
				r.Post("/{id}/return", borrowingHandler.Return)
				r.Get("/history", borrowingHandler.History)
				r.Get("/checked-out", borrowingHandler.CheckedOut)
				r.Get("/overdue", borrowingHandler.Overdue)
			})

			r.Route("/reports", func(r chi.Router) {
				r.With(httprate.LimitByIP(reportRateLimit, rateLimitWindow)).
					Post("/generate", reportsHandler.GenerateReport)
				r.Get("/statistics", reportsHandler.GetStatistics)
				r.With(httprate.LimitByIP(standardRateLimit, rateLimitWindow)).
					Post("/analytics", reportsHandler.GetPeriodAnalytics)
				r.Get("/export/last-month-overdue", reportsHandler.ExportLastMonthOverdue)
				r.Get("/export/last-month-borrowing", reportsHandler.ExportLastMonthBorrowing)
			})
		})
	})

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// Router exposes the configured mux for tests.
func (w *WebAPI) Router() http.Handler {
	return w.router
}
