package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cardly/internal/api"
	"cardly/internal/auth"
	"cardly/internal/config"
	"cardly/internal/logging"
	"cardly/internal/models"
	"cardly/internal/render"
	"cardly/internal/storage"
	"cardly/internal/store"
	"cardly/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const sessionSweepInterval = time.Hour

func main() {
	if err := config.LoadEnv(); err != nil {
		panic(err)
	}
	// Database: DB_BACKEND "sqlite", "turso" or "postgres" (auto-detected if not set)
	// SQLite: SQLITE_PATH; Turso: TURSO_DATABASE_URL, TURSO_AUTH_TOKEN; Postgres: DATABASE_URL
	cfg := config.FromEnv()

	log, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize store
	s, err := store.New(cfg.Store, log)
	if err != nil {
		log.Fatal("Failed to initialize store", zap.Error(err))
	}
	defer s.Close()

	if err := ensureOwner(ctx, s, cfg, log); err != nil {
		log.Fatal("Failed to create owner user", zap.Error(err))
	}

	opts := api.Options{
		Origin:     cfg.PublicOrigin,
		QRProvider: cfg.QRProvider,
		Log:        log,
	}
	if cfg.Storage.Enabled() {
		st, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize image storage", zap.Error(err))
		}
		opts.Uploader = st
		log.Info("Image storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		log.Warn("S3 storage not configured, image uploads disabled")
	}

	// Initialize API
	a := api.New(s, opts)

	stopSweep := render.StartTicker(sessionSweepInterval, func(now time.Time) {
		n, err := s.DeleteExpiredSessions(context.Background(), now)
		if err != nil {
			log.Warn("Failed to delete expired sessions", zap.Error(err))
			return
		}
		if n > 0 {
			log.Info("Deleted expired sessions", zap.Int64("count", n))
		}
	})
	defer stopSweep()

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := s.Ping(req.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})

	// API routes
	r.Mount("/api", a.Routes())

	// Public card pages
	r.Mount("/", web.New(a, log).Routes())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Shutdown failed", zap.Error(err))
		}
	}()

	log.Info("Cardly starting",
		zap.String("addr", "http://localhost:"+cfg.Port),
		zap.String("origin", cfg.PublicOrigin),
		zap.String("database", s.Backend().Description()),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server failed", zap.Error(err))
	}
	log.Info("Server stopped")
}

// ensureOwner creates the admin account from OWNER_USERNAME/OWNER_PASSWORD
// when set and no users exist yet.
func ensureOwner(ctx context.Context, s *store.Store, cfg config.Config, log *zap.Logger) error {
	if cfg.OwnerUsername == "" || cfg.OwnerPassword == "" {
		return nil
	}

	userCount, err := s.CountUsers(ctx)
	if err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}

	username := strings.ToLower(cfg.OwnerUsername)
	log.Info("Creating owner user from environment", zap.String("username", username))
	passwordHash, err := auth.HashPassword(cfg.OwnerPassword)
	if err != nil {
		return err
	}

	host := "localhost"
	if i := strings.Index(cfg.PublicOrigin, "://"); i >= 0 {
		host = strings.SplitN(cfg.PublicOrigin[i+3:], ":", 2)[0]
	}

	return s.CreateUser(ctx, &models.User{
		Username:     username,
		Email:        username + "@" + host,
		PasswordHash: passwordHash,
		DisplayName:  cfg.OwnerUsername,
		IsAdmin:      true,
	})
}
