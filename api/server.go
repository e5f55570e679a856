package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/penfold-app/backend/auth"
	"github.com/penfold-app/backend/config"
	"github.com/penfold-app/backend/database"
	"github.com/penfold-app/backend/services"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(database database.Database) (Server, error) {
	c := config.New()

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	startupTime := time.Now()

	router, err := newRouter(database, withConfig(c), withStartupTime(startupTime))
	if err != nil {
		return Server{}, err
	}

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 60)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 60)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 120)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(database database.Database, opts ...func(*router)) (*chi.Mux, error) {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	acceptedOrigins := strings.Split(config.GetString(router.config, "ACCEPTED_ORIGINS", "*"), ",")
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   acceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	secret := config.GetString(router.config, "JWT_SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	accessTTL := time.Duration(config.GetInt(router.config, "ACCESS_TOKEN_MINUTES", 60)) * time.Minute
	refreshTTL := time.Duration(config.GetInt(router.config, "REFRESH_TOKEN_HOURS", 24*14)) * time.Hour

	tokenService := auth.NewTokenService(secret, accessTTL, refreshTTL, database.TokenRepo())
	identity := services.NewUserService(database.UserRepo(), services.DefaultPasswordPolicy())
	authService := auth.NewService(database.UserRepo(), identity, tokenService)

	commentsAdminOnly := config.GetBool(router.config, "COMMENTS_ADMIN_ONLY", false)

	handlers := initializeHandlers(database, authService, identity, commentsAdminOnly)

	authMiddleware := newAuthMiddleware(authService)

	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter, nil
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
