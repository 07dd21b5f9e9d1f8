package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/postboard-app/postboard/backend/internal/auth/http"
	"github.com/postboard-app/postboard/backend/internal/auth/identity"
	authservice "github.com/postboard-app/postboard/backend/internal/auth/service"
	"github.com/postboard-app/postboard/backend/internal/auth/session"
	"github.com/postboard-app/postboard/backend/internal/common/clock"
	"github.com/postboard-app/postboard/backend/internal/common/config"
	commoncrypto "github.com/postboard-app/postboard/backend/internal/common/crypto"
	"github.com/postboard-app/postboard/backend/internal/common/db"
	commonhttp "github.com/postboard-app/postboard/backend/internal/common/http"
	"github.com/postboard-app/postboard/backend/internal/common/logger"
	srv "github.com/postboard-app/postboard/backend/internal/common/server"
	posthttp "github.com/postboard-app/postboard/backend/internal/post/http"
	postrepo "github.com/postboard-app/postboard/backend/internal/post/repository"
	postservice "github.com/postboard-app/postboard/backend/internal/post/service"
	userrepo "github.com/postboard-app/postboard/backend/internal/user/repository"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "api", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.LoadAPIConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := db.RunMigrations(context.Background(), cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	userRepo := userrepo.NewPgRepository(pool)
	postRepo := postrepo.NewPgRepository(pool)
	hasher := &commoncrypto.BcryptHasher{}
	idGenerator := commoncrypto.NewUUIDGenerator()
	clk := clock.NewRealClock()

	tokenService := authservice.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, clk)
	authService := authservice.NewAuthService(userRepo, tokenService, hasher, idGenerator, clk, log)
	postService := postservice.NewPostService(postRepo, idGenerator, clk, log)

	carrier := session.NewCarrier(!cfg.IsDevelopment(), cfg.TokenTTL)
	resolver := identity.NewResolver(tokenService, userRepo, carrier, log)

	postHandler := posthttp.NewHandler(postService, cfg, log)

	mux := http.NewServeMux()
	mux.Handle("/api/auth/", authhttp.NewHandler(authService, postService, carrier, cfg, log))
	mux.Handle("/api/posts", postHandler)
	mux.Handle("/api/posts/", postHandler)
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())

	handler := resolver.Middleware()(mux)
	baseHandler := commonhttp.BuildBaseHandler(log, handler)

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), baseHandler)
	srv.StartWithGracefulShutdown(server, log, "api")
}
