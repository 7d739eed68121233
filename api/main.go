package main

import (
	"context"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/giftline/catalog-site/internal/auth"
	"github.com/giftline/catalog-site/internal/config"
	"github.com/giftline/catalog-site/internal/db"
	api "github.com/giftline/catalog-site/internal/http"
	"github.com/giftline/catalog-site/internal/http/handlers"
	rl "github.com/giftline/catalog-site/internal/http/rate_limiter"
	"github.com/giftline/catalog-site/internal/repo"
	"github.com/giftline/catalog-site/internal/storage"
)

// @title Catalog Site API
// @version 1.0
// @description REST API behind the marketing site: public catalog browsing and
// contact form, admin product management with image upload.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	auth.SetSecret(cfg.JWTSecret)

	go rl.StartVisitorCleanupLoop()

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("could not connect to Redis: %v", err)
	}
	defer rdb.Close()

	sessions := auth.NewRedisSessionStore(rdb)
	handlers.SetSessionStore(sessions)
	api.SetSessionChecker(sessions)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("could not connect to database: ", err)
	}
	defer database.Close()

	handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
	handlers.SetContactRepo(repo.NewPostgresContactRepository(database))
	handlers.SetUserRepo(repo.NewPostgresUserRepository(database))

	store := storage.NewLocalStorage(cfg.StorageDir, cfg.UploadsURL)
	handlers.SetImageStore(store, store.BaseDir())

	r := api.NewRouter()
	log.Printf("server running on %s", cfg.ServerAddr)
	if err := http.ListenAndServe(cfg.ServerAddr, r); err != nil {
		log.Fatal(err)
	}
}
