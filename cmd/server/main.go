package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/tsutsun/magicaltsutsunlist/internal/catalog"
	"github.com/tsutsun/magicaltsutsunlist/internal/config"
	"github.com/tsutsun/magicaltsutsunlist/internal/database"
	"github.com/tsutsun/magicaltsutsunlist/internal/handler"
	"github.com/tsutsun/magicaltsutsunlist/internal/jikan"
	"github.com/tsutsun/magicaltsutsunlist/internal/list"
	"github.com/tsutsun/magicaltsutsunlist/internal/middleware"
	"github.com/tsutsun/magicaltsutsunlist/internal/queue"
	"github.com/tsutsun/magicaltsutsunlist/internal/repository"
	"github.com/tsutsun/magicaltsutsunlist/internal/router"
	queuepub "github.com/tsutsun/magicaltsutsunlist/internal/service"
)

func main() {
	// .env is optional; in containers the environment is injected
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}

	mongoClient, err := database.OpenMongo(ctx, cfg.MongoURI)
	cancel()
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(ctx)
	}()

	// Redis is optional; cache and rate limiting degrade to pass-through
	rdb := config.NewRedisClient()

	go func() {
		if err := queue.StartMailConsumer(); err != nil {
			log.Printf("mail consumer stopped: %v", err)
		}
	}()

	animeColl := mongoClient.Database(cfg.MongoDB).Collection(cfg.AnimeColl)
	mangaColl := mongoClient.Database(cfg.MongoDB).Collection(cfg.MangaColl)
	animeCatalog := catalog.NewStore(animeColl)
	mangaCatalog := catalog.NewStore(mangaColl)

	users := repository.NewUserRepo(db)
	resets := repository.NewResetRepo(db)
	animeSvc := list.NewService(repository.NewAnimeTrackingRepo(db))
	mangaSvc := list.NewService(repository.NewMangaTrackingRepo(db))
	animeSync := list.NewSyncer(animeCatalog, repository.NewAnimeReferenceRepo(db), "anime")
	mangaSync := list.NewSyncer(mangaCatalog, repository.NewMangaReferenceRepo(db), "manga")

	auth := handler.NewAuthHandler(cfg, users, resets, queuepub.PublishPasswordReset)
	animeLists := handler.NewAnimeListHandler(animeSvc, animeSync)
	mangaLists := handler.NewMangaListHandler(mangaSvc, mangaSync)
	animeAdmin := handler.NewCatalogHandler(animeCatalog, "anime", cfg.UploadDir)
	mangaAdmin := handler.NewCatalogHandler(mangaCatalog, "manga", cfg.UploadDir)
	seasonal := handler.NewSeasonalHandler(jikan.NewClient(cfg.JikanURL))

	e := echo.New()
	e.Validator = handler.NewRequestValidator()
	e.Static("/uploads", cfg.UploadDir)

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterPublic(e, seasonal, animeLists, mangaLists, cache)
	router.RegisterUser(e, auth, limit, cfg.JWTSecret)
	router.RegisterTracking(e, animeLists, mangaLists, cfg.JWTSecret)
	router.RegisterCatalog(e, animeAdmin, mangaAdmin, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
