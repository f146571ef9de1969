package main // Entry point for the seat allocation API server

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/majidonaisy/seating-algo/internal/config"
	"github.com/majidonaisy/seating-algo/internal/database"
	"github.com/majidonaisy/seating-algo/internal/handler"
	"github.com/majidonaisy/seating-algo/internal/middleware"
	"github.com/majidonaisy/seating-algo/internal/queue"
	"github.com/majidonaisy/seating-algo/internal/repository"
	"github.com/majidonaisy/seating-algo/internal/router"
	"github.com/majidonaisy/seating-algo/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	// Redis backs the rate limiter and read cache; both degrade to no-ops
	// when it is absent.
	rdb := config.NewRedisClient()

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	studentRepo := repository.NewStudentRepo(db)
	restrictionRepo := repository.NewRestrictionRepo(db)
	allocationRepo := repository.NewAllocationRepo(db)

	allocationSvc := &service.AllocationService{
		Students:     studentRepo,
		Rooms:        roomRepo,
		Restrictions: restrictionRepo,
		Allocations:  allocationRepo,
		Solver:       service.HeuristicSolver{},
	}

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	adminHandler := handler.NewAdminHandler(roomRepo, studentRepo, restrictionRepo)
	allocationHandler := handler.NewAllocationHandler(allocationSvc, allocationRepo, roomRepo, config.LoadSolverPolicy())

	// Consume allocation.completed events into the audit log. The consumer
	// reconnects on broker failure, so a missing RabbitMQ only costs the log.
	go func() {
		if err := queue.StartAllocationConsumer(); err != nil {
			log.Printf("queue consumer: %v", err)
		}
	}()

	// Sweep expired refresh tokens once an hour, keeping revoked rows for a
	// day in case a session needs auditing.
	go func() {
		for range time.Tick(time.Hour) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := tokenRepo.PurgeExpired(ctx, 24*time.Hour); err != nil {
				log.Printf("token purge: %v", err)
			}
			cancel()
		}
	}()

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)
	router.RegisterAllocations(e, allocationHandler, cfg.JWTSecret,
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
