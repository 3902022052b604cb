package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"cinema-management/internal/config"
	"cinema-management/internal/database"
	"cinema-management/internal/handler"
	"cinema-management/internal/middleware"
	"cinema-management/internal/queue"
	"cinema-management/internal/repository"
	"cinema-management/internal/router"
	"cinema-management/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	genreRepo := repository.NewGenreRepo(db)
	movieRepo := repository.NewMovieRepo(db)
	ticketRepo := repository.NewTicketRepo(db)

	genreSvc := service.NewGenreService(genreRepo)
	movieSvc := service.NewMovieService(movieRepo, genreRepo)
	ticketSvc := service.NewTicketService(ticketRepo, movieRepo)

	h := handler.NewHandler(genreSvc, movieSvc, ticketSvc)

	// Redis is optional: a nil client disables the response cache.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, response cache disabled")
	}
	cacheMW := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	// The consumer reconnects forever; it never takes the server down.
	go func() {
		if err := queue.StartTicketConsumer(); err != nil {
			log.Printf("ticket-consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e, h, cacheMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
