package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbeisheim/chessrules/internal/config"
	"github.com/benbeisheim/chessrules/internal/controller"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.MustLoad("server")
	log := cfg.NewLogger("server")

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: len(cfg.AllowedOrigins) > 0,
	}))
	app.Use(logger.New(logger.Config{
		Output: log.StandardLog().Writer(),
		Format: "${status} ${method} ${path} ${latency}\n",
	}))

	// Initialize services
	gameManager := service.NewGameManager(log)
	gameService := service.NewGameService(gameManager)

	controller.RegisterRoutes(app, gameService, cfg.AllowedOrigins, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		log.Info("HTTP listening", "addr", cfg.Addr)
		if err := app.Listen(cfg.Addr); err != nil {
			log.Fatal("listen failed", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down", "games", gameManager.GameCount())
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("shutdown failed", "err", err)
	}
}
