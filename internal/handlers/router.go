package handlers

import (
	"collectgames/internal/app"
	"collectgames/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	WebSocketHandler(router, app.Websocket)

	api := router.Group("/api", app.Middleware.TraceID())
	HealthHandler(api, app.Config)
	NewConsoleHandler(*app, api).Register()
	NewCollectionHandler(*app, api).Register()
	NewWishlistHandler(*app, api).Register()
	NewReviewHandler(*app, api).Register()

	return nil
}
