package api

import (
	"pitchside/docs"
	"pitchside/internal/api/handlers"
	"pitchside/pkg/auth"
	"pitchside/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	chatHandler *handlers.ChatHandler,
	knowledgeHandler *handlers.KnowledgeHandler,
	preferenceHandler *handlers.PreferenceHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo // ensure docs package is imported and init() is called
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	chat := protected.Group("/chat")
	chat.Post("", chatHandler.SendMessage)
	chat.Get("/:id/history", chatHandler.GetHistory)

	knowledge := protected.Group("/knowledge")
	knowledge.Post("", knowledgeHandler.AddDocument)
	knowledge.Get("", knowledgeHandler.ListDocuments)
	knowledge.Get("/search", knowledgeHandler.SearchKnowledge)
	knowledge.Get("/stats", knowledgeHandler.GetStats)
	knowledge.Get("/:id", knowledgeHandler.GetDocument)

	preferences := protected.Group("/preferences")
	preferences.Get("", preferenceHandler.GetPreferences)
	preferences.Put("", preferenceHandler.UpdatePreferences)

	return app
}
