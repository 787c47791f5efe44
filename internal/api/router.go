package api

import (
	"ahorra-oink/docs"
	"ahorra-oink/internal/api/handlers"
	"ahorra-oink/pkg/auth"
	"ahorra-oink/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	txHandler *handlers.TransactionHandler,
	categoryHandler *handlers.CategoryHandler,
	goalHandler *handlers.GoalHandler,
	achievementHandler *handlers.AchievementHandler,
	settingsHandler *handlers.SettingsHandler,
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
				"success": false,
				"error":   err.Error(),
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
	user := app.Group("/user")
	authGroup := user.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	protected.Get("/profile", authHandler.Profile)

	transactions := protected.Group("/transactions")
	transactions.Get("", txHandler.List)
	transactions.Post("", txHandler.Create)
	transactions.Get("/:id", txHandler.Get)
	transactions.Put("/:id", txHandler.Update)
	transactions.Delete("/:id", txHandler.Delete)

	categories := protected.Group("/categories")
	categories.Get("", categoryHandler.List)
	categories.Post("", categoryHandler.Create)

	goals := protected.Group("/savings-goals")
	goals.Get("", goalHandler.List)
	goals.Post("", goalHandler.Create)
	goals.Get("/:id", goalHandler.Get)
	goals.Put("/:id", goalHandler.Update)
	goals.Delete("/:id", goalHandler.Delete)

	achievements := protected.Group("/achievements")
	achievements.Get("", achievementHandler.Catalog)
	achievements.Get("/unlocked", achievementHandler.Unlocked)

	protected.Get("/settings", settingsHandler.Get)
	protected.Put("/settings", settingsHandler.Update)
	protected.Post("/savings-method", settingsHandler.SelectSavingsMethod)

	protected.Get("/statistics", txHandler.Statistics)

	return app
}
