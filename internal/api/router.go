package api

import (
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/api/handlers"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/pkg/auth"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	billHandler *handlers.BillHandler,
	insightHandler *handlers.InsightHandler,
	jwtManager *auth.JWTManager,
	maxUploadMB int64,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		// One extra MB over the upload limit for multipart framing, so the
		// handlers' size check is what rejects oversized files.
		BodyLimit: int(maxUploadMB<<20) + 1<<20,
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

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public)
	authGroup := app.Group("/auth")
	authGroup.Get("/validate-email", authHandler.ValidateEmail)
	authGroup.Post("/signup", authHandler.SignUp)
	authGroup.Post("/signin", authHandler.SignIn)

	// Protected routes
	protected := app.Group("", middleware.AuthMiddleware(jwtManager, appLogger))
	protected.Get("/home", userHandler.Home)
	protected.Get("/getUserData", userHandler.GetUserData)
	protected.Put("/updateUserData", userHandler.UpdateUserData)
	protected.Post("/process", billHandler.Process)
	protected.Post("/transcribe", billHandler.Transcribe)
	protected.Post("/goals", insightHandler.SetGoal)
	protected.Get("/expenses/:user_id", insightHandler.GetExpenses)
	protected.Get("/insights/:user_id", insightHandler.GetInsights)

	return app
}
