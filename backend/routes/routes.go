package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"institute/backend/auth"
	"institute/backend/chain"
	"institute/backend/config"
	"institute/backend/controllers"
	"institute/backend/middleware"
	"institute/backend/scoring"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, gateway chain.Gateway, logger *log.Logger) {
	nonces := auth.NewNonceStore(5 * time.Minute)
	engine := scoring.NewEngine(db, gateway)

	authMiddleware := middleware.AuthMiddleware(cfg)

	// Auth / session routes
	authController := controllers.NewAuthController(cfg, nonces)
	app.Get("/api/generateNonce", authController.GenerateNonce)
	app.Post("/api/generateJWT", authController.GenerateJWT)
	app.Get("/api/session", authController.Session)
	app.Get("/api/verifyJWT", authController.VerifyJWT)
	app.Post("/api/logout", authController.Logout)

	// User routes
	userController := controllers.NewUserController(db, cfg, gateway)
	app.Post("/api/createUser", userController.Create)
	app.Get("/api/profile", authMiddleware, userController.Profile)
	app.Post("/api/updateUser", authMiddleware, userController.Update)

	// Course routes
	coursesController := controllers.NewCoursesController(db, cfg, engine)
	app.Get("/api/fetchCourses", coursesController.Fetch)
	app.Post("/api/createCourses", coursesController.Create)
	app.Post("/api/unlockCourse", authMiddleware, coursesController.Unlock)

	// Challenge routes
	challengesController := controllers.NewChallengesController(db, cfg)
	app.Get("/api/fetchChallenges", challengesController.Fetch)
	app.Get("/api/fetchChallengesByCourse", challengesController.FetchByCourse)
	app.Post("/api/createChallenges", challengesController.Create)
	app.Post("/api/submitChallenge", challengesController.Submit)
	app.Post("/api/trackHint", challengesController.Hint)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg)
	app.Get("/api/getUserProgress", progressController.GetUserProgress)

	// Completion route
	completionController := controllers.NewCompletionController(engine, logger)
	app.Post("/api/completeCourse", completionController.CompleteCourse)

	// Hiring directory
	hireController := controllers.NewHireController(db, cfg)
	app.Get("/api/getUsersWithCompletedCourses", hireController.GetUsersWithCompletedCourses)

	// Chain passthrough routes
	chainController := controllers.NewChainController(gateway)
	app.Post("/api/mint", chainController.Mint)
	app.Post("/api/getTokens", chainController.Balance)
	app.Post("/api/updateResume", chainController.UpdateResume)
	app.Post("/api/mintResume", chainController.MintResume)
}
