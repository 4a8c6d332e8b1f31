package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fuzzlea/bpa-skillswap-v04/internal/config"
	"github.com/fuzzlea/bpa-skillswap-v04/internal/database"
	"github.com/fuzzlea/bpa-skillswap-v04/internal/middleware"
	"github.com/fuzzlea/bpa-skillswap-v04/internal/service"
	transport "github.com/fuzzlea/bpa-skillswap-v04/internal/transport/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

var startTime time.Time

func main() {
	startTime = time.Now()
	cfg := config.Load()
	database.InitDB(cfg)
	db := database.GetDB()

	notifyService := service.NewNotifyService(db)
	authService := service.NewAuthService(db, cfg.JWTSecret, time.Duration(cfg.JWTExpireMinutes)*time.Minute)
	profileService := service.NewProfileService(db)
	skillService := service.NewSkillService(db)
	sessionService := service.NewSessionService(db, notifyService)
	ratingService := service.NewRatingService(db, notifyService)
	adminService := service.NewAdminService(db)

	handler := transport.NewHandler(
		authService, profileService, skillService,
		sessionService, ratingService, notifyService, adminService,
	)
	log.Println("✅ [SERVICE] Services & Handler initialized")

	app := fiber.New(fiber.Config{
		AppName:      "skillswap-api",
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${ua}\n",
	}))

	protected := middleware.Protected(cfg.JWTSecret)
	api := app.Group("/api")

	// 1. Auth routes (public)
	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)

	// 2. Skills (public reference data)
	skills := api.Group("/skills")
	skills.Get("/", handler.GetAllSkills)
	skills.Get("/:id", handler.GetSkill)

	// 3. Profiles (reads public, writes authenticated)
	profiles := api.Group("/profiles")
	profiles.Get("/", handler.GetAllProfiles)
	profiles.Get("/me", protected, handler.GetMyProfile)
	profiles.Get("/:id", handler.GetProfile)
	profiles.Post("/", protected, handler.UpsertMyProfile)
	profiles.Put("/:id", protected, handler.UpdateProfile)
	profiles.Delete("/:id", protected, handler.DeleteProfile)

	// 4. Sessions & requests
	sessions := api.Group("/sessions")
	sessions.Get("/", handler.GetAllSessions)
	sessions.Get("/my-participations", protected, handler.GetMyParticipations)
	sessions.Get("/requests/pending", protected, handler.GetPendingRequests)
	sessions.Post("/requests/:id/respond", protected, handler.RespondToRequest)
	sessions.Get("/profile/:id/active", handler.GetActiveSessionsForProfile)
	sessions.Get("/:id", handler.GetSession)
	sessions.Post("/", protected, handler.CreateSession)
	sessions.Put("/:id", protected, handler.UpdateSession)
	sessions.Delete("/:id", protected, handler.DeleteSession)
	sessions.Post("/:id/requests", protected, handler.RequestJoin)

	// 5. Host-only session management
	management := sessions.Group("/:id/management", protected)
	management.Get("/", handler.GetSessionManagement)
	management.Get("/attendees", handler.GetAttendees)
	management.Put("/attendees/:requestId/verify", handler.VerifyAttendance)
	management.Put("/attendees/:requestId/unverify", handler.UnverifyAttendance)
	management.Delete("/attendees/:requestId", handler.KickAttendee)

	// 6. Ratings
	ratings := api.Group("/ratings")
	ratings.Post("/", protected, handler.SubmitRating)
	ratings.Get("/profile/:id", handler.GetRatingsForProfile)
	ratings.Get("/profile/:id/average", handler.GetAverageRating)

	// 7. Notifications (recipient-only)
	notifications := api.Group("/notifications", protected)
	notifications.Get("/", handler.GetNotifications)
	notifications.Get("/unread", handler.GetUnreadCount)
	notifications.Post("/:id/read", handler.MarkNotificationRead)
	notifications.Delete("/:id", handler.DeleteNotification)

	// 8. Admin
	admin := api.Group("/admin", protected, middleware.AdminOnly())
	admin.Get("/users", handler.AdminGetAllUsers)
	admin.Post("/users", handler.AdminAddUser)
	admin.Delete("/users/:id", handler.AdminDeleteUser)
	admin.Patch("/users/:id/role", handler.AdminToggleRole)
	admin.Get("/summary", handler.AdminGetSummary)

	log.Println("✅ [ROUTES] Registered /api routes")

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		uptime := time.Since(startTime).Round(time.Second)
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "skillswap-api",
			"uptime":    uptime.String(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	log.Println("✅ [ROUTES] Registered /health")

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("🛑 [SHUTDOWN] Graceful shutdown initiated...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ [SHUTDOWN] Error: %v", err)
		}
	}()

	log.Printf("🚀 skillswap-api starting...")
	log.Printf("   🔗 Listening on port: %s", cfg.ServerPort)
	log.Printf("   🌐 CORS allowed origins: %s", cfg.AllowedOrigins)
	log.Println("✅ Server ready.")

	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("❌ [STARTUP] Server failed to start: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var errMsg string
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		errMsg = e.Message
	} else {
		errMsg = err.Error()
	}
	log.Printf("🔥 [ERROR] [%d] %s %s → %v | IP=%s", code, c.Method(), c.Path(), errMsg, c.IP())
	return c.Status(code).JSON(fiber.Map{
		"error": "something went wrong",
	})
}
