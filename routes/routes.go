package routes

import (
	"salon-booking/constants"
	"salon-booking/controllers/auth"
	"salon-booking/controllers/banner"
	"salon-booking/controllers/booking"
	"salon-booking/controllers/catalog"
	"salon-booking/controllers/chatbot"
	"salon-booking/controllers/dashboard"
	"salon-booking/controllers/otp"
	"salon-booking/controllers/statuscode"
	"salon-booking/httpServices/sms"
	"salon-booking/logger"
	"salon-booking/middleware"
	"salon-booking/resource"
	bookingService "salon-booking/services/booking"
	otpService "salon-booking/services/otp"
	"salon-booking/storage"
	"salon-booking/types"
	"salon-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	smsSender, err := sms.NewSenderFromEnv()
	if err != nil {
		logger.Error("Failed to configure SMS sender", err)
	}

	store := storage.NewGormStore(db)
	otpSvc := otpService.NewService(store, smsSender)
	statusSvc := bookingService.NewStatusService(store)

	asyncLogger := logger.NewAsyncLogger(db)
	authController := auth.NewAuthController(db, asyncLogger, otpSvc)
	bookingController := booking.NewBookingController(db, asyncLogger, statusSvc)
	otpController := otp.NewOTPController(db, asyncLogger, otpSvc)
	catalogController := catalog.NewCatalogController(db, asyncLogger)
	bannerController := banner.NewBannerController(db, asyncLogger)
	statusCodeController := statuscode.NewStatusCodeController(db, asyncLogger)
	dashboardController := dashboard.NewDashboardController(db, asyncLogger)
	chatbotController := chatbot.NewChatbotController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	app.Use(middleware.RequestLogger(asyncLogger))

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Status:  fiber.StatusOK,
			Message: "Salon booking API",
			Data:    nil,
		})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/login", authController.Login)
	api.Post("/register", authController.Register)
	api.Post("/register/send-otp", otpController.SendRegistrationOTP)

	api.Get("/track/:code", bookingController.Track)
	api.Get("/categories", catalogController.ListCategories)
	api.Get("/services", catalogController.ListServices)
	api.Get("/services/:id", catalogController.GetService)
	api.Get("/banners", bannerController.List)
	api.Get("/status-codes", statusCodeController.List)
	api.Post("/chatbot/ask", chatbotController.Ask)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	authGroup := api.Group("/auth").Use(middleware.RequireAuthentication())
	authGroup.Get("/profile", authController.Profile)
	authGroup.Post("/logout", authController.Logout)

	authGroup.Get("/modules", func(c *fiber.Ctx) error {
		_, role, ok := utils.ActorFromContext(c)
		if !ok {
			return utils.Unauthorized(c, "Unauthorized")
		}
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Status:  fiber.StatusOK,
			Message: "Modules for role",
			Data:    resource.ModulesForRole(role),
		})
	})

	/*=============================================================================
	| Booking Routes
	===============================================================================*/
	bookingGroup := api.Group("/booking")

	bookingGroup.Post("/create", middleware.RequireAuthentication(), bookingController.Store)
	bookingGroup.Get("/list", middleware.RequireAuthentication(), bookingController.List)

	bookingGroup.Post("/update-status", middleware.RequirePermissions(
		constants.StatusUpdatePermissions...,
	), bookingController.UpdateStatus)

	bookingGroup.Post("/assign-artist", middleware.RequirePermissions(
		constants.StaffPermissions...,
	), bookingController.AssignArtist)

	/*=============================================================================
	| OTP Routes
	===============================================================================*/
	otpGroup := api.Group("/otp")

	otpGroup.Post("/send", middleware.RequirePermissions(
		constants.StatusUpdatePermissions...,
	), otpController.IssueTransitionOTP)

	otpGroup.Post("/verify", middleware.RequirePermissions(
		constants.StatusUpdatePermissions...,
	), otpController.VerifyTransitionOTP)

	/*=============================================================================
	| Admin Routes
	===============================================================================*/
	admin := api.Group("/admin").Use(middleware.RequirePermissions(
		constants.StaffPermissions...,
	))

	admin.Get("/dashboard", dashboardController.Summary)

	admin.Post("/categories", catalogController.CreateCategory)
	admin.Put("/categories/:id", catalogController.UpdateCategory)
	admin.Delete("/categories/:id", catalogController.DeleteCategory)

	admin.Post("/services", catalogController.CreateService)
	admin.Put("/services/:id", catalogController.UpdateService)
	admin.Delete("/services/:id", catalogController.DeleteService)

	admin.Post("/banners", bannerController.Create)
	admin.Put("/banners/:id", bannerController.Update)
	admin.Delete("/banners/:id", bannerController.Delete)

	admin.Post("/status-codes", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
	), statusCodeController.Create)
	admin.Put("/status-codes/:id", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
	), statusCodeController.Update)
	admin.Delete("/status-codes/:id", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
	), statusCodeController.Delete)
}
