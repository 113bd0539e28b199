package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"unityconsult/config"
	"unityconsult/cron"
	"unityconsult/database"
	articleRepoPkg "unityconsult/database/repository/article"
	bookingRepoPkg "unityconsult/database/repository/booking"
	clientRepoPkg "unityconsult/database/repository/client"
	counselorRepoPkg "unityconsult/database/repository/counselor"
	notificationRepoPkg "unityconsult/database/repository/notification"
	paymentRepoPkg "unityconsult/database/repository/payment"
	reviewRepoPkg "unityconsult/database/repository/review"
	scheduleRepoPkg "unityconsult/database/repository/schedule"
	userRepoPkg "unityconsult/database/repository/user"
	"unityconsult/handlers"
	"unityconsult/middleware"
	"unityconsult/routes"
	adminSvc "unityconsult/services/admin"
	articleSvc "unityconsult/services/article"
	bookingSvc "unityconsult/services/booking"
	clientSvc "unityconsult/services/client"
	counselorSvc "unityconsult/services/counselor"
	notificationSvc "unityconsult/services/notification"
	paymentSvc "unityconsult/services/payment"
	reviewSvc "unityconsult/services/review"
	scheduleSvc "unityconsult/services/schedule"
	storageSvc "unityconsult/services/storage"
	userSvc "unityconsult/services/user"
	"unityconsult/utils"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	storageService, err := storageSvc.NewCloudinaryStorageService(config.AppConfig)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	routes.SetupCORS(router)

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	counselorRepo := counselorRepoPkg.NewMongoCounselorRepo()
	clientRepo := clientRepoPkg.NewMongoClientRepo()
	scheduleRepo := scheduleRepoPkg.NewMongoScheduleRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()
	articleRepo := articleRepoPkg.NewMongoArticleRepo()

	// services.
	userService := &userSvc.DefaultUserService{Repo: userRepo}
	counselorService := &counselorSvc.DefaultCounselorService{
		Repo:     counselorRepo,
		UserRepo: userRepo,
	}
	clientService := &clientSvc.DefaultClientService{Repo: clientRepo}
	scheduleService := &scheduleSvc.DefaultScheduleService{
		Repo:          scheduleRepo,
		CounselorRepo: counselorRepo,
	}
	notificationService := &notificationSvc.DefaultNotificationService{
		Repo:     notificationRepo,
		UserRepo: userRepo,
	}
	reviewService := &reviewSvc.DefaultReviewService{Repo: reviewRepo}
	articleService := &articleSvc.DefaultArticleService{
		Repo:         articleRepo,
		CounselorSvc: counselorService,
	}
	adminService := &adminSvc.DefaultAdminService{
		UserRepo:      userRepo,
		ClientRepo:    clientRepo,
		CounselorRepo: counselorRepo,
		Notifier:      notificationService,
	}

	wizardService := &bookingSvc.DefaultWizardService{
		Store:        bookingSvc.NewRedisSessionStore(),
		CounselorSvc: counselorService,
		ScheduleRepo: scheduleRepo,
	}
	paymentService := &paymentSvc.DefaultPaymentService{
		Repo:    paymentRepo,
		Gateway: paymentSvc.NewChapaClient(config.AppConfig),
	}
	confirmationService := &bookingSvc.ConfirmationService{
		Wizard:       wizardService,
		Payments:     paymentService,
		ScheduleRepo: scheduleRepo,
		BookingRepo:  bookingRepo,
		Notifier:     notificationService,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		SignUp:         handlers.SignUpHandler(userService),
		SignIn:         handlers.SignInHandler(userService),
		SignOut:        handlers.SignOutHandler(userService),
		UpdateFCMToken: handlers.UpdateFCMTokenHandler(userService),

		ListCounselors:           handlers.ListCounselorsHandler(counselorService, reviewService),
		GetCounselor:             handlers.GetCounselorHandler(counselorService),
		CompleteCounselorProfile: handlers.CompleteCounselorProfileHandler(counselorService, storageService),

		GetClientProfile:      handlers.GetClientProfileHandler(clientService),
		GetClientByID:         handlers.GetClientByIDHandler(clientService),
		CompleteClientProfile: handlers.CompleteClientProfileHandler(clientService, storageService),

		ListSchedule: handlers.ListScheduleHandler(scheduleService),
		CreateSlot:   handlers.CreateSlotHandler(scheduleService),
		DeleteSlot:   handlers.DeleteSlotHandler(scheduleService),

		StartWizard:     handlers.StartWizardHandler(wizardService),
		GetWizard:       handlers.GetWizardHandler(wizardService),
		ChooseCounselor: handlers.ChooseCounselorHandler(wizardService),
		Availability:    handlers.AvailabilityHandler(wizardService),
		SelectSlot:      handlers.SelectSlotHandler(wizardService),
		WizardSummary:   handlers.WizardSummaryHandler(wizardService),
		WizardBack:      handlers.WizardBackHandler(wizardService),
		CancelWizard:    handlers.CancelWizardHandler(wizardService),

		ListMyBookings:    handlers.ListMyBookingsHandler(bookingRepo),
		RescheduleBooking: handlers.RescheduleBookingHandler(confirmationService),

		InitializePayment: handlers.InitializePaymentHandler(paymentService, wizardService, userRepo),
		VerifyPayment:     handlers.VerifyPaymentHandler(confirmationService),

		SubmitReview:         handlers.SubmitReviewHandler(reviewService),
		ListCounselorReviews: handlers.ListCounselorReviewsHandler(reviewService),
		ListMyReviews:        handlers.ListMyReviewsHandler(reviewService),
		ReviewAverages:       handlers.ReviewAveragesHandler(reviewService),

		PublishArticle:        handlers.PublishArticleHandler(articleService, storageService),
		ListArticles:          handlers.ListArticlesHandler(articleService),
		ListCounselorArticles: handlers.ListCounselorArticlesHandler(articleService),
		ListMyArticles:        handlers.ListMyArticlesHandler(articleService),

		ListNotifications:     handlers.ListNotificationsHandler(notificationService),
		MarkNotificationsRead: handlers.MarkNotificationsReadHandler(notificationService),

		AdminListClients:        handlers.AdminListClientsHandler(adminService),
		AdminListCounselors:     handlers.AdminListCounselorsHandler(adminService),
		AdminApproveCounselor:   handlers.AdminApproveCounselorHandler(adminService),
		AdminSetCounselorStatus: handlers.AdminSetCounselorStatusHandler(adminService),
	}

	routes.RegisterAll(router, handlerBundle)

	cron.InitReminderWorker(notificationService, bookingRepo)
	utils.StartHealthMonitor(database.MongoClient, map[string]*redis.Client{
		"sessionCache": utils.GetSessionCacheClient(),
		"authCache":    utils.GetAuthCacheClient(),
	})

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Server listening on port %s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("Forced shutdown: %v", err)
	}
	logger.Info("Server exited cleanly")
}
