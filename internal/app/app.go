package app

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "speakerbureau/docs"
	"speakerbureau/internal/config"
	"speakerbureau/internal/handlers"
	"speakerbureau/internal/logger"
	"speakerbureau/internal/middleware"
	"speakerbureau/internal/pdf"
	"speakerbureau/internal/repositories"
	"speakerbureau/internal/routes"
	"speakerbureau/internal/services"
)

func Run() {
	cfg := config.LoadConfig()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "speakerbureau")
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer log.Sync() //nolint:errcheck

	middleware.SetJWTKey(cfg.Auth.JWTSecret)

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	dealRepo := repositories.NewDealRepository(db)
	dealEventRepo := repositories.NewDealEventRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	proposalRepo := repositories.NewProposalRepository(db)
	firmOfferRepo := repositories.NewFirmOfferRepository(db)
	speakerRepo := repositories.NewSpeakerRepository(db)
	vendorRepo := repositories.NewVendorRepository(db)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	notifier := services.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.OpsChatID, log)

	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo)
	dealService := services.NewDealService(dealRepo, dealEventRepo, projectService, notifier, log)
	proposalService := services.NewProposalService(proposalRepo, emailService, cfg.Links.PublicBaseURL, log)
	firmOfferService := services.NewFirmOfferService(
		firmOfferRepo, proposalRepo, speakerRepo,
		emailService, notifier, cfg.Links.PublicBaseURL, log,
	)
	speakerService := services.NewSpeakerService(speakerRepo)
	vendorService := services.NewVendorService(vendorRepo)
	reportService := services.NewReportService(dealRepo, projectRepo, firmOfferRepo)

	offerPDF := pdf.NewOfferGenerator("Speaker Bureau")

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, log)
	userHandler := handlers.NewUserHandler(userService)
	dealHandler := handlers.NewDealHandler(dealService)
	projectHandler := handlers.NewProjectHandler(projectService)
	proposalHandler := handlers.NewProposalHandler(proposalService)
	firmOfferHandler := handlers.NewFirmOfferHandler(firmOfferService, offerPDF)
	reviewHandler := handlers.NewSpeakerReviewHandler(firmOfferService, proposalService)
	speakerHandler := handlers.NewSpeakerHandler(speakerService)
	vendorHandler := handlers.NewVendorHandler(vendorService)
	inquiryHandler := handlers.NewInquiryHandler(dealService)
	reportHandler := handlers.NewReportHandler(reportService)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		userHandler,
		dealHandler,
		projectHandler,
		proposalHandler,
		firmOfferHandler,
		reviewHandler,
		speakerHandler,
		vendorHandler,
		inquiryHandler,
		reportHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("server listening", zap.String("addr", listenAddr))
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
