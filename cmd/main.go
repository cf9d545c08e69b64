package main

import (
	"school-service/internal/handler"
	"school-service/internal/middleware"
	"school-service/internal/model"
	"school-service/internal/query"
	"school-service/internal/stats"
	"school-service/pkg/config"
	"school-service/pkg/database"
	"school-service/pkg/jwtutil"
	"school-service/pkg/logger"
	"school-service/pkg/mailer"
	"school-service/pkg/tokenutil"
	"school-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting school service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(version)
	log.Info("Prometheus metrics initialized")

	// Invitation tokens and outbound mail
	tokens := tokenutil.NewService(&cfg.Invite)
	var mail mailer.Mailer
	if cfg.Mail.Backend == "sendgrid" {
		mail = mailer.NewSendgridMailer(&cfg.Mail, log)
	} else {
		mail = mailer.NewConsoleMailer(log)
	}
	log.Info("Mailer initialized", zap.String("backend", cfg.Mail.Backend))

	// Handlers
	composer := query.New(db)
	aggregator := stats.New(db)
	invitations := handler.NewInvitationHandler(db, tokens, mail, &cfg.Mail)
	auth := handler.NewAuthHandler(db)
	dashboard := handler.NewDashboardHandler(aggregator)
	organizations := handler.NewOrganizationHandler(composer)
	reads := handler.NewReadHandler(composer)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Login issues the access tokens the protected routes require
	e.POST("/auth/login", auth.Login)

	// Invitation lifecycle - reachable by invited administrators who have no
	// account yet
	e.POST("/organizations/invite", invitations.Invite)
	e.GET("/signup", invitations.SignupInfo)
	e.POST("/signup", invitations.CompleteSignup)

	// Protected routes - all require a valid access token
	api := e.Group("", middleware.AuthMiddleware)

	api.GET("/dashboard/stats", dashboard.Stats)
	api.GET("/organizations", organizations.List, middleware.RequireRole(model.RolePlatformOwner))

	api.GET("/students", reads.Students)
	api.GET("/schools", reads.Schools)
	api.GET("/campuses", reads.Campuses)
	api.GET("/classes", reads.Classes)
	api.GET("/subjects", reads.Subjects)
	api.GET("/assignments", reads.Assignments)
	api.GET("/grades", reads.Grades)

	// Get server port from configuration
	port := cfg.Server.Port

	// Start server
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
