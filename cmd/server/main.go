package main

import (
	"log"
	"net/http"
	"os"

	_ "crmhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"crmhub/internal/auth"
	"crmhub/internal/cache"
	"crmhub/internal/cms"
	"crmhub/internal/config"
	"crmhub/internal/db"
	"crmhub/internal/handler"
	"crmhub/internal/mailer"
	"crmhub/internal/middleware"
	"crmhub/internal/model"
	"crmhub/internal/repository"
	"crmhub/internal/router"
	"crmhub/internal/service"
)

// @title CRM API
// @version 1.0
// @description CRM dashboard backend: cookie-session authentication, customers, appointments, tasks and CMS-backed collections.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	e := echo.New()
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.AuditLog{},
			&model.Task{},
			&model.Appointment{},
			&model.Customer{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Customer{},
		&model.Appointment{},
		&model.Task{},
		&model.AuditLog{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	cmsClient := cms.NewClient(cfg.CMSBaseURL, cfg.CMSBucket, cfg.CMSReadKey, cfg.CMSWriteKey)
	mail := mailer.New(cfg.PostmarkServerToken, cfg.PostmarkAccountToken, cfg.MailSender)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	customerRepo := repository.NewCustomerRepository(gormDB)
	appointmentRepo := repository.NewAppointmentRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	auditRepo := repository.NewAuditRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	cookies := auth.NewCookieFactory(cfg.IsProduction())

	// Initialize services
	auditService := service.NewAuditService(auditRepo)
	authService := service.NewAuthService(userRepo, jwtService, mail)
	customerService := service.NewCustomerService(customerRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo)
	taskService := service.NewTaskService(taskRepo)
	userService := service.NewUserService(userRepo)
	contentService := service.NewContentService(cmsClient, cacheClient)

	sessionCfg := middleware.SessionConfig{
		Tokens:      jwtService,
		Cookies:     cookies,
		DemoEnabled: cfg.DemoMode,
	}

	// Register routes
	router.Register(e, sessionCfg, router.Handlers{
		Pages:        handler.NewPagesHandler(),
		Auth:         handler.NewAuthHandler(authService, auditService, cookies, cfg.DemoMode),
		Customers:    handler.NewCustomerHandler(customerService),
		Appointments: handler.NewAppointmentHandler(appointmentService),
		Tasks:        handler.NewTaskHandler(taskService),
		Users:        handler.NewUserHandler(userService),
		Audit:        handler.NewAuditHandler(auditService),
		Settings:     handler.NewSettingsHandler(contentService),
		Content:      contentService,
		AuditService: auditService,
	})

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
