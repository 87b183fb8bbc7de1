package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/controller"
	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/route"
	"github.com/dukkanlabs/dukkan-erp/internal/adapter/repository/memory"
	"github.com/dukkanlabs/dukkan-erp/internal/adapter/repository/postgres"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/customer"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/installment"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/invoice"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/product"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/setting"
	"github.com/dukkanlabs/dukkan-erp/internal/domain/user"
	"github.com/dukkanlabs/dukkan-erp/internal/infrastructure/database"
	"github.com/dukkanlabs/dukkan-erp/pkg/auth"
	"github.com/dukkanlabs/dukkan-erp/pkg/backup"
	"github.com/dukkanlabs/dukkan-erp/pkg/logger"
)

// repositories groups one implementation of every domain repository
type repositories struct {
	customers    customer.Repository
	products     product.Repository
	invoices     invoice.Repository
	installments installment.Repository
	users        user.Repository
	settings     setting.Repository
}

// App holds the application and its dependencies
type App struct {
	router        *gin.Engine
	logger        logger.Logger
	db            *pgxpool.Pool
	backupService *backup.Service
}

// NewApp wires the application. STORAGE_DRIVER selects the repository
// implementation: "memory" (default) keeps everything in process and
// enables zip backup, "postgres" uses the database configured by the
// DB_* variables.
func NewApp() (*App, error) {
	appLogger := logger.NewLogger()

	jwtService, err := auth.NewJWTService()
	if err != nil {
		return nil, err
	}

	app := &App{logger: appLogger}

	var repos repositories
	driver := os.Getenv("STORAGE_DRIVER")
	switch driver {
	case "", "memory":
		store := memory.NewStore()
		repos = repositories{
			customers:    memory.NewCustomerRepository(store),
			products:     memory.NewProductRepository(store),
			invoices:     memory.NewInvoiceRepository(store),
			installments: memory.NewInstallmentRepository(store),
			users:        memory.NewUserRepository(store),
			settings:     memory.NewSettingRepository(store),
		}
		app.backupService = backup.NewService(store)
		appLogger.Info("storage driver selected", "driver", "memory")

	case "postgres":
		cfg := database.NewPostgresConfigFromEnv()
		pool, err := database.NewPostgresPool(cfg)
		if err != nil {
			return nil, err
		}
		app.db = pool
		repos = repositories{
			customers:    postgres.NewCustomerRepository(pool),
			products:     postgres.NewProductRepository(pool),
			invoices:     postgres.NewInvoiceRepository(pool),
			installments: postgres.NewInstallmentRepository(pool),
			users:        postgres.NewUserRepository(pool),
			settings:     postgres.NewSettingRepository(pool),
		}
		appLogger.Info("storage driver selected", "driver", "postgres")

	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}

	if err := seedAdminUser(repos.users, appLogger); err != nil {
		return nil, err
	}

	authMW := auth.Middleware(jwtService)

	gin.SetMode(os.Getenv("GIN_MODE"))
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authController := controller.NewAuthController(repos.users, jwtService, appLogger)
	customerController := controller.NewCustomerController(repos.customers, appLogger)
	productController := controller.NewProductController(repos.products, appLogger)
	invoiceController := controller.NewInvoiceController(repos.invoices, repos.products, appLogger)
	installmentController := controller.NewInstallmentController(repos.installments, repos.products, appLogger)
	settingController := controller.NewSettingController(repos.settings, appLogger)
	reportController := controller.NewReportController(repos.installments, appLogger)

	route.RegisterAuthRoutes(api, authController, authMW)
	route.RegisterCustomerRoutes(api, customerController, authMW)
	route.RegisterProductRoutes(api, productController, authMW)
	route.RegisterInvoiceRoutes(api, invoiceController, authMW)
	route.RegisterInstallmentRoutes(api, installmentController, authMW)
	route.RegisterSettingRoutes(api, settingController, authMW)
	route.RegisterReportRoutes(api, reportController, authMW)

	// backup only works against the in-memory store
	if app.backupService != nil {
		backupController := controller.NewBackupController(app.backupService, appLogger)
		route.RegisterBackupRoutes(api, backupController, authMW)
	}

	app.router = router
	return app, nil
}

// seedAdminUser creates the initial admin account when the user store is
// empty. ADMIN_EMAIL and ADMIN_PASSWORD configure the account; without
// them an empty store stays empty and login is impossible.
func seedAdminUser(users user.Repository, appLogger logger.Logger) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := users.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return err
	}

	admin, err := user.NewUser("Administrator", email, password, user.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	appLogger.Info("admin user seeded", "email", email)
	return nil
}

// Start runs the HTTP server on PORT (default 8080)
func (a *App) Start() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	a.logger.Info("starting server", "port", port)
	return a.router.Run(":" + port)
}

// Close releases the application resources
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
