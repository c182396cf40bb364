package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pos-inventory/internal/handler"
	"go-pos-inventory/internal/middleware"
	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/internal/service"
	"go-pos-inventory/internal/ws"
	"go-pos-inventory/pkg/database"
	"go-pos-inventory/pkg/mailer"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.StockTransaction{},
		&model.PasswordOTP{},
	)

	// 3. Repositories
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	ledgerRepo := repository.NewStockTransactionRepo(db)
	otpRepo := repository.NewOTPRepo(db)

	// 4. Bootstrap super admin (idempotent, existence-gated)
	if err := ensureSuperAdmin(userRepo); err != nil {
		log.Printf("Warning: failed to bootstrap super admin: %v", err)
	}

	// 5. WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 6. Services & Handlers
	invService := service.NewInventoryService(productRepo, ledgerRepo, db, wsHub)
	productService := service.NewProductService(productRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	authService := service.NewAuthService(userRepo, otpRepo, mailer.NewLogSender())
	userService := service.NewUserService(userRepo)
	reportService := service.NewReportService(ledgerRepo)

	invHandler := handler.NewInventoryHandler(invService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	reportHandler := handler.NewReportHandler(reportService)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "POS Inventory v1.0",
	})

	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// ============ PUBLIC ROUTES ============
	auth := app.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/verify-otp", authHandler.VerifyOTP)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// ============ PROTECTED ROUTES ============
	protected := app.Group("", middleware.RequireAuth())

	adminOnly := middleware.RequireRoles(model.RoleAdmin, model.RoleSuperAdmin)
	superAdminOnly := middleware.RequireRoles(model.RoleSuperAdmin)

	// Stock ledger
	protected.Post("/inventory", invHandler.CreateTransaction)
	protected.Get("/inventory", invHandler.ListTransactions)

	// Products (static paths before :id)
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/lookup", productHandler.LookupProduct)
	protected.Get("/products/suggestions", productHandler.GetProductSuggestions)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Get("/products/:id/quick-view", productHandler.GetProductQuickView)
	protected.Get("/products/:id/print", productHandler.PrintProduct)
	protected.Post("/products", adminOnly, productHandler.CreateProduct)
	protected.Patch("/products/:id", adminOnly, productHandler.UpdateProduct)
	protected.Delete("/products/:id", adminOnly, productHandler.DeleteProduct)

	// Categories
	protected.Get("/categories", categoryHandler.GetCategories)
	protected.Get("/categories/:id", categoryHandler.GetCategory)
	protected.Post("/categories", adminOnly, categoryHandler.CreateCategory)
	protected.Put("/categories/:id", adminOnly, categoryHandler.UpdateCategory)
	protected.Delete("/categories/:id", adminOnly, categoryHandler.DeleteCategory)

	// Users
	protected.Get("/users/me", authHandler.Me)
	protected.Get("/users", superAdminOnly, userHandler.GetUsers)
	protected.Get("/users/:id", superAdminOnly, userHandler.GetUser)
	protected.Post("/users", superAdminOnly, userHandler.CreateUser)
	protected.Patch("/users/:id", superAdminOnly, userHandler.UpdateUser)
	protected.Delete("/users/:id", superAdminOnly, userHandler.DeleteUser)

	// Reports
	protected.Get("/reports/stats", adminOnly, reportHandler.GetInventoryStats)
	protected.Get("/reports/stock-movement", adminOnly, reportHandler.GetStockMovement)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// ensureSuperAdmin creates the bootstrap super admin account exactly once:
// it checks for any existing super admin before writing.
func ensureSuperAdmin(userRepo repository.UserRepository) error {
	exists, err := userRepo.ExistsByRole(model.RoleSuperAdmin)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	email := os.Getenv("SUPER_ADMIN_EMAIL")
	password := os.Getenv("SUPER_ADMIN_PASSWORD")
	username := os.Getenv("SUPER_ADMIN_USERNAME")
	if username == "" {
		username = "superadmin"
	}
	if email == "" || password == "" {
		log.Println("SUPER_ADMIN_EMAIL/SUPER_ADMIN_PASSWORD not set, skipping bootstrap")
		return nil
	}

	admin := &model.User{
		Username: username,
		Email:    email,
		Role:     model.RoleSuperAdmin,
	}
	if err := admin.SetPassword(password); err != nil {
		return err
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}

	log.Printf("Super admin created: %s", email)
	return nil
}
