package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pharmacy-pos/internal/handler"
	"go-pharmacy-pos/internal/middleware"
	"go-pharmacy-pos/internal/model"
	"go-pharmacy-pos/internal/repository"
	"go-pharmacy-pos/internal/service"
	"go-pharmacy-pos/internal/ws"
	"go-pharmacy-pos/pkg/config"
	"go-pharmacy-pos/pkg/database"
	"go-pharmacy-pos/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal("Failed to create upload directory: ", err)
	}

	// 2. Setup database
	db := database.Connect(cfg)
	if err := db.AutoMigrate(
		&model.Role{}, &model.User{},
		&model.Category{}, &model.Product{},
		&model.Receipt{}, &model.ReceiptItem{},
	); err != nil {
		log.Fatal("Failed to migrate database schema: ", err)
	}

	// 3. Seed default roles and admin user
	seedRolesAndAdmin(db)

	// 4. WebSocket hub for live stock updates
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency injection (wiring layers)
	signer := jwt.NewSigner(cfg.JWTSecret, cfg.TokenTTLHours)

	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	receiptRepo := repository.NewReceiptRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	invService := service.NewInventoryService(productRepo, categoryRepo, wsHub)
	posService := service.NewPOSService(receiptRepo, wsHub)
	reportService := service.NewReportService(receiptRepo)
	authService := service.NewAuthService(userRepo, signer)
	userService := service.NewUserService(userRepo, roleRepo)

	productHandler := handler.NewProductHandler(invService, cfg.UploadDir)
	categoryHandler := handler.NewCategoryHandler(invService)
	receiptHandler := handler.NewReceiptHandler(posService)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Pharmacy POS v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
	}))

	// Product images are served straight from disk.
	app.Static("/uploads", cfg.UploadDir)

	// 7. Routes
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	api.Post("/login", authHandler.Login)

	// ============ AUTHENTICATED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(signer, userRepo))

	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Get("/categories", categoryHandler.GetCategories)

	// Any authenticated user rings up sales.
	protected.Get("/receipts", receiptHandler.GetReceipts)
	protected.Get("/receipts/:id", receiptHandler.GetReceipt)
	protected.Post("/receipts", receiptHandler.CreateReceipt)
	protected.Post("/pricing/quote", receiptHandler.Quote)

	protected.Get("/sales-report", reportHandler.SalesReport)
	protected.Get("/reports/inventory", reportHandler.InventoryStats)

	// ============ ADMIN ROUTES ============
	admin := protected.Group("", middleware.RequireRole(model.RoleAdmin))

	admin.Post("/products", productHandler.CreateProduct)
	admin.Put("/products/:id", productHandler.UpdateProduct)
	admin.Delete("/products/:id", productHandler.DeleteProduct)

	admin.Post("/categories", categoryHandler.CreateCategory)
	admin.Put("/categories/:id", categoryHandler.UpdateCategory)
	admin.Delete("/categories/:id", categoryHandler.DeleteCategory)

	admin.Delete("/receipts/:id", receiptHandler.DeleteReceipt)

	admin.Get("/users", userHandler.GetUsers)
	admin.Post("/users", userHandler.CreateUser)
	admin.Delete("/users/:id", userHandler.DeleteUser)

	// WebSocket route
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

	// 8. Graceful shutdown
	go func() {
		if err := app.Listen(cfg.Address()); err != nil {
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

// seedRolesAndAdmin creates the default roles and an initial admin account
// so a fresh install is usable without manual SQL.
func seedRolesAndAdmin(db *gorm.DB) {
	roleRepo := repository.NewRoleRepo(db)
	userRepo := repository.NewUserRepo(db)

	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	if _, err := userRepo.FindByUsername("admin"); err == nil {
		return
	}

	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err != nil {
		log.Printf("Warning: Admin role missing, skipping admin seed: %v", err)
		return
	}

	admin := &model.User{
		Username: "admin",
		RoleID:   &adminRole.ID,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword("admin123"); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Println("Admin user created: admin / admin123 (change this password)")
	}
}
