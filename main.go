package main

import (
	"log"
	"time"

	"github.com/phungle2508/antoree-backend/bus"
	"github.com/phungle2508/antoree-backend/catalog"
	"github.com/phungle2508/antoree-backend/config"
	"github.com/phungle2508/antoree-backend/dashboard"
	"github.com/phungle2508/antoree-backend/database"
	"github.com/phungle2508/antoree-backend/middleware"
	"github.com/phungle2508/antoree-backend/recommend"
	cartRoutes "github.com/phungle2508/antoree-backend/routers/cartRoutes"
	catalogRoutes "github.com/phungle2508/antoree-backend/routers/catalogRoutes"
	recommendRoutes "github.com/phungle2508/antoree-backend/routers/recommendRoutes"
	userRoutes "github.com/phungle2508/antoree-backend/routers/userRoutes"
	wishlistRoutes "github.com/phungle2508/antoree-backend/routers/wishlistRoutes"
	"github.com/phungle2508/antoree-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	catalog.LoadCatalog()
	database.ConnectDb()
	bus.InitBus()

	ttl := time.Duration(config.AppConfig.CookieTTLDays) * 24 * time.Hour
	recommend.Init(
		config.AppConfig.AIServiceURL,
		time.Duration(config.AppConfig.AITimeoutSeconds)*time.Second,
		config.AppConfig.RecommendTopK,
		catalog.Courses,
	)
	dashboard.Init(
		database.Database.Db,
		bus.Broker,
		catalog.Courses,
		recommend.DefaultDeriver,
		time.Duration(config.AppConfig.PollIntervalMs)*time.Millisecond,
		ttl,
	)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",       // Allowed HTTP methods
		AllowHeaders: "Content-Type,X-Session-Id", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Use(middleware.SessionMiddleware)

	catalogRoutes.SetupCatalogRoutes(app)
	cartRoutes.SetupCartRoutes(app)
	wishlistRoutes.SetupWishlistRoutes(app)
	userRoutes.SetupUserRoutes(app)
	recommendRoutes.SetupRecommendRoutes(app)

	scheduler := utils.StartCleanupScheduler()
	defer scheduler.Stop()
	defer dashboard.DefaultManager.Close()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
