package main

import (
	"log"

	"devcamper/config"
	"devcamper/database"
	"devcamper/middleware"
	authRoutes "devcamper/routers/authRoutes"
	bootcampRoutes "devcamper/routers/bootcampRoutes"
	courseRoutes "devcamper/routers/courseRoutes"
	reviewRoutes "devcamper/routers/reviewRoutes"
	userRoutes "devcamper/routers/userRoutes"
	"devcamper/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files (uploaded photos live under /uploads)
	app.Static("/", "./public")

	api := app.Group("/api/v1")
	authRoutes.SetupAuthRoutes(api)
	bootcampRoutes.SetupBootcampRoutes(api)
	courseRoutes.SetupCourseRoutes(api)
	reviewRoutes.SetupReviewRoutes(api)
	userRoutes.SetupUserRoutes(api)

	janitor := utils.StartResetTokenJanitor()
	defer janitor.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
