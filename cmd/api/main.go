package main

import (
	"log"
	"os"

	"github.com/regedner/Research-Group-Portfolio/config"
	"github.com/regedner/Research-Group-Portfolio/controllers"
	"github.com/regedner/Research-Group-Portfolio/middleware"
	"github.com/regedner/Research-Group-Portfolio/models"
	"github.com/regedner/Research-Group-Portfolio/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	// Initialize database
	config.InitDB()

	// Keep the schema in sync with the models
	if err := config.DB.AutoMigrate(
		&models.Member{},
		&models.Publication{},
		&models.PublicationTag{},
		&models.Conference{},
	); err != nil {
		log.Fatal("Failed to migrate database schema:", err)
	}

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add logging middleware
	router.Use(gin.Logger())

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add CORS middleware
	router.Use(middleware.CORSMiddleware())

	// Setup routes
	routes.SetupRoutes(router)

	// Create upload directory if not exists and serve member photos from it
	uploadPath := controllers.UploadDir()
	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		log.Printf("Warning: Failed to create upload directory: %v", err)
	}
	router.Static("/uploads", uploadPath)

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if ginMode == "release" {
		log.Printf("Running in production mode")
	} else {
		log.Printf("Running in development mode")
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
