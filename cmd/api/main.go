package main

import (
	"log"

	"github.com/joho/godotenv"

	"jobbotron/internal/auth"
	"jobbotron/internal/config"
	"jobbotron/internal/database"
	"jobbotron/internal/handlers"
	"jobbotron/internal/services"
	"jobbotron/internal/store/gormstore"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	// 2. Database Connection
	db, err := database.Connect(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// 3. Initialize Core Services (Dependencies)
	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.TokenTTL,
	})
	if err != nil {
		log.Fatal("Failed to build token service:", err)
	}

	s := gormstore.New(db)
	authService := services.NewAuthService(s, tokens)
	companyService := services.NewCompanyService(s)
	userService := services.NewUserService(s)
	jobService := services.NewJobService(s)

	// 4. Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	userHandler := handlers.NewUserHandler(userService)
	jobHandler := handlers.NewJobHandler(jobService)

	// 5. Setup Router & Routes
	r := handlers.NewRouter(tokens, authHandler, companyHandler, userHandler, jobHandler)

	log.Printf("🚀 Server starting on port %s...", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
