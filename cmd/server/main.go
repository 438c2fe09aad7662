package main

import (
	"time"

	"materials-billing-backend/internal/config"
	"materials-billing-backend/internal/logger"
	"materials-billing-backend/internal/models"
	"materials-billing-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, relying on system env")
	}
	logger.Setup()

	db, err := config.InitDB()
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	err = db.AutoMigrate(
		&models.Customer{},
		&models.Vehicle{},
		&models.Item{},
		&models.Invoice{},
		&models.InvoiceLine{},
		&models.Waybill{},
		&models.Settings{},
		&models.User{},
		&models.MessageLog{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("auto-migration failed")
	}

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db)

	addr := config.ServerAddr()
	log.Info().Str("addr", addr).Msg("starting server")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
