package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/clinicshift/clinicshift-api/pkg/auth"
	"github.com/clinicshift/clinicshift-api/pkg/database"
	"github.com/clinicshift/clinicshift-api/pkg/handlers"
	"github.com/clinicshift/clinicshift-api/pkg/logger"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db := database.InitDB()
	if err := auth.EnsureAdminExists(db); err != nil {
		log.Warn("admin bootstrap skipped", zap.Error(err))
	}

	h := &handlers.Handler{DB: db, Log: log}

	r := gin.Default()
	handlers.Register(r, h)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Info("server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		log.Fatal("could not run server", zap.Error(err))
	}
}
