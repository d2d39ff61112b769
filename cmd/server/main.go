package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/jobscout-ai/jobscout/internal/logger"
	"github.com/jobscout-ai/jobscout/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	zl, err := logger.New(os.Getenv("LOG_JSON") == "true", os.Getenv("LOG_DEBUG") == "true")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := server.NewServer(zl)
	r := srv.SetupRouter()

	zl.Info("starting server on port " + port)
	if err := r.Run(":" + port); err != nil {
		zl.Fatal(err.Error())
	}
}
