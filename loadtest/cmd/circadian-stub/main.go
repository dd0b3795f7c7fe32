package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-jetlag/loadtest/internal/stub"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	stub.NewHandler(stub.NewStorage()).Register(r)

	slog.Info("starting circadian stub", slog.String("port", port))
	if err := r.Run(":" + port); err != nil {
		slog.Error("circadian stub exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
