package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/thinkstack/broker"
	"github.com/thinkstack/config"
	"github.com/thinkstack/database"
	"github.com/thinkstack/middleware"
	"github.com/thinkstack/routes"
	"github.com/thinkstack/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Lifecycle events are best-effort: the API keeps working without NATS.
	producer, err := broker.NewProducer(cfg.NatsURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to NATS: %v", err)
		log.Println("The application will continue, but note lifecycle events will not be published")
		producer = nil
	} else {
		defer producer.Close()
	}

	noteService := services.NewNoteService(producer)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	router.Use(middleware.RequestIDMiddleware())

	routes.RegisterHealthRoutes(router)
	routes.RegisterNoteRoutes(router, db, noteService)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		producer.Close()
		db.Close()
		os.Exit(0)
	}()

	log.Printf("API server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
