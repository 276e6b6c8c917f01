package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"rental-backend/config"
	"rental-backend/controllers"
	"rental-backend/routes"
	"rental-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Gateway server key is required: without it webhook signatures
	// cannot be verified.
	serverKey := os.Getenv("PAYMENT_SERVER_KEY")
	if serverKey == "" {
		log.Fatal("❌ ERROR: PAYMENT_SERVER_KEY environment variable is not set. Cannot verify gateway notifications.")
	}
	log.Println("✅ PAYMENT_SERVER_KEY detected.")

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Optional event broker
	config.ConnectRabbitMQ()

	// Initialize services
	bookingService := services.NewBookingService(db)
	paymentService := services.NewPaymentService(db, serverKey)
	propertyService := services.NewPropertyService(db)
	roomService := services.NewRoomService(db)
	reviewService := services.NewReviewService(db)

	// Initialize controllers
	bookingController := controllers.NewBookingController(bookingService)
	paymentController := controllers.NewPaymentController(paymentService)
	propertyController := controllers.NewPropertyController(propertyService)
	roomController := controllers.NewRoomController(roomService)
	reviewController := controllers.NewReviewController(reviewService)

	router := routes.SetupRouter(
		bookingController,
		paymentController,
		propertyController,
		roomController,
		reviewController,
	)

	// Background sweep: cancel overdue WAITING_PAYMENT bookings and
	// close out finished stays. The check-on-read guards keep reads
	// correct between ticks.
	sweepDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n, err := bookingService.ExpireOverdue(); err != nil {
					log.Printf("⚠️  expiry sweep failed: %v", err)
				} else if n > 0 {
					log.Printf("expiry sweep cancelled %d overdue booking(s)", n)
				}
				if n, err := bookingService.CompleteElapsed(); err != nil {
					log.Printf("⚠️  completion sweep failed: %v", err)
				} else if n > 0 {
					log.Printf("completion sweep closed %d finished booking(s)", n)
				}
			case <-sweepDone:
				return
			}
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")
	close(sweepDone)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
