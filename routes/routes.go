package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rental-backend/controllers"
	"rental-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers onto the API surface.
func SetupRouter(
	bc *controllers.BookingController,
	pc *controllers.PaymentController,
	prc *controllers.PropertyController,
	rc *controllers.RoomController,
	rvc *controllers.ReviewController,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBookingDetails)

			bookings.POST("/:id/payment-proof", bc.SubmitPaymentProof)
			bookings.POST("/:id/confirm", bc.ApproveBooking)
			bookings.POST("/:id/reject", bc.RejectBooking)
			bookings.POST("/:id/cancel", bc.CancelBooking)
			bookings.POST("/:id/complete", bc.CompleteBooking)

			bookings.POST("/:id/payments", pc.CreateTransaction)
			bookings.POST("/:id/review", rvc.CreateReview)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/notification", pc.HandleNotification)
		}

		properties := api.Group("/properties")
		{
			properties.GET("", prc.GetProperties)
			properties.POST("", prc.CreateProperty)
			properties.GET("/:id", prc.GetPropertyByID)
			properties.PUT("/:id", prc.UpdateProperty)
			properties.DELETE("/:id", prc.DeleteProperty)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.POST("", rc.CreateRoom)
			rooms.GET("/:id", rc.GetRoomByID)
			rooms.PUT("/:id", rc.UpdateRoom)
			rooms.PATCH("/:id", rc.UpdateRoom)
			rooms.DELETE("/:id", rc.DeleteRoom)

			rooms.GET("/:id/availability", bc.CheckAvailability)
			rooms.GET("/:id/reviews", rvc.GetRoomReviews)

			rooms.GET("/:id/peak-season-rates", rc.GetPeakSeasonRates)
			rooms.POST("/:id/peak-season-rates", rc.AddPeakSeasonRate)
			rooms.DELETE("/:id/peak-season-rates/:rateId", rc.DeletePeakSeasonRate)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", controllers.GetCategories)
			categories.POST("", controllers.CreateCategory)
			categories.DELETE("/:id", controllers.DeleteCategory)
		}
	}

	return r
}
