package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/api/handler"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/api/middleware"
)

func SetupRouter(
	clientH *handler.ClientHandler,
	carH *handler.CarHandler,
	apptH *handler.AppointmentHandler,
	rl *middleware.RateLimiter,
	logger zerolog.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RateLimit(rl))

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	clients := r.Group("/clients")
	{
		clients.GET("", clientH.GetAllClients)
		clients.POST("", clientH.CreateClient)
		clients.GET("/:id", clientH.GetClientByID)
		clients.PUT("/:id", clientH.UpdateClient)
		clients.DELETE("/:id", clientH.DeleteClientByID)

		clients.GET("/:id/cars", carH.GetCarsByClient)
		clients.POST("/:id/cars", carH.AddCarToClient)
		clients.PUT("/:id/cars/:carId", carH.UpdateCarByID)
		clients.DELETE("/:id/cars/:carId", carH.DeleteCarByID)
	}

	appointments := r.Group("/appointments")
	{
		appointments.GET("", apptH.GetAllAppointments)
		appointments.POST("", apptH.CreateAppointment)
		appointments.GET("/:id", apptH.GetAppointmentByID)
		appointments.DELETE("/:id", apptH.DeleteAppointmentByID)

		appointments.GET("/:id/history", apptH.GetAppointmentHistory)
		appointments.PUT("/:id/history", apptH.UpdateAppointmentHistory)
	}

	return r
}
