package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/config"
	"github.com/yeremiapane/reservation-app/controllers"
	"github.com/yeremiapane/reservation-app/middlewares"
)

func SetupRouter(db *gorm.DB, cfg config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 10).RateLimit())

	reservationCtrl := controllers.NewReservationController(db)
	reportCtrl := controllers.NewReportController(db, cfg.ReportDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	reservations := r.Group("/reservations")
	{
		reservations.GET("", reservationCtrl.GetAllReservations)
		reservations.POST("", reservationCtrl.CreateReservation)
		reservations.GET("/:reservation_id/edit", reservationCtrl.GetReservationForEdit)
		reservations.PATCH("/:reservation_id", reservationCtrl.UpdateReservation)
		reservations.PUT("/:reservation_id", reservationCtrl.EditReservation)
		reservations.DELETE("/:reservation_id", reservationCtrl.DeleteReservation)
	}

	r.GET("/reports/:kind", reportCtrl.DownloadReport)

	return r
}
