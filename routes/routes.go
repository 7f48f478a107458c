package routes

import (
	"SmartCare360/audit"
	"SmartCare360/authorization"
	"SmartCare360/controllers"

	"github.com/gin-gonic/gin"
)

func Routes(r *gin.Engine, ctl *controllers.Controller) {
	if ctl.Metrics != nil {
		r.Use(ctl.Metrics.GinMiddleware())
		r.GET("/metrics", gin.WrapH(ctl.Metrics.Handler()))
	}
	r.Use(ctl.Log.GinMiddleware(), audit.ClientIPMiddleware())

	api := r.Group("/api")

	//public
	api.GET("/health", controllers.Health)
	ctl.AuthRoutes(api,
		authorization.JWTAuth(ctl.Auth, ctl.Log),
		authorization.OptionalAuth(ctl.Auth),
	)

	//privateroutes
	private := api.Group("")
	private.Use(authorization.JWTAuth(ctl.Auth, ctl.Log))
	ctl.AppointmentRoutes(private)
	ctl.PrescriptionRoutes(private)
	ctl.UserRoutes(private)
	ctl.ChatRoutes(private)
	ctl.StatsRoutes(private)
}
