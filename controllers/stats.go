package controllers

import (
	"net/http"
	"time"

	"SmartCare360/authorization"
	"SmartCare360/role"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) StatsRoutes(api *gin.RouterGroup) {
	api.GET("/stats", authorization.RequireRoles(role.Admin), ctl.GetStats)
}

func (ctl *Controller) GetStats(c *gin.Context) {
	stats, err := ctl.Stats.Stats(c.Request.Context(), credential(c))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
