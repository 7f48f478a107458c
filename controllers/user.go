package controllers

import (
	"net/http"

	"SmartCare360/authorization"
	"SmartCare360/role"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) UserRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		users.GET("", authorization.RequireRoles(role.Admin), ctl.ListUsers)
		users.GET("/doctors", ctl.ListDoctors)
		users.GET("/patients", authorization.RequireRoles(role.Doctor), ctl.ListPatients)
		users.DELETE("/:id", authorization.RequireRoles(role.Admin), ctl.DeleteUser)
	}
}

func (ctl *Controller) ListUsers(c *gin.Context) {
	users, err := ctl.Users.ListUsers(c.Request.Context(), credential(c))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ctl *Controller) ListDoctors(c *gin.Context) {
	doctors, err := ctl.Users.ListDoctors(c.Request.Context())
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (ctl *Controller) ListPatients(c *gin.Context) {
	patients, err := ctl.Users.ListPatients(c.Request.Context(), credential(c))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (ctl *Controller) DeleteUser(c *gin.Context) {
	if err := ctl.Users.DeleteUser(c.Request.Context(), credential(c), c.Param("id")); err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
