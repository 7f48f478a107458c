package controllers

import (
	"net/http"

	"SmartCare360/authorization"
	"SmartCare360/models"
	"SmartCare360/role"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) AppointmentRoutes(api *gin.RouterGroup) {
	appointments := api.Group("/appointments")
	{
		appointments.GET("", ctl.ListAppointments)
		appointments.POST("", ctl.CreateAppointment)
		appointments.PATCH("/:id/status", authorization.RequireRoles(role.Doctor, role.Admin), ctl.UpdateAppointmentStatus)
	}
}

func (ctl *Controller) ListAppointments(c *gin.Context) {
	list, err := ctl.Appointments.List(c.Request.Context(), credential(c))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

/*
* Bind the appointment fields and pass to the service
* Patients always book for themselves
 */
func (ctl *Controller) CreateAppointment(c *gin.Context) {
	var in models.NewAppointment
	if err := c.ShouldBindJSON(&in); err != nil {
		ctl.badBody(c)
		return
	}
	id, err := ctl.Appointments.Create(c.Request.Context(), credential(c), in)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Appointment created successfully", "appointmentId": id})
}

func (ctl *Controller) UpdateAppointmentStatus(c *gin.Context) {
	var in models.StatusChange
	if err := c.ShouldBindJSON(&in); err != nil {
		ctl.badBody(c)
		return
	}
	if err := ctl.Appointments.SetStatus(c.Request.Context(), credential(c), c.Param("id"), in.Status); err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment status updated successfully"})
}
