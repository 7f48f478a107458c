package controllers

import (
	"net/http"

	"SmartCare360/authorization"
	"SmartCare360/models"
	"SmartCare360/role"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) PrescriptionRoutes(api *gin.RouterGroup) {
	prescriptions := api.Group("/prescriptions")
	{
		prescriptions.GET("", ctl.ListPrescriptions)
		prescriptions.POST("", authorization.RequireRoles(role.Doctor), ctl.CreatePrescription)
	}
}

func (ctl *Controller) ListPrescriptions(c *gin.Context) {
	list, err := ctl.Prescriptions.List(c.Request.Context(), credential(c))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

/*
* Any doctorId in the body is ignored
* The author is always the calling doctor
 */
func (ctl *Controller) CreatePrescription(c *gin.Context) {
	var in models.NewPrescription
	if err := c.ShouldBindJSON(&in); err != nil {
		ctl.badBody(c)
		return
	}
	id, err := ctl.Prescriptions.Create(c.Request.Context(), credential(c), in)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Prescription created successfully", "prescriptionId": id})
}
