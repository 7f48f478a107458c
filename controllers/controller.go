package controllers

import (
	"net/http"

	"SmartCare360/apperrors"
	"SmartCare360/authorization"
	"SmartCare360/logger"
	"SmartCare360/metrics"
	"SmartCare360/models"
	"SmartCare360/services"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Auth          *services.AuthService
	Appointments  *services.AppointmentService
	Prescriptions *services.PrescriptionService
	Users         *services.UserService
	Stats         *services.StatsService
	Chat          *services.ChatService
	Metrics       *metrics.Collector
	Log           *logger.Logger
	// SecureCookie marks the session cookie Secure with SameSite=None.
	SecureCookie  bool
}

// Controller holds the HTTP handlers. Each handler binds the request, calls
// one service operation and writes either the result or {"error": message}.
type Controller struct {
	Deps
}

func New(d Deps) *Controller {
	return &Controller{Deps: d}
}

/*
* fail writes the error response for err
* Internal causes are logged here and never sent to the client
 */
func (ctl *Controller) fail(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		ctl.Log.WithComponent("http").WithError(err).WithField("path", c.FullPath()).Error("Request failed")
	}
	c.JSON(status, gin.H{"error": apperrors.Message(err)})
}

func (ctl *Controller) badBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}

// credential is only called behind JWTAuth, which guarantees it is set.
func credential(c *gin.Context) models.Credential {
	cred, _ := authorization.CredentialFrom(c)
	return cred
}
