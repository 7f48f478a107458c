package controllers

import (
	"net/http"

	"SmartCare360/authorization"
	"SmartCare360/models"
	"SmartCare360/role"
	"SmartCare360/services"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) AuthRoutes(api *gin.RouterGroup, required, optional gin.HandlerFunc) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", ctl.Login)
		auth.POST("/logout", optional, ctl.Logout)
		auth.GET("/me", required, ctl.Me)
		auth.POST("/register", optional, ctl.Register)
	}
}

func (ctl *Controller) setSessionCookie(c *gin.Context, token string, maxAge int) {
	if ctl.SecureCookie {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(authorization.CookieName, token, maxAge, "/", "", ctl.SecureCookie, true)
}

/*
* Bind the login fields and pass to the service
* The token goes back in the body and as an http-only cookie
 */
func (ctl *Controller) Login(c *gin.Context) {
	var in models.Login
	if err := c.ShouldBindJSON(&in); err != nil {
		ctl.badBody(c)
		return
	}
	res, err := ctl.Auth.Login(c.Request.Context(), in)
	if ctl.Metrics != nil {
		label := "unknown"
		if r, perr := role.Parse(in.Role); perr == nil {
			label = r.String()
		}
		ctl.Metrics.RecordAuthAttempt(label, err == nil)
	}
	if err != nil {
		ctl.fail(c, err)
		return
	}
	ctl.setSessionCookie(c, res.Token, int(services.TokenTTL.Seconds()))
	c.JSON(http.StatusOK, res)
}

func (ctl *Controller) Logout(c *gin.Context) {
	ctl.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (ctl *Controller) Me(c *gin.Context) {
	user, err := ctl.Auth.Profile(c.Request.Context(), credential(c))
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

/*
* Register runs behind OptionalAuth
* The service decides between admin creation and self registration
 */
func (ctl *Controller) Register(c *gin.Context) {
	var in models.Registration
	if err := c.ShouldBindJSON(&in); err != nil {
		ctl.badBody(c)
		return
	}
	var caller *models.Credential
	if cred, ok := authorization.CredentialFrom(c); ok {
		caller = &cred
	}
	id, err := ctl.Auth.Register(c.Request.Context(), caller, in)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "id": id})
}
