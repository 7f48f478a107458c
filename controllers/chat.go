package controllers

import (
	"net/http"

	"SmartCare360/authorization"
	"SmartCare360/models"
	"SmartCare360/role"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) ChatRoutes(api *gin.RouterGroup) {
	api.POST("/chat/messages", authorization.RequireRoles(role.Patient), ctl.SendChatMessage)
}

func (ctl *Controller) SendChatMessage(c *gin.Context) {
	var in models.ChatMessage
	if err := c.ShouldBindJSON(&in); err != nil {
		ctl.badBody(c)
		return
	}
	reply, err := ctl.Chat.Send(c.Request.Context(), credential(c), in.Message)
	if err != nil {
		ctl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}
