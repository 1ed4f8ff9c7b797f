package routes

import (
	"net/http"

	"hpquiz/handlers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, formHandler *handlers.FormHandler) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the HP Quiz API"})
	})

	forms := router.Group("/forms")
	{
		forms.GET("/get", formHandler.GetForm)
		forms.POST("/create", formHandler.CreateForm)
		forms.POST("/create/question", formHandler.CreateQuestions)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
