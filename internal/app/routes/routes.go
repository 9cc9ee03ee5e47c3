package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fstr/pereval/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	perevalController *controllers.PerevalController,
	healthController *controllers.HealthController,
) {
	pereval := router.Group("/pereval")
	{
		pereval.POST("/submitData", perevalController.SubmitData)
		pereval.GET("/submitData", perevalController.SearchByEmail)
		pereval.GET("/submitData/:id", perevalController.GetByID)
		pereval.PATCH("/submitData/:id", perevalController.Update)
	}

	router.GET("/health", healthController.Check)
}
