package controllers

import (
	"net/http"

	"github.com/regedner/Research-Group-Portfolio/services"

	"github.com/gin-gonic/gin"
)

// GET /api/openalex/work-types
func GetWorkTypes(c *gin.Context) {
	svc := services.NewOpenAlexService(nil)
	c.JSON(http.StatusOK, svc.WorkTypes(c.Request.Context()))
}
