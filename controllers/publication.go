package controllers

import (
	"net/http"
	"strings"

	"github.com/regedner/Research-Group-Portfolio/services"

	"github.com/gin-gonic/gin"
)

// PUT /api/publications/:id/tags  body: ["tag", ...]
func UpdatePublicationTags(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var tags []string
	if err := c.ShouldBindJSON(&tags); err != nil {
		respondError(c, http.StatusBadRequest, "invalid tags payload: "+err.Error())
		return
	}

	svc := services.NewPublicationService(nil)
	publication, err := svc.UpdateTags(id, tags)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, publication)
}

// PUT /api/publications/:id/type  body: {"type": "article"}
func UpdatePublicationType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload struct {
		Type *string `json:"type"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "invalid type payload: "+err.Error())
		return
	}
	if payload.Type == nil || strings.TrimSpace(*payload.Type) == "" {
		respondError(c, http.StatusBadRequest, "payload must contain 'type' field")
		return
	}

	svc := services.NewPublicationService(nil)
	publication, err := svc.UpdateType(id, *payload.Type)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, publication)
}
