package controllers

import (
	"net/http"
	"strconv"

	"github.com/regedner/Research-Group-Portfolio/models"
	"github.com/regedner/Research-Group-Portfolio/services"

	"github.com/gin-gonic/gin"
)

// GET /api/conferences?year=2024
func GetConferences(c *gin.Context) {
	var year *int
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid year parameter")
			return
		}
		year = &parsed
	}

	svc := services.NewConferenceService(nil)
	conferences, err := svc.ListAll(year)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conferences)
}

// GET /api/conferences/:id
func GetConference(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewConferenceService(nil)
	conference, err := svc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conference)
}

// PUT /api/conferences/:id
func UpdateConference(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload models.Conference
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "invalid conference payload: "+err.Error())
		return
	}

	svc := services.NewConferenceService(nil)
	conference, err := svc.Update(id, &payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conference)
}

// DELETE /api/conferences/:id
func DeleteConference(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewConferenceService(nil)
	if err := svc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
