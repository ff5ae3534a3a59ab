package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/regedner/Research-Group-Portfolio/providers"
	"github.com/regedner/Research-Group-Portfolio/services"

	"github.com/gin-gonic/gin"
)

// respondError writes the JSON error body shared by every endpoint.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"status":    status,
		"error":     http.StatusText(status),
		"message":   message,
		"path":      c.Request.URL.Path,
	})
}

// respondServiceError maps service errors onto the HTTP taxonomy: missing
// entities are 404, bad input and conflicts are 400, everything else is 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrPublicationNotFound),
		errors.Is(err, services.ErrConferenceNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrDuplicateIdentifierURL),
		errors.Is(err, providers.ErrUnknownProvider):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}

// pageResponse mirrors the page shape pagination clients expect.
func pageResponse(content interface{}, total int64, page, size int) gin.H {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return gin.H{
		"content":       content,
		"totalElements": total,
		"totalPages":    totalPages,
		"number":        page,
		"size":          size,
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id64), true
}

func parseIntOrDefault(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
