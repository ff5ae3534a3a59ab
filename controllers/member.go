package controllers

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/regedner/Research-Group-Portfolio/models"
	"github.com/regedner/Research-Group-Portfolio/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxPhotoSize = 5 * 1024 * 1024

// UploadDir returns the directory member photos are written to.
func UploadDir() string {
	dir := os.Getenv("UPLOAD_PATH")
	if dir == "" {
		dir = "./uploads"
	}
	return dir
}

// GET /api/members?page=&size=&sort=
func GetMembers(c *gin.Context) {
	page := parseIntOrDefault(c.Query("page"), 0)
	size := parseIntOrDefault(c.Query("size"), 10)
	sort := c.DefaultQuery("sort", "id")

	svc := services.NewMemberService(nil)
	members, total, err := svc.List(page, size, sort)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageResponse(members, total, page, size))
}

// GET /api/members/:id
func GetMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewMemberService(nil)
	member, err := svc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// POST /api/members
func CreateMember(c *gin.Context) {
	var member models.Member
	if err := c.ShouldBindJSON(&member); err != nil {
		respondError(c, http.StatusBadRequest, "invalid member payload: "+err.Error())
		return
	}
	member.ID = 0

	svc := services.NewMemberService(nil)
	if err := svc.Save(&member); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// PUT /api/members/:id
func UpdateMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input models.Member
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid member payload: "+err.Error())
		return
	}

	svc := services.NewMemberService(nil)
	member, err := svc.Update(id, &input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// DELETE /api/members/:id
func DeleteMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewMemberService(nil)
	if err := svc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/members/:id/upload-photo
func UploadMemberPhoto(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "no file uploaded")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		respondError(c, http.StatusBadRequest, "invalid file type, only JPEG/PNG allowed")
		return
	}
	if file.Size > maxPhotoSize {
		respondError(c, http.StatusBadRequest, "file size exceeds 5MB limit")
		return
	}

	fileName := uuid.New().String() + "_" + filepath.Base(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(UploadDir(), fileName)); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to store uploaded file")
		return
	}

	svc := services.NewMemberService(nil)
	member, err := svc.UpdatePhoto(id, fileName)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// POST /api/members/fetch?sourceId=&providerType=
func FetchMember(c *gin.Context) {
	sourceID := strings.TrimSpace(c.Query("sourceId"))
	if sourceID == "" {
		respondError(c, http.StatusBadRequest, "sourceId is required")
		return
	}
	providerType := c.DefaultQuery("providerType", "openalex")

	// Deliberately not the request context: an aborted request should not
	// kill an ingestion that is already writing rows.
	svc := services.NewIngestService(nil, nil)
	member, err := svc.FetchAndSave(context.Background(), sourceID, providerType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// GET /api/members/:id/publications?page=&size=&sort=&types=&tags=
func GetMemberPublications(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	page := parseIntOrDefault(c.Query("page"), 0)
	size := parseIntOrDefault(c.Query("size"), 10)
	sort := c.DefaultQuery("sort", "id")
	types := c.QueryArray("types")
	tags := c.QueryArray("tags")

	svc := services.NewPublicationService(nil)
	publications, total, err := svc.ListByMember(id, page, size, sort, types, tags)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageResponse(publications, total, page, size))
}

// GET /api/members/:id/publication-metadata
func GetMemberPublicationMetadata(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewPublicationService(nil)
	tags, types, err := svc.Metadata(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags, "types": types})
}

// POST /api/members/:id/publications
func AddMemberPublication(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var publication models.Publication
	if err := c.ShouldBindJSON(&publication); err != nil {
		respondError(c, http.StatusBadRequest, "invalid publication payload: "+err.Error())
		return
	}

	svc := services.NewPublicationService(nil)
	saved, err := svc.Add(id, &publication)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// GET /api/members/:id/counts-by-year
func GetMemberCountsByYear(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewMemberService(nil)
	counts, err := svc.CountsByYear(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// GET /api/members/:id/conferences
func GetMemberConferences(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewConferenceService(nil)
	conferences, err := svc.ListByMember(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conferences)
}

// POST /api/members/:id/conferences
func AddMemberConference(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var conference models.Conference
	if err := c.ShouldBindJSON(&conference); err != nil {
		respondError(c, http.StatusBadRequest, "invalid conference payload: "+err.Error())
		return
	}

	svc := services.NewConferenceService(nil)
	saved, err := svc.Add(id, &conference)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}
