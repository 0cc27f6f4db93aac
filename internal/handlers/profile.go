package handlers

import (
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/academic-hub-api/internal/constants"
	"github.com/yukikurage/academic-hub-api/internal/dto"
	"github.com/yukikurage/academic-hub-api/internal/services"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	user, err := h.profileService.Get(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func (h *ProfileHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.profileService.Update(c.Request.Context(), actor.ID, services.UpdateProfileInput{
		Name: req.Name,
		Bio:  req.Bio,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.profileService.ChangePassword(c.Request.Context(), actor.ID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// UploadPhoto accepts a multipart "photo" field.
func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	file, fileHeader, ok := formFile(c, "photo", constants.MaxPhotoSize+(1<<20), "A photo is required")
	if !ok {
		return
	}
	defer file.Close()

	user, err := h.profileService.UploadPhoto(c.Request.Context(), actor.ID, services.PhotoInput{
		FileName: fileHeader.Filename,
		FileSize: fileHeader.Size,
		File:     file,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func (h *ProfileHandler) RemovePhoto(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.profileService.RemovePhoto(c.Request.Context(), actor.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo removed"})
}

// GetPhoto serves any user's profile photo.
func (h *ProfileHandler) GetPhoto(c *gin.Context) {
	id, ok := requireID(c)
	if !ok {
		return
	}

	obj, key, err := h.profileService.OpenPhoto(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	defer obj.Body.Close()

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, obj.Size, contentType, obj.Body, nil)
}

func (h *ProfileHandler) Stats(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	stats, err := h.profileService.Stats(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileStatsDTO(stats))
}
