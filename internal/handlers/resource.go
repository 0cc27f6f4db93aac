package handlers

import (
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/academic-hub-api/internal/constants"
	"github.com/yukikurage/academic-hub-api/internal/dto"
	apierrors "github.com/yukikurage/academic-hub-api/internal/errors"
	"github.com/yukikurage/academic-hub-api/internal/middleware"
	"github.com/yukikurage/academic-hub-api/internal/models"
	"github.com/yukikurage/academic-hub-api/internal/services"
	"github.com/yukikurage/academic-hub-api/internal/storage"
	"github.com/yukikurage/academic-hub-api/internal/utils"
)

const pdfContentType = "application/pdf"

// ResourceHandler serves papers, notes and syllabi. The route group sets the resource type.
type ResourceHandler struct {
	resourceService *services.ResourceService
	// maxBodyBytes caps the multipart body; the form fields get 1MB on top of the file limit
	maxBodyBytes int64
}

func NewResourceHandler(resourceService *services.ResourceService) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
		maxBodyBytes:    constants.MaxDocumentSize + (1 << 20),
	}
}

func resourceType(c *gin.Context) (models.ResourceType, bool) {
	t, ok := middleware.GetResourceType(c)
	if !ok {
		apierrors.InternalError(c, "Resource type not configured for route")
	}
	return t, ok
}

// splitTags accepts repeated "tags" fields as well as a comma separated list.
func splitTags(values []string) []string {
	var tags []string
	for _, v := range values {
		tags = append(tags, strings.Split(v, ",")...)
	}
	return tags
}

// List returns a page of resources, newest first.
// Query: branch (exact), q (title or description search), page, limit.
func (h *ResourceHandler) List(c *gin.Context) {
	t, ok := resourceType(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	resources, total, err := h.resourceService.List(c.Request.Context(), services.ListResourcesInput{
		Type:   t,
		Branch: strings.TrimSpace(c.Query("branch")),
		Query:  strings.TrimSpace(c.Query("q")),
		Page:   params,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToResourceListResponse(resources, params, total))
}

func (h *ResourceHandler) Get(c *gin.Context) {
	t, ok := resourceType(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	res, err := h.resourceService.Get(c.Request.Context(), t, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToResourceDTO(*res))
}

// Upload accepts a multipart form: file, title, branch, description, tags, year.
func (h *ResourceHandler) Upload(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	t, ok := resourceType(c)
	if !ok {
		return
	}

	file, fileHeader, ok := formFile(c, "file", h.maxBodyBytes, "A PDF file is required")
	if !ok {
		return
	}
	defer file.Close()

	res, err := h.resourceService.Upload(c.Request.Context(), actor, services.UploadInput{
		Type:        t,
		Title:       c.PostForm("title"),
		Branch:      c.PostForm("branch"),
		Description: c.PostForm("description"),
		Tags:        splitTags(c.PostFormArray("tags")),
		Year:        c.PostForm("year"),
		FileName:    fileHeader.Filename,
		FileSize:    fileHeader.Size,
		File:        file,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToResourceDTO(*res))
}

// Download streams the file as an attachment and records the download.
func (h *ResourceHandler) Download(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	t, ok := resourceType(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	res, obj, err := h.resourceService.Download(c.Request.Context(), actor.ID, t, id)
	if err != nil {
		respondError(c, err)
		return
	}

	streamFile(c, obj, pdfContentType, "attachment", res.Title+".pdf")
}

// View streams the file inline without recording a download.
func (h *ResourceHandler) View(c *gin.Context) {
	t, ok := resourceType(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	res, obj, err := h.resourceService.View(c.Request.Context(), t, id)
	if err != nil {
		respondError(c, err)
		return
	}

	streamFile(c, obj, pdfContentType, "inline", res.Title+".pdf")
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	t, ok := resourceType(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	if err := h.resourceService.Delete(c.Request.Context(), actor, t, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}

// streamFile writes a blob to the response and closes it.
func streamFile(c *gin.Context, obj *storage.Object, contentType, disposition, filename string) {
	defer obj.Body.Close()

	headers := map[string]string{
		"Content-Disposition": mime.FormatMediaType(disposition, map[string]string{"filename": filename}),
	}
	// A negative size omits Content-Length.
	c.DataFromReader(http.StatusOK, obj.Size, contentType, obj.Body, headers)
}
