package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/academic-hub-api/internal/dto"
	apierrors "github.com/yukikurage/academic-hub-api/internal/errors"
	"github.com/yukikurage/academic-hub-api/internal/middleware"
	"github.com/yukikurage/academic-hub-api/internal/models"
	"github.com/yukikurage/academic-hub-api/internal/services"
)

type BookmarkHandler struct {
	bookmarkService *services.BookmarkService
}

func NewBookmarkHandler(bookmarkService *services.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkService: bookmarkService,
	}
}

func (h *BookmarkHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	views, err := h.bookmarkService.List(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookmarkDTOs(views))
}

func (h *BookmarkHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateBookmarkRequest
	if !bindJSON(c, &req) {
		return
	}
	t, ok := models.ParseResourceType(req.ResourceType)
	if !ok {
		apierrors.BadRequest(c, "Invalid resource type")
		return
	}

	view, err := h.bookmarkService.Create(c.Request.Context(), actor.ID, services.CreateBookmarkInput{
		ResourceType: t,
		ResourceID:   req.ResourceID,
		Category:     req.Category,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBookmarkDTO(*view))
}

// target reads the :resource_type and :resource_id parameters.
func (h *BookmarkHandler) target(c *gin.Context) (uint64, models.ResourceType, uint64, bool) {
	actor, ok := requireActor(c)
	if !ok {
		return 0, "", 0, false
	}
	t, ok := middleware.GetResourceType(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid resource type")
		return 0, "", 0, false
	}
	id, ok := requireID(c)
	if !ok {
		return 0, "", 0, false
	}
	return actor.ID, t, id, true
}

func (h *BookmarkHandler) Remove(c *gin.Context) {
	userID, t, id, ok := h.target(c)
	if !ok {
		return
	}

	if err := h.bookmarkService.Remove(c.Request.Context(), userID, t, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bookmark removed"})
}

func (h *BookmarkHandler) Check(c *gin.Context) {
	userID, t, id, ok := h.target(c)
	if !ok {
		return
	}

	bookmarked, err := h.bookmarkService.IsBookmarked(c.Request.Context(), userID, t, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BookmarkCheckResponse{Bookmarked: bookmarked})
}
