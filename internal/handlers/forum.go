package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/academic-hub-api/internal/dto"
	"github.com/yukikurage/academic-hub-api/internal/services"
	"github.com/yukikurage/academic-hub-api/internal/utils"
)

type ForumHandler struct {
	forumService *services.ForumService
}

func NewForumHandler(forumService *services.ForumService) *ForumHandler {
	return &ForumHandler{
		forumService: forumService,
	}
}

// ListPosts returns posts ordered by most recent activity, optionally filtered by category.
func (h *ForumHandler) ListPosts(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	posts, total, err := h.forumService.ListPosts(c.Request.Context(), strings.TrimSpace(c.Query("category")), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostListResponse(posts, params, total))
}

// GetPost returns a post and counts the view.
func (h *ForumHandler) GetPost(c *gin.Context) {
	id, ok := requireID(c)
	if !ok {
		return
	}

	post, err := h.forumService.GetPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostDTO(*post))
}

func (h *ForumHandler) CreatePost(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.forumService.CreatePost(c.Request.Context(), actor, services.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostDTO(*post))
}

func (h *ForumHandler) UpdatePost(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.forumService.UpdatePost(c.Request.Context(), actor, id, services.UpdatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Tags:     req.Tags,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostDTO(*post))
}

// DeletePost removes a post together with its replies.
func (h *ForumHandler) DeletePost(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	if err := h.forumService.DeletePost(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *ForumHandler) ListReplies(c *gin.Context) {
	id, ok := requireID(c)
	if !ok {
		return
	}

	replies, err := h.forumService.ListReplies(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReplyDTOs(replies))
}

func (h *ForumHandler) CreateReply(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	var req dto.CreateReplyRequest
	if !bindJSON(c, &req) {
		return
	}

	reply, err := h.forumService.CreateReply(c.Request.Context(), actor, id, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReplyDTO(*reply))
}

func (h *ForumHandler) DeleteReply(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	if err := h.forumService.DeleteReply(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reply deleted"})
}
