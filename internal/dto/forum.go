package dto

import (
	"time"

	"github.com/yukikurage/academic-hub-api/internal/models"
	"github.com/yukikurage/academic-hub-api/internal/utils"
)

// CreatePostRequest is the body of POST /forum/posts
type CreatePostRequest struct {
	Title    string   `json:"title" binding:"required,max=255"`
	Content  string   `json:"content" binding:"required"`
	Category string   `json:"category" binding:"required,max=100"`
	Tags     []string `json:"tags"`
}

// UpdatePostRequest is the body of PUT /forum/posts/:id
type UpdatePostRequest struct {
	Title    *string   `json:"title" binding:"omitempty,max=255"`
	Content  *string   `json:"content"`
	Category *string   `json:"category" binding:"omitempty,max=100"`
	Tags     *[]string `json:"tags"`
}

// CreateReplyRequest is the body of POST /forum/posts/:id/replies
type CreateReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// PostDTO represents a forum post in API responses
type PostDTO struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Category     string    `json:"category"`
	Tags         []string  `json:"tags"`
	Author       AuthorDTO `json:"author"`
	Views        int64     `json:"views"`
	RepliesCount int64     `json:"replies_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastActivity time.Time `json:"last_activity"`
}

// ReplyDTO represents a forum reply in API responses
type ReplyDTO struct {
	ID        uint64    `json:"id"`
	PostID    uint64    `json:"post_id"`
	Content   string    `json:"content"`
	Author    AuthorDTO `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// PostListResponse represents a page of posts
type PostListResponse struct {
	Posts      []PostDTO                `json:"posts"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

func ToPostDTO(post models.ForumPost) PostDTO {
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}
	return PostDTO{
		ID:           post.ID,
		Title:        post.Title,
		Content:      post.Content,
		Category:     post.Category,
		Tags:         tags,
		Author:       ToAuthorDTO(post.Author),
		Views:        post.Views,
		RepliesCount: post.ReplyCount,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
		LastActivity: post.LastActivity,
	}
}

func ToReplyDTO(reply models.ForumReply) ReplyDTO {
	return ReplyDTO{
		ID:        reply.ID,
		PostID:    reply.PostID,
		Content:   reply.Content,
		Author:    ToAuthorDTO(reply.Author),
		CreatedAt: reply.CreatedAt,
	}
}

func ToReplyDTOs(replies []models.ForumReply) []ReplyDTO {
	out := make([]ReplyDTO, len(replies))
	for i, reply := range replies {
		out[i] = ToReplyDTO(reply)
	}
	return out
}

// ToPostListResponse converts a page of posts
func ToPostListResponse(posts []models.ForumPost, params utils.PaginationParams, total int64) PostListResponse {
	items := make([]PostDTO, len(posts))
	for i, post := range posts {
		items[i] = ToPostDTO(post)
	}
	return PostListResponse{
		Posts: items,
		Pagination: utils.NewPaginationResponse(params, total),
	}
}
