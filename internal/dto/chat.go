package dto

import (
	"time"

	"github.com/yukikurage/academic-hub-api/internal/models"
)

// ChatRequest is the body of POST /ai/chat
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionId"`
}

// ChatResponse is the assistant's answer
type ChatResponse struct {
	Response  string    `json:"response"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}

func ToChatResponse(msg *models.ChatMessage) ChatResponse {
	return ChatResponse{
		Response:  msg.Response,
		SessionID: msg.SessionID,
		Timestamp: msg.CreatedAt,
	}
}
