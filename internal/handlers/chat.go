package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/academic-hub-api/internal/constants"
	"github.com/yukikurage/academic-hub-api/internal/dto"
	"github.com/yukikurage/academic-hub-api/internal/services"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// rememberedSession returns the chat session stored in the cookie session.
func rememberedSession(c *gin.Context) string {
	if id, ok := sessions.Default(c).Get(constants.SessionKeyChatID).(string); ok {
		return id
	}
	return ""
}

// Chat sends a message to the study assistant.
// The session ID comes from the request, then the cookie session, else a new one is generated.
func (h *ChatHandler) Chat(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = rememberedSession(c)
	}

	msg, err := h.chatService.Send(c.Request.Context(), actor.ID, sessionID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyChatID, msg.SessionID)
	if err := session.Save(); err != nil {
		_ = c.Error(err)
	}

	c.JSON(http.StatusOK, dto.ToChatResponse(msg))
}

// History lists the caller's messages in a session.
func (h *ChatHandler) History(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	sessionID := strings.TrimSpace(c.Query("session_id"))
	if sessionID == "" {
		sessionID = rememberedSession(c)
	}

	messages, err := h.chatService.History(c.Request.Context(), actor.ID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}
