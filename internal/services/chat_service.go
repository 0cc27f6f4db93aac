package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/academic-hub-api/internal/logger"
	"github.com/yukikurage/academic-hub-api/internal/metrics"
	"github.com/yukikurage/academic-hub-api/internal/models"
	"github.com/yukikurage/academic-hub-api/internal/repository"
	"github.com/yukikurage/academic-hub-api/internal/utils"
)

// ChatService proxies study questions to the assistant and keeps the history.
type ChatService struct {
	chatRepo  repository.ChatRepository
	completer ChatCompleter
	log       *logger.Logger
	timeout   time.Duration
}

// NewChatService creates a ChatService. A nil completer disables the assistant.
func NewChatService(chatRepo repository.ChatRepository, completer ChatCompleter, log *logger.Logger) *ChatService {
	return &ChatService{
		chatRepo:  chatRepo,
		completer: completer,
		log:       log,
		timeout:   60 * time.Second,
	}
}

// NewSessionID returns "user_<id>_<8 hex chars>".
func NewSessionID(userID uint64) (string, error) {
	suffix, err := utils.RandomHex(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("user_%d_%s", userID, suffix), nil
}

// Send asks the assistant and stores the exchange. Nothing is stored when the assistant fails.
func (s *ChatService) Send(ctx context.Context, userID uint64, sessionID, message string) (*models.ChatMessage, error) {
	if s.completer == nil {
		return nil, ErrAIServiceNotConfigured
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrMessageRequired
	}

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		var err error
		if sessionID, err = NewSessionID(userID); err != nil {
			return nil, err
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.completer.Complete(callCtx, sessionID, studyAssistantPrompt, message)
	if err != nil {
		metrics.ChatRequestsTotal.WithLabelValues("error").Inc()
		s.log.Error("chat assistant request failed", "user_id", userID, "session_id", sessionID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrChatUpstream, err)
	}
	metrics.ChatRequestsTotal.WithLabelValues("ok").Inc()

	msg := &models.ChatMessage{
		UserID:    userID,
		SessionID: sessionID,
		Message:   message,
		Response:  response,
	}
	if err := s.chatRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to save chat message: %w", err)
	}
	return msg, nil
}

// History lists the caller's messages in a session.
func (s *ChatService) History(ctx context.Context, userID uint64, sessionID string) ([]models.ChatMessage, error) {
	messages, err := s.chatRepo.ListBySession(ctx, userID, strings.TrimSpace(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	return messages, nil
}
