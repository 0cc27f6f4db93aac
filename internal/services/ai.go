package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const studyAssistantPrompt = `You are an engineering study assistant for university students.
You help with Computer Science and IT, Electronics and Communication, Mechanical and Civil engineering, and engineering mathematics.
Explain concepts clearly, solve problems step by step, and point out the underlying principle of each step.
If a question is unrelated to engineering studies, politely say so and steer the student back to their coursework.`

// ChatCompleter produces one assistant reply for a user message in a chat session.
type ChatCompleter interface {
	Complete(ctx context.Context, sessionID, systemPrompt, message string) (string, error)
}

// AIService is the OpenAI ChatCompleter.
type AIService struct {
	client *openai.Client
	model  string
}

func NewAIService(apiKey, model string) *AIService {
	return NewAIServiceWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewAIServiceWithConfig allows a custom base URL, e.g. an OpenAI-compatible gateway.
func NewAIServiceWithConfig(cfg openai.ClientConfig, model string) *AIService {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Complete sends the system prompt and the message and returns the first choice.
// The session id is sent as the end-user tag of the request.
func (s *AIService) Complete(ctx context.Context, sessionID, systemPrompt, message string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: message,
				},
			},
			Temperature: 0.3,
			User:        sessionID,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return content, nil
}
