package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"kodask_bank/internal/llm"
	"kodask_bank/internal/model"
)

var (
	ErrEmptyConversation = errors.New("messages are required")
	ErrUpstreamFailure   = errors.New("failed to fetch AI response")
)

// systemPrompt sets the assistant persona on every request.
const systemPrompt = "You are Kodask AI, a premium banking assistant for Kodnest. " +
	"You provide helpful, polite, and professional banking-related information. " +
	"Your tone is sophisticated and trustworthy. Format your responses using markdown where appropriate."

// ChatService proxies conversations to the chat-completion provider. It holds
// no conversation state; the client resends the full history on every call.
type ChatService interface {
	Chat(ctx context.Context, messages []model.ChatMessage) (model.ChatMessage, error)
}

type chatService struct {
	completer llm.Completer
}

// NewChatService creates a new ChatService
func NewChatService(completer llm.Completer) ChatService {
	return &chatService{completer: completer}
}

// Chat prepends the system prompt to the supplied history and returns the
// provider's reply. Provider-side failures are logged in detail and surfaced
// as a generic upstream error.
func (s *chatService) Chat(ctx context.Context, messages []model.ChatMessage) (model.ChatMessage, error) {
	if len(messages) == 0 {
		return model.ChatMessage{}, ErrEmptyConversation
	}

	conversation := make([]model.ChatMessage, 0, len(messages)+1)
	conversation = append(conversation, model.ChatMessage{Role: model.ChatRoleSystem, Content: systemPrompt})
	conversation = append(conversation, messages...)

	reply, err := s.completer.Complete(ctx, conversation)
	if err != nil {
		log.Printf("AI route error: %v", err)
		return model.ChatMessage{}, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}

	return reply, nil
}
