package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/greenchain/backend/internal/config"
	"github.com/greenchain/backend/internal/model/copilot"
)

const historyLimit = 10

// Service answers open Copilot questions with an Ark chat model.
type Service struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds the chat model from cfg and compiles the prompt chain.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewServiceWithModel(ctx, chatModel)
}

// NewServiceWithModel compiles the prompt chain around an existing chat model.
func NewServiceWithModel(ctx context.Context, chatModel model.ChatModel) (*Service, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{chain: runnable}, nil
}

// Generate implements the Copilot fallback generator.
// The transcript already ends with the pending question, so that turn is
// dropped from history and sent once as the query.
func (s *Service) Generate(ctx context.Context, history []copilot.Message, input string) (string, error) {
	if n := len(history); n > 0 && history[n-1].Role == copilot.RoleUser && history[n-1].Content == input {
		history = history[:n-1]
	}

	response, err := s.chain.Invoke(ctx, map[string]any{
		"system":  systemPrompt,
		"history": buildHistoryMessages(history),
		"query":   input,
	})
	if err != nil {
		return "", fmt.Errorf("failed to run AI chain: %w", err)
	}
	if response == nil {
		return "", fmt.Errorf("AI chain returned no message")
	}

	log.Printf("[ai] generated copilot answer, length=%d", len(response.Content))
	return response.Content, nil
}

func buildHistoryMessages(messages []copilot.Message) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	startIdx := 0
	if len(messages) > historyLimit {
		startIdx = len(messages) - historyLimit
	}

	history := make([]*schema.Message, 0, len(messages)-startIdx)
	for _, msg := range messages[startIdx:] {
		switch msg.Role {
		case copilot.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		case copilot.RoleAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}

	return history
}
