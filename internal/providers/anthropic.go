package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

const anthropicDefaultMaxTokens = 1024

// AnthropicClient calls the Anthropic messages API.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

func NewAnthropicClient(apiKey, model string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key missing")
	}
	return &AnthropicClient{client: anthropic.NewClient(apiKey), model: model}, nil
}

func (c *AnthropicClient) Name() string { return "anthropic" }

func (c *AnthropicClient) Chat(ctx context.Context, messages []ChatMessage, opts Options, onToken func(string)) (string, error) {
	// Anthropic takes system text outside the message list.
	var systemParts []anthropic.MessageSystemPart
	var msgs []anthropic.Message
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			systemParts = append(systemParts, anthropic.MessageSystemPart{
				Type: "text",
				Text: m.Content,
			})
		case RoleUser:
			msgs = append(msgs, anthropic.Message{
				Role:    anthropic.RoleUser,
				Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(m.Content)},
			})
		case RoleAssistant:
			msgs = append(msgs, anthropic.Message{
				Role:    anthropic.RoleAssistant,
				Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(m.Content)},
			})
		}
	}

	maxTokens := anthropicDefaultMaxTokens
	if opts.MaxTokens > 0 {
		maxTokens = opts.MaxTokens
	}
	req := anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		Messages:  msgs,
		MaxTokens: maxTokens,
	}
	if opts.Temperature > 0 {
		t := opts.Temperature
		req.Temperature = &t
	}
	if len(systemParts) > 0 {
		req.MultiSystem = systemParts
	}

	if onToken == nil {
		resp, err := c.client.CreateMessages(ctx, req)
		if err != nil {
			return "", fmt.Errorf("anthropic chat: %w", err)
		}
		var content strings.Builder
		for _, block := range resp.Content {
			if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
				content.WriteString(*block.Text)
			}
		}
		return strings.TrimSpace(content.String()), nil
	}

	var content strings.Builder
	streamReq := anthropic.MessagesStreamRequest{MessagesRequest: req}
	streamReq.OnContentBlockDelta = func(data anthropic.MessagesEventContentBlockDeltaData) {
		if data.Delta.Text != nil {
			content.WriteString(*data.Delta.Text)
			onToken(*data.Delta.Text)
		}
	}
	if _, err := c.client.CreateMessagesStream(ctx, streamReq); err != nil {
		return "", fmt.Errorf("anthropic stream: %w", err)
	}
	return strings.TrimSpace(content.String()), nil
}
