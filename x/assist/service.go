// Package assist drafts character profiles and log paragraphs with an OpenAI-compatible model
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"

	"github.com/voidarchive/archive/core"
	"github.com/voidarchive/archive/x/util"
)

var tracer = otel.Tracer("assist")

const (
	maxRetries = 3
	timeout    = 60 * time.Second
)

const characterPrompt = `Based on the prompt: "%s", generate a fictional character profile in JSON format.
Use the keys name, title, introduction, ability, stats, trivia (array of strings), tags (array of strings)
and attributes (object with height, age, alignment, gender).
stats is a multi-line rank string like "Power: A\nSpeed: B".
alignment must be one of: %s.`

const writerPrompt = "You are a creative writer for a futuristic/fantasy roleplay archive. Keep the tone mysterious and atmospheric."

type service struct {
	client *openai.Client
	model  string
}

// NewService creates an assist service; it fails when no API key is configured
func NewService(config util.Config) (core.AssistService, error) {
	if config.Assist.APIKey == "" {
		return nil, fmt.Errorf("assist api key is not configured")
	}

	clientConfig := openai.DefaultConfig(config.Assist.APIKey)
	if config.Assist.BaseURL != "" {
		clientConfig.BaseURL = config.Assist.BaseURL
	}

	return &service{
		client: openai.NewClientWithConfig(clientConfig),
		model:  config.Assist.Model,
	}, nil
}

func (s *service) complete(ctx context.Context, request openai.ChatCompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := s.client.CreateChatCompletion(ctx, request)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("empty completion")
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}

	return "", errors.Wrap(lastErr, "completion failed")
}

// GenerateCharacter drafts a character profile from a free-form prompt
func (s *service) GenerateCharacter(ctx context.Context, prompt string) (core.CharacterDraft, error) {
	ctx, span := tracer.Start(ctx, "Assist.Service.GenerateCharacter")
	defer span.End()

	content, err := s.complete(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(characterPrompt, prompt, strings.Join(core.Alignments, ", ")),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
		Temperature:    0.9,
	})
	if err != nil {
		span.RecordError(err)
		return core.CharacterDraft{}, err
	}

	draft, err := parseDraft(content)
	if err != nil {
		span.RecordError(err)
		return core.CharacterDraft{}, err
	}
	return draft, nil
}

// ContinueLog writes the next narration paragraph of a log
func (s *service) ContinueLog(ctx context.Context, background, lastMessage string) (string, error) {
	ctx, span := tracer.Start(ctx, "Assist.Service.ContinueLog")
	defer span.End()

	content, err := s.complete(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: writerPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(
					"Continuing the roleplay log. Context: %s. Last message: %s. Generate the next paragraph of narration.",
					background, lastMessage,
				),
			},
		},
		Temperature: 0.8,
	})
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	return strings.TrimSpace(content), nil
}

func parseDraft(content string) (core.CharacterDraft, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var draft core.CharacterDraft
	err := json.Unmarshal([]byte(content), &draft)
	if err != nil {
		return core.CharacterDraft{}, errors.Wrap(err, "malformed character draft")
	}

	if !isAlignment(draft.Attributes.Alignment) {
		draft.Attributes.Alignment = core.AlignmentNone
	}
	if draft.Tags == nil {
		draft.Tags = []string{}
	}
	if draft.Trivia == nil {
		draft.Trivia = []string{}
	}
	return draft, nil
}

func isAlignment(alignment string) bool {
	for _, known := range core.Alignments {
		if alignment == known {
			return true
		}
	}
	return false
}
