package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"socialportal/internal/common"
	"socialportal/internal/config"
)

// AI generates post content through an OpenAI-compatible chat-completions
// endpoint. The backend (base URL, model, key) comes from the ai config
// section.
type AI struct {
	*restClient
	apiKey string
	model  string
}

// NewAI creates the content-generation client.
func NewAI(cfg config.AIConfig, logger *common.Logger, opts ...ClientOption) *AI {
	return &AI{
		restClient: newRESTClient(strings.TrimSuffix(cfg.BaseURL, "/"), logger, opts...),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
	}
}

// GenerateContent drafts a social post about the topic. Platform and tone
// are optional hints folded into the prompt.
func (c *AI) GenerateContent(ctx context.Context, topic, platform, tone string) (map[string]interface{}, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("ai backend is not configured: missing api_key")
	}

	prompt := fmt.Sprintf("Write a social media post about: %s.", topic)
	if platform != "" {
		prompt += fmt.Sprintf(" Target platform: %s; respect its length conventions.", platform)
	}
	if tone != "" {
		prompt += fmt.Sprintf(" Tone: %s.", tone)
	}

	payload := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": "You write concise, engaging social media posts. Reply with the post text only."},
			{"role": "user", "content": prompt},
		},
	}

	body, err := c.postJSON(ctx, "/chat/completions", c.apiKey, payload)
	if err != nil {
		return nil, fmt.Errorf("content generation: %w", err)
	}

	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("content generation: failed to parse response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("content generation: backend returned no choices")
	}

	return map[string]interface{}{
		"text":     strings.TrimSpace(resp.Choices[0].Message.Content),
		"model":    c.model,
		"platform": platform,
	}, nil
}
