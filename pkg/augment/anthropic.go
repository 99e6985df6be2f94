package augment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/user/draftcheck/pkg/draft"
	"github.com/user/draftcheck/pkg/logging"
)

type AnthropicAdvisor struct {
	APIKey string
	Model  string
	client *http.Client
}

func NewAnthropicAdvisor(apiKey, model string) *AnthropicAdvisor {
	if model == "" {
		model = "claude-sonnet-4-5"
	}
	return &AnthropicAdvisor{
		APIKey: apiKey,
		Model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *AnthropicAdvisor) Name() string { return "anthropic" }

func (p *AnthropicAdvisor) Review(ctx context.Context, d *draft.RecipeDraft) ([]string, error) {
	logging.Debugf("anthropic review for %s (chars=%d)", d.Path, len(d.Body))

	payload := map[string]interface{}{
		"model":      p.Model,
		"max_tokens": 1024,
		"messages": []map[string]string{
			{"role": "user", "content": buildReviewPrompt(d)},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.anthropic.com/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", p.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("Anthropic API returned status: %s", resp.Status)
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	var text string
	for _, block := range result.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return nil, fmt.Errorf("empty response")
	}

	return parseSuggestions(text), nil
}
