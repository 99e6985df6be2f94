package augment

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/user/draftcheck/pkg/draft"
	"github.com/user/draftcheck/pkg/logging"
)

type GeminiAdvisor struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiAdvisor(ctx context.Context, apiKey string, modelName string) (*GeminiAdvisor, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-pro"
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.2)

	return &GeminiAdvisor{client: client, model: model}, nil
}

func (g *GeminiAdvisor) Name() string { return "gemini" }

func (g *GeminiAdvisor) Review(ctx context.Context, d *draft.RecipeDraft) ([]string, error) {
	logging.Debugf("gemini review for %s (chars=%d)", d.Path, len(d.Body))

	resp, err := g.model.GenerateContent(ctx, genai.Text(buildReviewPrompt(d)))
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no response candidates")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}
	if text == "" {
		return nil, fmt.Errorf("empty response")
	}

	return parseSuggestions(text), nil
}

func (g *GeminiAdvisor) Close() {
	g.client.Close()
}
