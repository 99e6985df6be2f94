package augment

import (
	"context"
	"fmt"
)

func NewAdvisor(ctx context.Context, providerName, apiKey, modelName string) (Advisor, error) {
	switch providerName {
	case "gemini":
		return NewGeminiAdvisor(ctx, apiKey, modelName)
	case "openai":
		return NewOpenAIAdvisor(apiKey, modelName), nil
	case "anthropic":
		return NewAnthropicAdvisor(apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", providerName)
	}
}
