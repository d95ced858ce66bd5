package client

import (
	"context"
	"fmt"

	"tastepost-core/internal/domain/entity"

	"google.golang.org/genai"
)

// GeminiClient adapts the genai SDK to the repository.ChatModel interface.
// The underlying *genai.Client is constructed once at startup and injected,
// never looked up from ambient state.
type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{client: c}, nil
}

func NewGeminiClientFromClient(c *genai.Client) *GeminiClient {
	return &GeminiClient{client: c}
}

func (g *GeminiClient) Complete(ctx context.Context, req entity.ChatRequest) (*entity.ChatResponse, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: int32(req.MaxOutputTokens),
	}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	result, err := g.client.Models.GenerateContent(ctx, req.ModelID, genai.Text(req.Prompt), cfg)
	if err != nil {
		return nil, err
	}

	text := result.Text()
	if text == "" {
		return nil, fmt.Errorf("empty response from model %s", req.ModelID)
	}

	resp := &entity.ChatResponse{
		Text:  text,
		Usage: entity.Usage{ModelID: req.ModelID},
	}
	if um := result.UsageMetadata; um != nil {
		resp.Usage.InputTokens = int(um.PromptTokenCount)
		resp.Usage.OutputTokens = int(um.CandidatesTokenCount)
		resp.Usage.TotalTokens = int(um.TotalTokenCount)
	}
	return resp, nil
}
