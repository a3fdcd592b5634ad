package classify

import (
	"context"

	"google.golang.org/genai"
)

// DefaultGeminiModel is the model used when none is configured
const DefaultGeminiModel = "gemini-2.0-flash"

// Gemini classifies files with Google's Gemini API
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds a Gemini classifier
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, ErrClassifier.Wrap(err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Classify a batch
func (g *Gemini) Classify(ctx context.Context, batch []string, instructions string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(Prompt(batch, instructions)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", ErrClassifier.Wrap(err)
	}
	return resp.Text(), nil
}
