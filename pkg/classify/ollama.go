package classify

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultOllamaURL is the address of a local Ollama server
	DefaultOllamaURL = "http://localhost:11434"

	// DefaultOllamaModel is the model used when none is configured
	DefaultOllamaModel = "gemma3"

	ollamaTimeout = 5 * time.Minute
)

// Ollama classifies files with a language model served by Ollama
type Ollama struct {
	endpoint string
	model    string
	client   *http.Client
}

// NewOllama builds an Ollama classifier. Empty arguments pick the defaults.
func NewOllama(endpoint, model string) *Ollama {
	if endpoint == "" {
		endpoint = DefaultOllamaURL
	}
	if model == "" {
		model = DefaultOllamaModel
	}
	return &Ollama{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		client:   &http.Client{Timeout: ollamaTimeout},
	}
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Format string `json:"format,omitempty"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Classify a batch
func (o *Ollama) Classify(ctx context.Context, batch []string, instructions string) (string, error) {
	body, err := json.Marshal(ollamaRequest{
		Model:  o.model,
		Prompt: Prompt(batch, instructions),
		Format: "json",
	})
	if err != nil {
		return "", ErrClassifier.Wrap(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", ErrClassifier.Wrap(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", ErrClassifier.Wrap(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ErrClassifier.Wrap(err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", ErrClassifier.Wrapf("ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var result ollamaResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", ErrClassifier.Wrap(err)
	}
	if result.Error != "" {
		return "", ErrClassifier.Wrapf("ollama: %s", result.Error)
	}
	return result.Response, nil
}
