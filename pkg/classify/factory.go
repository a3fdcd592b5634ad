package classify

import (
	"context"
	"sort"
	"strings"

	"github.com/oneconcern/foldersort/pkg/model"
)

// Names of the available classifiers
const (
	NameExtension = "extension"
	NameBackbone  = "backbone"
	NameOllama    = "ollama"
	NameGemini    = "gemini"
)

// Config selects and configures a classifier
type Config struct {
	Name      string
	Model     string
	OllamaURL string
	APIKey    string

	// Structure used by the backbone classifier
	Structure model.Category
}

// Names lists the supported classifier names
func Names() []string {
	names := []string{NameExtension, NameBackbone, NameOllama, NameGemini}
	sort.Strings(names)
	return names
}

// New builds the classifier named in the configuration
func New(ctx context.Context, cfg Config) (Classifier, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Name)) {
	case NameExtension, "":
		return Extension{}, nil
	case NameBackbone:
		if cfg.Structure == nil {
			return nil, ErrUnknownClassifier.Wrapf("the backbone classifier requires a structure")
		}
		return Backbone{Structure: cfg.Structure}, nil
	case NameOllama:
		return NewOllama(cfg.OllamaURL, cfg.Model), nil
	case NameGemini:
		g, err := NewGemini(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, ErrUnknownClassifier.Wrapf("%q, expected one of %s", cfg.Name, strings.Join(Names(), ", "))
	}
}
