package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/oneconcern/foldersort/pkg/classify"
	"github.com/oneconcern/foldersort/pkg/model"
	"github.com/oneconcern/foldersort/pkg/repair"
)

const (
	stateDirName = ".foldersort"
	planFileName = "plan.json"
)

// used to patch over the filesystem during test
var appFs = afero.NewOsFs()

// stateDir returns the directory holding the plans and journals of a source directory
func stateDir(sourceDir string) string {
	if foldersortFlags.state.dir != "" {
		return foldersortFlags.state.dir
	}
	return filepath.Join(sourceDir, stateDirName)
}

// planPath returns the plan file of a source directory
func planPath(sourceDir string) string {
	if foldersortFlags.plan.file != "" {
		return foldersortFlags.plan.file
	}
	return filepath.Join(stateDir(sourceDir), planFileName)
}

func loadPlan(path string) (model.Category, error) {
	data, err := afero.ReadFile(appFs, path)
	if err != nil {
		return nil, err
	}
	return repair.Strict(data)
}

func savePlan(path string, tree model.Category) error {
	data, err := model.Marshal(tree)
	if err != nil {
		return err
	}
	if err = appFs.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return afero.WriteFile(appFs, path, data, 0o600)
}

func newClassifier(ctx context.Context) (classify.Classifier, error) {
	cfg := classify.Config{
		Name:      foldersortFlags.classifier.name,
		Model:     foldersortFlags.classifier.model,
		OllamaURL: foldersortFlags.classifier.ollamaURL,
		APIKey:    geminiAPIKey(),
	}
	if foldersortFlags.classifier.structure != "" {
		structure, err := loadPlan(foldersortFlags.classifier.structure)
		if err != nil {
			return nil, err
		}
		cfg.Structure = structure
	}
	return classify.New(ctx, cfg)
}

func geminiAPIKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}
	return ""
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
