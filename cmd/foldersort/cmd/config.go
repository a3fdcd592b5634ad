package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configuration keys
const (
	keyClassifier   = "classifier"
	keyModel        = "model"
	keyOllamaURL    = "ollama_url"
	keyBatchSize    = "batch_size"
	keyInstructions = "instructions"
	keyStateDir     = "state_dir"
	keyEditor       = "editor"
	keyLogLevel     = "loglevel"
)

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	Classifier   string `json:"classifier" yaml:"classifier" mapstructure:"classifier"`
	Model        string `json:"model,omitempty" yaml:"model,omitempty" mapstructure:"model"`
	OllamaURL    string `json:"ollama_url,omitempty" yaml:"ollama_url,omitempty" mapstructure:"ollama_url"`
	BatchSize    int    `json:"batch_size,omitempty" yaml:"batch_size,omitempty" mapstructure:"batch_size"`
	Instructions string `json:"instructions,omitempty" yaml:"instructions,omitempty" mapstructure:"instructions"`
	StateDir     string `json:"state_dir,omitempty" yaml:"state_dir,omitempty" mapstructure:"state_dir"`
	Editor       string `json:"editor,omitempty" yaml:"editor,omitempty" mapstructure:"editor"`
	LogLevel     string `json:"loglevel" yaml:"loglevel" mapstructure:"loglevel"`
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// setFoldersortParams fills the flags left unset on the command line
func (c *CLIConfig) setFoldersortParams(flags *flagsT) {
	if flags.root.logLevel == "" {
		flags.root.logLevel = c.LogLevel
	}
	if flags.classifier.name == "" {
		flags.classifier.name = c.Classifier
	}
	if flags.classifier.model == "" {
		flags.classifier.model = c.Model
	}
	if flags.classifier.ollamaURL == "" {
		flags.classifier.ollamaURL = c.OllamaURL
	}
	if flags.classifier.batchSize == 0 {
		flags.classifier.batchSize = c.BatchSize
	}
	if flags.classifier.instructions == "" {
		flags.classifier.instructions = c.Instructions
	}
	if flags.state.dir == "" {
		flags.state.dir = c.StateDir
	}
	if flags.editor.command == "" {
		flags.editor.command = c.Editor
	}
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage a config",
	Long: `Commands to manage the foldersort CLI config.

Configuration for foldersort is the common set of flags that do not change across runs,
such as the classifier and its model. Every key may be overridden by an environment variable
prefixed with FOLDERSORT_, e.g. FOLDERSORT_CLASSIFIER=ollama.`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
