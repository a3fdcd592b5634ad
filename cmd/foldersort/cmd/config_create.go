package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var configCreate = &cobra.Command{
	Use:   "create",
	Short: "Create a config",
	Long: `Create a config to use for foldersort, from the current flags and settings.

The config file will be placed in $HOME/.foldersort/foldersort.yaml`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		home, err := os.UserHomeDir()
		if err != nil {
			wrapFatalln("could not get home directory for user", err)
			return
		}
		cfg := CLIConfig{
			Classifier:   foldersortFlags.classifier.name,
			Model:        foldersortFlags.classifier.model,
			OllamaURL:    foldersortFlags.classifier.ollamaURL,
			BatchSize:    foldersortFlags.classifier.batchSize,
			Instructions: foldersortFlags.classifier.instructions,
			StateDir:     foldersortFlags.state.dir,
			Editor:       foldersortFlags.editor.command,
			LogLevel:     foldersortFlags.root.logLevel,
		}
		o, err := yaml.Marshal(cfg)
		if err != nil {
			wrapFatalln("serialize config to yaml", err)
			return
		}
		dir := filepath.Join(home, ".foldersort")
		if err = appFs.MkdirAll(dir, 0o700); err != nil {
			wrapFatalln("create config directory", err)
			return
		}
		path := filepath.Join(dir, "foldersort.yaml")
		if err = afero.WriteFile(appFs, path, o, 0o600); err != nil {
			wrapFatalln("write config file", err)
			return
		}
		logStdOut("config written to %s\n", path)
	},
}

func init() {
	addClassifierFlags(configCreate)
	addStateDirFlag(configCreate)
	addEditorFlag(configCreate)

	configCmd.AddCommand(configCreate)
}
