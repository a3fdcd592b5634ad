// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/oneconcern/foldersort/pkg/dlogger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "foldersort",
	Short: "foldersort organizes the files of a directory into categories",
	Long: `foldersort organizes the files of a directory into a tree of categories.

A classifier proposes categories for the files, batch by batch. The proposals are repaired,
merged into a single plan which you may review and edit, then applied by moving every file
into the folder of its category. Every run is journaled, so that it may be undone.

A typical session:

	foldersort analyze ~/Downloads
	foldersort plan show ~/Downloads/.foldersort/plan.json
	foldersort apply ~/Downloads
	foldersort undo ~/Downloads
`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		l, err := dlogger.GetLogger(foldersortFlags.root.logLevel)
		if err != nil {
			wrapFatalln("invalid log level", err)
			return
		}
		logger = l
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var (
	config *CLIConfig
	logger = zap.NewNop()
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	addLogLevel(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault(keyClassifier, "extension")
	viper.SetDefault(keyModel, "")
	viper.SetDefault(keyOllamaURL, "")
	viper.SetDefault(keyBatchSize, 0)
	viper.SetDefault(keyInstructions, "")
	viper.SetDefault(keyStateDir, "")
	viper.SetDefault(keyEditor, "")
	viper.SetDefault(keyLogLevel, dlogger.LogLevelWarn)

	if os.Getenv("FOLDERSORT_CONFIG") != "" {
		// Use config file from the environment.
		viper.SetConfigFile(os.Getenv("FOLDERSORT_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.foldersort")
		viper.SetConfigName("foldersort")
	}

	viper.SetEnvPrefix("FOLDERSORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("using config file", zap.String("file", viper.ConfigFileUsed()))
	}

	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
		return
	}
	config.setFoldersortParams(&foldersortFlags)
}
