package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oneconcern/foldersort/pkg/classify"
)

type flagsT struct {
	root struct {
		logLevel string
	}
	classifier struct {
		name         string
		model        string
		ollamaURL    string
		instructions string
		structure    string
		batchSize    int
	}
	plan struct {
		file  string
		table bool
		yaml  bool
	}
	apply struct {
		dryRun    bool
		edit      bool
		maxErrors int
	}
	state struct {
		dir string
	}
	editor struct {
		command string
	}
}

var foldersortFlags = flagsT{}

func addLogLevel(cmd *cobra.Command) string {
	logLevel := "loglevel"
	cmd.PersistentFlags().StringVar(&foldersortFlags.root.logLevel, logLevel, "", "The logging level. Levels by increasing order of verbosity: none, warn, info, debug")
	return logLevel
}

func addClassifierFlag(cmd *cobra.Command) string {
	c := "classifier"
	cmd.Flags().StringVar(&foldersortFlags.classifier.name, c, "", "The classifier proposing categories, one of: "+joinNames(classify.Names()))
	return c
}

func addModelFlag(cmd *cobra.Command) string {
	model := "model"
	cmd.Flags().StringVar(&foldersortFlags.classifier.model, model, "", "The language model used by the ollama or gemini classifiers")
	return model
}

func addOllamaURLFlag(cmd *cobra.Command) string {
	url := "ollama-url"
	cmd.Flags().StringVar(&foldersortFlags.classifier.ollamaURL, url, "", "The address of the Ollama server. Defaults to "+classify.DefaultOllamaURL)
	return url
}

func addInstructionsFlag(cmd *cobra.Command) string {
	instructions := "instructions"
	cmd.Flags().StringVar(&foldersortFlags.classifier.instructions, instructions, "", "Additional instructions passed on to the classifier")
	return instructions
}

func addStructureFlag(cmd *cobra.Command) string {
	structure := "structure"
	cmd.Flags().StringVar(&foldersortFlags.classifier.structure, structure, "", "A plan file used as the known structure of the backbone classifier")
	return structure
}

func addBatchSizeFlag(cmd *cobra.Command) string {
	batchSize := "batch-size"
	cmd.Flags().IntVar(&foldersortFlags.classifier.batchSize, batchSize, 0, "Number of files classified per batch. Defaults to half the files, between 200 and 500")
	return batchSize
}

func addClassifierFlags(cmd *cobra.Command) {
	addClassifierFlag(cmd)
	addModelFlag(cmd)
	addOllamaURLFlag(cmd)
	addInstructionsFlag(cmd)
	addStructureFlag(cmd)
	addBatchSizeFlag(cmd)
}

func addPlanFileFlag(cmd *cobra.Command) string {
	plan := "plan"
	cmd.Flags().StringVar(&foldersortFlags.plan.file, plan, "", "The plan file. Defaults to plan.json in the state directory")
	return plan
}

func addTableFlag(cmd *cobra.Command) string {
	table := "table"
	cmd.Flags().BoolVar(&foldersortFlags.plan.table, table, false, "Display the plan as a table of folders and files")
	return table
}

func addYAMLFlag(cmd *cobra.Command) string {
	yaml := "yaml"
	cmd.Flags().BoolVar(&foldersortFlags.plan.yaml, yaml, false, "Display the plan as YAML")
	return yaml
}

func addDryRunFlag(cmd *cobra.Command) string {
	dryRun := "dry-run"
	cmd.Flags().BoolVar(&foldersortFlags.apply.dryRun, dryRun, false, "Report the moves without touching any file")
	return dryRun
}

func addEditFlag(cmd *cobra.Command) string {
	edit := "edit"
	cmd.Flags().BoolVar(&foldersortFlags.apply.edit, edit, false, "Edit the plan in an external editor before applying it")
	return edit
}

func addMaxErrorsFlag(cmd *cobra.Command) string {
	maxErrors := "max-errors"
	cmd.Flags().IntVar(&foldersortFlags.apply.maxErrors, maxErrors, 5, "Number of error messages reported")
	return maxErrors
}

func addStateDirFlag(cmd *cobra.Command) string {
	stateDir := "state-dir"
	cmd.Flags().StringVar(&foldersortFlags.state.dir, stateDir, "", "The directory holding plans and journals. Defaults to .foldersort inside the organized directory")
	return stateDir
}

func addEditorFlag(cmd *cobra.Command) string {
	editor := "editor"
	cmd.Flags().StringVar(&foldersortFlags.editor.command, editor, "", "The editor command line. Defaults to $VISUAL or $EDITOR")
	return editor
}
