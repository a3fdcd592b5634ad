package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oneconcern/foldersort/pkg/editor"
)

var organizeCmd = &cobra.Command{
	Use:   "organize DIR",
	Short: "Analyze a directory and apply the resulting plan",
	Long: `Run the whole pipeline on a directory: classify its files, optionally edit the plan
in an external editor, then move the files.

The plan is kept in the state directory, and the run may be reverted with "foldersort undo".`,
	Example: `foldersort organize ~/Downloads --edit
foldersort organize ~/Downloads --classifier gemini --dry-run`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := withInterrupt()
		defer stop()

		s, ok := analyze(ctx, args[0])
		if !ok {
			return
		}
		path := planPath(s.SourceDir)
		if err := savePlan(path, s.Tree); err != nil {
			wrapFatalln("write plan", err)
			return
		}
		if ctx.Err() != nil {
			return
		}
		if foldersortFlags.apply.edit {
			ed := editor.New(s.Tree, editor.Logger(logger), editor.Fs(appFs))
			err := ed.EditFile(ctx, path, launchEditor(foldersortFlags.editor.command))
			_ = savePlan(path, s.Tree)
			if err != nil {
				wrapFatalln("plan rejected", err)
				return
			}
		}

		logStdOut("%s\n", s.Summary())
		apply(ctx, s.SourceDir, s.Tree)
	},
}

func init() {
	addClassifierFlags(organizeCmd)
	addPlanFileFlag(organizeCmd)
	addDryRunFlag(organizeCmd)
	addEditFlag(organizeCmd)
	addEditorFlag(organizeCmd)
	addMaxErrorsFlag(organizeCmd)
	addStateDirFlag(organizeCmd)

	rootCmd.AddCommand(organizeCmd)
}
