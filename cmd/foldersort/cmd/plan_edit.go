package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oneconcern/foldersort/pkg/editor"
)

var planEditCmd = &cobra.Command{
	Use:   "edit PLAN",
	Short: "Edit a plan in an external editor",
	Long: `Open a plan in an external editor: --editor, the "editor" setting, $VISUAL or $EDITOR.

The edited plan must remain a valid JSON document in which every file appears once.
Otherwise, the edit is rejected and the plan is restored as it was.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		tree, err := loadPlan(path)
		if err != nil {
			wrapFatalln("cannot load plan", err)
			return
		}

		ctx, stop := withInterrupt()
		defer stop()

		ed := editor.New(tree, editor.Logger(logger), editor.Fs(appFs))
		if err = ed.EditFile(ctx, path, launchEditor(foldersortFlags.editor.command)); err != nil {
			_ = savePlan(path, ed.Tree())
			wrapFatalln("plan rejected", err)
			return
		}
		if err = savePlan(path, ed.Tree()); err != nil {
			wrapFatalln("write plan", err)
			return
		}
		printTree(out, ed.Tree())
	},
}

func init() {
	addEditorFlag(planEditCmd)

	planCmd.AddCommand(planEditCmd)
}
